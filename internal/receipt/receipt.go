package receipt

// Item is a single purchased line on a receipt
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

// Receipt is a validated purchase document.
// Monetary values stay strings so no precision is lost before scoring.
type Receipt struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"`
	PurchaseTime string `json:"purchaseTime"`
	Items        []Item `json:"items"`
	Total        string `json:"total"`
}

// StoredReceipt is a processed receipt together with its points
type StoredReceipt struct {
	ID     string  `json:"id"`
	Points int64   `json:"points"`
	Data   Receipt `json:"data"`
}

// clone returns a deep copy so callers never share the Items slice
func (r Receipt) clone() Receipt {
	items := make([]Item, len(r.Items))
	copy(items, r.Items)
	r.Items = items
	return r
}

func (s StoredReceipt) clone() StoredReceipt {
	s.Data = s.Data.clone()
	return s
}
