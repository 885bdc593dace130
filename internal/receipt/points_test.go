package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Points", func() {
	// base is a receipt that earns nothing on its own
	base := func() Receipt {
		return Receipt{
			Retailer:     "__",
			PurchaseDate: "2022-01-02",
			PurchaseTime: "10:00",
			Items:        []Item{{ShortDescription: "ab", Price: "1.01"}},
			Total:        "1.01",
		}
	}

	score := func(r Receipt) int64 {
		points, err := Points(r)
		Expect(err).NotTo(HaveOccurred())
		return points
	}

	It("should award nothing for the base receipt", func() {
		Expect(score(base())).To(BeZero())
	})

	Describe("known receipts", func() {
		It("should score a single item Target receipt", func() {
			Expect(score(targetReceipt())).To(Equal(int64(12)))
		})

		It("should score four Gatorades", func() {
			r := Receipt{
				Retailer:     "M&M Corner Market",
				PurchaseDate: "2022-03-20",
				PurchaseTime: "14:33",
				Items: []Item{
					{ShortDescription: "Gatorade", Price: "2.25"},
					{ShortDescription: "Gatorade", Price: "2.25"},
					{ShortDescription: "Gatorade", Price: "2.25"},
					{ShortDescription: "Gatorade", Price: "2.25"},
				},
				Total: "9.00",
			}
			Expect(score(r)).To(Equal(int64(109)))
		})

		It("should score a five item Target receipt", func() {
			r := Receipt{
				Retailer:     "Target",
				PurchaseDate: "2022-01-01",
				PurchaseTime: "13:01",
				Items: []Item{
					{ShortDescription: "Mountain Dew 12PK", Price: "6.49"},
					{ShortDescription: "Emils Cheese Pizza", Price: "12.25"},
					{ShortDescription: "Knorr Creamy Chicken", Price: "1.26"},
					{ShortDescription: "Doritos Nacho Cheese", Price: "3.35"},
					{ShortDescription: "   Klarbrunn 12-PK 12 FL OZ  ", Price: "12.00"},
				},
				Total: "35.35",
			}
			Expect(score(r)).To(Equal(int64(28)))
		})

		It("should be deterministic", func() {
			r := targetReceipt()
			Expect(score(r)).To(Equal(score(r)))
		})
	})

	DescribeTable("retailer characters",
		func(retailer string, expected int64) {
			r := base()
			r.Retailer = retailer
			Expect(score(r)).To(Equal(expected))
		},
		Entry("letters", "Target", int64(6)),
		Entry("digits", "7-Eleven", int64(7)),
		Entry("punctuation only", "&&--", int64(0)),
		Entry("non ASCII letters", "Café", int64(4)),
		Entry("fractions and superscripts", "A½²", int64(3)),
		Entry("roman numerals", "ⅫStore", int64(6)),
	)

	DescribeTable("total",
		func(total string, expected int64) {
			r := base()
			r.Total = total
			Expect(score(r)).To(Equal(expected))
		},
		Entry("round dollar", "9.00", int64(75)),
		Entry("zero", "0.00", int64(75)),
		Entry("quarter", "0.25", int64(25)),
		Entry("three quarters", "12.75", int64(25)),
		Entry("half", "3.50", int64(25)),
		Entry("not a quarter multiple", "6.49", int64(0)),
		Entry("ten cents", "0.10", int64(0)),
	)

	DescribeTable("item pairs",
		func(count int, expected int64) {
			r := base()
			r.Items = nil
			for i := 0; i < count; i++ {
				r.Items = append(r.Items, Item{ShortDescription: "ab", Price: "1.01"})
			}
			Expect(score(r)).To(Equal(expected))
		},
		Entry("one item", 1, int64(0)),
		Entry("two items", 2, int64(5)),
		Entry("three items", 3, int64(5)),
		Entry("five items", 5, int64(10)),
	)

	DescribeTable("item descriptions",
		func(description, price string, expected int64) {
			r := base()
			r.Items = []Item{{ShortDescription: description, Price: price}}
			Expect(score(r)).To(Equal(expected))
		},
		Entry("length not a multiple of three", "ab", "10.00", int64(0)),
		Entry("length three", "abc", "10.00", int64(2)),
		Entry("rounds up", "Emils Cheese Pizza", "12.25", int64(3)),
		Entry("rounds up a small fraction", "abc", "5.01", int64(2)),
		Entry("zero price", "abc", "0.00", int64(0)),
		Entry("trims surrounding whitespace", "  abc  ", "10.00", int64(2)),
		Entry("all whitespace counts as length zero", "   ", "1.00", int64(1)),
		Entry("just below the storable maximum", "abc", "46116860184273870000.00", int64(9223372036854774000)),
	)

	DescribeTable("scores too large to store",
		func(price string) {
			r := base()
			r.Items = []Item{{ShortDescription: "abc", Price: price}}
			points, err := Points(r)
			Expect(err).To(MatchError(ErrPointsOverflow))
			Expect(points).To(BeZero())
		},
		Entry("one past the maximum", "46116860184273879040.00"),
		Entry("far past the maximum", "99999999999999999999999999.00"),
	)

	It("should reject a sum that only overflows across items", func() {
		r := base()
		r.Items = []Item{
			{ShortDescription: "abc", Price: "40000000000000000000.00"},
			{ShortDescription: "abc", Price: "40000000000000000000.00"},
		}
		_, err := Points(r)
		Expect(err).To(MatchError(ErrPointsOverflow))
	})

	DescribeTable("purchase day",
		func(date string, expected int64) {
			r := base()
			r.PurchaseDate = date
			Expect(score(r)).To(Equal(expected))
		},
		Entry("odd", "2022-01-01", int64(6)),
		Entry("odd end of month", "2022-01-31", int64(6)),
		Entry("even", "2022-01-02", int64(0)),
	)

	DescribeTable("purchase time",
		func(clock string, expected int64) {
			r := base()
			r.PurchaseTime = clock
			Expect(score(r)).To(Equal(expected))
		},
		Entry("exactly 14:00", "14:00", int64(0)),
		Entry("14:01", "14:01", int64(10)),
		Entry("15:00", "15:00", int64(10)),
		Entry("15:59", "15:59", int64(10)),
		Entry("exactly 16:00", "16:00", int64(0)),
		Entry("morning", "09:30", int64(0)),
	)

	When("the receipt did not come through validation", func() {
		DescribeTable("returning an error",
			func(mutate func(*Receipt)) {
				r := base()
				mutate(&r)
				_, err := Points(r)
				Expect(err).To(HaveOccurred())
			},
			Entry("bad total", func(r *Receipt) { r.Total = "abc" }),
			Entry("bad date", func(r *Receipt) { r.PurchaseDate = "yesterday" }),
			Entry("bad time", func(r *Receipt) { r.PurchaseTime = "noon" }),
			Entry("bad price", func(r *Receipt) { r.Items = []Item{{ShortDescription: "abc", Price: "free"}} }),
		)
	})
})
