package receipt

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tidwall/gjson"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// whitespace matches what Unicode treats as white space, not only ASCII \s
const whitespace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	retailerPattern    = regexp.MustCompile(`^[^` + whitespace + `]+$`)
	descriptionPattern = regexp.MustCompile(`^[\p{L}\p{N}_` + whitespace + `\-]+$`)
	amountPattern      = regexp.MustCompile(`^\d+\.\d{2}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Validate checks a raw JSON receipt document and returns the typed receipt.
// Every field is checked; a *ValidationError lists all failures found.
func Validate(raw []byte) (Receipt, error) {
	verr := &ValidationError{}

	if !gjson.ValidBytes(raw) {
		verr.add("body", "must be valid JSON")
		return Receipt{}, verr
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		verr.add("body", "must be a JSON object")
		return Receipt{}, verr
	}
	doc := objectFields(res)

	var r Receipt
	r.Retailer = matchString(verr, doc, "retailer", retailerPattern)
	r.PurchaseDate = dateString(verr, doc, "purchaseDate")
	r.PurchaseTime = timeString(verr, doc, "purchaseTime")
	r.Items = items(verr, doc)
	r.Total = matchString(verr, doc, "total", amountPattern)

	if len(verr.Fields) > 0 {
		return Receipt{}, verr
	}
	return r, nil
}

// object holds the members of a JSON object by key
type object map[string]gjson.Result

// objectFields collects the members of obj. A repeated key keeps its last value.
func objectFields(obj gjson.Result) object {
	fields := object{}
	obj.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}

// stringField fetches key from obj as a string, recording presence and type failures
func stringField(verr *ValidationError, obj object, key, path string) (string, bool) {
	res := obj[key]
	if !res.Exists() || res.Type == gjson.Null {
		verr.add(path, "is required")
		return "", false
	}
	if res.Type != gjson.String {
		verr.add(path, "must be a string")
		return "", false
	}
	return res.Str, true
}

func matchString(verr *ValidationError, obj object, key string, re *regexp.Regexp) string {
	return matchPath(verr, obj, key, key, re)
}

func matchPath(verr *ValidationError, obj object, key, path string, re *regexp.Regexp) string {
	s, ok := stringField(verr, obj, key, path)
	if !ok {
		return ""
	}
	if !re.MatchString(s) {
		verr.add(path, fmt.Sprintf("does not match pattern %s", re))
		return ""
	}
	return s
}

func dateString(verr *ValidationError, obj object, key string) string {
	s, ok := stringField(verr, obj, key, key)
	if !ok {
		return ""
	}
	if !datePattern.MatchString(s) {
		verr.add(key, "must be a valid date (YYYY-MM-DD)")
		return ""
	}
	// time.Parse rejects days outside the month, e.g. 2023-02-29
	if _, err := time.Parse(dateLayout, s); err != nil {
		verr.add(key, "must be a valid date (YYYY-MM-DD)")
		return ""
	}
	return s
}

func timeString(verr *ValidationError, obj object, key string) string {
	s, ok := stringField(verr, obj, key, key)
	if !ok {
		return ""
	}
	if !timePattern.MatchString(s) {
		verr.add(key, "must be a valid 24-hour time (HH:MM)")
		return ""
	}
	if _, err := time.Parse(timeLayout, s); err != nil {
		verr.add(key, "must be a valid 24-hour time (HH:MM)")
		return ""
	}
	return s
}

func items(verr *ValidationError, doc object) []Item {
	res := doc["items"]
	if !res.Exists() || res.Type == gjson.Null {
		verr.add("items", "is required")
		return nil
	}
	if !res.IsArray() {
		verr.add("items", "must be an array")
		return nil
	}
	elems := res.Array()
	if len(elems) == 0 {
		verr.add("items", "must contain at least one item")
		return nil
	}

	out := make([]Item, 0, len(elems))
	for i, el := range elems {
		prefix := fmt.Sprintf("items[%d]", i)
		if !el.IsObject() {
			verr.add(prefix, "must be an object")
			continue
		}
		fields := objectFields(el)
		out = append(out, Item{
			ShortDescription: matchPath(verr, fields, "shortDescription", prefix+".shortDescription", descriptionPattern),
			Price:            matchPath(verr, fields, "price", prefix+".price", amountPattern),
		})
	}
	return out
}
