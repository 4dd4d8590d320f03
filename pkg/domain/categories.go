package domain

import "strings"

// businessTypeCategories maps a normalized business type to the booking
// categories a vendor of that type may operate in. It is the only place
// this mapping lives.
var businessTypeCategories = map[string][]Category{
	"stays":         {CategoryStays, CategoryTours, CategoryWellness},
	"accommodation": {CategoryStays, CategoryTours, CategoryWellness},
	"transport":     {CategoryTransport, CategoryTours},
	"tours":         {CategoryTours, CategoryTickets, CategoryTransport},
	"activities":    {CategoryTours, CategoryTickets, CategoryTransport},
	"wellness":      {CategoryWellness, CategoryTours},
	"products":      {CategoryProducts, CategoryTickets},
	"retail":        {CategoryProducts, CategoryTickets},
}

var defaultCategories = []Category{CategoryStays, CategoryTransport, CategoryTours}

// DeriveCategories returns the categories implied by businessType.
// Unknown or empty types fall back to stays, transport, tours.
// The returned slice is a fresh copy.
func DeriveCategories(businessType string) []Category {
	cats, ok := businessTypeCategories[strings.ToLower(strings.TrimSpace(businessType))]
	if !ok {
		cats = defaultCategories
	}
	out := make([]Category, len(cats))
	copy(out, cats)
	return out
}

// NormalizeCategory trims and lower-cases a category tag.
func NormalizeCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

// NormalizeCategories cleans an explicit category list, dropping blanks
// and duplicates while keeping first-seen order.
func NormalizeCategories(raw []string) []Category {
	seen := make(map[Category]struct{}, len(raw))
	out := make([]Category, 0, len(raw))
	for _, r := range raw {
		c := NormalizeCategory(r)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// CategoryStrings converts categories to plain strings, e.g. for error details.
func CategoryStrings(cats []Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

// StatusStrings lists the closed booking status vocabulary as strings.
func StatusStrings() []string {
	out := make([]string, len(BookingStatuses))
	for i, s := range BookingStatuses {
		out[i] = string(s)
	}
	return out
}
