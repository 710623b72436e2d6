package model

import "fmt"

// Category is an IFRS 18 statement category. CategorySubtotal marks a
// source row that is already a subtotal in the input and must never be
// re-aggregated.
type Category string

const (
	CategoryOperating    Category = "operating"
	CategoryInvesting    Category = "investing"
	CategoryFinancing    Category = "financing"
	CategoryIncomeTax    Category = "income_tax"
	CategoryDiscontinued Category = "discontinued_operations"
	CategoryUnclassified Category = "unclassified"
	CategorySubtotal     Category = "subtotal"
)

// Categories lists all categories a canonical line may resolve to, in the
// default presentation order.
var Categories = []Category{
	CategoryOperating,
	CategoryInvesting,
	CategoryFinancing,
	CategoryIncomeTax,
	CategoryDiscontinued,
	CategoryUnclassified,
}

// ParseCategory converts a string from configuration into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryOperating, CategoryInvesting, CategoryFinancing,
		CategoryIncomeTax, CategoryDiscontinued, CategoryUnclassified:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Label returns the display heading for a category.
func (c Category) Label() string {
	switch c {
	case CategoryOperating:
		return "Operating"
	case CategoryInvesting:
		return "Investing"
	case CategoryFinancing:
		return "Financing"
	case CategoryIncomeTax:
		return "Income Tax"
	case CategoryDiscontinued:
		return "Discontinued Operations"
	case CategoryUnclassified:
		return "Unclassified"
	case CategorySubtotal:
		return "Subtotal"
	default:
		return string(c)
	}
}

// EntityProfile classifies the reporting entity's dominant business
// activity. It selects which override column of the vocabulary applies.
type EntityProfile string

const (
	// ProfileFinancing marks an entity that provides financing to customers.
	ProfileFinancing EntityProfile = "financing"
	// ProfileInvesting marks an entity that invests in financial assets.
	ProfileInvesting EntityProfile = "investing"
	// ProfileOther covers any other business model.
	ProfileOther EntityProfile = "other"
)

// ParseProfile converts a string from flags or configuration into an
// EntityProfile.
func ParseProfile(s string) (EntityProfile, error) {
	p := EntityProfile(s)
	switch p {
	case ProfileFinancing, ProfileInvesting, ProfileOther:
		return p, nil
	}
	return "", fmt.Errorf("unknown entity profile %q (want financing, investing or other)", s)
}

// PolicyChoice records an accounting-policy election for one
// policy-dependent canonical line. Resolved once per session.
type PolicyChoice struct {
	Line     string   `json:"line" yaml:"line"`
	Category Category `json:"category" yaml:"category"`
}
