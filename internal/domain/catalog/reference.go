package catalog

import (
	"github.com/propertyportal/budgeting/internal/domain/shared"
)

// Suburb is reference data mapping a suburb to its pricing tier.
// Budgets reference suburbs weakly; the tier feeds variant resolution.
type Suburb struct {
	shared.BaseEntity
	Name     string     `json:"name"`
	Postcode string     `json:"postcode"`
	Tier     SuburbTier `json:"tier"`
}

// NewSuburb creates a new suburb reference record
func NewSuburb(name, postcode string, tier SuburbTier) (*Suburb, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUBURB_NAME", "Suburb name cannot be empty")
	}
	if !tier.IsValid() {
		return nil, shared.NewDomainError("INVALID_TIER", "Invalid suburb pricing tier")
	}
	return &Suburb{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Postcode:   postcode,
		Tier:       tier,
	}, nil
}

// Vendor is reference data for a supplier of marketing services
type Vendor struct {
	shared.BaseEntity
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// NewVendor creates a new vendor reference record
func NewVendor(name, contact string) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	return &Vendor{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Contact:    contact,
	}, nil
}
