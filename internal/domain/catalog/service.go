package catalog

import (
	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PropertySize classifies a property for size-matched variant selection
type PropertySize string

const (
	PropertySizeSmall  PropertySize = "small"
	PropertySizeMedium PropertySize = "medium"
	PropertySizeLarge  PropertySize = "large"
)

// IsValid checks if the value is a valid PropertySize
func (s PropertySize) IsValid() bool {
	switch s {
	case PropertySizeSmall, PropertySizeMedium, PropertySizeLarge:
		return true
	}
	return false
}

// String returns the string representation of PropertySize
func (s PropertySize) String() string {
	return string(s)
}

// SuburbTier is the administrative A-D pricing classification of a suburb
type SuburbTier string

const (
	SuburbTierA SuburbTier = "A"
	SuburbTierB SuburbTier = "B"
	SuburbTierC SuburbTier = "C"
	SuburbTierD SuburbTier = "D"
)

// IsValid checks if the value is a valid SuburbTier
func (t SuburbTier) IsValid() bool {
	switch t {
	case SuburbTierA, SuburbTierB, SuburbTierC, SuburbTierD:
		return true
	}
	return false
}

// String returns the string representation of SuburbTier
func (t SuburbTier) String() string {
	return string(t)
}

// VariantSelector is the rule determining which variant of a service
// applies for a given property context. The selector set is closed:
// resolution is a tagged dispatch, not open polymorphism.
type VariantSelector string

const (
	VariantSelectorNone         VariantSelector = "none"
	VariantSelectorManual       VariantSelector = "manual"
	VariantSelectorPropertySize VariantSelector = "propertySize"
	VariantSelectorSuburbTier   VariantSelector = "suburbTier"
)

// IsValid checks if the value is a valid VariantSelector
func (s VariantSelector) IsValid() bool {
	switch s {
	case VariantSelectorNone, VariantSelectorManual, VariantSelectorPropertySize, VariantSelectorSuburbTier:
		return true
	}
	return false
}

// String returns the string representation of VariantSelector
func (s VariantSelector) String() string {
	return string(s)
}

// ServiceVariant is one priced option of a catalogue service
type ServiceVariant struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	SizeMatch *PropertySize   `json:"sizeMatch,omitempty"`
	TierMatch *SuburbTier     `json:"tierMatch,omitempty"`
}

// NewServiceVariant creates a new service variant
func NewServiceVariant(name string, basePrice decimal.Decimal) (ServiceVariant, error) {
	if name == "" {
		return ServiceVariant{}, shared.NewDomainError("INVALID_VARIANT_NAME", "Variant name cannot be empty")
	}
	if basePrice.IsNegative() {
		return ServiceVariant{}, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	return ServiceVariant{
		ID:        uuid.New(),
		Name:      name,
		BasePrice: basePrice,
	}, nil
}

// WithSizeMatch returns a copy of the variant tagged for a property size
func (v ServiceVariant) WithSizeMatch(size PropertySize) ServiceVariant {
	v.SizeMatch = &size
	return v
}

// WithTierMatch returns a copy of the variant tagged for a suburb tier
func (v ServiceVariant) WithTierMatch(tier SuburbTier) ServiceVariant {
	v.TierMatch = &tier
	return v
}

// Service is a priced marketing service in the catalogue. Budget line
// items reference services weakly by ID; a service may disappear from
// the catalogue while items referencing it survive.
type Service struct {
	shared.BaseEntity
	Name     string           `json:"name"`
	Category string           `json:"category"`
	VendorID *uuid.UUID       `json:"vendorId,omitempty"`
	Selector VariantSelector  `json:"variantSelector"`
	Variants []ServiceVariant `json:"variants"`
}

// NewService creates a new catalogue service with a non-empty ordered variant list
func NewService(name, category string, selector VariantSelector, variants []ServiceVariant) (*Service, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if !selector.IsValid() {
		return nil, shared.NewDomainError("INVALID_SELECTOR", "Invalid variant selector")
	}
	if len(variants) == 0 {
		return nil, shared.NewDomainError("EMPTY_VARIANTS", "Service must have at least one variant")
	}
	for _, v := range variants {
		if v.BasePrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Variant base price cannot be negative")
		}
	}

	return &Service{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   category,
		Selector:   selector,
		Variants:   variants,
	}, nil
}

// Validate re-checks the service invariants. Used on upserts arriving
// from outside rather than through NewService.
func (s *Service) Validate() error {
	if s.Name == "" {
		return shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if !s.Selector.IsValid() {
		return shared.NewDomainError("INVALID_SELECTOR", "Invalid variant selector")
	}
	if len(s.Variants) == 0 {
		return shared.NewDomainError("EMPTY_VARIANTS", "Service must have at least one variant")
	}
	for i := range s.Variants {
		if s.Variants[i].BasePrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Variant base price cannot be negative")
		}
		if s.Variants[i].ID == uuid.Nil {
			s.Variants[i].ID = uuid.New()
		}
	}
	return nil
}

// SetVendor assigns the vendor reference
func (s *Service) SetVendor(vendorID uuid.UUID) {
	s.VendorID = &vendorID
	s.Touch()
}

// FindVariant returns the variant with the given ID, or nil
func (s *Service) FindVariant(id uuid.UUID) *ServiceVariant {
	for i := range s.Variants {
		if s.Variants[i].ID == id {
			return &s.Variants[i]
		}
	}
	return nil
}

// VariantContext is the ephemeral property context variants are resolved
// against. It has no identity and is recomputed whenever a property field
// changes.
type VariantContext struct {
	PropertySize *PropertySize
	SuburbTier   *SuburbTier
}

// Catalogue is a lookup over the current service catalogue
type Catalogue map[uuid.UUID]*Service

// NewCatalogue builds a catalogue lookup from a service list
func NewCatalogue(services []Service) Catalogue {
	c := make(Catalogue, len(services))
	for i := range services {
		c[services[i].ID] = &services[i]
	}
	return c
}

// Find returns the service with the given ID, or nil when it is no
// longer in the catalogue.
func (c Catalogue) Find(id uuid.UUID) *Service {
	return c[id]
}
