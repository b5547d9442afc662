package catalog

import "github.com/google/uuid"

// ResolveVariant picks the applicable variant of the service for the
// given context and/or explicit choice. It is total for well-formed
// services: given a non-empty variant list it always returns a member
// of the list. Precedence:
//
//  1. an explicit variant ID that matches a real variant wins,
//     regardless of the service's selector
//  2. selector propertySize with a size in context: first variant
//     whose sizeMatch equals the context size
//  3. selector suburbTier with a tier in context: first variant
//     whose tierMatch equals the context tier
//  4. otherwise the first variant in list order
func (s *Service) ResolveVariant(ctx VariantContext, explicitVariantID *uuid.UUID) ServiceVariant {
	if explicitVariantID != nil {
		if v := s.FindVariant(*explicitVariantID); v != nil {
			return *v
		}
	}

	switch s.Selector {
	case VariantSelectorPropertySize:
		if ctx.PropertySize != nil {
			for _, v := range s.Variants {
				if v.SizeMatch != nil && *v.SizeMatch == *ctx.PropertySize {
					return v
				}
			}
		}
	case VariantSelectorSuburbTier:
		if ctx.SuburbTier != nil {
			for _, v := range s.Variants {
				if v.TierMatch != nil && *v.TierMatch == *ctx.SuburbTier {
					return v
				}
			}
		}
	}

	return s.Variants[0]
}

// HasSelectableVariants reports whether the agent picks the variant by
// hand: only manual-selector services with more than one variant offer
// a choice.
func (s *Service) HasSelectableVariants() bool {
	return s.Selector == VariantSelectorManual && len(s.Variants) > 1
}

// HasAutoVariants reports whether the applicable variant follows from
// the property context rather than a manual choice.
func (s *Service) HasAutoVariants() bool {
	return s.Selector == VariantSelectorPropertySize || s.Selector == VariantSelectorSuburbTier
}
