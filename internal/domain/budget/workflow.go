package budget

import (
	"fmt"
	"strings"
)

// Rule names for approval field checks
const (
	RuleAddressRequired       = "address_required"
	RuleLineItemsRequired     = "line_items_required"
	RuleSelectedItemsRequired = "selected_items_required"
	RuleItemPricesRequired    = "item_prices_required"
	RuleScheduleRequired      = "schedule_required"
)

// RuleViolation is one failed approval check. Violations are data, not
// errors: callers decide whether a failing budget blocks anything.
type RuleViolation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError aggregates the rule violations that gate a transition
type ValidationError struct {
	Violations []RuleViolation
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return fmt.Sprintf("budget is not ready for approval: %s", strings.Join(msgs, "; "))
}

// IllegalTransitionError signals a requested edge absent from the
// workflow graph. It is a usage error, distinct from ValidationError:
// the move is not allowed at all, as opposed to allowed once fields
// are fixed.
type IllegalTransitionError struct {
	From Status
	To   Status
}

// Error implements the error interface
func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

// ValidateForApproval runs every approval field check and returns all
// failing rules in one pass, never just the first.
func ValidateForApproval(b *Budget) []RuleViolation {
	var violations []RuleViolation

	if strings.TrimSpace(b.PropertyAddress) == "" {
		violations = append(violations, RuleViolation{
			Rule:    RuleAddressRequired,
			Message: "Property address is required",
		})
	}

	if len(b.LineItems) == 0 {
		violations = append(violations, RuleViolation{
			Rule:    RuleLineItemsRequired,
			Message: "Budget must contain at least one line item",
		})
	}

	selected := 0
	unpriced := 0
	for _, item := range b.LineItems {
		if !item.IsSelected {
			continue
		}
		selected++
		if !item.EffectivePrice().IsPositive() {
			unpriced++
		}
	}
	if selected == 0 {
		violations = append(violations, RuleViolation{
			Rule:    RuleSelectedItemsRequired,
			Message: "At least one line item must be selected",
		})
	}
	if unpriced > 0 {
		message := fmt.Sprintf("%d selected items have no price", unpriced)
		if unpriced == 1 {
			message = "1 selected item has no price"
		}
		violations = append(violations, RuleViolation{
			Rule:    RuleItemPricesRequired,
			Message: message,
		})
	}

	if b.ScheduleID == nil {
		violations = append(violations, RuleViolation{
			Rule:    RuleScheduleRequired,
			Message: "A marketing schedule must be assigned",
		})
	}

	return violations
}

// ValidateTransition checks whether moving the budget along the given
// edge is allowed. Only draft to approved is gated by the approval
// checks; every other edge of the graph is valid irrespective of field
// completeness. An edge absent from the graph yields an
// IllegalTransitionError.
func ValidateTransition(b *Budget, from, to Status) error {
	if !from.CanTransitionTo(to) {
		return &IllegalTransitionError{From: from, To: to}
	}
	if from == StatusDraft && to == StatusApproved {
		if violations := ValidateForApproval(b); len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}
	}
	return nil
}
