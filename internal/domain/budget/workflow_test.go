package budget

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvableBudget() *Budget {
	b := NewDraftBudget()
	b.PropertyAddress = "12 Ocean Street, Seacliff"
	scheduleID := uuid.New()
	b.ScheduleID = &scheduleID
	b.LineItems = []LineItem{
		{ServiceID: uuid.New(), ServiceName: "Signboard", IsSelected: true, SchedulePrice: decimal.NewFromInt(150)},
		{ServiceID: uuid.New(), ServiceName: "Photography", IsSelected: false, SchedulePrice: decimal.NewFromInt(300)},
	}
	return b
}

func ruleNames(violations []RuleViolation) []string {
	names := make([]string, len(violations))
	for i, v := range violations {
		names[i] = v.Rule
	}
	return names
}

func TestValidateForApproval(t *testing.T) {
	t.Run("complete budget passes", func(t *testing.T) {
		assert.Empty(t, ValidateForApproval(approvableBudget()))
	})

	t.Run("aggregates every failing rule in one pass", func(t *testing.T) {
		b := NewDraftBudget()
		violations := ValidateForApproval(b)
		names := ruleNames(violations)
		assert.GreaterOrEqual(t, len(violations), 3)
		assert.Contains(t, names, RuleAddressRequired)
		assert.Contains(t, names, RuleLineItemsRequired)
		assert.Contains(t, names, RuleScheduleRequired)
	})

	t.Run("whitespace address fails", func(t *testing.T) {
		b := approvableBudget()
		b.PropertyAddress = "   "
		assert.Contains(t, ruleNames(ValidateForApproval(b)), RuleAddressRequired)
	})

	t.Run("no selected items fails", func(t *testing.T) {
		b := approvableBudget()
		for i := range b.LineItems {
			b.LineItems[i].IsSelected = false
		}
		assert.Contains(t, ruleNames(ValidateForApproval(b)), RuleSelectedItemsRequired)
	})

	t.Run("zero-priced selected item fails with singular message", func(t *testing.T) {
		b := approvableBudget()
		b.LineItems[0].SchedulePrice = decimal.Zero
		violations := ValidateForApproval(b)
		require.Contains(t, ruleNames(violations), RuleItemPricesRequired)
		for _, v := range violations {
			if v.Rule == RuleItemPricesRequired {
				assert.Equal(t, "1 selected item has no price", v.Message)
			}
		}
	})

	t.Run("several zero-priced selected items pluralize", func(t *testing.T) {
		b := approvableBudget()
		b.LineItems[0].SchedulePrice = decimal.Zero
		b.LineItems[1].IsSelected = true
		b.LineItems[1].SchedulePrice = decimal.Zero
		violations := ValidateForApproval(b)
		for _, v := range violations {
			if v.Rule == RuleItemPricesRequired {
				assert.Equal(t, "2 selected items have no price", v.Message)
			}
		}
	})

	t.Run("zero-price override fails, positive override passes", func(t *testing.T) {
		b := approvableBudget()
		require.NoError(t, b.LineItems[0].Override(decimal.Zero))
		assert.Contains(t, ruleNames(ValidateForApproval(b)), RuleItemPricesRequired)

		require.NoError(t, b.LineItems[0].Override(decimal.NewFromInt(5)))
		assert.NotContains(t, ruleNames(ValidateForApproval(b)), RuleItemPricesRequired)
	})
}

func TestValidateTransition(t *testing.T) {
	t.Run("draft to approved is gated by approval checks", func(t *testing.T) {
		b := NewDraftBudget()
		err := ValidateTransition(b, StatusDraft, StatusApproved)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.GreaterOrEqual(t, len(validationErr.Violations), 3)
	})

	t.Run("complete draft may be approved", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(approvableBudget(), StatusDraft, StatusApproved))
	})

	t.Run("approved to sent is valid even when every field check fails", func(t *testing.T) {
		b := NewDraftBudget()
		b.Status = StatusApproved
		assert.NoError(t, ValidateTransition(b, StatusApproved, StatusSent))
	})

	t.Run("approved may revert to draft unconditionally", func(t *testing.T) {
		b := NewDraftBudget()
		b.Status = StatusApproved
		assert.NoError(t, ValidateTransition(b, StatusApproved, StatusDraft))
	})

	t.Run("sent to archived is unconditional", func(t *testing.T) {
		b := NewDraftBudget()
		b.Status = StatusSent
		assert.NoError(t, ValidateTransition(b, StatusSent, StatusArchived))
	})

	t.Run("draft to archived is illegal regardless of completeness", func(t *testing.T) {
		err := ValidateTransition(approvableBudget(), StatusDraft, StatusArchived)
		var illegalErr *IllegalTransitionError
		require.ErrorAs(t, err, &illegalErr)
		assert.Equal(t, StatusDraft, illegalErr.From)
		assert.Equal(t, StatusArchived, illegalErr.To)
	})

	t.Run("illegal transition is not a validation failure", func(t *testing.T) {
		err := ValidateTransition(NewDraftBudget(), StatusArchived, StatusDraft)
		var validationErr *ValidationError
		assert.False(t, errors.As(err, &validationErr))
		var illegalErr *IllegalTransitionError
		assert.True(t, errors.As(err, &illegalErr))
	})
}

func TestStatusGraph(t *testing.T) {
	legal := map[Status][]Status{
		StatusDraft:    {StatusApproved},
		StatusApproved: {StatusSent, StatusDraft},
		StatusSent:     {StatusArchived},
		StatusArchived: {},
	}
	all := []Status{StatusDraft, StatusApproved, StatusSent, StatusArchived}

	for from, targets := range legal {
		allowed := map[Status]bool{}
		for _, to := range targets {
			allowed[to] = true
		}
		for _, to := range all {
			assert.Equal(t, allowed[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestSetStatus(t *testing.T) {
	t.Run("stamps lifecycle timestamps along the happy path", func(t *testing.T) {
		b := approvableBudget()
		require.NoError(t, b.SetStatus(StatusApproved))
		require.NotNil(t, b.ApprovedAt)

		require.NoError(t, b.SetStatus(StatusSent))
		require.NotNil(t, b.SentAt)

		require.NoError(t, b.SetStatus(StatusArchived))
		require.NotNil(t, b.ArchivedAt)
		assert.Equal(t, StatusArchived, b.Status)
	})

	t.Run("revert to draft clears the approval stamp", func(t *testing.T) {
		b := approvableBudget()
		require.NoError(t, b.SetStatus(StatusApproved))
		require.NoError(t, b.SetStatus(StatusDraft))
		assert.Nil(t, b.ApprovedAt)
		assert.Equal(t, StatusDraft, b.Status)
	})

	t.Run("refuses edges absent from the graph", func(t *testing.T) {
		b := approvableBudget()
		err := b.SetStatus(StatusArchived)
		var illegalErr *IllegalTransitionError
		require.ErrorAs(t, err, &illegalErr)
		assert.Equal(t, StatusDraft, b.Status)
	})
}
