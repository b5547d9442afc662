package budgeting

import (
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
	"github.com/propertyportal/budgeting/internal/domain/shared"
)

// Identity adapters for every stored entity kind, shared by whichever
// store backend is wired in.
var (
	BudgetIdentity   = shared.EntityIdentity(func(b *budget.Budget) *shared.BaseEntity { return &b.BaseEntity })
	ServiceIdentity  = shared.EntityIdentity(func(s *catalog.Service) *shared.BaseEntity { return &s.BaseEntity })
	ScheduleIdentity = shared.EntityIdentity(func(s *schedule.Schedule) *shared.BaseEntity { return &s.BaseEntity })
	SuburbIdentity   = shared.EntityIdentity(func(s *catalog.Suburb) *shared.BaseEntity { return &s.BaseEntity })
	VendorIdentity   = shared.EntityIdentity(func(v *catalog.Vendor) *shared.BaseEntity { return &v.BaseEntity })
)
