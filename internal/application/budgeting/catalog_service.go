package budgeting

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogService manages the reference data the pricing engine resolves
// against: services with their variants, schedules, suburbs and vendors.
type CatalogService struct {
	stores Stores
	log    *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(stores Stores, log *zap.Logger) *CatalogService {
	return &CatalogService{stores: stores, log: log.Named("catalog_service")}
}

// ListServices returns all marketing services
func (s *CatalogService) ListServices(ctx context.Context) ([]catalog.Service, error) {
	return s.stores.Services.List(ctx)
}

// GetService returns one service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	return s.stores.Services.Get(ctx, id)
}

// SaveService validates and upserts a service definition
func (s *CatalogService) SaveService(ctx context.Context, svc *catalog.Service) (*catalog.Service, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	svc.Touch()
	return s.stores.Services.Save(ctx, svc)
}

// DeleteService removes a service. Budgets referencing it keep their
// denormalised names and prices; the reference simply goes stale.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.stores.Services.Delete(ctx, id)
}

// ListSchedules returns all schedule templates
func (s *CatalogService) ListSchedules(ctx context.Context) ([]schedule.Schedule, error) {
	return s.stores.Schedules.List(ctx)
}

// GetSchedule returns one schedule by ID
func (s *CatalogService) GetSchedule(ctx context.Context, id uuid.UUID) (*schedule.Schedule, error) {
	return s.stores.Schedules.Get(ctx, id)
}

// SaveSchedule upserts a schedule template
func (s *CatalogService) SaveSchedule(ctx context.Context, sch *schedule.Schedule) (*schedule.Schedule, error) {
	if sch.Name == "" {
		return nil, shared.NewDomainError("INVALID_SCHEDULE_NAME", "Schedule name cannot be empty")
	}
	sch.Touch()
	return s.stores.Schedules.Save(ctx, sch)
}

// DeleteSchedule removes a schedule template
func (s *CatalogService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	return s.stores.Schedules.Delete(ctx, id)
}

// ListSuburbs returns all suburb reference records
func (s *CatalogService) ListSuburbs(ctx context.Context) ([]catalog.Suburb, error) {
	return s.stores.Suburbs.List(ctx)
}

// SaveSuburb upserts a suburb reference record
func (s *CatalogService) SaveSuburb(ctx context.Context, suburb *catalog.Suburb) (*catalog.Suburb, error) {
	if suburb.Name == "" {
		return nil, shared.NewDomainError("INVALID_SUBURB_NAME", "Suburb name cannot be empty")
	}
	if !suburb.Tier.IsValid() {
		return nil, shared.NewDomainError("INVALID_TIER", "Invalid suburb pricing tier")
	}
	suburb.Touch()
	return s.stores.Suburbs.Save(ctx, suburb)
}

// DeleteSuburb removes a suburb reference record
func (s *CatalogService) DeleteSuburb(ctx context.Context, id uuid.UUID) error {
	return s.stores.Suburbs.Delete(ctx, id)
}

// ListVendors returns all vendor reference records
func (s *CatalogService) ListVendors(ctx context.Context) ([]catalog.Vendor, error) {
	return s.stores.Vendors.List(ctx)
}

// SaveVendor upserts a vendor reference record
func (s *CatalogService) SaveVendor(ctx context.Context, vendor *catalog.Vendor) (*catalog.Vendor, error) {
	if vendor.Name == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	vendor.Touch()
	return s.stores.Vendors.Save(ctx, vendor)
}

// DeleteVendor removes a vendor reference record
func (s *CatalogService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return s.stores.Vendors.Delete(ctx, id)
}

// Snapshot is the portable shape of the whole dataset, used by seed,
// export and import.
type Snapshot struct {
	Services  []catalog.Service   `json:"services"`
	Schedules []schedule.Schedule `json:"schedules"`
	Suburbs   []catalog.Suburb    `json:"suburbs"`
	Vendors   []catalog.Vendor    `json:"vendors"`
	Budgets   []budget.Budget     `json:"budgets"`
}

// Seed loads reference data in bulk. Each store logs a single audit
// entry for the whole batch.
func (s *CatalogService) Seed(ctx context.Context, snap Snapshot) error {
	if err := s.stores.Services.SeedData(ctx, snap.Services); err != nil {
		return err
	}
	if err := s.stores.Schedules.SeedData(ctx, snap.Schedules); err != nil {
		return err
	}
	if err := s.stores.Suburbs.SeedData(ctx, snap.Suburbs); err != nil {
		return err
	}
	if err := s.stores.Vendors.SeedData(ctx, snap.Vendors); err != nil {
		return err
	}
	if err := s.stores.Budgets.SeedData(ctx, snap.Budgets); err != nil {
		return err
	}
	s.log.Info("seed data loaded",
		zap.Int("services", len(snap.Services)),
		zap.Int("schedules", len(snap.Schedules)),
		zap.Int("suburbs", len(snap.Suburbs)),
		zap.Int("vendors", len(snap.Vendors)),
		zap.Int("budgets", len(snap.Budgets)),
	)
	return nil
}

// Export captures the whole dataset as a snapshot
func (s *CatalogService) Export(ctx context.Context) (*Snapshot, error) {
	services, err := s.stores.Services.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	schedules, err := s.stores.Schedules.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	suburbs, err := s.stores.Suburbs.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	vendors, err := s.stores.Vendors.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.stores.Budgets.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Services:  services,
		Schedules: schedules,
		Suburbs:   suburbs,
		Vendors:   vendors,
		Budgets:   budgets,
	}, nil
}

// Import replaces the whole dataset with the snapshot's contents
func (s *CatalogService) Import(ctx context.Context, snap Snapshot) error {
	if err := s.stores.Services.ImportAll(ctx, snap.Services); err != nil {
		return err
	}
	if err := s.stores.Schedules.ImportAll(ctx, snap.Schedules); err != nil {
		return err
	}
	if err := s.stores.Suburbs.ImportAll(ctx, snap.Suburbs); err != nil {
		return err
	}
	if err := s.stores.Vendors.ImportAll(ctx, snap.Vendors); err != nil {
		return err
	}
	if err := s.stores.Budgets.ImportAll(ctx, snap.Budgets); err != nil {
		return err
	}
	s.log.Info("dataset imported",
		zap.Int("services", len(snap.Services)),
		zap.Int("budgets", len(snap.Budgets)),
	)
	return nil
}

// Reset clears every store. Audit history is left to AuditService.Clear.
func (s *CatalogService) Reset(ctx context.Context) error {
	if err := s.stores.Budgets.ClearAllData(ctx); err != nil {
		return err
	}
	if err := s.stores.Services.ClearAllData(ctx); err != nil {
		return err
	}
	if err := s.stores.Schedules.ClearAllData(ctx); err != nil {
		return err
	}
	if err := s.stores.Suburbs.ClearAllData(ctx); err != nil {
		return err
	}
	if err := s.stores.Vendors.ClearAllData(ctx); err != nil {
		return err
	}
	s.log.Warn("all data cleared")
	return nil
}
