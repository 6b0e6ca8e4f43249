package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	distributionservice "renopick/contexts/quote-exchange/distribution-service"
	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/distribution-service/domain/errors"
	httptransport "renopick/contexts/quote-exchange/distribution-service/transport/http"
)

func seededDistributionModule() distributionservice.Module {
	vendors := []entities.VendorProfile{
		{VendorID: "vendor-1", Verified: true, Specialties: []string{"도배"}, MinTicket: 1_000_000, Regions: []string{"seoul"}},
		{VendorID: "vendor-2", Verified: true, Specialties: []string{"타일"}, MinTicket: 2_000_000, Regions: []string{"seoul"}},
		{VendorID: "vendor-3", Verified: true, Specialties: []string{"철거"}, MinTicket: 500_000, Regions: []string{"busan"}},
		{VendorID: "vendor-4", Verified: true, Specialties: []string{"도배", "타일"}, MinTicket: 0, Regions: []string{"seoul", "busan"}},
		{VendorID: "vendor-5", Verified: true, Specialties: []string{"설비"}, MinTicket: 3_000_000, Regions: []string{"seoul"}},
		{VendorID: "vendor-6", Verified: true, Specialties: []string{"도장"}, MinTicket: 100_000, Regions: []string{"seoul"}},
		{VendorID: "vendor-7", Verified: false, Specialties: []string{"도배"}, MinTicket: 0, Regions: []string{"seoul"}},
	}
	projects := []entities.ProjectRef{
		{ID: "project-1", Budget: 10_000_000},
	}
	return distributionservice.NewInMemoryModule(vendors, projects, nil)
}

func TestDistributionCooldownConflictThenSuccess(t *testing.T) {
	module := seededDistributionModule()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	module.Store.SetNow(func() time.Time { return base })

	first, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{})
	if err != nil {
		t.Fatalf("first distribution failed: %v", err)
	}
	if first.CooldownUntil != base.Add(30*time.Minute).Format(time.RFC3339) {
		t.Fatalf("cooldown deadline = %s, want distributed_at + 30m", first.CooldownUntil)
	}

	module.Store.SetNow(func() time.Time { return base.Add(10 * time.Minute) })
	_, err = module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{})
	if !errors.Is(err, domainerrors.ErrCooldownActive) {
		t.Fatalf("expected cooldown conflict, got %v", err)
	}
	var cooldown *domainerrors.CooldownActiveError
	if !errors.As(err, &cooldown) {
		t.Fatalf("expected CooldownActiveError, got %T", err)
	}
	if !cooldown.CooldownUntil.Equal(base.Add(30 * time.Minute)) {
		t.Fatalf("retry-after deadline = %v", cooldown.CooldownUntil)
	}

	module.Store.SetNow(func() time.Time { return base.Add(31 * time.Minute) })
	second, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{})
	if err != nil {
		t.Fatalf("distribution after cooldown failed: %v", err)
	}
	if second.RoundID == first.RoundID {
		t.Fatalf("second round must be a new round")
	}
}

func TestDistributionDefaultsToFiveVendors(t *testing.T) {
	module := seededDistributionModule()

	resp, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{})
	if err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	if len(resp.DistributedVendorIDs) != 5 {
		t.Fatalf("distributed %d vendors, want default cap of 5", len(resp.DistributedVendorIDs))
	}
	for _, vendorID := range resp.DistributedVendorIDs {
		if vendorID == "vendor-7" {
			t.Fatalf("unverified vendor distributed")
		}
	}
}

func TestDistributionHonorsMaxVendors(t *testing.T) {
	module := seededDistributionModule()

	resp, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{
		MaxVendors: 2,
	})
	if err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	if len(resp.DistributedVendorIDs) != 2 {
		t.Fatalf("distributed %d vendors, want 2", len(resp.DistributedVendorIDs))
	}
}

func TestDistributionRejectsMaxVendorsOutOfRange(t *testing.T) {
	module := seededDistributionModule()

	_, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{
		MaxVendors: 6,
	})
	if !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid distribution input, got %v", err)
	}
}

func TestDistributionNoEligibleVendors(t *testing.T) {
	vendors := []entities.VendorProfile{
		{VendorID: "vendor-1", Verified: false},
	}
	projects := []entities.ProjectRef{{ID: "project-1", Budget: 10_000_000}}
	module := distributionservice.NewInMemoryModule(vendors, projects, nil)

	_, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{})
	if !errors.Is(err, domainerrors.ErrNoEligibleVendors) {
		t.Fatalf("expected no eligible vendors, got %v", err)
	}
}

func TestDistributionProjectNotFound(t *testing.T) {
	module := seededDistributionModule()

	_, err := module.Handler.DistributeHandler(context.Background(), "user-1", "missing", httptransport.DistributeRequest{})
	if !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected project not found, got %v", err)
	}
}

func TestDistributionFiltersNarrowSelection(t *testing.T) {
	module := seededDistributionModule()

	resp, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{
		Filters: &httptransport.SelectionFiltersDTO{
			Specialties: []string{"타일"},
			Regions:     []string{"seoul"},
		},
	})
	if err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	if len(resp.DistributedVendorIDs) != 2 {
		t.Fatalf("distributed %v, want vendor-2 and vendor-4", resp.DistributedVendorIDs)
	}
}

func TestDistributionCooldownStatusAndAssignments(t *testing.T) {
	module := seededDistributionModule()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	module.Store.SetNow(func() time.Time { return base })

	resp, err := module.Handler.DistributeHandler(context.Background(), "user-1", "project-1", httptransport.DistributeRequest{})
	if err != nil {
		t.Fatalf("distribution failed: %v", err)
	}

	status, err := module.Handler.CooldownStatusHandler(context.Background(), "project-1")
	if err != nil {
		t.Fatalf("cooldown status failed: %v", err)
	}
	if !status.Throttled {
		t.Fatalf("project must be throttled right after a round")
	}

	assignments, err := module.Handler.ListAssignmentsHandler(context.Background(), "project-1")
	if err != nil {
		t.Fatalf("list assignments failed: %v", err)
	}
	if len(assignments.Assignments) != len(resp.DistributedVendorIDs) {
		t.Fatalf("assignments = %d, want one per distributed vendor", len(assignments.Assignments))
	}
	for _, assignment := range assignments.Assignments {
		if assignment.RoundID != resp.RoundID {
			t.Fatalf("assignment belongs to round %s, want %s", assignment.RoundID, resp.RoundID)
		}
	}

	module.Store.SetNow(func() time.Time { return base.Add(31 * time.Minute) })
	status, err = module.Handler.CooldownStatusHandler(context.Background(), "project-1")
	if err != nil {
		t.Fatalf("cooldown status failed: %v", err)
	}
	if status.Throttled {
		t.Fatalf("cooldown must clear after the window")
	}
}
