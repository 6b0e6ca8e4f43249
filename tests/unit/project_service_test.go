package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	projectservice "renopick/contexts/consumer-projects/project-service"
	domainerrors "renopick/contexts/consumer-projects/project-service/domain/errors"
	httptransport "renopick/contexts/consumer-projects/project-service/transport/http"
)

func validProjectRequest() httptransport.CreateProjectRequest {
	return httptransport.CreateProjectRequest{
		Title:      "신혼집 전체 리모델링",
		SpaceTypes: []string{"거실", "주방"},
		AreaValue:  24,
		AreaUnit:   "평",
		Budget:     30_000_000,
		Photos: []string{
			"https://cdn.renopick.example/p1.jpg",
			"https://cdn.renopick.example/p2.jpg",
			"https://cdn.renopick.example/p3.jpg",
		},
	}
}

func TestProjectCreateSetsSLADeadline(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil, nil)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	module.Store.SetNow(func() time.Time { return base })

	resp, err := module.Handler.CreateProjectHandler(context.Background(), "user-1", validProjectRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.Status != "pending" {
		t.Fatalf("status = %s, want pending", resp.Status)
	}
	if resp.SLADeadline != base.Add(24*time.Hour).Format(time.RFC3339) {
		t.Fatalf("sla deadline = %s, want creation + 24h", resp.SLADeadline)
	}
}

func TestProjectCreateValidationItemized(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil, nil)

	req := httptransport.CreateProjectRequest{
		Title:     "",
		AreaValue: 0,
		AreaUnit:  "acre",
		Budget:    0,
	}
	_, err := module.Handler.CreateProjectHandler(context.Background(), "user-1", req)
	if !errors.Is(err, domainerrors.ErrInvalidProjectInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var validation *domainerrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validation.Violations) < 5 {
		t.Fatalf("violations = %v, want itemized messages for every bad field", validation.Violations)
	}
}

func TestProjectStatusTransitions(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil, nil)

	resp, err := module.Handler.CreateProjectHandler(context.Background(), "user-1", validProjectRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := module.Handler.UpdateStatusHandler(context.Background(), resp.ID, httptransport.UpdateStatusRequest{Status: "quoted"}); err != nil {
		t.Fatalf("pending to quoted failed: %v", err)
	}

	err = module.Handler.UpdateStatusHandler(context.Background(), resp.ID, httptransport.UpdateStatusRequest{Status: "completed"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("quoted to completed must be rejected, got %v", err)
	}

	if err := module.Handler.UpdateStatusHandler(context.Background(), resp.ID, httptransport.UpdateStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("cancel from non-terminal failed: %v", err)
	}
}

func TestProjectSLAStatusBeforeAndAfterDeadline(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil, nil)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	module.Store.SetNow(func() time.Time { return base })

	resp, err := module.Handler.CreateProjectHandler(context.Background(), "user-1", validProjectRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	module.Store.SetQuoteCount(resp.ID, 1)
	module.Store.SetNow(func() time.Time { return base.Add(23*time.Hour + 59*time.Minute) })
	status, err := module.Handler.SLAStatusHandler(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("sla status failed: %v", err)
	}
	if status.Met {
		t.Fatalf("1 quote must not meet the guarantee")
	}
	if status.RemainingSeconds != 60 {
		t.Fatalf("remaining = %ds, want 60", status.RemainingSeconds)
	}

	module.Store.SetQuoteCount(resp.ID, 2)
	module.Store.SetNow(func() time.Time { return base.Add(25 * time.Hour) })
	status, err = module.Handler.SLAStatusHandler(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("sla status failed: %v", err)
	}
	if !status.Met {
		t.Fatalf("2 quotes must meet the guarantee")
	}
	if status.RemainingSeconds != 0 {
		t.Fatalf("remaining = %ds, want clamped 0", status.RemainingSeconds)
	}
}

func TestProjectGetNotFound(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.GetProjectHandler(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected project not found, got %v", err)
	}
}
