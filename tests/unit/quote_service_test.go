package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	quoteservice "renopick/contexts/quote-exchange/quote-service"
	domainerrors "renopick/contexts/quote-exchange/quote-service/domain/errors"
	httptransport "renopick/contexts/quote-exchange/quote-service/transport/http"
)

func validQuoteRequest() httptransport.SubmitQuoteRequest {
	return httptransport.SubmitQuoteRequest{
		ProjectID: "project-1",
		LineItems: []httptransport.LineItemDTO{
			{Category: "도배", UnitPrice: 10_000, Quantity: 20},
			{Category: "타일", UnitPrice: 35_000, Quantity: 10},
		},
		TotalAmount: 550_000,
	}
}

func TestQuoteSubmitHappyPath(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)

	resp, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", validQuoteRequest())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resp.Status != "pending" {
		t.Fatalf("status = %s, want pending", resp.Status)
	}

	quote, err := module.Handler.GetQuoteHandler(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("get quote failed: %v", err)
	}
	if quote.VendorID != "vendor-1" {
		t.Fatalf("vendor id = %s, want the submitting vendor", quote.VendorID)
	}
	if len(quote.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(quote.LineItems))
	}
}

func TestQuoteSubmitSchemaViolations(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)

	req := httptransport.SubmitQuoteRequest{
		ProjectID: "project-1",
		LineItems: []httptransport.LineItemDTO{
			{Category: "", UnitPrice: -5, Quantity: 0},
		},
		TotalAmount: 0,
	}
	_, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", req)
	if !errors.Is(err, domainerrors.ErrInvalidQuoteInput) {
		t.Fatalf("expected schema error, got %v", err)
	}
	var schema *domainerrors.SchemaError
	if !errors.As(err, &schema) {
		t.Fatalf("expected SchemaError, got %T", err)
	}
	// category, unit_price, quantity, total_amount
	if len(schema.Violations) != 4 {
		t.Fatalf("violations = %v, want 4 itemized messages", schema.Violations)
	}
}

func TestQuoteSubmitTotalTolerance(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)

	// Computed total is 550_000; a gap of exactly 100 passes.
	within := validQuoteRequest()
	within.TotalAmount = 550_100
	if _, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", within); err != nil {
		t.Fatalf("gap of 100 must be accepted: %v", err)
	}

	// A gap of 101 fails with the mismatch error carrying both totals.
	beyond := validQuoteRequest()
	beyond.TotalAmount = 550_101
	_, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", beyond)
	if !errors.Is(err, domainerrors.ErrTotalMismatch) {
		t.Fatalf("expected total mismatch, got %v", err)
	}
	var mismatch *domainerrors.TotalMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TotalMismatchError, got %T", err)
	}
	if mismatch.ComputedTotal != 550_000 || mismatch.DeclaredTotal != 550_101 {
		t.Fatalf("mismatch totals = %d/%d", mismatch.ComputedTotal, mismatch.DeclaredTotal)
	}
}

func TestQuoteSubmitUnknownProject(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)

	req := validQuoteRequest()
	req.ProjectID = "missing"
	_, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", req)
	if !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected project not found, got %v", err)
	}
}

func TestQuoteSubmitSurvivesTemplateSaveFailure(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)
	module.Store.FailTemplateSaves(true)

	resp, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", validQuoteRequest())
	if err != nil {
		t.Fatalf("template save failure must not fail the submit: %v", err)
	}
	if _, err := module.Handler.GetQuoteHandler(context.Background(), resp.ID); err != nil {
		t.Fatalf("quote must be persisted despite snapshot failure: %v", err)
	}
}

func TestQuoteStatusTransitions(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)

	resp, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", validQuoteRequest())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := module.Handler.UpdateStatusHandler(context.Background(), resp.ID, httptransport.UpdateStatusRequest{Status: "accepted"}); err != nil {
		t.Fatalf("pending to accepted failed: %v", err)
	}

	err = module.Handler.UpdateStatusHandler(context.Background(), resp.ID, httptransport.UpdateStatusRequest{Status: "rejected"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("accepted is terminal, got %v", err)
	}
}

func TestQuoteAutocompleteReturnsNewestThree(t *testing.T) {
	module := quoteservice.NewInMemoryModule([]string{"project-1"}, nil)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		submittedAt := base.Add(time.Duration(i) * time.Hour)
		module.Store.SetNow(func() time.Time { return submittedAt })
		if _, err := module.Handler.SubmitQuoteHandler(context.Background(), "vendor-1", validQuoteRequest()); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	resp, err := module.Handler.AutocompleteHandler(context.Background(), "vendor-1", "")
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(resp.Templates) != 3 {
		t.Fatalf("templates = %d, want newest 3", len(resp.Templates))
	}
	newest := base.Add(3 * time.Hour).Format(time.RFC3339)
	if resp.Templates[0].LastUsedAt != newest {
		t.Fatalf("first template last_used_at = %s, want %s", resp.Templates[0].LastUsedAt, newest)
	}

	filtered, err := module.Handler.AutocompleteHandler(context.Background(), "vendor-1", "없는카테고리")
	if err != nil {
		t.Fatalf("filtered autocomplete failed: %v", err)
	}
	if len(filtered.Templates) != 0 {
		t.Fatalf("unknown category must match nothing, got %d", len(filtered.Templates))
	}
}
