package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "renopick/contexts/quote-exchange/quote-service/application"
	"renopick/contexts/quote-exchange/quote-service/application/commands"
	"renopick/contexts/quote-exchange/quote-service/application/queries"
	"renopick/contexts/quote-exchange/quote-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/quote-service/domain/errors"
	httptransport "renopick/contexts/quote-exchange/quote-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) SubmitQuoteHandler(
	ctx context.Context,
	vendorID string,
	req httptransport.SubmitQuoteRequest,
) (httptransport.SubmitQuoteResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	validUntil, err := parseValidUntil(req.ValidUntil)
	if err != nil {
		return httptransport.SubmitQuoteResponse{}, &domainerrors.SchemaError{
			Violations: []string{"valid_until must be RFC 3339"},
		}
	}

	quote, err := h.Commands.SubmitQuote(ctx, commands.SubmitQuoteCommand{
		ProjectID:   req.ProjectID,
		VendorID:    vendorID,
		LineItems:   lineItemsFromDTO(req.LineItems),
		TotalAmount: req.TotalAmount,
		ValidUntil:  validUntil,
	})
	if err != nil {
		logger.Warn("quote http submit failed",
			"event", "quote_http_submit_failed",
			"module", "quote-exchange/quote-service",
			"layer", "adapter",
			"project_id", strings.TrimSpace(req.ProjectID),
			"vendor_id", strings.TrimSpace(vendorID),
			"error", err.Error(),
		)
		return httptransport.SubmitQuoteResponse{}, err
	}
	return httptransport.SubmitQuoteResponse{
		ID:          quote.ID,
		Status:      string(quote.Status),
		SubmittedAt: quote.SubmittedAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) GetQuoteHandler(ctx context.Context, quoteID string) (httptransport.QuoteDTO, error) {
	quote, err := h.Queries.GetQuote(ctx, quoteID)
	if err != nil {
		return httptransport.QuoteDTO{}, err
	}
	return mapQuote(quote), nil
}

func (h Handler) ListByProjectHandler(ctx context.Context, projectID string) (httptransport.QuoteListResponse, error) {
	quotes, err := h.Queries.ListByProject(ctx, projectID)
	if err != nil {
		return httptransport.QuoteListResponse{}, err
	}
	dtos := make([]httptransport.QuoteDTO, 0, len(quotes))
	for _, quote := range quotes {
		dtos = append(dtos, mapQuote(quote))
	}
	return httptransport.QuoteListResponse{Quotes: dtos}, nil
}

func (h Handler) UpdateStatusHandler(
	ctx context.Context,
	quoteID string,
	req httptransport.UpdateStatusRequest,
) error {
	logger := application.ResolveLogger(h.Logger)
	if err := h.Commands.UpdateStatus(ctx, commands.UpdateStatusCommand{
		QuoteID: quoteID,
		Status:  req.Status,
	}); err != nil {
		logger.Warn("quote http status update failed",
			"event", "quote_http_status_update_failed",
			"module", "quote-exchange/quote-service",
			"layer", "adapter",
			"quote_id", strings.TrimSpace(quoteID),
			"status", strings.TrimSpace(req.Status),
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (h Handler) AutocompleteHandler(
	ctx context.Context,
	vendorID string,
	category string,
) (httptransport.AutocompleteResponse, error) {
	templates, err := h.Queries.Autocomplete(ctx, vendorID, category)
	if err != nil {
		return httptransport.AutocompleteResponse{}, err
	}
	dtos := make([]httptransport.QuoteTemplateDTO, 0, len(templates))
	for _, template := range templates {
		dtos = append(dtos, httptransport.QuoteTemplateDTO{
			ID:         template.ID,
			Category:   template.Category,
			LineItems:  lineItemsToDTO(template.LineItems),
			LastUsedAt: template.LastUsedAt.Format(time.RFC3339),
		})
	}
	return httptransport.AutocompleteResponse{Templates: dtos}, nil
}

func mapQuote(quote entities.Quote) httptransport.QuoteDTO {
	dto := httptransport.QuoteDTO{
		ID:          quote.ID,
		ProjectID:   quote.ProjectID,
		VendorID:    quote.VendorID,
		LineItems:   lineItemsToDTO(quote.LineItems),
		TotalAmount: quote.TotalAmount,
		Status:      string(quote.Status),
		SubmittedAt: quote.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:   quote.UpdatedAt.Format(time.RFC3339),
	}
	if quote.ValidUntil != nil {
		dto.ValidUntil = quote.ValidUntil.Format(time.RFC3339)
	}
	return dto
}

func lineItemsFromDTO(dtos []httptransport.LineItemDTO) []entities.LineItem {
	items := make([]entities.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, entities.LineItem{
			Category:     dto.Category,
			UnitPrice:    dto.UnitPrice,
			Quantity:     dto.Quantity,
			Included:     append([]string(nil), dto.Included...),
			Excluded:     append([]string(nil), dto.Excluded...),
			Assumptions:  append([]string(nil), dto.Assumptions...),
			MaterialSpec: dto.MaterialSpec,
		})
	}
	return items
}

func lineItemsToDTO(items []entities.LineItem) []httptransport.LineItemDTO {
	dtos := make([]httptransport.LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, httptransport.LineItemDTO{
			Category:     item.Category,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Included:     append([]string(nil), item.Included...),
			Excluded:     append([]string(nil), item.Excluded...),
			Assumptions:  append([]string(nil), item.Assumptions...),
			MaterialSpec: item.MaterialSpec,
		})
	}
	return dtos
}

func parseValidUntil(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}
