package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	application "renopick/contexts/quote-exchange/comparison-engine/application"
	"renopick/contexts/quote-exchange/comparison-engine/application/queries"
	httptransport "renopick/contexts/quote-exchange/comparison-engine/transport/http"
)

type Handler struct {
	Queries queries.UseCase
	Logger  *slog.Logger
}

// CompareHandler accepts the quote identifiers as a comma-delimited list,
// the shape the consumer app sends.
func (h Handler) CompareHandler(
	ctx context.Context,
	projectID string,
	quoteIDList string,
) (httptransport.CompareResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	result, err := h.Queries.Compare(ctx, projectID, strings.Split(quoteIDList, ","))
	if err != nil {
		logger.Warn("comparison http compare failed",
			"event", "comparison_http_compare_failed",
			"module", "quote-exchange/comparison-engine",
			"layer", "adapter",
			"project_id", strings.TrimSpace(projectID),
			"error", err.Error(),
		)
		return httptransport.CompareResponse{}, err
	}

	differences := make([]httptransport.DifferenceDTO, 0, len(result.Differences))
	for _, difference := range result.Differences {
		differences = append(differences, httptransport.DifferenceDTO{
			Field:  difference.Field,
			Values: append([]int64(nil), difference.Values...),
		})
	}
	table := make([]httptransport.RowDTO, 0, len(result.Table))
	for _, row := range result.Table {
		table = append(table, httptransport.RowDTO{
			Category: row.Category,
			Amounts:  row.Amounts,
		})
	}
	return httptransport.CompareResponse{
		MappingRate: result.MappingRate,
		Differences: differences,
		Table:       table,
	}, nil
}
