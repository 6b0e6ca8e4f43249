package comparisonengine

import (
	"log/slog"

	httpadapter "renopick/contexts/quote-exchange/comparison-engine/adapters/http"
	"renopick/contexts/quote-exchange/comparison-engine/adapters/memory"
	"renopick/contexts/quote-exchange/comparison-engine/application/queries"
	"renopick/contexts/quote-exchange/comparison-engine/domain/entities"
	"renopick/contexts/quote-exchange/comparison-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Quotes     ports.QuoteSource
	Normalizer entities.CategoryNormalizer
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Queries: queries.UseCase{
				Quotes:     deps.Quotes,
				Normalizer: deps.Normalizer,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []ports.QuoteRecord, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Quotes: store,
		Logger: logger,
	})
	module.Store = store
	return module
}
