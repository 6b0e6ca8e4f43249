package quoteservice

import (
	"log/slog"

	httpadapter "renopick/contexts/quote-exchange/quote-service/adapters/http"
	"renopick/contexts/quote-exchange/quote-service/adapters/memory"
	"renopick/contexts/quote-exchange/quote-service/application/commands"
	"renopick/contexts/quote-exchange/quote-service/application/queries"
	"renopick/contexts/quote-exchange/quote-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Templates  ports.TemplateRepository
	Projects   ports.ProjectDirectory
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandUseCase := commands.UseCase{
		Repository: deps.Repository,
		Templates:  deps.Templates,
		Projects:   deps.Projects,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Repository: deps.Repository,
		Templates:  deps.Templates,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands: commandUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(projectIDs []string, logger *slog.Logger) Module {
	store := memory.NewStore(projectIDs)
	module := NewModule(Dependencies{
		Repository: store,
		Templates:  store,
		Projects:   store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
