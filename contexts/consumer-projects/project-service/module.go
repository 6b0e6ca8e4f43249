package projectservice

import (
	"log/slog"

	httpadapter "renopick/contexts/consumer-projects/project-service/adapters/http"
	"renopick/contexts/consumer-projects/project-service/adapters/memory"
	"renopick/contexts/consumer-projects/project-service/application/commands"
	"renopick/contexts/consumer-projects/project-service/application/queries"
	"renopick/contexts/consumer-projects/project-service/domain/entities"
	"renopick/contexts/consumer-projects/project-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Quotes     ports.QuoteCounter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandUseCase := commands.UseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Repository: deps.Repository,
		Quotes:     deps.Quotes,
		Clock:      deps.Clock,
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

func NewInMemoryModule(seed []entities.Project, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Quotes:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
