package distributionservice

import (
	"log/slog"

	httpadapter "renopick/contexts/quote-exchange/distribution-service/adapters/http"
	"renopick/contexts/quote-exchange/distribution-service/adapters/memory"
	"renopick/contexts/quote-exchange/distribution-service/application/commands"
	"renopick/contexts/quote-exchange/distribution-service/application/queries"
	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	"renopick/contexts/quote-exchange/distribution-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Vendors    ports.VendorDirectory
	Projects   ports.ProjectDirectory
	Regions    entities.RegionMatcherFunc
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandUseCase := commands.UseCase{
		Repository: deps.Repository,
		Vendors:    deps.Vendors,
		Projects:   deps.Projects,
		Regions:    deps.Regions,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Repository: deps.Repository,
		Projects:   deps.Projects,
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

func NewInMemoryModule(
	vendors []entities.VendorProfile,
	projects []entities.ProjectRef,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(vendors, projects)
	module := NewModule(Dependencies{
		Repository: store,
		Vendors:    store,
		Projects:   store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
