package components

import (
	"mokka-api/internal/infra/readstore"
	"mokka-api/internal/infra/repository"
	"mokka-api/internal/infra/uow"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	repositoryModule,
	readstoreModule,
)

// UnitOfWork owns the transactional repositories (sessions, rsvps,
// verifications, events); only pool-bound CRUD is provided here.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		repository.NewMenuRepository,
		repository.NewHoursRepository,
		repository.NewSettingsRepository,
		repository.NewLeadRepository,
	),
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		readstore.NewEventReadStore,
		readstore.NewRSVPReadStore,
	),
)
