//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"mintd/internal"
	"mintd/internal/controllers"
	"mintd/internal/issuer"
	"mintd/internal/journal"
	"mintd/internal/mint"
	"mintd/internal/models"
	"mintd/internal/providers"
	"mintd/internal/services"
	"mintd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		models.NewArena,
		issuer.NewLocalIssuer,
		services.NewMintService,
		services.NewLedgerService,
		journal.NewJournal,

		mint.NewZstdCompressor,
		mint.NewFileManager,
		mint.NewScheduler,

		controllers.NewApiController,
		controllers.NewAdminController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
