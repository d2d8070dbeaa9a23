//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"ihsearch/internal"
	"ihsearch/internal/controllers"
	"ihsearch/internal/providers"
	"ihsearch/internal/services"
	"ihsearch/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		internal.NewStorage,
		services.NewInfluencerService,
		services.NewMetricsService,
		services.NewPostService,
		controllers.NewInfluencerController,
		controllers.NewMetricsController,
		controllers.NewPostController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
