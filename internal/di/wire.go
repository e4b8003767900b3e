//go:build wireinject
// +build wireinject

package di

import (
	"AstroCore/pkg/config"
	"AstroCore/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCacheStore,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideCalculationLog,
		ProvideChartPublisher,

		// Services and use cases
		ProvideChartCache,
		ProvideBackends,
		ProvideChartCalculator,
		ProvideSynastry,
		ProvidePrecomputeHandler,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
