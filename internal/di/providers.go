package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	domrepo "AstroCore/internal/domain/repository"
	domsvc "AstroCore/internal/domain/service"
	"AstroCore/internal/handler/api"
	internalrepo "AstroCore/internal/repository"
	icache "AstroCore/internal/service/cache"
	"AstroCore/internal/services/backends"
	"AstroCore/internal/usecase"
	pkgcache "AstroCore/pkg/cache"
	pkgch "AstroCore/pkg/clickhouse"
	"AstroCore/pkg/config"
	xhttp "AstroCore/pkg/http"
	pkgkafka "AstroCore/pkg/kafka"
	applogger "AstroCore/pkg/logger"
	"AstroCore/pkg/metrics"
	"AstroCore/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.AstroMetrics {
	return metrics.New()
}

// ProvideCacheStore creates the cache backend. With Redis configured the
// store is layered (memory in front of Redis), otherwise memory only.
func ProvideCacheStore(cfg *config.Config) (pkgcache.Service, error) {
	memOpts := []pkgcache.MemoryOption{}
	if cfg.Cache.MemoryItems > 0 {
		memOpts = append(memOpts, pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryItems))
	}
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(memOpts...), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("cache.redis.addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("cache.redis.addr port: %w", err)
	}

	redisOpts := []pkgcache.RedisOption{
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Prefix != "" {
		redisOpts = append(redisOpts, pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	rc, err := pkgcache.NewRedisCache(redisOpts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}

	layeredOpts := []pkgcache.LayeredOption{}
	if cfg.Cache.MemoryItems > 0 {
		layeredOpts = append(layeredOpts, pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryItems))
	}
	return pkgcache.NewLayeredCache(rc, layeredOpts...), nil
}

// ProvideChartCache wraps the store with TTL policy and single flight.
func ProvideChartCache(store pkgcache.Service, cfg *config.Config, l *applogger.Logger) *icache.ChartCache {
	return icache.NewChartCache(store,
		icache.WithTTLs(cfg.NatalTTL(), cfg.TransitsTTL()),
		icache.WithLogger(l),
	)
}

// ProvideBackends builds the calculation chain: the external process first
// when configured, the in-process fallback always last.
func ProvideBackends(cfg *config.Config, l *applogger.Logger) []domsvc.ChartBackend {
	chain := make([]domsvc.ChartBackend, 0, 2)
	if !cfg.Ephemeris.DisableExtern && cfg.Ephemeris.Command != "" {
		chain = append(chain, backends.NewExternalBackend(cfg.Ephemeris.Command,
			backends.WithExternalArgs(cfg.Ephemeris.Args),
			backends.WithExternalTimeout(cfg.EphemerisTimeout()),
			backends.WithExternalLogger(l),
		))
	}
	chain = append(chain, backends.NewInternalBackend(l))
	return chain
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideCalculationLog creates the ClickHouse history store, or nil.
func ProvideCalculationLog(chClient *pkgch.Client, cfg *config.Config) (domrepo.CalculationLog, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseCalculationLog(chClient.DB(), cfg.ClickHouse.Database+".chart_calculations")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("calculation log schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideChartPublisher creates the computed-chart event publisher, or nil.
func ProvideChartPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.ChartPublisher {
	if producer == nil || cfg.Kafka.Topic == "" {
		return nil
	}
	return internalrepo.NewKafkaChartPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the precompute consumer, or nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.Consumer.Topic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideChartCalculator creates the chart calculation use case.
func ProvideChartCalculator(
	chain []domsvc.ChartBackend,
	cache *icache.ChartCache,
	store domrepo.CalculationLog,
	pub domrepo.ChartPublisher,
	m domrepo.AstroMetrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.ChartCalculator {
	opts := []usecase.CalculatorOption{
		usecase.WithCalcMetrics(m),
		usecase.WithCalcLogger(l),
		usecase.WithAttemptTimeout(cfg.EphemerisTimeout()),
	}
	if store != nil {
		opts = append(opts, usecase.WithCalculationLog(store))
	}
	if pub != nil {
		opts = append(opts, usecase.WithChartPublisher(pub))
	}
	return usecase.NewChartCalculator(chain, cache, opts...)
}

// ProvideSynastry creates the compatibility use case.
func ProvideSynastry(calc *usecase.ChartCalculator, l *applogger.Logger) *usecase.Synastry {
	return usecase.NewSynastry(calc, usecase.NewSynastryScorer(), l)
}

// ProvidePrecomputeHandler registers the handler for the precompute topic.
func ProvidePrecomputeHandler(calc *usecase.ChartCalculator, cfg *config.Config, l *applogger.Logger) *usecase.PrecomputeHandler {
	return usecase.NewPrecomputeHandler(cfg.Kafka.Consumer.Topic, calc, l)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	calc *usecase.ChartCalculator,
	synastry *usecase.Synastry,
	store domrepo.CalculationLog,
	cfg *config.Config,
) xhttp.Handler {
	opts := []api.HandlerOption{}
	if cfg.RateLimit.Enabled {
		opts = append(opts, api.WithRateLimit(float64(cfg.RateLimit.Burst), cfg.RateLimit.Rate))
	}
	if cfg.Ephemeris.StreamInterval > 0 {
		opts = append(opts, api.WithStreamInterval(cfg.Ephemeris.StreamInterval))
	}
	if store != nil {
		opts = append(opts, api.WithHistory(store))
	}
	return api.NewAstrologyEchoHandler(l, calc, synastry, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh *usecase.PrecomputeHandler,
	chClient *pkgch.Client,
	pub domrepo.ChartPublisher,
	l *applogger.Logger,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, handler, consumer, kh, chClient, pub, l)
}
