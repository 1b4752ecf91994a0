// Package container builds the application graph from configuration.
// Components are constructed once and passed explicitly; nothing is global.
package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/inclusive-studai/config"
	"github.com/oksasatya/inclusive-studai/internal/application"
	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/localstore"
	pginfra "github.com/oksasatya/inclusive-studai/internal/infrastructure/postgres"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/search"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/slot"
	speechinfra "github.com/oksasatya/inclusive-studai/internal/infrastructure/speech"
	"github.com/oksasatya/inclusive-studai/internal/interface/presentation"
	"github.com/oksasatya/inclusive-studai/pkg/events"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Redis     *redis.Client // nil unless REDIS_ADDR is set
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	JWT        *helpers.JWTManager
	Bus        *events.Bus
	Slot       repository.KeyValueSlot
	Store      *localstore.Store
	LoadReport localstore.LoadReport
	Materials  repository.MaterialIndex
	Service    *application.Service
	Contrast   *presentation.ContrastListener

	closers []func()
}

// OpenSlot connects the slot backend selected by cfg.SlotBackend.
// The returned close func releases the backend's connections.
func OpenSlot(ctx context.Context, cfg *config.Config, rdb *redis.Client, logger *logrus.Logger) (repository.KeyValueSlot, func(), error) {
	noop := func() {}
	switch cfg.SlotBackend {
	case config.SlotMemory:
		return slot.NewMemory(), noop, nil
	case config.SlotSQLite, "":
		s, err := slot.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite slot: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case config.SlotRedis:
		if rdb == nil {
			return nil, nil, errors.New("redis slot: REDIS_ADDR not set")
		}
		return slot.NewRedis(rdb), noop, nil
	case config.SlotPostgres:
		pool, err := pginfra.Connect(ctx, pginfra.PoolConfig{
			DSN:             cfg.PostgresDSN(),
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres slot: %w", err)
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres slot migrations: %w", err)
		}
		return slot.NewPostgres(pool), pool.Close, nil
	case config.SlotMongo:
		c, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(c, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo slot: %w", err)
		}
		if err := client.Ping(c, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo slot: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return slot.NewMongo(client.Database(cfg.MongoDatabase)), closeFn, nil
	case config.SlotGCS:
		if cfg.GCSBucket == "" {
			return nil, nil, errors.New("gcs slot: GCS_BUCKET not set")
		}
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, fmt.Errorf("gcs slot: %w", err)
		}
		return slot.NewGCS(client, cfg.GCSBucket, cfg.GCSPrefix), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
	}
}

// New wires every component. Optional infrastructure (redis, elasticsearch,
// rabbitmq) is skipped when not configured; the slot backend is mandatory.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Bus: events.NewBus()}

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		c.Redis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	s, closeSlot, err := OpenSlot(ctx, cfg, c.Redis, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Slot = s
	c.closers = append(c.closers, closeSlot)

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, events stay in-process", err, nil)
		} else {
			c.RabbitPub = pub
			c.closers = append(c.closers, pub.Close)
			events.Forward(c.Bus, pub, logger)
		}
	}

	c.Contrast = presentation.NewContrastListener()
	c.Contrast.Attach(c.Bus)

	c.Store, c.LoadReport = localstore.Open(ctx, c.Slot, logger,
		localstore.WithStorageKey(cfg.StorageKey),
		localstore.WithBus(c.Bus),
	)

	c.Materials = search.NewMemory()
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(helpers.ESConfig{Addrs: addrs, Username: cfg.ElasticsearchUser, Password: cfg.ElasticsearchPass})
		if err != nil {
			helpers.LogWarn(logger, "elasticsearch unavailable, using in-memory search", err, nil)
		} else {
			c.ES = es
			c.Materials = search.NewElastic(es, cfg.ESMaterialsIndex, logger)
		}
	}

	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)
	c.Service = application.NewService(c.Store, c.JWT, c.Bus, c.Materials, speechinfra.NewLogSynthesizer(logger), logger, cfg.LoginDelay)

	if err := c.Service.IndexMaterials(ctx); err != nil {
		// search degrades to the in-memory index rather than failing startup
		helpers.LogWarn(logger, "material indexing failed, falling back to in-memory search", err, nil)
		c.Materials = search.NewMemory()
		c.Service.Materials = c.Materials
		_ = c.Service.IndexMaterials(ctx)
	}
	return c, nil
}

// Close retries any unsaved store write and releases connections in
// reverse order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.Store.Close(ctx); err != nil {
			helpers.LogError(c.Logger, "final snapshot flush failed", err, nil)
		}
		cancel()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
