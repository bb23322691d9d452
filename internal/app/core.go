package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/partswarm/config"
	cachemem "github.com/Gunvolt24/partswarm/internal/cache/memory"
	cacheredis "github.com/Gunvolt24/partswarm/internal/cache/redis"
	"github.com/Gunvolt24/partswarm/internal/kafka"
	"github.com/Gunvolt24/partswarm/internal/normalize"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/internal/provider"
	"github.com/Gunvolt24/partswarm/internal/repo/postgres"
	"github.com/Gunvolt24/partswarm/internal/swarm"
	"github.com/Gunvolt24/partswarm/internal/usecase"
	"github.com/Gunvolt24/partswarm/pkg/validate"
)

// Core — собранный узел без внешних интерфейсов: реестр вендоров, кэш Swarm и координатор.
// Используется и сервером, и swarmctl.
type Core struct {
	Registry *provider.Registry
	Codec    *normalize.Normalizer
	Local    *cachemem.EntryCache
	Store    ports.EntryStore
	Swarm    *swarm.Service
	Lookup   *usecase.LookupService
	Producer *kafka.Producer
}

// BuildCore — собирает узел по конфигурации; vendors - уже загруженные описания вендоров.
func BuildCore(ctx context.Context, cfg *config.Config, vendors []provider.Config, log ports.Logger) (*Core, Cleanup, error) {
	mode, err := usecase.ParseMode(cfg.Lookup.Mode)
	if err != nil {
		return nil, func() {}, err
	}

	registry, err := provider.BuildRegistry(vendors, provider.NewHTTPClient(cfg.Lookup.VendorTimeout))
	if err != nil {
		return nil, func() {}, fmt.Errorf("build vendors: %w", err)
	}
	codec, err := normalize.New(registry.Kinds(), normalize.NewCodec(cfg.Cache.CompressThreshold))
	if err != nil {
		return nil, func() {}, err
	}

	store, err := openStore(ctx, &cfg.Store, "partswarm-"+cfg.Node.ID, log)
	if err != nil {
		return nil, func() {}, err
	}

	peerClient := provider.NewHTTPClient(cfg.Node.PublishTimeout)
	httpPeers := make([]*swarm.HTTPPeer, 0, len(cfg.Node.Peers))
	peers := make([]ports.PeerClient, 0, len(cfg.Node.Peers))
	for _, addr := range cfg.Node.Peers {
		if addr = strings.TrimSpace(addr); addr == "" {
			continue
		}
		p := swarm.NewHTTPPeer(addr, cfg.Node.ID, peerClient)
		httpPeers = append(httpPeers, p)
		peers = append(peers, p)
	}

	core := &Core{Registry: registry, Codec: codec, Store: store}

	var publisher ports.PeerPublisher
	switch strings.ToLower(strings.TrimSpace(cfg.Node.Broadcast)) {
	case "", "none":
	case "http":
		publisher = swarm.NewHTTPPublisher(httpPeers)
	case "kafka":
		core.Producer = kafka.NewProducer(&kafka.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			NodeID:  cfg.Node.ID,
		})
		publisher = core.Producer
	default:
		closeStore(ctx, store, log)
		return nil, func() {}, fmt.Errorf("unknown broadcast kind %q", cfg.Node.Broadcast)
	}

	core.Local = cachemem.NewEntryCache(cfg.Cache.Capacity, cfg.Cache.Shards)
	core.Swarm = swarm.NewService(core.Local, store, peers, publisher, log, swarm.Options{
		NodeID:         cfg.Node.ID,
		TTL:            cfg.Cache.TTL,
		PeerTimeout:    cfg.Node.PeerTimeout,
		PublishTimeout: cfg.Node.PublishTimeout,
	})
	core.Lookup = usecase.NewLookupService(registry, codec, core.Swarm, validate.NewQueryValidator(), log, mode)

	log.Infof(ctx, "swarm node=%s vendors=%d peers=%d mode=%s store=%s broadcast=%s",
		cfg.Node.ID, registry.Len(), len(peers), mode, cfg.Store.Kind, cfg.Node.Broadcast)

	// Очистка: сначала дождаться фоновых рассылок, затем закрыть каналы доставки.
	cleanup := func() {
		core.Swarm.Close()
		if core.Producer != nil {
			if err := core.Producer.Close(); err != nil {
				log.Warnf(ctx, "kafka producer close error: %v", err)
			}
		}
		closeStore(ctx, store, log)
	}
	return core, cleanup, nil
}

// openStore — постоянное хранилище по виду; nil для "none".
func openStore(ctx context.Context, cfg *config.Store, appName string, log ports.Logger) (ports.EntryStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", "none":
		return nil, nil
	case "redis":
		s, err := cacheredis.Open(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		if cfg.Migrate {
			n, err := postgres.Migrate(ctx, cfg.PostgresDSN)
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			log.Infof(ctx, "postgres migrations applied: %d", n)
		}
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:              cfg.PostgresDSN,
			MaxConns:         cfg.MaxConns,
			AppName:          appName,
			StatementTimeout: cfg.StatementTimeout,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewEntryStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

func closeStore(ctx context.Context, store ports.EntryStore, log ports.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Warnf(ctx, "store close error: %v", err)
	}
}
