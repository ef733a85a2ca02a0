package main

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/logger"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/server"
	"github.com/matst80/slask-catalog/pkg/storage"
)

type Config struct {
	Environment     logger.Environment `envconfig:"ENVIRONMENT" default:"development"`
	ListenAddress   string             `envconfig:"LISTEN_ADDRESS" default:":8080"`
	DebugAddress    string             `envconfig:"DEBUG_ADDRESS" default:":8081"`
	DataDir         string             `envconfig:"DATA_DIR" default:"data"`
	ProductsFile    string             `envconfig:"PRODUCTS_FILE" default:"products.json"`
	SaveOnShutdown  bool               `envconfig:"SAVE_ON_SHUTDOWN" default:"false"`
	EnableProfiling bool               `envconfig:"ENABLE_PROFILING" default:"true"`
	Redis           server.RedisConfig
	Rabbit          messaging.RabbitConfig
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to process environment config")
	}
	logger.Init(logger.Options{Environment: cfg.Environment})

	products := catalog.NewCatalog()
	db := storage.NewDiskStorage(cfg.DataDir)
	if _, err := db.LoadProducts(cfg.ProductsFile, products); err != nil {
		log.Warn().Err(err).Msg("starting with an empty catalog")
	}

	hooks := make([]common.ShutdownHook, 0)

	var cache server.Cache
	if cfg.Redis.Addr != "" {
		redisCache := server.NewRedisCache(cfg.Redis)
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis not reachable, listings will not be cached")
			redisCache.Close()
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("listing cache enabled")
			cache = redisCache
			hooks = append(hooks, func(ctx context.Context) error {
				return redisCache.Close()
			})
		}
		cancel()
	}

	if cfg.Rabbit.Url != "" {
		conn, err := messaging.Connect(cfg.Rabbit)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		if err = messaging.ListenForProductChanges(conn, cfg.Rabbit.Prefix, products); err != nil {
			log.Fatal().Err(err).Msg("failed to listen for product changes")
		}
		hooks = append(hooks, func(ctx context.Context) error {
			return conn.Close()
		})
	}

	if cfg.SaveOnShutdown {
		hooks = append(hooks, func(ctx context.Context) error {
			return db.SaveProducts(cfg.ProductsFile, products.Products())
		})
	}

	srv := server.NewWebServer(products, cache)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", srv.ClientHandler()))

	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	if cfg.EnableProfiling {
		log.Info().Msg("profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      15 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	common.RunServersWithShutdown([]*http.Server{
		common.NewServer(cfg.ListenAddress, mux, timeouts),
		common.NewServer(cfg.DebugAddress, debugMux, timeouts),
	}, timeouts.Shutdown, timeouts.Hook, hooks...)
}
