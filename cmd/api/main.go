package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/njprem/MovieShelf_BackEnd/internal/config"
	"github.com/njprem/MovieShelf_BackEnd/internal/logging"
	"github.com/njprem/MovieShelf_BackEnd/internal/media"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/file"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/minio"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/postgres"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/redis"
	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
	transport "github.com/njprem/MovieShelf_BackEnd/internal/transport/http"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
			defer writer.Close()
		}
	}

	ctx := context.Background()

	var redisClient *goredis.Client
	if cfg.FavoritesStore == config.StoreDriverRedis || cfg.TMDBCacheRedis {
		client, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer client.Close()
		redisClient = client
	}

	var store ports.FavoritesStore
	switch cfg.FavoritesStore {
	case config.StoreDriverPostgres:
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("db schema: %v", err)
		}
		store = postgres.NewFavoritesStore(db)
	case config.StoreDriverRedis:
		store = redis.NewFavoritesStore(redisClient, "")
	case config.StoreDriverFile:
		fileStore, err := file.NewFavoritesStore(cfg.FavoritesFileDir)
		if err != nil {
			log.Fatalf("favorites dir: %v", err)
		}
		store = fileStore
	}
	log.Printf("favorites store: %s", cfg.FavoritesStore)

	tmdbCfg := tmdb.Config{
		BaseURL:      cfg.TMDBAPIURL,
		ImageBaseURL: cfg.TMDBImageURL,
		APIKey:       cfg.TMDBAPIKey,
		RateLimit:    cfg.TMDBRateLimit,
		MaxRetries:   2,
		CacheTTL:     cfg.TMDBCacheTTL,
		CacheSize:    cfg.TMDBCacheSize,
	}
	if cfg.TMDBCacheRedis && redisClient != nil {
		tmdbCfg.Redis = redisClient
	}
	catalog, err := tmdb.NewClient(tmdbCfg)
	if err != nil {
		log.Fatalf("tmdb client: %v", err)
	}

	var objectStorage ports.ObjectStorage
	if cfg.PosterMirrorEnabled() {
		minioClient, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("minio client: %v", err)
		}
		if err := minio.EnsureBucket(ctx, minioClient, cfg.MinIOBucketPosters); err != nil {
			log.Fatalf("minio bucket: %v", err)
		}
		objectStorage = minio.NewStorage(minioClient, cfg.MinIOPublicURL)
	} else {
		log.Printf("poster mirror disabled: MinIO is not configured")
	}

	jwtManager := util.NewJWTManager(cfg.ProfileTokenSecret, cfg.ProfileTokenTTL)
	profileService := service.NewProfileService(jwtManager)
	favoriteService := service.NewFavoriteService(store, catalog)
	catalogService := service.NewCatalogService(catalog)
	processor := media.NewFFMPEGProcessor(cfg.FFMPEGPath, cfg.PosterMaxDimension)
	posterService := service.NewPosterService(catalog, objectStorage, processor, favoriteService, cfg.MinIOBucketPosters, cfg.PosterMaxDimension)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterPages(e)
	transport.RegisterSwagger(e, transport.DefaultSwaggerSpecPath)
	transport.RegisterProfiles(e, profileService)
	transport.RegisterCatalog(e, catalogService, favoriteService, catalog.Images())
	transport.RegisterFavorites(e, profileService, favoriteService, posterService, catalog.Images())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-done
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = srv.Close()
	}
	log.Println("server stopped")
}
