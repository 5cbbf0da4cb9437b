package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/config"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/bootstrap"
	cronjob "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/cron"
	donrepo "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/donations/repository"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/repository"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/service"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/stellar"
)

const serviceName = "sirius-funding-backend"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	fsClient, err := bootstrap.OpenFirestore(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firestore: %v", err)
	}
	defer fsClient.Close()

	projectRepo := repository.NewProjectRepo(fsClient)

	var rdb *redis.Client
	var cache *repository.ListingCache
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		cache = repository.NewListingCache(rdb)
	} else {
		log.Println("REDIS_ADDR not set, listing cache disabled")
	}

	var db *sql.DB
	var history *donrepo.HistoryRepo
	if cfg.Database.DSN != "" {
		db, err = bootstrap.OpenDB(ctx, cfg.Database.DSN)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()
		history = donrepo.NewHistoryRepo(db)
	} else {
		log.Println("DB_DSN not set, donation history disabled")
	}

	projects := service.NewProjectService(projectRepo, cache, history)

	if cache != nil {
		cronjob.NewScheduler(projects).Start()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Projects:       projects,
		Horizon:        stellar.NewClient(cfg.Stellar.HorizonURL),
		DB:             db,
		Redis:          rdb,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
