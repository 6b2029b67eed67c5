package main

import (
	"io"
	"log"
	"os"

	"github.com/ininsico/voyago-api/internal/cache"
	"github.com/ininsico/voyago-api/internal/config"
	"github.com/ininsico/voyago-api/internal/logging"
	"github.com/ininsico/voyago-api/internal/media"
	miniorepo "github.com/ininsico/voyago-api/internal/repository/minio"
	"github.com/ininsico/voyago-api/internal/repository/postgres"
	"github.com/ininsico/voyago-api/internal/service"
	transport "github.com/ininsico/voyago-api/internal/transport/http"
	"github.com/ininsico/voyago-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash mirror disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect object storage: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL)

	processor := media.NewFFmpegProcessor(cfg.FFmpegPath, media.DefaultMaxDimension)
	tokens := util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	authSvc := service.NewAuthService(postgres.NewUserRepo(db), storage, tokens, processor, service.AuthConfig{
		AdminEmail:     cfg.AdminEmail,
		GoogleAudience: cfg.GoogleAudience,
		AvatarBucket:   cfg.MinIOBucketAvatars,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
	})
	destSvc := service.NewDestinationService(postgres.NewDestinationRepo(db), storage, processor, service.DestinationConfig{
		ImageBucket:   cfg.MinIOBucketImages,
		ImageMaxBytes: cfg.ImageMaxBytes,
	})
	bookingSvc := service.NewBookingService(postgres.NewBookingRepo(db))
	messageSvc := service.NewMessageService(postgres.NewMessageRepo(db))
	statsSvc := service.NewStatsService(postgres.NewStatsRepo(db))

	catalogCache := cache.ForPolicy(cfg.CatalogCachePolicy, 256, cfg.CatalogCacheTTL)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, authSvc)
	transport.RegisterDestinations(e, authSvc, destSvc, catalogCache)
	transport.RegisterBookings(e, authSvc, bookingSvc)
	transport.RegisterMessages(e, authSvc, messageSvc)
	transport.RegisterAdmin(e, authSvc, bookingSvc, statsSvc)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
