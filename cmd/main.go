package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/devjobs/board/internal/clients/smtp"
	"github.com/devjobs/board/internal/config"
	"github.com/devjobs/board/internal/logger"
	"github.com/devjobs/board/internal/metrics"
	"github.com/devjobs/board/internal/repositories"
	"github.com/devjobs/board/internal/services"
	"github.com/devjobs/board/internal/storage"
	"github.com/devjobs/board/internal/web"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsAddress)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString, cfg.DB.Database)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close(context.Background())

	if err = dbContext.Migrate(ctx); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	users := repositories.NewUsersRepository(dbContext)
	postings := repositories.NewPostingsRepository(dbContext)
	cachedPostings := repositories.NewCachedPostings(postings)

	bus := EventBus.New()

	accounts := services.NewAccounts(users, cfg.Server.LoginMaxPerSec)
	resets := services.NewPasswordReset(users, bus, cfg.Server.Host)
	postingService := services.NewPostings(postings, cachedPostings, users, bus)

	cleaner, err := services.NewResetTokensCleaner(users)
	if err != nil {
		log.Fatalf("can't create tokens cleaner: %v", err)
	}
	defer cleaner.Stop()

	imageStore, err := storage.NewDisk(filepath.Join(cfg.Uploads.Dir, "perfiles"))
	if err != nil {
		log.Fatalf("can't create image store: %v", err)
	}
	cvStore, err := storage.NewDisk(filepath.Join(cfg.Uploads.Dir, "cv"))
	if err != nil {
		log.Fatalf("can't create cv store: %v", err)
	}

	imageUploads := services.NewImageUploads(imageStore, cfg.Uploads.MaxSizeBytes)
	cvUploads := services.NewCVUploads(cvStore, cfg.Uploads.MaxSizeBytes)

	mailClient := smtp.NewClient(cfg.SMTP)
	if _, err = services.NewNotifier(bus, mailClient); err != nil {
		log.Fatalf("can't create notifier: %v", err)
	}

	server := web.NewServer(cfg.Server, cfg.Uploads.Dir, accounts, resets, postingService, imageUploads, cvUploads)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
}
