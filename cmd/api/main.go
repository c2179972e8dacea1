package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tongcompany/intake-portal/config"
	"github.com/tongcompany/intake-portal/internal/bootstrap"
	"github.com/tongcompany/intake-portal/internal/notify"
	"github.com/tongcompany/intake-portal/internal/projects/repository"
	"github.com/tongcompany/intake-portal/internal/projects/service"
	"github.com/tongcompany/intake-portal/internal/reminder"
	cronjob "github.com/tongcompany/intake-portal/internal/reminder/cron"
	"github.com/tongcompany/intake-portal/internal/storage/nas"
	"github.com/tongcompany/intake-portal/internal/uploads"
)

const serviceName = "intake-portal"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.App.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	// The store is the only stateful component: one instance,
	// constructed here and threaded through everything.
	repo := repository.NewProjectRepository()

	var mirror nas.Mirror = nas.NoopMirror{}
	if cfg.NAS.Endpoint != "" {
		mirror = nas.NewObjectMirror(cfg.NAS.Endpoint, cfg.NAS.AccessKey, cfg.NAS.SecretKey, cfg.NAS.Bucket, cfg.NAS.Region, cfg.NAS.Timeout)
	}

	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.SMTP.Host != "" {
		smtp, err := notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.Timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize SMTP mailer")
		}
		mailer = smtp
	}

	dispatcher := notify.NewDispatcher(mailer, cfg.SMTP.AdminEmail, cfg.Server.BaseURL, cfg.SMTP.Timeout, cfg.SMTP.SendsPerMinute)

	projectSvc := service.NewProjectService(repo, dispatcher, mirror, cfg.Upload.StagingDir)
	uploadSvc := uploads.NewService(repo, mirror, cfg.Upload.Dir, cfg.Upload.MaxFileSize)
	scanner := reminder.NewScanner(repo, dispatcher)

	scheduler := cronjob.NewScheduler(scanner, cfg.Reminder.Schedule, cfg.Reminder.StaleDays)
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Projects:    projectSvc,
		Uploads:     uploadSvc,
		Scanner:     scanner,
		CronSecret:  cfg.Reminder.CronSecret,
		StaleDays:   cfg.Reminder.StaleDays,
	})

	log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
