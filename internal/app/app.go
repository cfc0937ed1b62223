package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"coalo/go_backend/internal/app/config"
	apphttp "coalo/go_backend/internal/app/http"
	"coalo/go_backend/internal/app/http/handlers"
	"coalo/go_backend/internal/app/observability"
	"coalo/go_backend/internal/domain/contact"
	"coalo/go_backend/internal/domain/quote"
	"coalo/go_backend/internal/domain/quote/pdf"
	"coalo/go_backend/internal/domain/quote/pdf/gofpdf"
	redisstore "coalo/go_backend/internal/infra/cache/redis"
	"coalo/go_backend/internal/infra/db/postgres"
	"coalo/go_backend/internal/infra/db/sqlite"
	"coalo/go_backend/internal/infra/storage/filestore"
	s3store "coalo/go_backend/internal/infra/storage/s3"
)

const shutdownTimeout = 15 * time.Second

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config) error {
	log := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	seq, closeSeq, err := openSequence(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	defer closeSeq()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	opts := pdf.DefaultOptions()
	opts.LogoPath = cfg.LogoPath
	opts.IncludeFeatures = cfg.IncludeFeatures

	engine := quote.NewEngine(seq, cfg.Profile, quote.WithLogger(log))
	svc := quote.NewService(engine, gofpdf.New(opts, log))
	svc.Recorder = metrics
	svc.Log = log

	archive, prune, err := openArchive(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if archive != nil {
		svc.Archive = archive
	}

	contacts := contact.NewService(cfg.ContactSubmitDelay, log)
	contacts.Recorder = metrics

	h := handlers.New(svc, seq, contacts, log)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(cfg, h, metrics, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var scheduler *cron.Cron
	if prune != nil {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.ArchivePruneSchedule, prune); err != nil {
			return fmt.Errorf("archive prune schedule %q: %w", cfg.ArchivePruneSchedule, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":     cfg.HTTPAddr,
			"sequence": cfg.SequenceBackend,
			"archive":  cfg.ArchiveBackend,
		}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if scheduler != nil {
		scheduler.Start()
		g.Go(func() error {
			<-ctx.Done()
			<-scheduler.Stop().Done()
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openSequence(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (quote.SequenceStore, func(), error) {
	noop := func() {}
	switch cfg.SequenceBackend {
	case config.SequenceMemory:
		log.Warn("sequence: in-memory counter, numbers restart with the process")
		return quote.NewMemorySequence(0), noop, nil
	case config.SequenceSQLite:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case config.SequencePostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		s, err := postgres.NewSequence(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil
	case config.SequenceRedis:
		client, err := redisstore.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSequence(client, "", log), func() { client.Close() }, nil
	case config.SequenceFile, "":
		c, err := filestore.NewCounter(cfg.SequenceFile, log)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.SequenceBackend)
}

// openArchive returns the configured archive and, for the filesystem
// backend, the retention job to schedule.
func openArchive(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (quote.Archiver, func(), error) {
	switch cfg.ArchiveBackend {
	case config.ArchiveNone, "":
		return nil, nil, nil
	case config.ArchiveFS:
		a, err := filestore.NewArchive(cfg.ArchiveDir, log)
		if err != nil {
			return nil, nil, err
		}
		if cfg.ArchiveRetention <= 0 {
			return a, nil, nil
		}
		prune := func() {
			n, err := a.Prune(cfg.ArchiveRetention)
			if err != nil {
				log.WithError(err).Warn("archive: prune")
				return
			}
			log.WithField("removed", n).Info("archive: pruned")
		}
		return a, prune, nil
	case config.ArchiveS3:
		a, err := s3store.New(ctx, s3store.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return a, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.ArchiveBackend)
}
