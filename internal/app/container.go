package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"microblog/internal/api"
	"microblog/internal/blob"
	"microblog/internal/config"
	"microblog/internal/logging"
	"microblog/internal/service"
	"microblog/internal/store"
)

func ProvideLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.Log)
}

func ProvideStore(cfg *config.Config, logger *logrus.Logger) (*store.Store, error) {
	return store.Open(cfg.Database, store.Options{
		Logger:     logger,
		GormLogger: logging.GormLogger(logger),
	})
}

func ProvideBlobStore(cfg *config.Config, logger *logrus.Logger) (blob.Store, error) {
	if cfg.Media.Storage == config.MEDIA_STORAGE_S3 {
		s3cfg := cfg.Media.S3
		s3, err := blob.NewS3Store(blob.S3Config{
			Endpoint:  s3cfg.Endpoint,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			UseSSL:    s3cfg.UseSSL,
			Bucket:    s3cfg.Bucket,
			PublicURL: s3cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"endpoint": s3cfg.Endpoint,
			"bucket":   s3cfg.Bucket,
		}).Info("Using S3 media storage")
		return s3, nil
	}

	logger.WithField("dir", cfg.Media.Dir).Info("Using disk media storage")
	return blob.NewDiskStore(cfg.Media.Dir, cfg.Media.URLPrefix)
}

func ProvideServices(s *store.Store) *service.Services {
	return service.New(s)
}

func ProvideMetrics() *api.Metrics {
	return api.NewMetrics()
}

func ProvideAPI(cfg *config.Config, services *service.Services, blobs blob.Store, metrics *api.Metrics, logger *logrus.Logger, s *store.Store) *api.API {
	opts := api.Options{
		SlowRequestThreshold: cfg.Log.SlowRequestThreshold,
		HealthCheck:          s.Ping,
	}
	if cfg.Media.Storage == config.MEDIA_STORAGE_DISK {
		opts.StaticDir = cfg.Media.Dir
		opts.StaticPrefix = cfg.Media.URLPrefix
	}
	return api.New(services, blobs, metrics, logger, opts)
}

// BuildContainer wires every component from the configuration at
// configPath. An empty path means defaults plus environment.
func BuildContainer(configPath string) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() (*config.Config, error) {
		return config.Load(configPath)
	}); err != nil {
		return nil, fmt.Errorf("failed to provide config: %w", err)
	}

	if err := container.Provide(ProvideLogger); err != nil {
		return nil, fmt.Errorf("failed to provide logger: %w", err)
	}

	if err := container.Provide(ProvideStore); err != nil {
		return nil, fmt.Errorf("failed to provide store: %w", err)
	}

	if err := container.Provide(ProvideBlobStore); err != nil {
		return nil, fmt.Errorf("failed to provide blob store: %w", err)
	}

	if err := container.Provide(ProvideServices); err != nil {
		return nil, fmt.Errorf("failed to provide services: %w", err)
	}

	if err := container.Provide(ProvideMetrics); err != nil {
		return nil, fmt.Errorf("failed to provide metrics: %w", err)
	}

	if err := container.Provide(ProvideAPI); err != nil {
		return nil, fmt.Errorf("failed to provide api: %w", err)
	}

	if err := container.Provide(NewApplication); err != nil {
		return nil, fmt.Errorf("failed to provide application: %w", err)
	}

	return container, nil
}
