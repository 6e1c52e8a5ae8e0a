package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/store/monday"
	"github.com/DLICWCPA/monday-report-app/pkg/store/s3export"
	"github.com/DLICWCPA/monday-report-app/pkg/store/warehouse"
)

// FetchOptions carries the application-wide fetch settings into the monday factory.
type FetchOptions struct {
	PageLimit  int
	MaxRetries int
	Timeout    time.Duration
}

// NewDefaultRegistry registers every built-in source.
func NewDefaultRegistry(opts FetchOptions) (Registry, error) {
	r := NewRegistry()
	factories := map[domain.SourceType]Factory{
		domain.SourceMonday:     MondayFactory(opts),
		domain.SourceFile:       fileFactory,
		domain.SourceS3:         s3Factory,
		domain.SourceSnowflake:  warehouseFactory(warehouse.DriverSnowflake, warehouse.SnowflakeDSN),
		domain.SourceDatabricks: warehouseFactory(warehouse.DriverDatabricks, warehouse.DatabricksDSN),
	}
	for name, f := range factories {
		if err := r.Register(name, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MondayFactory builds GraphQL clients. A profile page_limit overrides the application setting.
func MondayFactory(opts FetchOptions) Factory {
	return func(_ context.Context, p domain.ConfigProfile) (ItemSource, error) {
		limit := opts.PageLimit
		if raw := p.Get("page_limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid page_limit %q", raw)
			}
			limit = n
		}
		client, err := monday.NewClient(monday.Options{
			Endpoint:   p.Get("endpoint"),
			APIKey:     p.Get("api_key"),
			BoardID:    p.Get("board_id"),
			PageLimit:  limit,
			MaxRetries: opts.MaxRetries,
			Timeout:    opts.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func fileFactory(_ context.Context, p domain.ConfigProfile) (ItemSource, error) {
	src, err := monday.NewFileSource(p.Get("path"))
	if err != nil {
		return nil, err
	}
	return src, nil
}

func s3Factory(ctx context.Context, p domain.ConfigProfile) (ItemSource, error) {
	src, err := s3export.New(ctx, p.Get("bucket"), p.Get("key"), p.Get("region"))
	if err != nil {
		return nil, err
	}
	return src, nil
}

func warehouseFactory(driver string, dsnFor func(map[string]string) (string, error)) Factory {
	return func(_ context.Context, p domain.ConfigProfile) (ItemSource, error) {
		dsn, err := dsnFor(p.Settings)
		if err != nil {
			return nil, err
		}
		db, err := warehouse.Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		src, err := warehouse.NewSource(db, driver, p.Get("table"))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return src, nil
	}
}
