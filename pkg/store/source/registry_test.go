package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/store/monday"
	"github.com/DLICWCPA/monday-report-app/pkg/store/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{ name string }

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(context.Context) ([]domain.RawItem, error) { return nil, nil }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	f := func(context.Context, domain.ConfigProfile) (ItemSource, error) { return stubSource{"stub"}, nil }

	assert.NoError(t, r.Register("stub", f))
	assert.Error(t, r.Register("stub", f), "duplicate")
	assert.Error(t, r.Register("", f), "empty name")
	assert.Error(t, r.Register("other", nil), "nil factory")
	assert.Equal(t, []domain.SourceType{"stub"}, r.ListSources())
}

func TestRegistry_Create(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", func(_ context.Context, p domain.ConfigProfile) (ItemSource, error) {
		if p.Get("fail") != "" {
			return nil, errors.New("boom")
		}
		return stubSource{p.Name}, nil
	}))

	src, err := r.Create(context.Background(), domain.ConfigProfile{Name: "a", Source: "stub"})
	require.NoError(t, err)
	assert.Equal(t, "a", src.Name())

	_, err = r.Create(context.Background(), domain.ConfigProfile{Name: "b", Source: "ftp"})
	assert.True(t, errors.Is(err, ErrUnknownSource))

	_, err = r.Create(context.Background(), domain.ConfigProfile{
		Name: "c", Source: "stub", Settings: map[string]string{"fail": "1"},
	})
	assert.EqualError(t, err, "failed to create stub source for profile c: boom")
}

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry(FetchOptions{PageLimit: 50, MaxRetries: 1})
	require.NoError(t, err)

	assert.Equal(t, []domain.SourceType{
		domain.SourceDatabricks, domain.SourceFile, domain.SourceMonday, domain.SourceS3, domain.SourceSnowflake,
	}, r.ListSources())
}

func TestDefaultFactories(t *testing.T) {
	r, err := NewDefaultRegistry(FetchOptions{PageLimit: 50})
	require.NoError(t, err)
	ctx := context.Background()

	exportPath := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(exportPath, []byte("[]"), 0o600))

	tests := []struct {
		name     string
		profile  domain.ConfigProfile
		wantName string
		wantErr  bool
	}{
		{
			name:     "monday",
			profile:  domain.ConfigProfile{Name: "sales", Source: domain.SourceMonday, Settings: map[string]string{"api_key": "k"}},
			wantName: monday.SourceName,
		},
		{
			name:    "monday without key",
			profile: domain.ConfigProfile{Name: "sales", Source: domain.SourceMonday, Settings: map[string]string{}},
			wantErr: true,
		},
		{
			name: "monday with bad page limit",
			profile: domain.ConfigProfile{Name: "sales", Source: domain.SourceMonday, Settings: map[string]string{
				"api_key": "k", "page_limit": "many",
			}},
			wantErr: true,
		},
		{
			name:     "file",
			profile:  domain.ConfigProfile{Name: "archive", Source: domain.SourceFile, Settings: map[string]string{"path": exportPath}},
			wantName: monday.FileSourceName,
		},
		{
			name:    "file without path",
			profile: domain.ConfigProfile{Name: "archive", Source: domain.SourceFile, Settings: map[string]string{}},
			wantErr: true,
		},
		{
			name: "databricks",
			profile: domain.ConfigProfile{Name: "mirror", Source: domain.SourceDatabricks, Settings: map[string]string{
				"token": "t", "host": "adb.example.net", "http_path": "/sql/1.0/warehouses/x",
			}},
			wantName: warehouse.DriverDatabricks,
		},
		{
			name:    "snowflake without account",
			profile: domain.ConfigProfile{Name: "mirror", Source: domain.SourceSnowflake, Settings: map[string]string{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := r.Create(ctx, tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, src)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, src.Name())
		})
	}
}
