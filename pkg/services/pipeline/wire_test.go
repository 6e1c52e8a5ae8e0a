package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/DLICWCPA/monday-report-app/pkg/config"
	"github.com/DLICWCPA/monday-report-app/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig_FileProfile(t *testing.T) {
	// Given
	dir := t.TempDir()
	export := filepath.Join(dir, "board.json")
	require.NoError(t, os.WriteFile(export, []byte(`[
		{"id": "1", "name": "Alpha", "column_values": [
			{"text": "2024-01-05", "column": {"title": "Deal creation date"}},
			{"text": "Active", "column": {"title": "Group Status"}},
			{"text": "Hot", "column": {"title": "Potential"}},
			{"text": "brazil", "column": {"title": "Country/Region"}}
		]}
	]`), 0o600))
	profiles := filepath.Join(dir, "profiles.ini")
	require.NoError(t, os.WriteFile(profiles, []byte("[archive]\nsource = file\npath = "+export+"\n"), 0o600))

	t.Setenv("HOME", dir)
	cfg, err := appconfig.LoadConfig("")
	require.NoError(t, err)
	cfg.Profiles.Path = profiles
	cfg.Profiles.Default = "archive"

	svc, err := NewFromConfig(cfg)
	require.NoError(t, err)

	// When
	rep, err := svc.Run(context.Background(), "", testWindow(t))

	// Then
	require.NoError(t, err)
	require.Len(t, rep.Data.Enquiries, 1)
	assert.Equal(t, "Alpha", rep.Data.Enquiries[0].Name)
	assert.True(t, rep.Data.Enquiries[0].Flags.IsHot)

	names, err := svc.Profiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"archive"}, names)
}

func TestNewFromConfig_MissingProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := appconfig.LoadConfig("")
	require.NoError(t, err)

	svc, err := NewFromConfig(cfg)
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), "nope", testWindow(t))
	assert.ErrorIs(t, err, config.ErrUnknownProfile)
}
