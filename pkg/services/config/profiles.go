package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const (
	// DefaultProfile is used when a request names no profile. It resolves to a monday profile built
	// from the environment when the file does not define it.
	DefaultProfile = "DEFAULT"

	// APIKeyEnv fills an empty api_key of monday profiles.
	APIKeyEnv = "MONDAY_API_KEY"

	keySource = "source"
	keyAPIKey = "api_key"
)

var ErrUnknownProfile = errors.New("unknown profile")

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads the profile file at path. A missing file yields an empty registry so the
// environment-only default profile keeps working.
func NewRegistry(path string) (Registry, error) {
	if path == "" {
		return &cfgRegistry{cfg: ini.Empty()}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &cfgRegistry{cfg: ini.Empty()}, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.ConfigProfile, error) {
	if name == "" {
		name = DefaultProfile
	}

	settings := make(map[string]string)
	section, err := cr.cfg.GetSection(name)
	switch {
	case err == nil:
		for _, key := range section.Keys() {
			settings[key.Name()] = strings.TrimSpace(key.String())
		}
	case name != DefaultProfile:
		return domain.ConfigProfile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}

	source := domain.SourceType(strings.ToLower(settings[keySource]))
	if source == "" {
		source = domain.SourceMonday
	}
	if source == domain.SourceMonday && settings[keyAPIKey] == "" {
		if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
			settings[keyAPIKey] = key
		}
	}
	delete(settings, keySource)

	return domain.ConfigProfile{Name: name, Source: source, Settings: settings}, nil
}
