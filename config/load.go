package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// DefaultFilenames lists config file names looked up in a project directory
var DefaultFilenames = []string{".interlinked.yaml", ".interlinked.yml", ".interlinked.toml"}

// Load reads config from URL, the format is chosen by extension, keys absent in the file keep defaults
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	return Parse(URL, data)
}

// Parse decodes config data, name is only used to detect format
func Parse(name string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config %s: %w", name, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover returns config loaded from the first default file found in baseURL, or defaults
func Discover(ctx context.Context, fs afs.Service, baseURL string) (*Config, string, error) {
	for _, name := range DefaultFilenames {
		URL := strings.TrimRight(baseURL, "/") + "/" + name
		ok, err := fs.Exists(ctx, URL)
		if err != nil || !ok {
			continue
		}
		cfg, err := Load(ctx, fs, URL)
		return cfg, URL, err
	}
	return DefaultConfig(), "", nil
}
