package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/layout"
	"github.com/matzehuels/tilewire/pkg/pipeline"
	"github.com/matzehuels/tilewire/pkg/server"
)

// configFile is the file name looked up in the config directory.
const configFile = "config.toml"

// Config is the optional config file. Command-line flags override it.
//
//	[route]
//	margin = 20
//	selected_color = "#0078D7"
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl = "72h"
type Config struct {
	Route  RouteConfig  `toml:"route"`
	Render RenderConfig `toml:"render"`
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

type RouteConfig struct {
	Margin         float64 `toml:"margin"`
	Zoom           float64 `toml:"zoom"`
	Color          string  `toml:"color"`
	SelectedColor  string  `toml:"selected_color"`
	HighlightColor string  `toml:"highlight_color"`
	Thickness      float64 `toml:"thickness"`
}

type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Width      float64  `toml:"width"`
	Height     float64  `toml:"height"`
	Scale      float64  `toml:"scale"`
	Background string   `toml:"background"`
}

type LayoutConfig struct {
	Engine  string  `toml:"engine"`
	RankDir string  `toml:"rankdir"`
	NodeSep float64 `toml:"nodesep"`
	RankSep float64 `toml:"ranksep"`
}

type CacheConfig struct {
	Disabled  bool     `toml:"disabled"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       duration `toml:"ttl"`
}

type StoreConfig struct {
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration reads Go duration strings such as "90m".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Store:  StoreConfig{MongoDatabase: appName},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options converts the config into pipeline options. Zero values are left
// for ValidateAndSetDefaults to fill.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Layout: layout.Options{
			Engine:  c.Layout.Engine,
			RankDir: c.Layout.RankDir,
			NodeSep: c.Layout.NodeSep,
			RankSep: c.Layout.RankSep,
		},
		Zoom:           c.Route.Zoom,
		Margin:         c.Route.Margin,
		Color:          c.Route.Color,
		SelectedColor:  c.Route.SelectedColor,
		HighlightColor: c.Route.HighlightColor,
		Thickness:      c.Route.Thickness,
		Formats:        append([]string(nil), c.Render.Formats...),
		Width:          c.Render.Width,
		Height:         c.Render.Height,
		Scale:          c.Render.Scale,
		Background:     c.Render.Background,
	}
}
