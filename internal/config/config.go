package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/errors"
)

type ServerConfig struct {
	Port      string `toml:"port"`
	CacheSize int    `toml:"cache_size"`
}

type DataConfig struct {
	RecordsPath string `toml:"records_path"`
	CatalogPath string `toml:"catalog_path"`
	Watch       bool   `toml:"watch"`
	DebounceMS  int    `toml:"debounce_ms"`
}

type DefaultsConfig struct {
	YearMin             int      `toml:"year_min"`
	YearMax             int      `toml:"year_max"`
	MinRSTheoretical    float64  `toml:"min_rs_theoretical"`
	MinRSMethodological float64  `toml:"min_rs_methodological"`
	MinRSCross          float64  `toml:"min_rs_cross"`
	TopN                int      `toml:"top_n"`
	Categories          []string `toml:"categories"`
	Window              string   `toml:"window"`
	Tau                 float64  `toml:"tau"`
	ClusterK            int      `toml:"cluster_k"`
	CombinationK        int      `toml:"combination_k"`
	Communities         string   `toml:"communities"`
}

type ConcurrencyConfig struct {
	Aggregate int `toml:"aggregate"`
}

type LogConfig struct {
	JSON  bool   `toml:"json"`
	Level string `toml:"level"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Data        DataConfig        `toml:"data"`
	Defaults    DefaultsConfig    `toml:"defaults"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Log         LogConfig         `toml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	p := model.DefaultParams()
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, c.String())
	}
	return &Config{
		Server: ServerConfig{Port: "8080", CacheSize: 128},
		Data: DataConfig{
			RecordsPath: "data/records.csv",
			CatalogPath: "data/catalog.csv",
			Watch:       true,
			DebounceMS:  150,
		},
		Defaults: DefaultsConfig{
			YearMin:      p.YearMin,
			YearMax:      p.YearMax,
			TopN:         p.TopN,
			Categories:   cats,
			Window:       p.Window,
			Tau:          p.Tau,
			ClusterK:     p.ClusterK,
			CombinationK: p.CombinationK,
			Communities:  p.Communities,
		},
		Concurrency: ConcurrencyConfig{Aggregate: 3},
		Log:         LogConfig{Level: "info"},
	}
}

// Load reads a TOML file on top of Default, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}

	return cfg, nil
}

// ApplyEnv overrides selected settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("RECORDS_PATH"); v != "" {
		c.Data.RecordsPath = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		c.Data.CatalogPath = v
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.JSON = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Params converts the configured defaults into a pipeline parameter bundle.
func (c *Config) Params() (model.Params, error) {
	d := c.Defaults
	p := model.Params{
		YearMin:      d.YearMin,
		YearMax:      d.YearMax,
		TopN:         d.TopN,
		Window:       d.Window,
		Tau:          d.Tau,
		ClusterK:     d.ClusterK,
		CombinationK: d.CombinationK,
		Communities:  d.Communities,
	}
	p.MinRS[model.Theoretical] = d.MinRSTheoretical
	p.MinRS[model.Methodological] = d.MinRSMethodological
	p.MinRS[model.Cross] = d.MinRSCross
	for _, name := range d.Categories {
		cat, err := model.ParseCategory(name)
		if err != nil {
			return model.Params{}, errors.Wrap(errors.ErrInvalidParams, err.Error())
		}
		p.Categories = append(p.Categories, cat)
	}
	return p, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port must be set")
	}
	if strings.TrimSpace(c.Data.RecordsPath) == "" {
		return errors.WithHint(errors.New("data.records_path must be set"), "set RECORDS_PATH or data.records_path")
	}
	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := ValidateParams(p); err != nil {
		return errors.Wrap(err, "defaults")
	}
	return nil
}

// Tau bounds accepted from callers.
const (
	MinTau = 0.10
	MaxTau = 0.90
)

// ValidateParams checks a bundle coming from outside the core.
func ValidateParams(p model.Params) error {
	switch {
	case p.YearMin > p.YearMax:
		return errors.Wrapf(errors.ErrInvalidParams, "year_min %d after year_max %d", p.YearMin, p.YearMax)
	case p.Tau < MinTau || p.Tau > MaxTau:
		return errors.Wrapf(errors.ErrInvalidParams, "tau %.2f outside [%.2f, %.2f]", p.Tau, MinTau, MaxTau)
	case p.TopN < 1:
		return errors.Wrapf(errors.ErrInvalidParams, "top_n %d must be at least 1", p.TopN)
	case strings.TrimSpace(p.Window) == "":
		return errors.Wrap(errors.ErrInvalidParams, "citation window must be set")
	}
	for _, v := range p.MinRS {
		if v < 0 {
			return errors.Wrapf(errors.ErrInvalidParams, "negative RS threshold %g", v)
		}
	}
	switch p.Communities {
	case "", model.CommunityLPA, model.CommunityComponents, model.CommunityNone:
	default:
		return errors.Wrapf(errors.ErrInvalidParams, "unknown community method %q", p.Communities)
	}
	return nil
}
