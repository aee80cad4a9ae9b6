package config

// #region imports
import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/logging"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
)

// #endregion

// #region types

// Config is the process configuration for strategyd and its tools.
type Config struct {
	Engine  EngineConfig         `mapstructure:"engine" yaml:"engine"`
	Storage StorageConfig        `mapstructure:"storage" yaml:"storage"`
	Server  ServerConfig         `mapstructure:"server" yaml:"server"`
	Logging logging.LoggerConfig `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig selects the clip policy and optional data files. Empty file
// paths mean the built-in records.
type EngineConfig struct {
	ClipPolicy    string `mapstructure:"clip_policy" yaml:"clip_policy"`
	CatalogFile   string `mapstructure:"catalog_file" yaml:"catalog_file"`
	TemplatesFile string `mapstructure:"templates_file" yaml:"templates_file"`
	BaselinesFile string `mapstructure:"baselines_file" yaml:"baselines_file"`
}

// StorageConfig controls the plan provenance log.
type StorageConfig struct {
	DBPath      string `mapstructure:"db_path" yaml:"db_path"`
	RecordPlans bool   `mapstructure:"record_plans" yaml:"record_plans"`
}

// ServerConfig holds listener addresses. An empty metrics address disables
// the metrics listener.
type ServerConfig struct {
	GRPCAddr    string `mapstructure:"grpc_addr" yaml:"grpc_addr"`
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`
}

// #endregion

// #region defaults

// EnvPrefix prefixes environment overrides, e.g. STRATEGY_ENGINE_CLIP_POLICY.
const EnvPrefix = "STRATEGY"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			ClipPolicy: string(scoring.ClipEachStage),
		},
		Storage: StorageConfig{
			DBPath:      "strategy.db",
			RecordPlans: true,
		},
		Server: ServerConfig{
			GRPCAddr:    ":50061",
			MetricsAddr: ":9461",
		},
		Logging: logging.LoggerConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("engine.clip_policy", d.Engine.ClipPolicy)
	v.SetDefault("engine.catalog_file", d.Engine.CatalogFile)
	v.SetDefault("engine.templates_file", d.Engine.TemplatesFile)
	v.SetDefault("engine.baselines_file", d.Engine.BaselinesFile)
	v.SetDefault("storage.db_path", d.Storage.DBPath)
	v.SetDefault("storage.record_plans", d.Storage.RecordPlans)
	v.SetDefault("server.grpc_addr", d.Server.GRPCAddr)
	v.SetDefault("server.metrics_addr", d.Server.MetricsAddr)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// #endregion

// #region load

// Load reads configuration from path (or ./strategy.yaml when path is empty),
// then applies STRATEGY_* environment overrides. A missing default file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("strategy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := scoring.ParseClipPolicy(c.Engine.ClipPolicy); err != nil {
		return fmt.Errorf("engine.clip_policy: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Storage.RecordPlans && c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required when record_plans is set")
	}
	return nil
}

// WriteFile writes c as YAML to path.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// #endregion

// #region engine-wiring

// BuildEngine loads the catalog, templates and baselines named by the engine
// section, falling back to the built-ins for empty paths.
func (c *Config) BuildEngine() (*catalog.Catalog, engine.Config, error) {
	ec := engine.DefaultConfig()

	policy, err := scoring.ParseClipPolicy(c.Engine.ClipPolicy)
	if err != nil {
		return nil, ec, err
	}
	ec.ClipPolicy = policy

	cat := catalog.Default()
	if c.Engine.CatalogFile != "" {
		if cat, err = catalog.LoadFile(c.Engine.CatalogFile); err != nil {
			return nil, ec, err
		}
	}
	if c.Engine.TemplatesFile != "" {
		if ec.Templates, err = plan.LoadTemplates(c.Engine.TemplatesFile); err != nil {
			return nil, ec, err
		}
	}
	if c.Engine.BaselinesFile != "" {
		if ec.Baselines, err = analysis.LoadBaselines(c.Engine.BaselinesFile); err != nil {
			return nil, ec, err
		}
	}
	return cat, ec, nil
}

// #endregion
