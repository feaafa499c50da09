package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/biomark-cli/internal/cluster"
)

// Config holds the pipeline configuration. The clustering seed lives here as
// explicit configuration rather than ambient global state.
type Config struct {
	InputPath  string `mapstructure:"input_path" yaml:"input_path"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	PlotsDir     string `mapstructure:"plots_dir" yaml:"plots_dir"`
	PlotsEnabled bool   `mapstructure:"plots_enabled" yaml:"plots_enabled"`

	Seed          int64 `mapstructure:"seed" yaml:"seed"`
	Clusters      int   `mapstructure:"clusters" yaml:"clusters"`
	Restarts      int   `mapstructure:"restarts" yaml:"restarts"`
	ElbowMaxK     int   `mapstructure:"elbow_max_k" yaml:"elbow_max_k"`
	MaxIterations int   `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// ClusterOptions maps the configuration onto clustering options.
func (c *Config) ClusterOptions() cluster.Options {
	return cluster.Options{
		K:             c.Clusters,
		Restarts:      c.Restarts,
		MaxIterations: c.MaxIterations,
		MaxK:          c.ElbowMaxK,
		Seed:          c.Seed,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.biomark/config.yaml, creating the directory if
// necessary.
func Save(c *Config, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".biomark")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIOMARK")
	v.AutomaticEnv()

	def := cluster.DefaultOptions()
	v.SetDefault("input_path", "athlete_biomarker_dataset.csv")
	v.SetDefault("output_path", "processed_athlete_biomarker_dataset.csv")
	v.SetDefault("plots_dir", "plots")
	v.SetDefault("plots_enabled", true)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("clusters", def.K)
	v.SetDefault("restarts", def.Restarts)
	v.SetDefault("elbow_max_k", def.MaxK)
	v.SetDefault("max_iterations", def.MaxIterations)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".biomark"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
