// Package config loads harness configuration from file, environment,
// and defaults via viper.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/soundprediction/kinship/pkg/gentree"
	"github.com/soundprediction/kinship/pkg/graphdb"
	"github.com/soundprediction/kinship/pkg/treestore"
)

// Config holds all configuration for the harness.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Store configuration
	Store treestore.Config `mapstructure:"store"`

	// Generation configuration
	Generation GenerationConfig `mapstructure:"generation"`

	// Neo4j export configuration
	Neo4j graphdb.Config `mapstructure:"neo4j"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// GenerationConfig holds the batch-generation grid: one dataset is
// produced per (generations x multiplier x edition) combination, with
// node count = generations * multiplier.
type GenerationConfig struct {
	Generations []int  `mapstructure:"generations"`
	Multipliers []int  `mapstructure:"multipliers"`
	Editions    int    `mapstructure:"editions"`
	Retries     int    `mapstructure:"retries"`
	Seed        int64  `mapstructure:"seed"` // 0 means time-seeded
	NamePool    string `mapstructure:"name_pool"`
}

// Params expands the grid into concrete builder parameters.
func (g GenerationConfig) Params() []gentree.Params {
	var out []gentree.Params
	for _, gen := range g.Generations {
		for _, mult := range g.Multipliers {
			out = append(out, gentree.Params{
				Generations: gen,
				Nodes:       gen * mult,
				Retries:     g.Retries,
			})
		}
	}
	return out
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("store.backend", "fs")
	viper.SetDefault("store.path", "./data")

	// The original benchmark grid: depths 4-7, node counts 3x-7x depth,
	// three editions each.
	viper.SetDefault("generation.generations", []int{4, 5, 6, 7})
	viper.SetDefault("generation.multipliers", []int{3, 4, 5, 6, 7})
	viper.SetDefault("generation.editions", 3)
	viper.SetDefault("generation.retries", gentree.DefaultRetries)

	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
}

// overrideWithEnv overrides config with environment variables.
func overrideWithEnv(config *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Neo4j.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Neo4j.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Neo4j.Password = pass
	}

	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		config.Store.Backend = treestore.Backend(backend)
	}
	if path := os.Getenv("STORE_PATH"); path != "" {
		config.Store.Path = path
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
}
