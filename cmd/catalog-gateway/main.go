// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catalog-gateway CLI, the
// resilient access layer in front of the Ethnos catalog API. Each
// surface of the catalog is a subcommand: search, live, homepage,
// works, persons, venues, organizations, ppgas, and stats.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/catalog-gateway/internal/cache"
	"github.com/pdiddy/catalog-gateway/internal/gateway"
	"github.com/pdiddy/catalog-gateway/internal/logging"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultBaseURL points at a local catalog API instance; deployments
// override it via config or CATALOG_GATEWAY_UPSTREAM_BASE_URL.
const defaultBaseURL = "http://localhost:3000"

// rootCmd is the base command for the catalog-gateway CLI.
var rootCmd = &cobra.Command{
	Use:   "catalog-gateway",
	Short: "Resilient gateway to the Ethnos academic catalog",
	Long: `catalog-gateway fronts the Ethnos catalog API with retries, outcome
classification, and read-through caching, and assembles the composite
views the catalog surfaces expose: search with engine fallback, the
homepage aggregate, work and venue detail, and the PPGAS program pages.

Every subcommand degrades rather than breaks: upstream faults resolve
to empty sections and documented fallback statistics.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catalog-gateway.yaml or ~/.config/catalog-gateway/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catalog-gateway")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catalog-gateway"))
		}
	}

	viper.SetEnvPrefix("CATALOG_GATEWAY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// gatewayConfig assembles the typed configuration from viper, filling
// unset values with the documented defaults.
func gatewayConfig() types.GatewayConfig {
	var cfg types.GatewayConfig

	cfg.Upstream.BaseURL = viper.GetString("upstream.base_url")
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = defaultBaseURL
	}
	cfg.Upstream.Timeout = viper.GetDuration("upstream.timeout")
	cfg.Upstream.UserAgent = viper.GetString("upstream.user_agent")
	cfg.Upstream.RetryBudget = viper.GetInt("upstream.retry_budget")
	cfg.Upstream.RequestsPerSecond = viper.GetFloat64("upstream.requests_per_second")

	cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	cfg.Cache.HomepageTTL = viper.GetDuration("cache.homepage_ttl")

	cfg.Search.PrimaryEngine = viper.GetString("search.primary_engine")
	cfg.Search.EnrichLimit = viper.GetInt("search.enrich_limit")
	cfg.Search.MaxLimit = viper.GetInt("search.max_limit")

	cfg.ApplyDefaults()
	return cfg
}

// stack wires the client, cache, and facade one subcommand run uses.
type stack struct {
	cfg     types.GatewayConfig
	log     zerolog.Logger
	cache   *cache.Cache
	gateway *gateway.Gateway
}

func newStack(cmd *cobra.Command) *stack {
	level := "info"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	log := logging.New(os.Stderr, level)

	cfg := gatewayConfig()
	client := upstream.NewClient(cfg.Upstream, log)
	c := cache.New()
	return &stack{
		cfg:     cfg,
		log:     log,
		cache:   c,
		gateway: gateway.New(client, c, cfg.Cache, log),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
