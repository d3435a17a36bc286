// Package cli wires the worldmind commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/worldmind-ai/worldmind/internal/cache"
	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
	"github.com/worldmind-ai/worldmind/internal/retrieve"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "worldmind",
	Short: "Worldmind - knowledge-graph claim licensing and epistemic evaluation",
	Long: `Worldmind audits claims against a knowledge graph, retrieves bounded
subgraph contexts, and evaluates prediction systems on epistemic test
cards.

A claim is licensed when the graph contains it (or, with constraints
configured, when adding it keeps the graph conformant). Unlicensed
claims are abstained from, never guessed at.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("worldmind v0.4.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.worldmind/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("graph", "", "knowledge graph Turtle file")
	rootCmd.PersistentFlags().String("constraints", "", "constraint shapes YAML file")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("graph.path", rootCmd.PersistentFlags().Lookup("graph"))
	_ = viper.BindPFlag("graph.constraints_path", rootCmd.PersistentFlags().Lookup("constraints"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.worldmind")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("WORLDMIND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults with the config file, environment and
// bound flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.Retrieval.RootType == "" {
		cfg.Retrieval.RootType = cfg.Graph.Namespace + "River"
	}
	return cfg, nil
}

// loadStore opens the configured Turtle graph
func loadStore(cfg *model.Config) (*graph.Store, error) {
	if cfg.Graph.Path == "" {
		return nil, fmt.Errorf("no graph configured (use --graph or graph.path)")
	}
	store, err := graph.NewStore(cfg.Graph.Path)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d triples from %s\n", store.Graph().Len(), cfg.Graph.Path)
	}
	return store, nil
}

// newRetriever builds the retriever with the configured cache tier
func newRetriever(cfg *model.Config, g *graph.Graph) *retrieve.Retriever {
	var tier cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			tier = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			tier = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}
	return retrieve.New(g, cfg.Retrieval, tier, cfg.Cache.TTL)
}
