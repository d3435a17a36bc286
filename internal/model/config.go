package model

import "time"

// Config is the full runtime configuration, populated from defaults,
// ~/.worldmind/config.yaml, WORLDMIND_* environment variables and flags.
type Config struct {
	Graph       GraphConfig       `yaml:"graph" mapstructure:"graph"`
	Resolver    ResolverConfig    `yaml:"resolver" mapstructure:"resolver"`
	Retrieval   RetrievalConfig   `yaml:"retrieval" mapstructure:"retrieval"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// GraphConfig locates the knowledge graph and its constraint document
type GraphConfig struct {
	Path            string `yaml:"path" mapstructure:"path"`
	ConstraintsPath string `yaml:"constraints_path" mapstructure:"constraints_path"`
	Namespace       string `yaml:"namespace" mapstructure:"namespace"`
}

// ResolverConfig tunes label-to-entity linking
type ResolverConfig struct {
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
}

// RetrievalConfig tunes subgraph retrieval and rendering
type RetrievalConfig struct {
	MaxHops          int      `yaml:"max_hops" mapstructure:"max_hops"`
	MinTriples       int      `yaml:"min_triples" mapstructure:"min_triples"`
	RootType         string   `yaml:"root_type" mapstructure:"root_type"`
	AbstractPred     string   `yaml:"abstract_pred" mapstructure:"abstract_pred"`
	RelationPreds    []string `yaml:"relation_preds" mapstructure:"relation_preds"`
	AttributePreds   []string `yaml:"attribute_preds" mapstructure:"attribute_preds"`
	DomainNouns      []string `yaml:"domain_nouns" mapstructure:"domain_nouns"`
	AbstractMaxChars int      `yaml:"abstract_max_chars" mapstructure:"abstract_max_chars"`
}

// CacheConfig controls the retrieval context cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig sets worker counts for parallel evaluation
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles outbound LLM calls
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// LLMConfig configures the optional LLM prediction system
type LLMConfig struct {
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Path:      "data/knowledge_graph.ttl",
			Namespace: "http://worldmind.ai/rivers-v4#",
		},
		Resolver: ResolverConfig{
			FuzzyThreshold: 0.85,
		},
		Retrieval: RetrievalConfig{
			MaxHops:      3,
			MinTriples:   5,
			AbstractPred: "abstractText",
			RelationPreds: []string{
				"hasTributary", "flowsInto", "hasSource", "hasMouth",
			},
			AttributePreds: []string{
				"length", "discharge", "sourceElevation", "mouthElevation",
				"traverses", "hasMouth", "hasSource", "riverName",
			},
			DomainNouns:      []string{"River", "Creek", "Stream"},
			AbstractMaxChars: 500,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 16,
		},
		Output: OutputConfig{},
	}
}
