package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tieubaoca/docqa-be/types"
)

type Config struct {
	Port          string                   `mapstructure:"port"`
	AIProvider    string                   `mapstructure:"ai_provider"`
	AIEndpoint    string                   `mapstructure:"ai_endpoint"`
	Model         string                   `mapstructure:"model"`
	FastModel     string                   `mapstructure:"fast_model"`
	OpenAIAPIKey  string                   `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey  string                   `mapstructure:"GEMINI_API_KEY"`
	MongoURI      string                   `mapstructure:"MONGODB_URI"`
	MongoDatabase string                   `mapstructure:"mongo_database"`
	StorageDir    string                   `mapstructure:"storage_dir"`
	Query         types.QueryServiceConfig `mapstructure:"query"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("MONGODB_URI")

	// Zero is a meaningful temperature, so the default lives in viper
	// where an explicit 0 in the config file overrides it.
	v.SetDefault("query.temperature", types.DefaultQueryServiceConfig.Temperature)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	applyDefaults(&config)

	return &config, nil
}

// applyDefaults fills unset fields so a minimal config file still yields
// a runnable service.
func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.AIProvider == "" {
		c.AIProvider = "openai"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "docqa"
	}
	if c.StorageDir == "" {
		c.StorageDir = "uploads"
	}
	d := types.DefaultQueryServiceConfig
	q := &c.Query
	if q.ChunkSize <= 0 {
		q.ChunkSize = d.ChunkSize
	}
	if q.ChunkPreviewSize <= 0 {
		q.ChunkPreviewSize = d.ChunkPreviewSize
	}
	if q.ExcerptSize <= 0 {
		q.ExcerptSize = d.ExcerptSize
	}
	if q.MaxChunksPerDocument <= 0 {
		q.MaxChunksPerDocument = d.MaxChunksPerDocument
	}
	if q.MaxDocumentsSampled <= 0 {
		q.MaxDocumentsSampled = d.MaxDocumentsSampled
	}
	if q.MaxExcerptsPerDocument <= 0 {
		q.MaxExcerptsPerDocument = d.MaxExcerptsPerDocument
	}
	if q.MaxExcerpts <= 0 {
		q.MaxExcerpts = d.MaxExcerpts
	}
	if q.DocumentContentLimit <= 0 {
		q.DocumentContentLimit = d.DocumentContentLimit
	}
	if q.CombinedContentLimit <= 0 {
		q.CombinedContentLimit = d.CombinedContentLimit
	}
	if q.MaxAnswerTokens <= 0 {
		q.MaxAnswerTokens = d.MaxAnswerTokens
	}
	if q.MaxRelevanceTokens <= 0 {
		q.MaxRelevanceTokens = d.MaxRelevanceTokens
	}
}
