package config

import "time"

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// SourceConfig represents the configuration for the alert source
type SourceConfig struct {
	Type           string
	ListenAddress  string
	ProcessTimeout time.Duration
	AutoExport     bool
}

// TriageConfig represents the configuration for the triage pipeline
type TriageConfig struct {
	ResellerAccountID string
}

// RosterConfig represents the configuration for the account roster
type RosterConfig struct {
	Path string
}

// LedgerConfig represents the configuration for the tracking ledger
type LedgerConfig struct {
	Type       string
	Enabled    bool
	SQLitePath string
	MySQLDSN   string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: c.GetFloat64("bedrock.temperature"),
		TopP:        c.GetFloat64("bedrock.top_p"),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		Model:       c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: c.GetFloat64("gemini.temperature"),
		TopP:        c.GetFloat64("gemini.top_p"),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		Model:       c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: c.GetFloat64("openai.temperature"),
		TopP:        c.GetFloat64("openai.top_p"),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetSource returns the alert source configuration
func (c *Config) GetSource() SourceConfig {
	timeout, err := c.GetDuration("source.process_timeout")
	if err != nil {
		timeout = 60 * time.Second
	}
	return SourceConfig{
		Type:           c.GetString("source.type"),
		ListenAddress:  c.GetString("source.listen_address"),
		ProcessTimeout: timeout,
		AutoExport:     c.GetBool("source.auto_export"),
	}
}

// GetTriage returns the triage pipeline configuration
func (c *Config) GetTriage() TriageConfig {
	return TriageConfig{
		ResellerAccountID: c.GetString("triage.reseller_account_id"),
	}
}

// GetRoster returns the account roster configuration
func (c *Config) GetRoster() RosterConfig {
	return RosterConfig{
		Path: c.GetString("roster.path"),
	}
}

// GetLedger returns the tracking ledger configuration
func (c *Config) GetLedger() LedgerConfig {
	return LedgerConfig{
		Type:       c.GetString("ledger.type"),
		Enabled:    c.GetBool("ledger.enabled"),
		SQLitePath: c.GetString("ledger.sqlite_path"),
		MySQLDSN:   c.GetString("ledger.mysql_dsn"),
	}
}
