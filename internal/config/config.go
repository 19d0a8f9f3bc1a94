package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Dojo   DojoConfig   `mapstructure:"dojo" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DojoConfig contains the drill session bounds.
type DojoConfig struct {
	// QuestionCap is the maximum number of answers in one session.
	QuestionCap int `mapstructure:"question_cap" validate:"required,gt=0"`
	// XPStreakInterval is the consecutive-correct run length that earns XP.
	XPStreakInterval int `mapstructure:"xp_streak_interval" validate:"required,gt=0"`
}

// LLMConfig contains the Gemini answer-validator settings. An empty API key
// disables the validator; sessions then grade free-text answers by exact
// match only.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
