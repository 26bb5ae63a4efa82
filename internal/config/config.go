package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Generation GenerationConfig `yaml:"generation"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// GenerationConfig holds the duplicate-avoidance loop settings.
//
// MaxAttempts bounds generation calls per request; the final attempt is
// always accepted even if similar, trading novelty for bounded cost.
// ContextTitles caps how many prior titles are injected into the prompt,
// CheckTitles caps how many are fetched for the similarity check.
type GenerationConfig struct {
	MaxAttempts         int           `yaml:"max_attempts"         env:"GEN_MAX_ATTEMPTS"          env-default:"3"`
	SimilarityThreshold float64       `yaml:"similarity_threshold" env:"GEN_SIMILARITY_THRESHOLD"  env-default:"0.75"`
	QueueTTL            time.Duration `yaml:"queue_ttl"            env:"GEN_QUEUE_TTL"             env-default:"24h"`
	SweepInterval       time.Duration `yaml:"sweep_interval"       env:"GEN_SWEEP_INTERVAL"        env-default:"1h"`
	ContextTitles       int           `yaml:"context_titles"       env:"GEN_CONTEXT_TITLES"        env-default:"15"`
	CheckTitles         int           `yaml:"check_titles"         env:"GEN_CHECK_TITLES"          env-default:"50"`
	BaseTemperature     float64       `yaml:"base_temperature"     env:"GEN_BASE_TEMPERATURE"      env-default:"0.85"`
	MaxTokens           int           `yaml:"max_tokens"           env:"GEN_MAX_TOKENS"            env-default:"200"`
}

// OpenAIConfig holds settings for the OpenAI-compatible generation service.
type OpenAIConfig struct {
	BaseURL string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	APIKey  string        `yaml:"api_key"  env:"OPENAI_API_KEY"  env-required:"true"`
	Model   string        `yaml:"model"    env:"OPENAI_MODEL"    env-default:"gpt-4o-mini"`
	Timeout time.Duration `yaml:"timeout"  env:"OPENAI_TIMEOUT"  env-default:"60s"`
}
