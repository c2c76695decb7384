package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Spotify    SpotifyConfig    `yaml:"spotify"`
	Genius     GeniusConfig     `yaml:"genius"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Material   MaterialConfig   `yaml:"material"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrationsDir   string        `yaml:"migrations_dir"     env:"DATABASE_MIGRATIONS_DIR"     env-default:"./migrations"`
}

// SpotifyConfig holds catalog API credentials and endpoints.
type SpotifyConfig struct {
	ClientID     string        `yaml:"client_id"     env:"SPOTIFY_CLIENT_ID"     env-required:"true"`
	ClientSecret string        `yaml:"client_secret" env:"SPOTIFY_CLIENT_SECRET" env-required:"true"`
	BaseURL      string        `yaml:"base_url"      env:"SPOTIFY_BASE_URL"      env-default:"https://api.spotify.com/v1"`
	TokenURL     string        `yaml:"token_url"     env:"SPOTIFY_TOKEN_URL"     env-default:"https://accounts.spotify.com/api/token"`
	Timeout      time.Duration `yaml:"timeout"       env:"SPOTIFY_TIMEOUT"       env-default:"10s"`
}

// GeniusConfig holds lyrics provider credentials and endpoints.
type GeniusConfig struct {
	AccessToken string        `yaml:"access_token" env:"GENIUS_ACCESS_TOKEN" env-required:"true"`
	BaseURL     string        `yaml:"base_url"     env:"GENIUS_BASE_URL"     env-default:"https://api.genius.com"`
	Timeout     time.Duration `yaml:"timeout"      env:"GENIUS_TIMEOUT"      env-default:"15s"`
}

// GeminiConfig holds generative content provider settings.
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key"  env:"GEMINI_API_KEY"  env-required:"true"`
	BaseURL string        `yaml:"base_url" env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/models"`
	Model   string        `yaml:"model"    env:"GEMINI_MODEL"    env-default:"gemini-2.0-flash"`
	Timeout time.Duration `yaml:"timeout"  env:"GEMINI_TIMEOUT"  env-default:"60s"`
}

// ClassifierConfig holds difficulty oracle settings. The oracle is an
// external scoring process invoked with the word list as its last argument.
type ClassifierConfig struct {
	Command string        `yaml:"command" env:"CLASSIFIER_COMMAND" env-default:"python3"`
	Script  string        `yaml:"script"  env:"CLASSIFIER_SCRIPT"  env-default:"./scripts/cefr_score.py"`
	Timeout time.Duration `yaml:"timeout" env:"CLASSIFIER_TIMEOUT" env-default:"30s"`
}

// MaterialConfig holds material generation settings.
type MaterialConfig struct {
	BatchSize int `yaml:"batch_size" env:"MATERIAL_BATCH_SIZE" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
