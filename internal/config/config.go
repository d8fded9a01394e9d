package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	gormLogger "gorm.io/gorm/logger"

	"briefy/internal/utils"
)

type Config struct {
	AI        AIConfig        `mapstructure:"ai"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Keyring   KeyringConfig   `mapstructure:"keyring"`
	Prompts   PromptsConfig   `mapstructure:"prompts"`
	Export    ExportConfig    `mapstructure:"export"`
}

type AIConfig struct {
	Provider     string `mapstructure:"provider"`
	Model        string `mapstructure:"model"`
	GeminiKey    string `mapstructure:"gemini_key"`
	OpenAIKey    string `mapstructure:"openai_key"`
	AnthropicKey string `mapstructure:"anthropic_key"`
	MaxTokens    int    `mapstructure:"max_tokens"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type HTTPConfig struct {
	Addr        string `mapstructure:"addr"`
	CORSOrigins string `mapstructure:"cors_origins"`
	JWTSecret   string `mapstructure:"jwt_secret"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

type TelemetryConfig struct {
	Exporter    string `mapstructure:"exporter"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type KeyringConfig struct {
	Dir      string `mapstructure:"dir"`
	Password string `mapstructure:"password"`
}

type PromptsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type ExportConfig struct {
	FontPath string `mapstructure:"font_path"`
}

// envBindings maps each config key to the environment variables that can
// set it, in precedence order.
var envBindings = map[string][]string{
	"ai.provider":            {"AI_PROVIDER"},
	"ai.model":               {"AI_MODEL"},
	"ai.gemini_key":          {"GEMINI_API_KEY", "REACT_APP_GEMINI_API_KEY"},
	"ai.openai_key":          {"OPENAI_API_KEY"},
	"ai.anthropic_key":       {"ANTHROPIC_API_KEY"},
	"ai.max_tokens":          {"AI_MAX_TOKENS"},
	"database.url":           {"DATABASE_URL"},
	"database.path":          {"DB_PATH"},
	"database.log_level":     {"DB_LOG_LEVEL"},
	"redis.addr":             {"REDIS_ADDR"},
	"redis.password":         {"REDIS_PASSWORD"},
	"redis.db":               {"REDIS_DB"},
	"http.addr":              {"HTTP_ADDR"},
	"http.cors_origins":      {"CORS_ORIGINS"},
	"http.jwt_secret":        {"JWT_SECRET", "SUPABASE_JWT_SECRET"},
	"log.mode":               {"LOG_MODE"},
	"telemetry.exporter":     {"OTEL_EXPORTER"},
	"telemetry.endpoint":     {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"telemetry.service_name": {"OTEL_SERVICE_NAME"},
	"keyring.dir":            {"KEYRING_DIR"},
	"keyring.password":       {"KEYRING_PASSWORD"},
	"prompts.cache_ttl":      {"PROMPT_CACHE_TTL"},
	"export.font_path":       {"EXPORT_FONT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.max_tokens", 8192)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("log.mode", "dev")
	v.SetDefault("telemetry.exporter", "none")
	v.SetDefault("telemetry.service_name", "briefy")
	v.SetDefault("prompts.cache_ttl", 5*time.Minute)
}

// Load reads configuration from the environment (after .env files) and,
// when configFile is set, from a YAML file. Environment values win.
func Load(configFile string) (*Config, error) {
	if _, err := utils.LoadEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Prompts.CacheTTL <= 0 {
		cfg.Prompts.CacheTTL = 5 * time.Minute
	}
	return &cfg, nil
}

// APIKey returns the credential configured for the selected provider.
func (c *Config) APIKey() string {
	switch strings.ToLower(strings.TrimSpace(c.AI.Provider)) {
	case "openai":
		return strings.TrimSpace(c.AI.OpenAIKey)
	case "anthropic", "claude":
		return strings.TrimSpace(c.AI.AnthropicKey)
	default:
		return strings.TrimSpace(c.AI.GeminiKey)
	}
}

func (h HTTPConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(h.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (d DatabaseConfig) GormLogLevel() gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(d.LogLevel)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a configuration problem the process can run with, in a
// degraded mode.
type Diagnostic struct {
	Severity Severity
	Message  string
	Hint     string
}

// Diagnostics lists what is missing. keyringHasKey reports whether the
// keyring holds a credential for the selected provider.
func (c *Config) Diagnostics(keyringHasKey bool) []Diagnostic {
	var out []Diagnostic
	if c.APIKey() == "" && !keyringHasKey {
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Message:  fmt.Sprintf("nenhuma chave de API configurada para o provedor %q", c.AI.Provider),
			Hint:     "defina GEMINI_API_KEY no .env ou rode `briefy keys set gemini <chave>`",
		})
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		out = append(out, Diagnostic{
			Severity: SeverityWarning,
			Message:  "DATABASE_URL não definido; usando banco SQLite local",
			Hint:     "defina DATABASE_URL com a connection string do Postgres (Supabase)",
		})
	}
	if strings.TrimSpace(c.HTTP.JWTSecret) == "" {
		out = append(out, Diagnostic{
			Severity: SeverityWarning,
			Message:  "JWT_SECRET não definido; a API aceita requisições sem autenticação",
			Hint:     "defina JWT_SECRET com o segredo JWT do projeto Supabase",
		})
	}
	return out
}
