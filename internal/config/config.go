package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Config holds all configuration from environment variables. The two
// credentials are required: without them the process must not start polling.
type Config struct {
	Token   string `envconfig:"TELEGRAM_API_TOKEN" required:"true"`
	APIKey  string `envconfig:"COMPLETION_API_KEY" required:"true"`
	BaseURL string `envconfig:"COMPLETION_BASE_URL" default:"https://api.proxyapi.ru/openai/v1"`
	Model   string `envconfig:"COMPLETION_MODEL" default:"gpt-3.5-turbo"`

	// One bounded attempt per generation; timeout counts as a failure.
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"30s"`

	// Idle-session eviction settings.
	SessionTTL           time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1h"`

	// Path to config.toml file with prompt overrides.
	ConfigFile string `envconfig:"CONFIG_FILE" default:"config.toml"`

	// Prompts loaded from config.toml.
	Prompts Prompts
}

// Prompts holds the fixed prompt texts, overridable via config.toml.
type Prompts struct {
	System  string `toml:"system"`
	GoodDay string `toml:"good_day"`
}

// FileConfig represents the structure of config.toml.
type FileConfig struct {
	Prompts Prompts `toml:"prompts"`
}

// DefaultPrompts provides fallback prompts if config.toml is not found.
var DefaultPrompts = Prompts{
	System: "Ты позитивный ассистент.",
	GoodDay: "Создай креативное пожелание хорошего дня. " +
		"Ты не общаешься с пользователем, а просто выдаешь сформированное поздравление. " +
		"Прежде чем отправить поздравление - проверь правописание. " +
		"При формировании поздравления ты учитываешь, что выбрал пользователь ты/вы, " +
		"женщине/мужчине в контексте поздравления. " +
		"Поздравление должно быть законченным, учитывая максимальное количество символов ",
}

// LoadEnv loads the configuration from environment variables.
func (c Config) LoadEnv() (Config, error) {
	cfg := c

	if err := envconfig.Process("", &cfg); err != nil {
		return c, err
	}

	return cfg, nil
}

// LoadFile loads prompts from config.toml file.
func (c *Config) LoadFile() error {
	// Try to find config file
	configPath := c.ConfigFile
	if !filepath.IsAbs(configPath) {
		// Try current directory first
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			// Try executable directory
			execPath, err := os.Executable()
			if err == nil {
				execDir := filepath.Dir(execPath)
				configPath = filepath.Join(execDir, c.ConfigFile)
			}
		}
	}

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Use defaults if no config file
		c.Prompts = DefaultPrompts
		return nil
	}

	// Load TOML file
	var fileConfig FileConfig
	if _, err := toml.DecodeFile(configPath, &fileConfig); err != nil {
		return err
	}

	c.Prompts = fileConfig.Prompts

	// Use defaults for empty prompts
	if c.Prompts.System == "" {
		c.Prompts.System = DefaultPrompts.System
	}
	if c.Prompts.GoodDay == "" {
		c.Prompts.GoodDay = DefaultPrompts.GoodDay
	}

	return nil
}

func NewConfig() (*Config, error) {
	var cfg Config
	loadedCfg, err := cfg.LoadEnv()
	if err != nil {
		return nil, err
	}

	// Load prompts from config.toml
	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			NewConfig,
		),
	)
}
