package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Backend     BackendConfig     `yaml:"backend"`
	Logging     LoggingConfig     `yaml:"logging"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Timer       TimerConfig       `yaml:"timer"`
	Modules     ModulesConfig     `yaml:"modules"`
	Shell       ShellConfig       `yaml:"shell"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS для JSON-вызовов страницы
}

// BackendConfig points at the Done task server. Requests carry no timeout.
type BackendConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type PreferencesConfig struct {
	Path string `yaml:"path"` // файл с локальными настройками (звук)
}

type TimerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

type ModulesConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type ShellConfig struct {
	ServerExecutable string        `yaml:"server_executable"`
	WorkDir          string        `yaml:"work_dir"`
	StartPort        int           `yaml:"start_port"`
	ReadyAttempts    int           `yaml:"ready_attempts"`
	ReadyInterval    time.Duration `yaml:"ready_interval"`
	OpenBrowser      bool          `yaml:"open_browser"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           3002,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Backend: BackendConfig{
			URL: "http://localhost:3001",
		},
		Logging: LoggingConfig{
			Development: true,
		},
		Preferences: PreferencesConfig{
			Path: "done_preferences.json",
		},
		Timer: TimerConfig{
			TickInterval: time.Second,
		},
		Modules: ModulesConfig{
			CacheTTL: 300 * time.Millisecond,
		},
		Shell: ShellConfig{
			ServerExecutable: "./done",
			WorkDir:          ".",
			StartPort:        3001,
			ReadyAttempts:    30,
			ReadyInterval:    100 * time.Millisecond,
			OpenBrowser:      true,
		},
	}
}

// Load overlays path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend.url не задан")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port вне диапазона: %d", c.Server.Port)
	}
	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval должен быть положительным: %s", c.Timer.TickInterval)
	}
	if c.Modules.CacheTTL <= 0 {
		return fmt.Errorf("modules.cache_ttl должен быть положительным: %s", c.Modules.CacheTTL)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) GetServerURL() string {
	return "http://" + c.GetServerAddr()
}
