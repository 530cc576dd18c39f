package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr" env:"BLOG_ADDR" env-default:":4000"`
	} `yaml:"server"`

	UI struct {
		HTMLDir   string `yaml:"html_dir" env:"BLOG_HTML_DIR" env-default:"./ui/html"`
		StaticDir string `yaml:"static_dir" env:"BLOG_STATIC_DIR" env-default:"./ui/static"`
	} `yaml:"ui"`

	Database struct {
		// DSN is passed straight to the sqlite driver, so pragmas go here.
		DSN string `yaml:"dsn" env:"BLOG_DSN" env-default:"./blog.db?_foreign_keys=on"`
	} `yaml:"database"`

	Auth struct {
		// AdminUserID marks the single account allowed to manage posts,
		// comments and the contact inbox. Defaults to the first registered user.
		AdminUserID     int `yaml:"admin_user_id" env:"BLOG_ADMIN_USER_ID" env-default:"1"`
		SessionTTLHours int `yaml:"session_ttl_hours" env:"BLOG_SESSION_TTL_HOURS" env-default:"24"`
	} `yaml:"auth"`
}

// Load reads the config file named by CONFIG_PATH or the -config flag.
// Without a file, environment variables and defaults apply, so the binary
// runs with no configuration at all.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		configFlag := flag.String("config", "", "Path to configuration file")
		flag.Parse()
		path = *configFlag
	}

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &cfg, nil
}
