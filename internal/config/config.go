package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	commoncfg "homecare-admin/internal/common/config"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStateDir   = "./data"
	DefaultDBFileName = "homecare.db"
)

// Config homecare-admin（HTTP API）配置
type Config struct {
	ServiceName string `yaml:"service_name"`
	StateDir    string `yaml:"state_dir"`
	HTTP        struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Database commoncfg.DatabaseConfig `yaml:"database"`
	Redis    commoncfg.RedisConfig    `yaml:"redis"`
	Log      struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Flash struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"flash"`
}

func defaults() *Config {
	cfg := &Config{ServiceName: "homecare-admin", StateDir: DefaultStateDir}
	cfg.HTTP.Addr = ":8080"
	cfg.Database.Port = 5432
	cfg.Database.SSLMode = "disable"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Flash.TTL = 5 * time.Minute
	return cfg
}

// Load resolves configuration from, in increasing precedence: defaults, the YAML file named by
// --config or CONFIG_FILE, a .env file, the environment and finally command-line flags.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("homecare-admin", pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to a YAML configuration file (overrides $CONFIG_FILE)")
	httpAddr := fs.String("http-addr", "", "HTTP listen address (overrides $HTTP_ADDR)")
	dbDSN := fs.String("db-dsn", "", "database DSN: postgres URL/key-value DSN or SQLite file path (overrides $DB_DSN)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides $LOG_LEVEL)")
	logFormat := fs.String("log-format", "", "json or console (overrides $LOG_FORMAT)")
	redisAddr := fs.String("redis-addr", "", "Redis address; setting it enables Redis-backed flash notices")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// .env 文件可选
	_ = godotenv.Load()

	cfg := defaults()

	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if *httpAddr != "" {
		cfg.HTTP.Addr = *httpAddr
	}
	if *dbDSN != "" {
		cfg.Database.DSN = *dbDSN
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *redisAddr != "" {
		cfg.Redis.Addr = *redisAddr
		cfg.Redis.Enabled = true
	}

	// 没有 DSN 也没有 DB_HOST：默认 SQLite
	if cfg.Database.GetDSN() == "" {
		cfg.Database.DSN = filepath.Join(cfg.StateDir, DefaultDBFileName)
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.StateDir = getEnv("STATE_DIR", c.StateDir)
	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	c.Database.LoadFromEnv("DB")
	c.Redis.LoadFromEnv("REDIS")
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	if ttl := os.Getenv("FLASH_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Flash.TTL = d
		} else if secs, err := strconv.Atoi(ttl); err == nil {
			c.Flash.TTL = time.Duration(secs) * time.Second
		}
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
