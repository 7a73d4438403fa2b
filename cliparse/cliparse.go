package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Supported database types
const (
	DatabasePostgres = "postgres"
	DatabaseMySQL    = "mysql"
	DatabaseSQLite   = "sqlite"
)

// DevSecretKey is the default flash signing secret. Only fit for local development.
const DevSecretKey = "dev"

type Config struct {
	Port         int    `yaml:"port"         envconfig:"PORT"`
	DatabaseURL  string `yaml:"databaseUrl"  envconfig:"DATABASE_URL"`
	DatabaseType string `yaml:"databaseType" envconfig:"DATABASE_TYPE"`
	DBHost       string `yaml:"dbHost"       envconfig:"DB_HOST"`
	DBPort       int    `yaml:"dbPort"       envconfig:"DB_PORT"`
	DBUser       string `yaml:"dbUser"       envconfig:"DB_USER"`
	DBPassword   string `yaml:"dbPassword"   envconfig:"DB_PASSWORD"`
	DBName       string `yaml:"dbName"       envconfig:"DB_NAME"`
	SecretKey    string `yaml:"secretKey"    envconfig:"SECRET_KEY"`
	UploadDir    string `yaml:"uploadDir"    envconfig:"UPLOAD_DIR"`
	UploadBucket string `yaml:"uploadBucket" envconfig:"UPLOAD_BUCKET"`
	GCSCredsFile string `yaml:"gcsCredentialsFile" envconfig:"GCS_CREDENTIALS_FILE"`
	LogFile      string `yaml:"logFile"      envconfig:"LOG_FILE"`
	LogLevel     string `yaml:"logLevel"     envconfig:"LOG_LEVEL"`
}

// Defaults returns a configuration usable for local development
func Defaults() Config {
	return Config{
		Port:         3318,
		DatabaseType: DatabaseMySQL,
		DBHost:       "localhost",
		DBPort:       3306,
		DBUser:       "votio",
		DBPassword:   "votio",
		DBName:       "votioDb",
		SecretKey:    DevSecretKey,
		UploadDir:    "uploads",
		LogLevel:     "info",
	}
}

// ParseFlags builds the configuration. Later layers win:
// defaults, YAML config file, .env file, environment, CLI flags.
func ParseFlags(args []string) (Config, error) {
	var flags Config
	var configFile, envFile string

	fs := flag.NewFlagSet("votio", flag.ContinueOnError)

	fs.StringVar(&configFile, "c", "", "YAML config file")
	fs.StringVar(&envFile, "env", ".env", "dotenv file (ignored if missing)")

	// Network config (can be CLI args or env)
	fs.IntVar(&flags.Port, "p", 0, "Server port")
	fs.StringVar(&flags.DatabaseURL, "d", "", "Database URL (overrides host/port/user/name)")
	fs.StringVar(&flags.DatabaseType, "t", "", "Database type (mysql, postgres or sqlite)")
	fs.StringVar(&flags.UploadDir, "uploads", "", "Upload directory")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&flags.SecretKey, "secret", "", "Flash signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if err := loadYAML(configFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Existing environment variables take precedence over the dotenv file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	// CLI overrides everything else
	if flags.Port != 0 {
		cfg.Port = flags.Port
	}
	if flags.DatabaseURL != "" {
		cfg.DatabaseURL = flags.DatabaseURL
	}
	if flags.DatabaseType != "" {
		cfg.DatabaseType = flags.DatabaseType
	}
	if flags.UploadDir != "" {
		cfg.UploadDir = flags.UploadDir
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.SecretKey != "" {
		cfg.SecretKey = flags.SecretKey
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks values that cannot be defaulted
func (c Config) Validate() error {
	switch c.DatabaseType {
	case DatabasePostgres, DatabaseMySQL, DatabaseSQLite:
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("invalid port")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY required")
	}
	if c.UploadDir == "" && c.UploadBucket == "" {
		return errors.New("UPLOAD_DIR or UPLOAD_BUCKET required")
	}
	return nil
}

// DSN returns the data source name for the configured driver.
// DatabaseURL is used verbatim when set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	switch c.DatabaseType {
	case DatabasePostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword),
			Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	case DatabaseSQLite:
		return SQLiteDSN(c.DBName + ".db")
	default:
		mc := mysql.NewConfig()
		mc.User = c.DBUser
		mc.Passwd = c.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
		mc.DBName = c.DBName
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
}

// SQLiteDSN returns a file DSN with foreign keys enforced and a busy timeout
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
