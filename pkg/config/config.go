package config

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
	Prefix       string `yaml:"prefix"`
}

// fileConfig is the optional YAML config file
type fileConfig struct {
	Storage string   `yaml:"storage"`
	S3      S3Config `yaml:"s3"`
}

type Config struct {
	Port           string
	DatabaseURL    string
	AppEnv         string
	StorageBackend string
	DefaultStoreID string
	AllowedOrigins []string
	RateLimit      int
	LogLevel       string
	LogFile        string
	S3             S3Config
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	configFile := getEnv("CONFIG_FILE", "config.yml")
	file, err := loadFile(configFile)
	if err != nil {
		log.Warnf("ignoring config file %s: %v", configFile, err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:affiliatehub.sqlite"),
		AppEnv:         getEnv("APP_ENV", "local"),
		StorageBackend: getEnv("STORAGE_BACKEND", orDefault(file.Storage, BackendSQLite)),
		DefaultStoreID: getEnv("DEFAULT_STORE_ID", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RateLimit:      getEnvInt("RATE_LIMIT", 120),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		S3: S3Config{
			Endpoint:     getEnv("S3_ENDPOINT", file.S3.Endpoint),
			Bucket:       getEnv("S3_BUCKET", file.S3.Bucket),
			Region:       getEnv("S3_REGION", orDefault(file.S3.Region, "us-east-1")),
			AccessKey:    getEnv("S3_ACCESS_KEY", file.S3.AccessKey),
			SecretKey:    getEnv("S3_SECRET_KEY", file.S3.SecretKey),
			UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", file.S3.UsePathStyle),
			Prefix:       getEnv("S3_PREFIX", file.S3.Prefix),
		},
	}
	return cfg
}

// loadFile reads the YAML config file. A missing file is not an error.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, err
	}
	return fc, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
