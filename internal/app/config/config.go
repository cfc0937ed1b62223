package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"coalo/go_backend/internal/domain/quote"
)

const (
	SequenceFile     = "file"
	SequenceMemory   = "memory"
	SequenceSQLite   = "sqlite"
	SequencePostgres = "postgres"
	SequenceRedis    = "redis"

	ArchiveNone = "none"
	ArchiveFS   = "fs"
	ArchiveS3   = "s3"
)

type Config struct {
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	InternalToken    string
	CORSAllowOrigins []string

	SequenceBackend string
	SequenceFile    string
	SQLitePath      string
	DatabaseURL     string
	RedisURL        string

	ArchiveBackend       string
	ArchiveDir           string
	ArchiveRetention     time.Duration
	ArchivePruneSchedule string
	S3Bucket             string
	S3Region             string
	S3Endpoint           string
	S3AccessKey          string
	S3SecretKey          string
	S3Prefix             string

	LogoPath           string
	IncludeFeatures    bool
	ContactSubmitDelay time.Duration

	Profile quote.Profile
}

// MustLoad reads the environment and exits the process on any error.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	return cfg
}

func Load() (Config, error) {
	var errs []error
	cfg := Config{
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		LogLevel:         env("LOG_LEVEL", "info"),
		LogFormat:        env("LOG_FORMAT", "text"),
		InternalToken:    mustEnv("INTERNAL_TOKEN", &errs),
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		SequenceBackend: strings.ToLower(env("SEQUENCE_BACKEND", SequenceFile)),
		SequenceFile:    env("SEQUENCE_FILE", "data/quote_sequence"),
		SQLitePath:      env("SQLITE_PATH", "data/coalo.db"),
		DatabaseURL:     env("DATABASE_URL", ""),
		RedisURL:        env("REDIS_URL", "redis://127.0.0.1:6379/0"),

		ArchiveBackend:       strings.ToLower(env("ARCHIVE_BACKEND", ArchiveNone)),
		ArchiveDir:           env("ARCHIVE_DIR", "data/quotes"),
		ArchiveRetention:     envDuration("ARCHIVE_RETENTION", 90*24*time.Hour, &errs),
		ArchivePruneSchedule: env("ARCHIVE_PRUNE_SCHEDULE", "@daily"),
		S3Bucket:             env("S3_BUCKET", ""),
		S3Region:             env("S3_REGION", "af-south-1"),
		S3Endpoint:           env("S3_ENDPOINT", ""),
		S3AccessKey:          env("S3_ACCESS_KEY", ""),
		S3SecretKey:          env("S3_SECRET_KEY", ""),
		S3Prefix:             env("S3_PREFIX", "quotes"),

		LogoPath:           env("QUOTE_LOGO_PATH", ""),
		IncludeFeatures:    envBool("QUOTE_INCLUDE_FEATURES", true, &errs),
		ContactSubmitDelay: envDuration("CONTACT_SUBMIT_DELAY", 0, &errs),
	}

	switch cfg.SequenceBackend {
	case SequenceFile, SequenceMemory, SequenceSQLite, SequenceRedis:
	case SequencePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("missing env DATABASE_URL (required by SEQUENCE_BACKEND=postgres)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SEQUENCE_BACKEND %q", cfg.SequenceBackend))
	}

	switch cfg.ArchiveBackend {
	case ArchiveNone, ArchiveFS:
	case ArchiveS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, errors.New("missing env S3_BUCKET (required by ARCHIVE_BACKEND=s3)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ARCHIVE_BACKEND %q", cfg.ArchiveBackend))
	}

	if cfg.ContactSubmitDelay < 0 || cfg.ContactSubmitDelay > 10*time.Second {
		errs = append(errs, fmt.Errorf("CONTACT_SUBMIT_DELAY must be between 0 and 10s, got %s", cfg.ContactSubmitDelay))
	}

	if path := env("COMPANY_PROFILE", ""); path != "" {
		p, err := LoadProfile(path)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.Profile = p
	}

	return cfg, errors.Join(errs...)
}

// LoadProfile reads a YAML company profile. Fields left out fall back to the
// built-in defaults when the engine merges it.
func LoadProfile(path string) (quote.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quote.Profile{}, fmt.Errorf("reading company profile %s: %w", path, err)
	}
	var p quote.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return quote.Profile{}, fmt.Errorf("parsing company profile %s: %w", path, err)
	}
	return p, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string, errs *[]error) string {
	v := os.Getenv(k)
	if v == "" {
		*errs = append(*errs, fmt.Errorf("missing env %s", k))
	}
	return v
}

func envList(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envDuration(k string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("env %s: %w", k, err))
		return def
	}
	return d
}

func envBool(k string, def bool, errs *[]error) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("env %s: %w", k, err))
		return def
	}
	return b
}
