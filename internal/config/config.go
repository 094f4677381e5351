// Package config loads coffee maker settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	MySQLDSN        string
	RedisAddr       string
	MachineID       string
	WorkerCount     int
	QueueSize       int
	LogLevel        string
	MenuFile        string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		GRPCAddr:        ":50051",
		MachineID:       "default",
		WorkerCount:     4,
		QueueSize:       1000,
		LogLevel:        "info",
		RateLimit:       100,
		RateBurst:       200,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads envFiles (".env" when none given) into the process environment
// without overriding variables that are already set, then builds a Config.
// Missing env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default for unset keys.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var err error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		n, perr := strconv.Atoi(v)
		if perr != nil || n < 0 {
			err = fmt.Errorf("%s: invalid non-negative integer %q", key, v)
			return
		}
		*dst = n
	}

	str("HTTP_ADDR", &cfg.HTTPAddr)
	str("GRPC_ADDR", &cfg.GRPCAddr)
	str("MYSQL_DSN", &cfg.MySQLDSN)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("MACHINE_ID", &cfg.MachineID)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("MENU_FILE", &cfg.MenuFile)
	integer("WORKER_COUNT", &cfg.WorkerCount)
	integer("QUEUE_SIZE", &cfg.QueueSize)
	integer("RATE_BURST", &cfg.RateBurst)

	if v, ok := lookup("RATE_LIMIT"); ok && v != "" && err == nil {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil || f < 0 {
			err = fmt.Errorf("RATE_LIMIT: invalid rate %q", v)
		} else {
			cfg.RateLimit = f
		}
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" && err == nil {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			err = fmt.Errorf("SHUTDOWN_TIMEOUT: %w", perr)
		} else {
			cfg.ShutdownTimeout = d
		}
	}

	if err != nil {
		return Config{}, err
	}
	if cfg.WorkerCount == 0 {
		return Config{}, errors.New("WORKER_COUNT must be at least 1")
	}
	return cfg, nil
}
