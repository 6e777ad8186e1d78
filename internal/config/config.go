// Package config reads server settings from the environment, after loading
// any .env file found in the working directory or its parents.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mapselect/mapserver/internal/domain"
)

const (
	DefaultPort        = "8080"
	DefaultDistDir     = "dist"
	DefaultMapDir      = "map"
	DefaultCORSOrigins = "*"
)

var ErrInvalidBounds = errors.New("zone bounds must be minX,minY,maxX,maxY with min <= max and not all zero")

type Config struct {
	Port        string
	DistDir     string
	MapDir      string
	CORSOrigins []string
	Bounds      domain.Bounds
	SeedFile    string
	MDNSName    string
}

// FromEnv builds a Config from environment variables, warning on defaults.
func FromEnv(logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}

	cfg := Config{
		Port:     envOrDefault(logger, "PORT", DefaultPort),
		DistDir:  envOrDefault(logger, "DIST_DIR", DefaultDistDir),
		MapDir:   envOrDefault(logger, "MAP_DIR", DefaultMapDir),
		SeedFile: os.Getenv("SEED_FILE"),
		MDNSName: os.Getenv("MDNS_NAME"),
	}
	cfg.CORSOrigins = ParseCSV(envOrDefault(logger, "CORS_ORIGINS", DefaultCORSOrigins))

	bounds, err := ParseBounds(os.Getenv("ZONE_BOUNDS"))
	if err != nil {
		return Config{}, err
	}
	cfg.Bounds = bounds
	return cfg, nil
}

func envOrDefault(logger *log.Logger, key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		logger.Printf("WARN: %s not set, using default %s", key, def)
		return def
	}
	return v
}

// ParseCSV splits a comma-separated list, dropping blanks.
func ParseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ParseBounds parses "minX,minY,maxX,maxY". Empty input means unbounded.
func ParseBounds(input string) (domain.Bounds, error) {
	parts := ParseCSV(input)
	if len(parts) == 0 {
		return domain.Bounds{}, nil
	}
	if len(parts) != 4 {
		return domain.Bounds{}, ErrInvalidBounds
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return domain.Bounds{}, fmt.Errorf("%w: %v", ErrInvalidBounds, err)
		}
		v[i] = f
	}
	b := domain.Bounds{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	// The zero Bounds means unbounded, so a box holding only the origin
	// cannot be expressed.
	if b.IsZero() {
		return domain.Bounds{}, fmt.Errorf("%w: all-zero box", ErrInvalidBounds)
	}
	if !domain.IsFinite(b.MinX, b.MinY) || !domain.IsFinite(b.MaxX, b.MaxY) || b.MinX > b.MaxX || b.MinY > b.MaxY {
		return domain.Bounds{}, ErrInvalidBounds
	}
	return b, nil
}
