package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"valinor/pkg/cache"
)

type Settings struct {
	Env         string  `yaml:"env"          env:"APP_ENV"      env-default:"development"`
	VersionFile string  `yaml:"version_file" env:"VERSION_FILE" env-default:"config/version.yaml"`
	HTTP        HTTP    `yaml:"http"`
	Cache       Cache   `yaml:"cache"`
	Sources     Sources `yaml:"sources"`
}

type HTTP struct {
	Address         string        `yaml:"address"          env:"HTTP_ADDR"             env-default:":8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"HTTP_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type Cache struct {
	Backend string        `yaml:"backend"  env:"CACHE_BACKEND"  env-default:"memory"`
	URL     string        `yaml:"url"      env:"CACHE_URL"      env-default:"redis://redis:6379/0"`
	TTL     time.Duration `yaml:"ttl"      env:"CACHE_TTL"      env-default:"15m"`
	MaxSize int           `yaml:"max_size" env:"CACHE_MAX_SIZE" env-default:"256"`
}

type Sources struct {
	Timeout        time.Duration `yaml:"timeout"          env:"SOURCES_TIMEOUT"  env-default:"20s"`
	INEBaseURL     string        `yaml:"ine_base_url"     env:"INE_BASE_URL"     env-default:"https://servicios.ine.es/wstempus/js/ES"`
	EurostatTOCURL string        `yaml:"eurostat_toc_url" env:"EUROSTAT_TOC_URL" env-default:"https://ec.europa.eu/eurostat/api/discover/toc"`
	BDESeriesURL   string        `yaml:"bde_series_url"   env:"BDE_SERIES_URL"   env-default:"https://api.bde.es/datos/series/SEC/SEC/O1_13_240500"`
}

// Version is read from the version file at startup.
type Version struct {
	Version  string `yaml:"version"  json:"version"  env-default:"0.0.0"`
	Codename string `yaml:"codename" json:"codename" env-default:"sin-nombre"`
}

// Load reads settings from a YAML file, inline YAML content, or the environment alone when
// pathOrContent is empty or names a file that does not exist. Environment variables always win.
func Load(pathOrContent string) (*Settings, error) {
	var s Settings

	switch {
	case isFile(pathOrContent):
		if err := cleanenv.ReadConfig(pathOrContent, &s); err != nil {
			return nil, fmt.Errorf("read config %q: %w", pathOrContent, err)
		}
		return &s, nil
	case strings.Contains(pathOrContent, "\n"):
		if err := yaml.Unmarshal([]byte(pathOrContent), &s); err != nil {
			return nil, fmt.Errorf("parse config content: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &s, nil
}

func LoadVersion(path string) (Version, error) {
	var v Version
	if err := cleanenv.ReadConfig(path, &v); err != nil {
		return Version{}, fmt.Errorf("read version file %q: %w", path, err)
	}
	return v, nil
}

// CacheConfig converts the cache section for cache.Build.
func (s *Settings) CacheConfig() cache.Config {
	return cache.Config{
		Backend: s.Cache.Backend,
		URL:     s.Cache.URL,
		TTL:     s.Cache.TTL,
		MaxSize: s.Cache.MaxSize,
	}
}

// Pretty renders the settings as YAML for logging.
func (s *Settings) Pretty() (string, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}

func isFile(path string) bool {
	if path == "" || strings.Contains(path, "\n") {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
