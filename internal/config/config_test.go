package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if s.Env != "development" {
		t.Fatalf("unexpected env: %q", s.Env)
	}
	if s.HTTP.Address != ":8000" {
		t.Fatalf("unexpected address: %q", s.HTTP.Address)
	}
	if s.Cache.Backend != "memory" || s.Cache.TTL != 15*time.Minute || s.Cache.MaxSize != 256 {
		t.Fatalf("unexpected cache settings: %+v", s.Cache)
	}
	if s.Sources.Timeout != 20*time.Second {
		t.Fatalf("unexpected source timeout: %s", s.Sources.Timeout)
	}
	if !strings.HasPrefix(s.Sources.INEBaseURL, "https://servicios.ine.es/") {
		t.Fatalf("unexpected INE url: %q", s.Sources.INEBaseURL)
	}
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")

	path := filepath.Join(t.TempDir(), "valinor.yaml")
	content := "env: staging\nhttp:\n  address: \":9000\"\ncache:\n  backend: memory\n  ttl: 2m\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if s.Env != "staging" {
		t.Fatalf("env=%q want staging", s.Env)
	}
	if s.HTTP.Address != ":9000" {
		t.Fatalf("address=%q want :9000", s.HTTP.Address)
	}
	if s.Cache.Backend != "redis" {
		t.Fatalf("backend=%q want env override redis", s.Cache.Backend)
	}
	if s.Cache.TTL != 2*time.Minute {
		t.Fatalf("ttl=%s want 2m", s.Cache.TTL)
	}
	if s.Cache.URL != "redis://redis:6379/0" {
		t.Fatalf("url=%q want default", s.Cache.URL)
	}
}

func TestLoad_InlineContent(t *testing.T) {
	s, err := Load("sources:\n  timeout: 3s\n")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Sources.Timeout != 3*time.Second {
		t.Fatalf("timeout=%s want 3s", s.Sources.Timeout)
	}
	if s.Env != "development" {
		t.Fatalf("env=%q want default", s.Env)
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Env != "production" {
		t.Fatalf("env=%q want production", s.Env)
	}
}

func TestCacheConfig(t *testing.T) {
	s := &Settings{Cache: Cache{Backend: "redis", URL: "redis://x:1/0", TTL: time.Minute, MaxSize: 3}}
	c := s.CacheConfig()
	if c.Backend != "redis" || c.URL != "redis://x:1/0" || c.TTL != time.Minute || c.MaxSize != 3 {
		t.Fatalf("unexpected cache config: %+v", c)
	}
}

func TestLoadVersion(t *testing.T) {
	dir := t.TempDir()

	full := filepath.Join(dir, "version.yaml")
	if err := os.WriteFile(full, []byte("version: 1.4.0\ncodename: lorien\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := LoadVersion(full)
	if err != nil {
		t.Fatalf("LoadVersion returned error: %v", err)
	}
	if v.Version != "1.4.0" || v.Codename != "lorien" {
		t.Fatalf("unexpected version: %+v", v)
	}

	partial := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(partial, []byte("version: 2.0.0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err = LoadVersion(partial)
	if err != nil {
		t.Fatalf("LoadVersion returned error: %v", err)
	}
	if v.Codename != "sin-nombre" {
		t.Fatalf("codename=%q want default", v.Codename)
	}

	if _, err := LoadVersion(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing version file")
	}
}

func TestPretty(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	out, err := s.Pretty()
	if err != nil {
		t.Fatalf("Pretty returned error: %v", err)
	}
	if !strings.Contains(out, "backend: memory") {
		t.Fatalf("unexpected pretty output:\n%s", out)
	}
}
