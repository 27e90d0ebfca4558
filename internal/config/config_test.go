package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DefaultsApplied(t *testing.T) {
	writeConfig(t, `
http:
  port: 5000
database:
  uri: mongodb://localhost:27017
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Database != "nyc_crime" || cfg.Database.Collection != "complaints" {
		t.Errorf("database defaults = %s/%s", cfg.Database.Database, cfg.Database.Collection)
	}
	if cfg.Pagination.DefaultPageSize != 1000 || cfg.Pagination.MaxPageSize != 10000 {
		t.Errorf("pagination defaults = %d/%d", cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
	}
	if cfg.Facets.OffenseLimit != 100 {
		t.Errorf("offense limit = %d", cfg.Facets.OffenseLimit)
	}
	if cfg.Retrieval.MaxMapPoints != 0 {
		t.Errorf("max map points = %d, want 0 (unbounded)", cfg.Retrieval.MaxMapPoints)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CRIMEDEX_TEST_URI", "mongodb://db:27017")
	writeConfig(t, `
http:
  port: 5000
database:
  uri: ${CRIMEDEX_TEST_URI}
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.URI != "mongodb://db:27017" {
		t.Errorf("uri = %q", cfg.Database.URI)
	}
}

func TestLoad_EnvExpansionDefault(t *testing.T) {
	writeConfig(t, `
http:
  port: ${CRIMEDEX_UNSET_PORT:-5000}
database:
  uri: mongodb://localhost:27017
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 5000 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
}

func TestValidate_MissingURI(t *testing.T) {
	writeConfig(t, `
http:
  port: 5000
`)

	if _, err := Load("test"); err == nil {
		t.Fatal("expected error for missing database.uri")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := Config{}
	cfg.Database.URI = "mongodb://localhost:27017"
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing port")
	}
}

func TestValidate_DefaultPageSizeOverMax(t *testing.T) {
	cfg := Config{}
	cfg.HTTP.Port = 5000
	cfg.Database.URI = "mongodb://localhost:27017"
	cfg.Pagination.DefaultPageSize = 500
	cfg.Pagination.MaxPageSize = 100
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default page size over max")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
