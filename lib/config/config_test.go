// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "desk.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Portal.BaseURL != "http://localhost:7000" {
		t.Errorf("default base URL = %q", cfg.Portal.BaseURL)
	}
	if cfg.Operator.Enabled {
		t.Error("operator capability should default off")
	}
	if cfg.Operator.Author != "operator" {
		t.Errorf("default operator author = %q", cfg.Operator.Author)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
environment: development
portal:
  base_url: http://portal.example:9000
operator:
  enabled: true
  author: support-1
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Portal.BaseURL != "http://portal.example:9000" {
		t.Errorf("base URL = %q", cfg.Portal.BaseURL)
	}
	if !cfg.Operator.Enabled || cfg.Operator.Author != "support-1" {
		t.Errorf("operator = %+v", cfg.Operator)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: production
portal:
  base_url: http://localhost:7000
production:
  portal:
    base_url: https://portal.example.com
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Portal.BaseURL != "https://portal.example.com" {
		t.Errorf("production override not applied: %q", cfg.Portal.BaseURL)
	}
}

func TestOverridesOnlyMatchEnvironment(t *testing.T) {
	path := writeConfig(t, `
environment: development
portal:
  base_url: http://localhost:7000
production:
  portal:
    base_url: https://portal.example.com
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Portal.BaseURL != "http://localhost:7000" {
		t.Errorf("non-matching override applied: %q", cfg.Portal.BaseURL)
	}
}

func TestValidateRejectsUnknownEnvironment(t *testing.T) {
	path := writeConfig(t, `
environment: quality-assurance
`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWithoutConfigUsesDefaults(t *testing.T) {
	t.Setenv("DESK_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Portal.BaseURL != Default().Portal.BaseURL {
		t.Errorf("base URL = %q, want default", cfg.Portal.BaseURL)
	}
}
