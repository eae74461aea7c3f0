package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// TestLoad_Defaults verifies defaults apply when nothing is configured.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != defaultListenAddr || cfg.Format != "auto" || cfg.Output != "text" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxBodyBytes != defaultMaxBodyBytes || cfg.WSRatePerSec != defaultWSRatePerSec || cfg.WSBurst != defaultWSBurst {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.Strict || cfg.Debug || cfg.Password != "" {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

// TestLoad_EnvOverrides verifies MONITORSHAPE_* variables override defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONITORSHAPE_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("MONITORSHAPE_PASSWORD", " secret ")
	t.Setenv("MONITORSHAPE_STRICT", "true")
	t.Setenv("MONITORSHAPE_OUTPUT", "YAML")
	t.Setenv("MONITORSHAPE_WS_BURST", "5")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" || cfg.Password != "secret" || !cfg.Strict {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Output != "yaml" || cfg.WSBurst != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

// TestLoad_File verifies an explicit config file is read.
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitorshape.yaml")
	data := []byte("listen_addr: 127.0.0.1:7000\nformat: json\nws_rate_per_sec: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:7000" || cfg.Format != "json" || cfg.WSRatePerSec != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

// TestLoad_MissingExplicitFile verifies an explicit path must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

// TestLoad_FlagsWin verifies changed flags take priority over env.
func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("MONITORSHAPE_LISTEN_ADDR", "0.0.0.0:9000")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("listen", "", "")
	fs.Bool("strict", false, "")
	if err := fs.Parse([]string{"--listen", "127.0.0.1:1234", "--strict"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", fs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:1234" || !cfg.Strict {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

// TestLoad_Invalid verifies range and enum validation.
func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"MONITORSHAPE_WS_RATE_PER_SEC": "0",
		"MONITORSHAPE_WS_BURST":        "-1",
		"MONITORSHAPE_MAX_BODY_BYTES":  "0",
		"MONITORSHAPE_FORMAT":          "toml",
		"MONITORSHAPE_OUTPUT":          "html",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load("", nil); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
