package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Name    string        `env:"CFGTEST_NAME" default:"fallback"`
	Port    int           `env:"CFGTEST_PORT" default:"3000"`
	Enabled bool          `env:"CFGTEST_ENABLED" default:"false"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" default:"30s"`

	Nested struct {
		Value string `env:"CFGTEST_NESTED_VALUE" default:"inner"`
	}
}

func TestParseEnv_Defaults(t *testing.T) {
	cfg := &testConfig{}
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.Name != "fallback" || cfg.Port != 3000 || cfg.Enabled || cfg.Timeout != 30*time.Second {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Nested.Value != "inner" {
		t.Fatalf("nested default not applied: %+v", cfg.Nested)
	}
}

func TestParseEnv_EnvironmentWins(t *testing.T) {
	t.Setenv("CFGTEST_NAME", "from-env")
	t.Setenv("CFGTEST_PORT", "8080")
	t.Setenv("CFGTEST_ENABLED", "true")
	t.Setenv("CFGTEST_TIMEOUT", "1h")

	cfg := &testConfig{}
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.Name != "from-env" || cfg.Port != 8080 || !cfg.Enabled || cfg.Timeout != time.Hour {
		t.Fatalf("environment values not applied: %+v", cfg)
	}
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("CFGTEST_PORT", "not-a-number")

	if err := ParseEnv(&testConfig{}); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestParseEnv_RequiresStructPointer(t *testing.T) {
	if err := ParseEnv(testConfig{}); err == nil {
		t.Fatal("expected error for non-pointer argument")
	}
	if err := ParseEnv(new(int)); err == nil {
		t.Fatal("expected error for non-struct pointer")
	}
}

func TestLoadYamlFile(t *testing.T) {
	yaml := `
# comment
name: myservice
server:
  host: localhost
  port: "9090"

fallback:
  value: ${CFGTEST_MISSING:-sub-default}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	for _, key := range []string{"NAME", "SERVER_HOST", "SERVER_PORT", "FALLBACK_VALUE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	if err := LoadYamlFile(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := os.Getenv("SERVER_HOST"); got != "localhost" {
		t.Fatalf("SERVER_HOST = %q", got)
	}
	if got := os.Getenv("SERVER_PORT"); got != "9090" {
		t.Fatalf("SERVER_PORT = %q", got)
	}
	if got := os.Getenv("FALLBACK_VALUE"); got != "sub-default" {
		t.Fatalf("FALLBACK_VALUE = %q", got)
	}
}

func TestLoadYamlFile_MissingFileTolerated(t *testing.T) {
	err := LoadAndParseYaml(filepath.Join(t.TempDir(), "absent.yaml"), &testConfig{})
	if err != nil {
		t.Fatalf("missing file must not fail LoadAndParseYaml: %v", err)
	}
}
