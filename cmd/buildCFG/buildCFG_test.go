package buildCFG

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
)

func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := config.New()
	if err := cfg.Load(path, "", "'"); err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestBuildSMTPConfig(t *testing.T) {
	log := zerolog.Nop()

	cfg := loadConfig(t, `smtp:
  host: smtp.example.com
  port: "2525"
  from: noreply@example.com
  password: secret
`)
	got, err := BuildSMTPConfig(cfg, &log)
	if err != nil {
		t.Fatalf("BuildSMTPConfig: %v", err)
	}
	if got.Port != "2525" {
		t.Errorf("port: got %q, want %q", got.Port, "2525")
	}
	if got.Host != "smtp.example.com" || got.From != "noreply@example.com" {
		t.Errorf("unexpected config: %+v", got)
	}
}

func TestBuildSMTPConfigDefaultsPort(t *testing.T) {
	log := zerolog.Nop()

	cfg := loadConfig(t, `smtp:
  host: smtp.example.com
  from: noreply@example.com
`)
	got, err := BuildSMTPConfig(cfg, &log)
	if err != nil {
		t.Fatalf("BuildSMTPConfig: %v", err)
	}
	if got.Port != "587" {
		t.Errorf("default port: got %q, want %q", got.Port, "587")
	}
}

func TestBuildSMTPConfigRequiresHost(t *testing.T) {
	log := zerolog.Nop()

	cfg := loadConfig(t, `smtp:
  from: noreply@example.com
`)
	if _, err := BuildSMTPConfig(cfg, &log); err == nil {
		t.Error("expected an error when smtp.host is missing")
	}
}

func TestBuildGatewayConfigDefaultsTimeout(t *testing.T) {
	log := zerolog.Nop()

	cfg := loadConfig(t, `gateway:
  base_url: "https://api.example.com"
  token: "abc"
`)
	got, err := BuildGatewayConfig(cfg, &log)
	if err != nil {
		t.Fatalf("BuildGatewayConfig: %v", err)
	}
	if got.Timeout != 30*time.Second {
		t.Errorf("default timeout: got %v, want 30s", got.Timeout)
	}
}
