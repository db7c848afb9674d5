package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("APIPort = %q, want 8080", cfg.APIPort)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("MaxUploadBytes = %d, want 10MiB", cfg.MaxUploadBytes)
	}
	if cfg.NATSSubject != "analyses.queued" {
		t.Fatalf("NATSSubject = %q", cfg.NATSSubject)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("API_RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()

	if cfg.APIPort != "9000" {
		t.Fatalf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Fatalf("MaxUploadBytes = %d, want 1024", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.APIRateLimitRPS)
	}
}
