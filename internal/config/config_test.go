package config

import "testing"

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("NOTION_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when NOTION_API_KEY is unset, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NOTION_API_KEY", "secret_test")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SSL_VERIFY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:5000" {
		t.Errorf("Expected default addr 0.0.0.0:5000, got %s", cfg.Server.Addr)
	}
	if !cfg.Notion.SSLVerify {
		t.Error("Expected SSL verification enabled by default")
	}
	if cfg.Notion.APIKey != "secret_test" {
		t.Errorf("Expected API key to be carried through, got %q", cfg.Notion.APIKey)
	}
}

func TestLoad_SSLVerifyToggle(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "explicit false", value: "false", want: false},
		{name: "mixed case false", value: "False", want: false},
		{name: "explicit true", value: "true", want: true},
		{name: "garbage keeps verification on", value: "yes", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NOTION_API_KEY", "secret_test")
			t.Setenv("SSL_VERIFY", tt.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Notion.SSLVerify != tt.want {
				t.Errorf("SSL_VERIFY=%q: got %v, want %v", tt.value, cfg.Notion.SSLVerify, tt.want)
			}
		})
	}
}
