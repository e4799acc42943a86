package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; Unsetenv leaves the variable genuinely
	// absent so envDefault values apply.
	for _, key := range []string{"LISTEN_ADDR", "DOCS_DIR", "LLM_PROVIDER", "DOC_EXTENSIONS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.DocsDir != "docs" {
		t.Fatalf("unexpected docs dir: %q", cfg.DocsDir)
	}
	if cfg.Provider != ProviderGemini {
		t.Fatalf("unexpected provider: %q", cfg.Provider)
	}
	if len(cfg.DocExtensions) != 3 || cfg.DocExtensions[0] != ".txt" {
		t.Fatalf("unexpected extensions: %v", cfg.DocExtensions)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DOCS_DIR", "/srv/policies")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("DOC_EXTENSIONS", ".txt,.pdf")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DocsDir != "/srv/policies" {
		t.Fatalf("unexpected docs dir: %q", cfg.DocsDir)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("unexpected provider: %q", cfg.Provider)
	}
	if len(cfg.DocExtensions) != 2 || cfg.DocExtensions[1] != ".pdf" {
		t.Fatalf("unexpected extensions: %v", cfg.DocExtensions)
	}
}
