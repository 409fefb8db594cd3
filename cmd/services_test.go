package cmd

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-interviewer/internal/ats"
)

func TestNewGeneratorDisabled(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*AIConfig{nil, {Enabled: false, Gemini: &GeminiConfig{APIKey: "key"}}} {
		generator, err := newGenerator(context.Background(), cfg, zap.NewNop())
		if err != nil || generator != nil {
			t.Fatalf("expected no generator and no error, got %v, %v", generator, err)
		}
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    *AIConfig
		expect string
	}{
		{name: "unknown provider", cfg: &AIConfig{Enabled: true, Provider: "openai"}, expect: "unsupported ai provider"},
		{name: "missing gemini section", cfg: &AIConfig{Enabled: true}, expect: "gemini configuration is required"},
		{name: "missing key", cfg: &AIConfig{Enabled: true, Gemini: &GeminiConfig{}}, expect: "gemini api key is not configured"},
		{name: "missing key file", cfg: &AIConfig{Enabled: true, Gemini: &GeminiConfig{APIKeyFile: "/nonexistent/key"}}, expect: "reading gemini api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			generator, err := newGenerator(context.Background(), tt.cfg, zap.NewNop())
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
			if generator != nil {
				t.Fatalf("expected nil generator on error")
			}
		})
	}
}

func TestAILoggerWithoutGenerator(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	aiLogger(zap.New(core), &AIConfig{}, nil).Info("test")

	if got := observed.All()[0].ContextMap()["ai_enabled"]; got != false {
		t.Fatalf("expected ai_enabled=false, got %v", got)
	}
}

func TestLoadAnswers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	yamlFile := write("answers.yaml", "answers:\n  - \"\"\n  - I built react apps with javascript\n")
	jsonFile := write("answers.json", `{"answers": ["first", "second"]}`)
	noKey := write("other.yaml", "questions:\n  - q\n")

	got, err := loadAnswers(yamlFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"", "I built react apps with javascript"}) {
		t.Fatalf("unexpected yaml answers: %q", got)
	}

	got, err = loadAnswers(jsonFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Fatalf("unexpected json answers: %q", got)
	}

	for _, path := range []string{"", noKey, filepath.Join(dir, "missing.yaml")} {
		if _, err := loadAnswers(path); err == nil {
			t.Fatalf("expected error for %q", path)
		}
	}
}

func TestNewGeneratorDisabledWithKeyLogsHint(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	cfg := &AIConfig{Enabled: false, Gemini: &GeminiConfig{APIKey: "from-dotenv"}}
	generator, err := newGenerator(context.Background(), cfg, zap.New(core))
	if err != nil || generator != nil {
		t.Fatalf("expected no generator and no error, got %v, %v", generator, err)
	}

	entries := observed.FilterMessageSnippet("ai is disabled").All()
	if len(entries) != 1 {
		t.Fatalf("expected a disabled ai hint, got %d entries", observed.Len())
	}

	observed.TakeAll()
	if _, err := newGenerator(context.Background(), &AIConfig{Gemini: &GeminiConfig{}}, zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if observed.Len() != 0 {
		t.Fatalf("expected no hint without a key, got %d entries", observed.Len())
	}
}

func TestTaxonomyConfigAllowsDottedTitles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "ats:\n  taxonomy:\n    - title: Sr. Developer\n      skills: [go, grpc]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatal(err)
	}

	skills := ats.NewTaxonomy(cfg.ATS.Skills()).Skills("sr. developer")
	if !reflect.DeepEqual(skills, []string{"go", "grpc"}) {
		t.Fatalf("unexpected skills for dotted title: %v", skills)
	}

	cfg.ATS.Taxonomy = append(cfg.ATS.Taxonomy, TaxonomyEntry{Skills: []string{"x"}})
	if err := validateConfig(&cfg); err == nil {
		t.Fatal("expected a taxonomy entry without title to be rejected")
	}
}
