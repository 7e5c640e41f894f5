package imagegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleProviderFile = `
default: Beta
providers:
  - name: Alpha
    endpoint: https://alpha.example.com/v1/images/generations
    credential_env: ALPHA_KEY
    dialect: infip
    models: [a1, a2]
  - name: Beta
    endpoint: https://beta.example.com/v1/images/generations
    credential_env: BETA_KEY
    dialect: openai
    models: [b1]
`

func TestParseProviderFile(t *testing.T) {
	file, err := ParseProviderFile([]byte(sampleProviderFile))
	if err != nil {
		t.Fatalf("ParseProviderFile failed: %v", err)
	}
	if file.Default != "Beta" {
		t.Errorf("Default = %s, want Beta", file.Default)
	}
	if len(file.Providers) != 2 {
		t.Fatalf("len(Providers) = %d, want 2", len(file.Providers))
	}

	env := map[string]string{"BETA_KEY": "secret"}
	reg, err := file.Registry(func(k string) string { return env[k] }, "")
	if err != nil {
		t.Fatalf("Registry failed: %v", err)
	}

	providers := reg.Providers()
	if providers[0].Enabled() {
		t.Error("Alpha has no credential and should be disabled")
	}
	if providers[1].Credential != "secret" {
		t.Errorf("Beta credential = %q, want secret", providers[1].Credential)
	}
	if reg.Default().Name != "Beta" {
		t.Errorf("Default() = %s, want Beta", reg.Default().Name)
	}

	reg, err = file.Registry(func(string) string { return "" }, "Alpha")
	if err != nil {
		t.Fatalf("Registry with override failed: %v", err)
	}
	if reg.Default().Name != "Alpha" {
		t.Errorf("Default() = %s, want Alpha", reg.Default().Name)
	}
}

func TestParseProviderFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "providers: [\n"},
		{"no providers", "default: X\n"},
		{"unknown dialect", strings.Replace(sampleProviderFile, "dialect: infip", "dialect: soap", 1)},
		{"inline credential", strings.Replace(sampleProviderFile, "credential_env: ALPHA_KEY", "credential_env: ALPHA_KEY\n    api_key: sk-123", 1)},
		{"empty models", strings.Replace(sampleProviderFile, "models: [b1]", "models: []", 1)},
		{"bad endpoint", strings.Replace(sampleProviderFile, "https://alpha.example.com", "ftp://alpha.example.com", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProviderFile([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadProviderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	if err := os.WriteFile(path, []byte(sampleProviderFile), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProviderFile(path); err != nil {
		t.Fatalf("LoadProviderFile failed: %v", err)
	}
	if _, err := LoadProviderFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultProviderFile(t *testing.T) {
	file := DefaultProviderFile()
	reg, err := file.Registry(func(string) string { return "" }, "")
	if err != nil {
		t.Fatalf("default table is invalid: %v", err)
	}
	if reg.Default().Name != "Infip" {
		t.Errorf("Default() = %s, want Infip", reg.Default().Name)
	}
	for _, p := range reg.Providers() {
		if p.Enabled() {
			t.Errorf("%s enabled without credential", p.Name)
		}
	}
}

func TestExampleProviderFileMatchesBuiltIn(t *testing.T) {
	file, err := LoadProviderFile(filepath.Join("..", "..", "providers.example.yaml"))
	if err != nil {
		t.Fatalf("LoadProviderFile() error = %v", err)
	}

	builtIn := DefaultProviderFile()
	if file.Default != builtIn.Default {
		t.Errorf("default = %q, want %q", file.Default, builtIn.Default)
	}
	if len(file.Providers) != len(builtIn.Providers) {
		t.Fatalf("got %d providers, want %d", len(file.Providers), len(builtIn.Providers))
	}
	for i, p := range file.Providers {
		want := builtIn.Providers[i]
		if p.Name != want.Name || p.Endpoint != want.Endpoint || p.Dialect != want.Dialect {
			t.Errorf("provider %d = %+v, want %+v", i, p, want)
		}
		if strings.Join(p.Models, ",") != strings.Join(want.Models, ",") {
			t.Errorf("provider %s models = %v, want %v", p.Name, p.Models, want.Models)
		}
	}
}
