package imagegen

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed providers.schema.json
var providerFileSchema []byte

// ProviderSpec is the declarative form of a provider. The credential is
// named by environment variable and never stored in the file.
type ProviderSpec struct {
	Name          string   `yaml:"name"`
	Endpoint      string   `yaml:"endpoint"`
	CredentialEnv string   `yaml:"credential_env"`
	Dialect       string   `yaml:"dialect"`
	Models        []string `yaml:"models"`
}

// ProviderFile is a deployment's provider table.
type ProviderFile struct {
	Default   string         `yaml:"default"`
	Providers []ProviderSpec `yaml:"providers"`
}

// DefaultProviderFile is the built-in provider table.
func DefaultProviderFile() *ProviderFile {
	return &ProviderFile{
		Default: "Infip",
		Providers: []ProviderSpec{
			{
				Name:          "Infip",
				Endpoint:      "https://api.infip.pro/v1/images/generations",
				CredentialEnv: "INFIP_API_KEY",
				Dialect:       DialectInfip,
				Models:        []string{"img3", "img4"},
			},
			{
				Name:          "TypeGPT",
				Endpoint:      "https://fast.typegpt.net/v1/images/generations",
				CredentialEnv: "TYPEGPT_API_KEY",
				Dialect:       DialectOpenAI,
				Models:        []string{"black-forest-labs/FLUX.1-kontext-pro"},
			},
			{
				Name:          "SamuraiAPI",
				Endpoint:      "https://samuraiapi.in/v1/images/generations",
				CredentialEnv: "SAMURAIAPI_KEY",
				Dialect:       DialectOpenAI,
				Models: []string{
					"provider4-gemini-2.0-flash-exp-image-generation",
					"qwen-image",
					"TogetherImage/black-forest-labs/FLUX.1-kontext-max",
				},
			},
			{
				Name:          "Hyperbolic",
				Endpoint:      "https://api.hyperbolic.xyz/v1/image/generation",
				CredentialEnv: "HYPERBOLIC_API_KEY",
				Dialect:       DialectHyperbolic,
				Models:        []string{"SDXL1.0-base", "FLUX.1-dev"},
			},
		},
	}
}

// LoadProviderFile reads and validates a YAML provider table.
func LoadProviderFile(path string) (*ProviderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider file: %w", err)
	}
	return ParseProviderFile(data)
}

// ParseProviderFile validates data against the provider file schema and
// decodes it.
func ParseProviderFile(data []byte) (*ProviderFile, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse provider file: %w", err)
	}
	if err := validateProviderDoc(doc); err != nil {
		return nil, fmt.Errorf("invalid provider file: %w", err)
	}

	var file ProviderFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode provider file: %w", err)
	}
	return &file, nil
}

func validateProviderDoc(doc any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("providers.schema.json", bytes.NewReader(providerFileSchema)); err != nil {
		return fmt.Errorf("schema resource: %w", err)
	}
	schema, err := compiler.Compile("providers.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip through JSON so YAML scalars take the types the validator
	// expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return err
	}
	return schema.Validate(normalized)
}

// Registry resolves credentials with getenv and builds the provider
// registry. overrideDefault, when set, replaces the file's default.
func (f *ProviderFile) Registry(getenv func(string) string, overrideDefault string) (*Registry, error) {
	descriptors := make([]*Descriptor, 0, len(f.Providers))
	for _, spec := range f.Providers {
		codec, err := CodecFor(spec.Dialect)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", spec.Name, err)
		}
		descriptors = append(descriptors, &Descriptor{
			Name:       spec.Name,
			Credential: getenv(spec.CredentialEnv),
			Endpoint:   spec.Endpoint,
			Models:     spec.Models,
			Codec:      codec,
		})
	}

	defaultName := f.Default
	if overrideDefault != "" {
		defaultName = overrideDefault
	}
	return NewRegistry(descriptors, defaultName)
}
