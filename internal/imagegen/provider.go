package imagegen

import (
	"fmt"
	"slices"
	"strings"
)

// Codec converts between a resolved Call and one provider's wire format.
type Codec interface {
	// FormatRequest builds the JSON body sent to the provider.
	FormatRequest(call Call) any
	// ParseResponse extracts image references from a success response. It
	// returns ErrNoImages when the response carries no image entries.
	ParseResponse(body []byte) ([]string, error)
}

// Descriptor is one statically configured provider.
type Descriptor struct {
	Name       string
	Credential string
	Endpoint   string
	Models     []string
	Codec      Codec
}

// Enabled reports whether the provider has a credential.
func (d *Descriptor) Enabled() bool {
	return d.Credential != ""
}

// Supports reports whether model is one of the provider's models.
func (d *Descriptor) Supports(model string) bool {
	return slices.Contains(d.Models, model)
}

// ResolveModel returns model when supported, otherwise the provider's first
// model.
func (d *Descriptor) ResolveModel(model string) string {
	if d.Supports(model) {
		return model
	}
	return d.Models[0]
}

func (d *Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if d.Endpoint == "" {
		return fmt.Errorf("provider %s: endpoint is required", d.Name)
	}
	if len(d.Models) == 0 {
		return fmt.Errorf("provider %s: at least one model is required", d.Name)
	}
	if d.Codec == nil {
		return fmt.Errorf("provider %s: codec is required", d.Name)
	}
	return nil
}

// supportsImageToImage is true for model identifiers that accept a source
// image. Only the "FLUX" and "flux" spellings qualify.
func supportsImageToImage(model string) bool {
	return strings.Contains(model, "FLUX") || strings.Contains(model, "flux")
}
