package imagegen

// Request is a provider-neutral image generation request.
type Request struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	NumImages   int    `json:"numImages,omitempty"`
	// Image is an optional source image (base64 or data URI) for
	// image-to-image models.
	Image string `json:"image,omitempty"`
}

// Validate rejects requests that must never reach a provider.
func (r *Request) Validate() error {
	if r.Prompt == "" {
		return &ValidationError{Field: "prompt", Message: "Prompt is required"}
	}
	return nil
}

// ImageCount returns the number of images to request, defaulting to one.
func (r *Request) ImageCount() int {
	if r.NumImages <= 0 {
		return 1
	}
	return r.NumImages
}

// Result is the outcome of a successful generation.
type Result struct {
	Images   []string `json:"images"`
	Provider string   `json:"provider"`
	Model    string   `json:"model"`
}

// Call is the fully resolved input handed to a provider codec.
type Call struct {
	Prompt    string
	Model     string
	NumImages int
	Size      Size
	Image     string
}
