package imagegen

import (
	"encoding/json"
	"fmt"
)

// Codec dialect names accepted in provider files.
const (
	DialectOpenAI     = "openai"
	DialectInfip      = "infip"
	DialectHyperbolic = "hyperbolic"
)

// CodecFor returns the codec for a dialect name.
func CodecFor(dialect string) (Codec, error) {
	switch dialect {
	case DialectOpenAI:
		return OpenAICodec{}, nil
	case DialectInfip:
		return InfipCodec{}, nil
	case DialectHyperbolic:
		return HyperbolicCodec{}, nil
	}
	return nil, fmt.Errorf("unknown provider dialect %q", dialect)
}

type imageData struct {
	URL          string `json:"url"`
	B64JSON      string `json:"b64_json"`
	OutputFormat string `json:"output_format"`
}

type imageListResponse struct {
	Data         []imageData `json:"data"`
	OutputFormat string      `json:"output_format"`
}

func parseImageList(body []byte) ([]string, error) {
	var resp imageListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	images := make([]string, 0, len(resp.Data))
	for _, item := range resp.Data {
		format := item.OutputFormat
		if format == "" {
			format = resp.OutputFormat
		}
		if ref, ok := reference(item.URL, item.B64JSON, mediaTypeForFormat(format)); ok {
			images = append(images, ref)
		}
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return images, nil
}

// OpenAICodec speaks the OpenAI-compatible images API: image count in "n",
// and an optional source image for FLUX-family models.
type OpenAICodec struct{}

type openAIImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
	Image  string `json:"image,omitempty"`
}

func (OpenAICodec) FormatRequest(call Call) any {
	req := openAIImageRequest{
		Model:  call.Model,
		Prompt: call.Prompt,
		N:      call.NumImages,
		Size:   call.Size.String(),
	}
	if call.Image != "" && supportsImageToImage(call.Model) {
		req.Image = call.Image
	}
	return req
}

func (OpenAICodec) ParseResponse(body []byte) ([]string, error) {
	return parseImageList(body)
}

// InfipCodec is the OpenAI-like dialect that takes "num_images" and has no
// image-to-image support.
type InfipCodec struct{}

type infipImageRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	NumImages int    `json:"num_images"`
	Size      string `json:"size"`
}

func (InfipCodec) FormatRequest(call Call) any {
	return infipImageRequest{
		Model:     call.Model,
		Prompt:    call.Prompt,
		NumImages: call.NumImages,
		Size:      call.Size.String(),
	}
}

func (InfipCodec) ParseResponse(body []byte) ([]string, error) {
	return parseImageList(body)
}

// HyperbolicCodec sends explicit width and height and receives base64
// images.
type HyperbolicCodec struct{}

type hyperbolicImageRequest struct {
	ModelName string `json:"model_name"`
	Prompt    string `json:"prompt"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	NumImages int    `json:"num_images"`
	Backend   string `json:"backend"`
}

type hyperbolicImageResponse struct {
	Images []struct {
		Index      int    `json:"index"`
		Image      string `json:"image"`
		RandomSeed int64  `json:"random_seed"`
	} `json:"images"`
	InferenceTime float64 `json:"inference_time"`
}

func (HyperbolicCodec) FormatRequest(call Call) any {
	return hyperbolicImageRequest{
		ModelName: call.Model,
		Prompt:    call.Prompt,
		Width:     call.Size.Width,
		Height:    call.Size.Height,
		NumImages: call.NumImages,
		Backend:   "auto",
	}
}

func (HyperbolicCodec) ParseResponse(body []byte) ([]string, error) {
	var resp hyperbolicImageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	images := make([]string, 0, len(resp.Images))
	for _, item := range resp.Images {
		if ref, ok := reference("", item.Image, ""); ok {
			images = append(images, ref)
		}
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return images, nil
}
