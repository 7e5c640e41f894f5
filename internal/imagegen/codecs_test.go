package imagegen

import (
	"encoding/json"
	"errors"
	"testing"
)

func marshalMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return m
}

func TestInfipCodecFormatRequest(t *testing.T) {
	body := marshalMap(t, InfipCodec{}.FormatRequest(Call{
		Prompt:    "a red fox",
		Model:     "img3",
		NumImages: 2,
		Size:      SizeFor("16:9"),
		Image:     "ignored",
	}))

	if body["num_images"] != float64(2) {
		t.Errorf("num_images = %v, want 2", body["num_images"])
	}
	if body["size"] != "1792x1024" {
		t.Errorf("size = %v, want 1792x1024", body["size"])
	}
	if _, ok := body["n"]; ok {
		t.Error("infip request must not carry n")
	}
	if _, ok := body["image"]; ok {
		t.Error("infip request must not carry image")
	}
}

func TestOpenAICodecImageToImage(t *testing.T) {
	tests := []struct {
		name      string
		model     string
		image     string
		wantImage bool
	}{
		{"flux with image", "black-forest-labs/FLUX.1-kontext-pro", "data:image/png;base64,AAAA", true},
		{"lowercase flux", "flux-schnell", "AAAA", true},
		{"mixed case flux", "Flux-schnell", "AAAA", false},
		{"non flux model", "qwen-image", "AAAA", false},
		{"flux without image", "black-forest-labs/FLUX.1-kontext-pro", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := marshalMap(t, OpenAICodec{}.FormatRequest(Call{
				Prompt: "p", Model: tt.model, NumImages: 1, Size: DefaultSize, Image: tt.image,
			}))
			_, hasImage := body["image"]
			if hasImage != tt.wantImage {
				t.Errorf("image present = %v, want %v", hasImage, tt.wantImage)
			}
			if body["n"] != float64(1) {
				t.Errorf("n = %v, want 1", body["n"])
			}
		})
	}
}

func TestHyperbolicCodecFormatRequest(t *testing.T) {
	body := marshalMap(t, HyperbolicCodec{}.FormatRequest(Call{
		Prompt: "p", Model: "SDXL1.0-base", NumImages: 3, Size: SizeFor("9:16"),
	}))
	if body["width"] != float64(1024) || body["height"] != float64(1792) {
		t.Errorf("dimensions = %vx%v, want 1024x1792", body["width"], body["height"])
	}
	if body["model_name"] != "SDXL1.0-base" {
		t.Errorf("model_name = %v", body["model_name"])
	}
}

func TestParseImageList(t *testing.T) {
	images, err := OpenAICodec{}.ParseResponse([]byte(`{"data":[{"url":"https://a/1.png"},{"b64_json":"iVBORw0KGgo=","output_format":"webp"},{"url":"https://a/2.png"}]}`))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	want := []string{"https://a/1.png", "data:image/webp;base64,iVBORw0KGgo=", "https://a/2.png"}
	if len(images) != len(want) {
		t.Fatalf("len(images) = %d, want %d", len(images), len(want))
	}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("images[%d] = %s, want %s", i, images[i], want[i])
		}
	}
}

func TestParseImageListEmpty(t *testing.T) {
	for _, body := range []string{`{"data":[]}`, `{}`, `{"data":[{}]}`} {
		if _, err := (InfipCodec{}).ParseResponse([]byte(body)); !errors.Is(err, ErrNoImages) {
			t.Errorf("ParseResponse(%s) error = %v, want ErrNoImages", body, err)
		}
	}

	if _, err := (InfipCodec{}).ParseResponse([]byte(`not json`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestHyperbolicParseResponse(t *testing.T) {
	images, err := HyperbolicCodec{}.ParseResponse([]byte(`{"images":[{"index":0,"image":"iVBORw0KGgoAAAANSUhEUg=="}],"inference_time":1.2}`))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if len(images) != 1 || images[0] != "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg==" {
		t.Errorf("images = %v", images)
	}

	if _, err := (HyperbolicCodec{}).ParseResponse([]byte(`{"images":[]}`)); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
}

func TestCodecFor(t *testing.T) {
	for _, d := range []string{DialectOpenAI, DialectInfip, DialectHyperbolic} {
		if _, err := CodecFor(d); err != nil {
			t.Errorf("CodecFor(%s) failed: %v", d, err)
		}
	}
	if _, err := CodecFor("bogus"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}
