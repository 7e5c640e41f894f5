package imagegen

import "testing"

func TestSizeFor(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"1:1", "1024x1024"},
		{"square", "1024x1024"},
		{"16:9", "1792x1024"},
		{"landscape", "1792x1024"},
		{"9:16", "1024x1792"},
		{"portrait", "1024x1792"},
		{"4:3", "1024x768"},
		{"", "1024x1024"},
		{"3:2", "1024x1024"},
		{"LANDSCAPE", "1024x1024"},
		{"panorama", "1024x1024"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := SizeFor(tt.token).String(); got != tt.want {
				t.Errorf("SizeFor(%q) = %s, want %s", tt.token, got, tt.want)
			}
		})
	}
}

func TestSizeForDimensions(t *testing.T) {
	size := SizeFor("9:16")
	if size.Width != 1024 || size.Height != 1792 {
		t.Errorf("SizeFor(9:16) = %dx%d, want 1024x1792", size.Width, size.Height)
	}
}
