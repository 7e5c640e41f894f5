package imagegen

import "fmt"

// Size is an explicit output size in pixels.
type Size struct {
	Width  int
	Height int
}

// String renders the size in the "WIDTHxHEIGHT" form most providers accept.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// DefaultSize is used for any aspect ratio token that is not recognized.
var DefaultSize = Size{Width: 1024, Height: 1024}

var aspectRatioSizes = map[string]Size{
	"1:1":       {Width: 1024, Height: 1024},
	"square":    {Width: 1024, Height: 1024},
	"16:9":      {Width: 1792, Height: 1024},
	"landscape": {Width: 1792, Height: 1024},
	"9:16":      {Width: 1024, Height: 1792},
	"portrait":  {Width: 1024, Height: 1792},
	"4:3":       {Width: 1024, Height: 768},
}

// SizeFor maps an aspect ratio token to pixel dimensions. It never fails:
// unknown tokens, including the empty string, map to DefaultSize.
func SizeFor(aspectRatio string) Size {
	if size, ok := aspectRatioSizes[aspectRatio]; ok {
		return size
	}
	return DefaultSize
}
