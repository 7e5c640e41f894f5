package imagegen

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMediaType = "image/png"

// sniffLen is a multiple of 4 so the prefix decodes without padding issues.
const sniffLen = 1024

// DataURI embeds a base64 payload in a data URI. The payload is not
// re-encoded. A payload that already is a data URI is returned unchanged.
func DataURI(payload, mediaType string) string {
	if strings.HasPrefix(payload, "data:") {
		return payload
	}
	if mediaType == "" {
		mediaType = sniffMediaType(payload)
	}
	return "data:" + mediaType + ";base64," + payload
}

// reference turns one response entry into an image reference. A URL wins
// over an inline payload. It returns false when the entry has neither.
func reference(url, b64, mediaType string) (string, bool) {
	if url != "" {
		return url, true
	}
	if b64 != "" {
		return DataURI(b64, mediaType), true
	}
	return "", false
}

func sniffMediaType(payload string) string {
	prefix := payload
	if len(prefix) > sniffLen {
		prefix = prefix[:sniffLen]
	}
	prefix = prefix[:len(prefix)-len(prefix)%4]

	raw, err := base64.StdEncoding.DecodeString(prefix)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(prefix, "="))
		if err != nil {
			return fallbackMediaType
		}
	}

	mt := mimetype.Detect(raw)
	if strings.HasPrefix(mt.String(), "image/") {
		return mt.String()
	}
	return fallbackMediaType
}

func mediaTypeForFormat(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	}
	return ""
}
