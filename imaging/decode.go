// Package imaging decodes user-submitted symptom photos.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/babynest/assistant/domain"
)

// Image is a decoded, validated photo ready to attach to a model request.
type Image struct {
	Data     []byte
	MIMEType string
}

// DecodeBase64 decodes a base64-encoded image, stripping a data-URL prefix
// ("data:image/png;base64,...") when present, and verifies the payload is a
// recognizable image format. Any failure maps to domain.ErrInvalidImage.
func DecodeBase64(encoded string) (*Image, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 {
		encoded = encoded[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	return &Image{
		Data:     data,
		MIMEType: "image/" + format,
	}, nil
}
