package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/babynest/assistant/domain"
)

func pngBase64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeBase64PlainPayload(t *testing.T) {
	img, err := DecodeBase64(pngBase64(t))
	if err != nil {
		t.Fatalf("DecodeBase64 failed: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("expected image/png, got %q", img.MIMEType)
	}
	if len(img.Data) == 0 {
		t.Fatal("expected decoded bytes")
	}
}

func TestDecodeBase64StripsDataURLPrefix(t *testing.T) {
	encoded := "data:image/png;base64," + pngBase64(t)

	img, err := DecodeBase64(encoded)
	if err != nil {
		t.Fatalf("DecodeBase64 failed: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("expected image/png, got %q", img.MIMEType)
	}
}

func TestDecodeBase64RejectsBadBase64(t *testing.T) {
	_, err := DecodeBase64("not!!valid!!base64")
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestDecodeBase64RejectsNonImagePayload(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("just some text"))
	_, err := DecodeBase64(encoded)
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}
