package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// png is the header of a PNG file, enough for content sniffing.
var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestEncodeImage(t *testing.T) {
	img, err := EncodeImage(context.Background(), bytes.NewReader(png))
	if err != nil {
		t.Fatalf("EncodeImage() error = %v", err)
	}
	if !strings.HasPrefix(string(img), "data:image/png;base64,") {
		t.Errorf("EncodeImage() = %q", img)
	}
	if img.ContentType() != "image/png" {
		t.Errorf("ContentType() = %q", img.ContentType())
	}

	if _, err := EncodeImage(context.Background(), strings.NewReader("hello, world")); !errors.Is(err, ErrValidation) {
		t.Errorf("EncodeImage(text) error = %v, want ErrValidation", err)
	}
	if _, err := EncodeImage(context.Background(), strings.NewReader("")); !errors.Is(err, ErrValidation) {
		t.Errorf("EncodeImage(empty) error = %v, want ErrValidation", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EncodeImage(ctx, bytes.NewReader(png)); !errors.Is(err, context.Canceled) {
		t.Errorf("EncodeImage(canceled) error = %v, want context.Canceled", err)
	}
}

func TestImageJSON(t *testing.T) {
	var acc Account
	if err := json.Unmarshal([]byte(`{"icon": null}`), &acc); err != nil || acc.Icon != "" {
		t.Errorf("Unmarshal(null icon) = %q, %v", acc.Icon, err)
	}
	out, err := json.Marshal(Image(""))
	if err != nil || string(out) != "null" {
		t.Errorf("Marshal(empty image) = %s, %v", out, err)
	}
}
