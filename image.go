package tracker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxImageSize is the largest image accepted by EncodeImage.
const MaxImageSize = 5 << 20

// Image is a picture embedded as a "data:" URL, used for icons and photos.
// The empty Image is persisted as null.
type Image string

func (i Image) MarshalJSON() ([]byte, error) {
	if i == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

func (i *Image) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}
	*i = Image(s)
	return nil
}

// ContentType returns the media type of a data URL image.
func (i Image) ContentType() string {
	rest, ok := strings.CutPrefix(string(i), "data:")
	if !ok {
		return ""
	}
	ct, _, _ := strings.Cut(rest, ";")
	return ct
}

// EncodeImage reads an image entirely and returns it as a data URL.
//
// The image is fully encoded before it is returned, so the record owning it
// can be saved in one step.
func EncodeImage(ctx context.Context, r io.Reader) (Image, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("cannot read image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", invalid("empty image")
	}
	if len(data) > MaxImageSize {
		return "", invalid("image larger than %d bytes", MaxImageSize)
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "", invalid("not an image: %s", ct)
	}
	return Image("data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}
