package listing

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// ErrNotImage is returned when an attached file is not image-typed.
// Panels treat it as a silent no-op, not an error surface.
var ErrNotImage = errors.New("file is not an image")

// Image is an attached image: the raw bytes (the binary handle) plus a
// self-contained preview data URI. Only the preview is ever persisted; Data
// is nil on any listing restored from a draft.
type Image struct {
	Name    string `json:"name"`
	Data    []byte `json:"-"`
	Preview string `json:"preview"`
}

// LoadImage reads a file from disk and returns it as an attachment. The
// content is sniffed, not trusted by extension; non-image files return
// ErrNotImage. The preview is a data URI built from the full content, so it
// survives draft serialization on its own.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("reading image file: %w", err)
	}

	contentType := http.DetectContentType(data)
	if len(contentType) < 6 || contentType[:6] != "image/" {
		return Image{}, ErrNotImage
	}

	return Image{
		Name:    filepath.Base(path),
		Data:    data,
		Preview: dataURI(contentType, data),
	}, nil
}

// LoadImages expands a glob pattern and loads every image it matches,
// skipping matched files that are not images. A pattern without wildcards is
// treated as a single path and its load error is returned as is.
func LoadImages(pattern string) ([]Image, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		img, lerr := LoadImage(pattern)
		if lerr != nil {
			return nil, lerr
		}
		return []Image{img}, nil
	}

	var images []Image
	for _, m := range matches {
		img, lerr := LoadImage(m)
		if lerr != nil {
			continue
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, ErrNotImage
	}
	return images, nil
}

// dataURI encodes content as a data URI of the given MIME type.
func dataURI(contentType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
