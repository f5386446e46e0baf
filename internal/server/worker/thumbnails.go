package worker

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned by Thumbnails for payloads that are not a raster
// image format the resizer understands.
var ErrNotImage = errors.New("not an image")

// Thumbnails resizes data to each width, keeping the aspect ratio and the
// source encoding.
func Thumbnails(data []byte, widths []int) (map[int][]byte, error) {
	mt := mimetype.Detect(data)
	if !mt.Is("image/png") && !mt.Is("image/jpeg") && !mt.Is("image/gif") && !mt.Is("image/bmp") && !mt.Is("image/tiff") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}

	format, err := imaging.FormatFromExtension(mt.Extension())
	if err != nil {
		format = imaging.PNG
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	out := make(map[int][]byte, len(widths))
	for _, w := range widths {
		resized := imaging.Resize(img, w, 0, imaging.Lanczos)
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, resized, format); err != nil {
			return nil, fmt.Errorf("encode %dpx: %w", w, err)
		}
		out[w] = buf.Bytes()
	}
	return out, nil
}
