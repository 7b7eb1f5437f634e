package capture

import (
	"bytes"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // register webp decoding
)

const (
	// Frames at or under this size skip compression entirely.
	compressThreshold = 1 << 20 // 1 MiB

	// Longest-edge limits for picked files and camera shots.
	maxDimension       = 1920
	cameraMaxDimension = 1280

	jpegQuality = 70
)

// dimensionHinter lets a source lower the resize limit for its frames.
type dimensionHinter interface {
	maxDimension() int
}

// needsShrink reports whether a frame is over the compression threshold.
func needsShrink(frame *Frame) bool {
	return len(frame.Data) > compressThreshold
}

// Shrink re-encodes heavy frames as bounded JPEGs. Frames at or under the
// threshold pass through untouched, and any decode or encode failure falls
// back to the original frame: a too-big receipt photo still beats no photo.
func Shrink(frame *Frame, source Source) *Frame {
	if !needsShrink(frame) {
		return frame
	}

	limit := maxDimension
	if hinter, ok := source.(dimensionHinter); ok {
		limit = hinter.maxDimension()
	}

	img, err := imaging.Decode(bytes.NewReader(frame.Data), imaging.AutoOrientation(true))
	if err != nil {
		return frame
	}

	bounds := img.Bounds()
	if bounds.Dx() > limit || bounds.Dy() > limit {
		img = imaging.Fit(img, limit, limit, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return frame
	}

	return &Frame{
		Data: buf.Bytes(),
		Name: jpegName(frame.Name),
		MIME: "image/jpeg",
	}
}

func jpegName(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	if name == "" {
		name = "receipt"
	}
	return name + ".jpg"
}
