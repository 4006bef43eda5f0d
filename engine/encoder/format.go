package encoder

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the container format of an output video, selected from the output path's extension.
type Format int

const (
	// FormatGIF writes an animated GIF with the Plan 9 palette.
	FormatGIF Format = iota
	// FormatMP4 writes an H.264 MP4 through ffmpeg.
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatGIF:
		return "gif"
	case FormatMP4:
		return "mp4"
	}
	return "unknown"
}

// Extension returns the file extension for the format, including the leading dot.
func (f Format) Extension() string {
	return "." + f.String()
}

var (
	// ErrUnsupportedFormat is matched by every error returned for an output path whose extension is
	// not one of the supported formats.
	ErrUnsupportedFormat = errors.New("unsupported video format")

	// ErrAlreadyFinalized is returned by a second Finalize call.
	ErrAlreadyFinalized = errors.New("video already finalized")
)

// UnsupportedFormatError reports the output path and the extension that was rejected.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported video format %q for %s: expected .gif or .mp4", e.Extension, e.Path)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseFormat selects the container format from the extension of path. Matching is case-insensitive.
//
// Parameters:
//   - path: the output video path
//
// Returns:
//   - Format: the selected format
//   - error: *UnsupportedFormatError if the extension is not .gif or .mp4
func ParseFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".gif":
		return FormatGIF, nil
	case ".mp4":
		return FormatMP4, nil
	}
	return 0, &UnsupportedFormatError{Path: path, Extension: ext}
}
