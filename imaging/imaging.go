// Package imaging validates and normalizes raw image payloads before they
// reach the inference service.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxMB is the inline-image ceiling accepted by the inference service.
const DefaultMaxMB = 20

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)

// SizeLimitError reports an image payload over the size ceiling. SizeMB is
// the computed payload size so callers can echo it to the user.
type SizeLimitError struct {
	SizeMB float64
	MaxMB  int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("image is %.1fMB, exceeds %dMB limit", e.SizeMB, e.MaxMB)
}

// SniffFormat inspects leading bytes and reports "png", "jpeg" or "gif".
// Unrecognized payloads default to jpeg; this never fails.
func SniffFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47}):
		return "png"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8}):
		return "jpeg"
	case bytes.HasPrefix(data, []byte{0x47, 0x49, 0x46}):
		return "gif"
	default:
		return "jpeg"
	}
}

// BuildDataURI encodes raw bytes as a data:image/<format>;base64,... URI.
func BuildDataURI(data []byte) string {
	return fmt.Sprintf("data:image/%s;base64,%s", SniffFormat(data), base64.StdEncoding.EncodeToString(data))
}

// EnforceSizeLimit fails with a *SizeLimitError when the payload exceeds
// maxMB megabytes. maxMB <= 0 applies DefaultMaxMB.
func EnforceSizeLimit(data []byte, maxMB int) error {
	if maxMB <= 0 {
		maxMB = DefaultMaxMB
	}
	sizeMB := float64(len(data)) / (1024 * 1024)
	if sizeMB > float64(maxMB) {
		return &SizeLimitError{SizeMB: sizeMB, MaxMB: maxMB}
	}
	return nil
}

// Ingest runs the full local pipeline for raw bytes: size check, format
// sniff, data-URI wrap.
func Ingest(data []byte, maxMB int) (string, error) {
	if err := EnforceSizeLimit(data, maxMB); err != nil {
		return "", err
	}
	return BuildDataURI(data), nil
}

// ValidateOrEmpty normalizes an image reference for the inference request.
// Data URIs pass through; a bare base64 string is wrapped as a jpeg data
// URI; anything else returns "" so callers can fall back to a text-only
// advisory path instead of sending an unusable reference.
func ValidateOrEmpty(candidate string) string {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "data:image/") {
		return s
	}
	if base64Pattern.MatchString(s) {
		return "data:image/jpeg;base64," + s
	}
	return ""
}
