package imaging

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestSniffFormat(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, "png"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"gif", []byte{0x47, 0x49, 0x46, 0x38}, "gif"},
		{"unknown defaults to jpeg", []byte{0x00, 0x01, 0x02}, "jpeg"},
		{"empty defaults to jpeg", nil, "jpeg"},
	}
	for _, tc := range cases {
		if got := SniffFormat(tc.data); got != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, got)
		}
	}
}

func TestBuildDataURI(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x01}
	uri := BuildDataURI(data)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("prefix: got %q", uri)
	}
	payload := strings.TrimPrefix(uri, "data:image/png;base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if string(decoded) != string(data) {
		t.Fatalf("payload roundtrip mismatch")
	}
}

func TestEnforceSizeLimit(t *testing.T) {
	if err := EnforceSizeLimit(make([]byte, 1024), 20); err != nil {
		t.Fatalf("small payload: unexpected error %v", err)
	}

	big := make([]byte, 2*1024*1024)
	err := EnforceSizeLimit(big, 1)
	if err == nil {
		t.Fatalf("oversize payload: expected error")
	}
	var sle *SizeLimitError
	if !errors.As(err, &sle) {
		t.Fatalf("error type: want *SizeLimitError, got %T", err)
	}
	if sle.SizeMB != 2.0 {
		t.Fatalf("SizeMB: want 2.0, got %v", sle.SizeMB)
	}
	if !strings.Contains(err.Error(), "2.0MB") {
		t.Fatalf("error message should carry the computed size: %q", err.Error())
	}
}

func TestValidateOrEmpty(t *testing.T) {
	dataURI := "data:image/png;base64,iVBORw0KGgo="
	if got := ValidateOrEmpty(dataURI); got != dataURI {
		t.Fatalf("data URI passthrough: got %q", got)
	}

	b64 := base64.StdEncoding.EncodeToString([]byte("leafy"))
	got := ValidateOrEmpty(b64)
	if got != "data:image/jpeg;base64,"+b64 {
		t.Fatalf("bare base64 wrap: got %q", got)
	}

	if got := ValidateOrEmpty("https://example.com/leaf.jpg not base64!"); got != "" {
		t.Fatalf("unusable reference: want empty, got %q", got)
	}
	if got := ValidateOrEmpty("   "); got != "" {
		t.Fatalf("blank reference: want empty, got %q", got)
	}
}
