package advisor

import (
	"context"
	"testing"

	"leafline/logging"
	"leafline/models"
)

func newTestVerifier(fake *fakeCompleter) *Verifier {
	orc, _ := newTestOrchestrator(fake)
	return NewVerifier(orc, logging.NewNop())
}

func TestVerifyIdentityFailsOpen(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{{err: ErrEmptyContent}}}
	v := newTestVerifier(fake)

	check := v.VerifyIdentity(context.Background(), pngDataURI, "Monstera", "Monstera deliciosa")
	if !check.Matches {
		t.Fatalf("fail-open contract: Matches must be true on error")
	}
	if check.Confidence != models.ConfidenceLow {
		t.Fatalf("fail-open confidence: want low, got %s", check.Confidence)
	}
	if check.DetectedPlant != "" {
		t.Fatalf("DetectedPlant must be empty on fail-open, got %q", check.DetectedPlant)
	}
}

func TestVerifyIdentityFailsOpenOnUnusablePhoto(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{{text: "{}"}}}
	v := newTestVerifier(fake)

	check := v.VerifyIdentity(context.Background(), "https://example.com/leaf.jpg?x=1", "Monstera", "")
	if !check.Matches || check.Confidence != models.ConfidenceLow {
		t.Fatalf("fail-open on image error: got %+v", check)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("inference must not run with an unusable photo, got %d calls", len(fake.calls))
	}
}

func TestVerifyIdentityMismatch(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{
		{text: `{"matches": false, "confidence": "high", "detectedPlant": "Epipremnum aureum"}`},
	}}
	v := newTestVerifier(fake)

	check := v.VerifyIdentity(context.Background(), pngDataURI, "Monstera", "Monstera deliciosa")
	if check.Matches {
		t.Fatalf("Matches: want false")
	}
	if check.Confidence != models.ConfidenceHigh {
		t.Fatalf("Confidence: want high, got %s", check.Confidence)
	}
	if check.DetectedPlant != "Epipremnum aureum" {
		t.Fatalf("DetectedPlant: got %q", check.DetectedPlant)
	}
}

func TestVerifyIdentityMatchOmitsDetectedPlant(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{
		{text: `{"matches": true, "confidence": "high", "detectedPlant": "Monstera deliciosa"}`},
	}}
	v := newTestVerifier(fake)

	check := v.VerifyIdentity(context.Background(), pngDataURI, "Monstera", "")
	if !check.Matches {
		t.Fatalf("Matches: want true")
	}
	if check.DetectedPlant != "" {
		t.Fatalf("DetectedPlant is only populated on mismatch, got %q", check.DetectedPlant)
	}
}
