package advisor

import (
	"context"
	"strings"

	"leafline/logging"
	"leafline/models"
)

// Verifier cross-checks a photographed plant against the expected species.
type Verifier struct {
	orc *Orchestrator
	log *logging.Logger
}

func NewVerifier(orc *Orchestrator, log *logging.Logger) *Verifier {
	return &Verifier{orc: orc, log: log.With("service", "IdentityVerifier")}
}

// VerifyIdentity delegates to the orchestrator with an identity_verify task.
// It is fail-open by contract: any failure in that call returns
// {Matches: true, Confidence: low} so a transient advisory outage never
// blocks an ordinary logging flow. DetectedPlant is populated only when the
// photo does not match.
func (v *Verifier) VerifyIdentity(ctx context.Context, photo, expectedName, expectedScientificName string) models.IdentityCheck {
	result, err := v.orc.Execute(ctx, Task{
		Kind:                   KindIdentityVerify,
		Images:                 []string{photo},
		ExpectedName:           expectedName,
		ExpectedScientificName: expectedScientificName,
	})
	if err != nil {
		v.log.Warn("identity verification failed open",
			"expected", expectedName,
			"error", err.Error(),
		)
		return models.IdentityCheck{Matches: true, Confidence: models.ConfidenceLow}
	}

	check := models.IdentityCheck{
		Matches:    true,
		Confidence: models.ConfidenceLow,
	}
	if m, ok := result["matches"].(bool); ok {
		check.Matches = m
	}
	if c, ok := result["confidence"].(string); ok && models.Confidence(c).Valid() {
		check.Confidence = models.Confidence(c)
	}
	if !check.Matches {
		if d, ok := result["detectedPlant"].(string); ok {
			check.DetectedPlant = strings.TrimSpace(d)
		}
	}
	return check
}
