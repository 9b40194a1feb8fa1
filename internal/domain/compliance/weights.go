package compliance

import (
	"fmt"
	"math"
)

// weightTolerance is the allowed deviation of the weight sum from 1.0.
const weightTolerance = 0.001

// Weights holds the six dimension weights. They must sum to 1.0 within
// weightTolerance.
type Weights struct {
	PolicyFit       float64 `koanf:"policy_fit"`
	FMVVerification float64 `koanf:"fmv_verification"`
	DocumentHygiene float64 `koanf:"document_hygiene"`
	TaxReadiness    float64 `koanf:"tax_readiness"`
	BrandSafety     float64 `koanf:"brand_safety"`
	GuardianConsent float64 `koanf:"guardian_consent"`
}

// DefaultWeights returns the production default weighting.
func DefaultWeights() Weights {
	return Weights{
		PolicyFit:       0.30,
		FMVVerification: 0.15,
		DocumentHygiene: 0.20,
		TaxReadiness:    0.15,
		BrandSafety:     0.10,
		GuardianConsent: 0.10,
	}
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.PolicyFit + w.FMVVerification + w.DocumentHygiene +
		w.TaxReadiness + w.BrandSafety + w.GuardianConsent
}

// Validate checks the weight-sum invariant and rejects negative weights.
func (w Weights) Validate() error {
	for _, v := range []float64{
		w.PolicyFit, w.FMVVerification, w.DocumentHygiene,
		w.TaxReadiness, w.BrandSafety, w.GuardianConsent,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: weight %v outside [0,1]", ErrInvalidWeights, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidWeights, w.Sum())
	}
	return nil
}
