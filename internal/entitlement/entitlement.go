// Package entitlement gates premium features behind the stored
// subscription flag.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/nvoss/gpacalc/internal/store"
)

// Feature names a gated capability.
type Feature string

const (
	// FeatureWeightedGPA enables the weighted GPA calculation.
	FeatureWeightedGPA Feature = "weighted-gpa"
	// FeatureMultiSemester enables tracking more than one semester and
	// the cumulative GPA across them.
	FeatureMultiSemester Feature = "multi-semester"
	// FeaturePrediction enables GPA projection from expected courses.
	FeaturePrediction Feature = "prediction"
	// FeatureExport enables transcript export.
	FeatureExport Feature = "export"
)

// ErrLocked is returned when a premium feature is used without the
// entitlement.
var ErrLocked = errors.New("premium feature is locked")

// Gate answers whether premium features are available for one profile.
// The dev unlock is an explicit construction-time value from the config
// file, not a mutable global.
type Gate struct {
	store     *store.Store
	profileID string
	devUnlock bool
}

// NewGate builds a gate for a profile.
func NewGate(st *store.Store, profileID string, devUnlock bool) *Gate {
	return &Gate{store: st, profileID: profileID, devUnlock: devUnlock}
}

// Premium reports whether the profile holds the premium entitlement.
func (g *Gate) Premium(ctx context.Context) (bool, error) {
	if g.devUnlock {
		return true, nil
	}
	premium, err := g.store.IsPremium(ctx, g.profileID)
	if err != nil {
		return false, fmt.Errorf("failed to read entitlement: %w", err)
	}
	return premium, nil
}

// Require returns ErrLocked (wrapped with the feature name) when the
// profile lacks the entitlement for the feature.
func (g *Gate) Require(ctx context.Context, f Feature) error {
	premium, err := g.Premium(ctx)
	if err != nil {
		return err
	}
	if !premium {
		return fmt.Errorf("%s: %w", f, ErrLocked)
	}
	return nil
}

// Unlock marks the profile premium. The real purchase flow lives outside
// this tool; this is the hook the stub checkout calls on success.
func (g *Gate) Unlock(ctx context.Context) error {
	return g.store.SetPremium(ctx, g.profileID, true)
}
