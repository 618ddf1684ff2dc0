package entitlement

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoss/gpacalc/internal/store"
)

func TestGate(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "gpacalc.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	gate := NewGate(st, p.ID, false)
	premium, err := gate.Premium(ctx)
	require.NoError(t, err)
	assert.False(t, premium)

	for _, f := range []Feature{FeatureWeightedGPA, FeatureMultiSemester, FeaturePrediction, FeatureExport} {
		assert.ErrorIs(t, gate.Require(ctx, f), ErrLocked)
	}

	require.NoError(t, gate.Unlock(ctx))
	premium, err = gate.Premium(ctx)
	require.NoError(t, err)
	assert.True(t, premium)
	assert.NoError(t, gate.Require(ctx, FeatureExport))
}

func TestGateDevUnlock(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "gpacalc.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	// With dev unlock the store flag stays untouched but everything opens.
	gate := NewGate(st, p.ID, true)
	assert.NoError(t, gate.Require(ctx, FeaturePrediction))

	stored, err := st.IsPremium(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored)
}
