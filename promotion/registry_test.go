package promotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPercentage(t *testing.T, code, reference, percent string) Promotion {
	t.Helper()
	p, err := NewPercentage(code, reference, d(percent), d("0"))
	require.NoError(t, err)
	return p
}

func mustBundle(t *testing.T, code, reference string, n int) Promotion {
	t.Helper()
	p, err := NewBuyNGetOneFree(code, reference, n)
	require.NoError(t, err)
	return p
}

func TestRegistry_ActivateUnregistered(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Activate("NOPE"))
	assert.False(t, r.IsActive("NOPE"))
}

func TestRegistry_ActivateIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "TEN", "Pomme", "10"))

	assert.True(t, r.Activate("TEN"))
	assert.True(t, r.Activate("TEN"))
	assert.True(t, r.IsActive("TEN"))
}

func TestRegistry_RejectsSameKindSameReference(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "TEN", "Pomme", "10"))
	r.Register(mustPercentage(t, "TWENTY", "Pomme", "20"))

	assert.True(t, r.Activate("TEN"))
	assert.False(t, r.Activate("TWENTY"), "second percentage promo on the same reference must be rejected")
	assert.False(t, r.IsActive("TWENTY"))
}

func TestRegistry_AllowsSameKindDifferentReferences(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "TEN", "Pomme", "10"))
	r.Register(mustPercentage(t, "TWENTY", "Cahier", "20"))

	assert.True(t, r.Activate("TEN"))
	assert.True(t, r.Activate("TWENTY"))
}

func TestRegistry_AllowsDifferentKindsSameReference(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "TEN", "Livre", "10"))
	r.Register(mustBundle(t, "B2G1", "Livre", 2))

	assert.True(t, r.Activate("TEN"))
	assert.True(t, r.Activate("B2G1"))

	active := r.ActiveFor("Livre")
	assert.Len(t, active, 2)
}

func TestRegistry_RegisterOverwritesSameCode(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "PROMO", "Pomme", "10"))
	r.Register(mustPercentage(t, "PROMO", "Pomme", "25"))

	p, ok := r.Get("PROMO")
	require.True(t, ok)
	assert.True(t, d("25").Equal(p.Percentage))
}

func TestRegistry_OverwriteDeactivates(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "A", "Pomme", "10"))
	require.True(t, r.Activate("A"))

	r.Register(mustBundle(t, "A", "Pomme", 2))
	assert.False(t, r.IsActive("A"), "overwriting a code must drop it from the active set")
	assert.Empty(t, r.ActiveFor("Pomme"))
}

func TestRegistry_OverwriteCannotBypassCompatibility(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "A", "Pomme", "10"))
	require.True(t, r.Activate("A"))

	// Swap A to a bundle, activate a second percentage promo in the freed
	// slot, then swap A back to a percentage.
	r.Register(mustBundle(t, "A", "Pomme", 2))
	r.Register(mustPercentage(t, "B", "Pomme", "20"))
	require.True(t, r.Activate("B"))
	r.Register(mustPercentage(t, "A", "Pomme", "10"))

	assert.False(t, r.Activate("A"), "slot is taken by B")

	perKind := make(map[Kind]int)
	for _, p := range r.ActiveFor("Pomme") {
		perKind[p.Kind]++
	}
	assert.LessOrEqual(t, perKind[KindPercentage], 1,
		"at most one active percentage promo per reference")
}

func TestRegistry_Deactivate(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "TEN", "Pomme", "10"))

	assert.False(t, r.Deactivate("TEN"), "deactivating an inactive code returns false")

	require.True(t, r.Activate("TEN"))
	assert.True(t, r.Deactivate("TEN"))
	assert.False(t, r.IsActive("TEN"))

	// A slot freed by deactivation can be taken by another promo.
	r.Register(mustPercentage(t, "TWENTY", "Pomme", "20"))
	assert.True(t, r.Activate("TWENTY"))
}

func TestRegistry_ActiveForFiltersByReference(t *testing.T) {
	r := NewRegistry()
	r.Register(mustPercentage(t, "TEN", "Pomme", "10"))
	r.Register(mustBundle(t, "B1G1", "Cahier", 1))
	require.True(t, r.Activate("TEN"))
	require.True(t, r.Activate("B1G1"))

	active := r.ActiveFor("Pomme")
	require.Len(t, active, 1)
	assert.Equal(t, "TEN", active[0].Code)

	assert.Empty(t, r.ActiveFor("Livre"))
}
