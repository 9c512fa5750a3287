package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_Cost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"default", DefaultCost, DefaultCost},
		{"min cost", bcrypt.MinCost, bcrypt.MinCost},
		{"too low", 2, DefaultCost},
		{"too high", 40, DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewHasher(tt.cost).Cost())
		})
	}
}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123", hashed)
	assert.True(t, h.Verify("Secret123", hashed))
	assert.False(t, h.Verify("Secret124", hashed))
	assert.False(t, h.Verify("", hashed))
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("admin123")
	require.NoError(t, err)
	second, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("admin123", first))
	assert.True(t, h.Verify("admin123", second))
}

func TestHasher_VerifyAcrossCosts(t *testing.T) {
	t.Parallel()

	old := NewHasher(bcrypt.MinCost)
	hashed, err := old.Hash("password")
	require.NoError(t, err)

	current := NewHasher(bcrypt.MinCost + 1)
	assert.True(t, current.Verify("password", hashed))

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plaintext", "$2a$10$short", "$2a$99$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("password", hash))
		})
	}
}
