package utils

import (
	"strings"
	"testing"

	"github.com/sethvargo/go-password/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	passwords := []string{
		"admin123",
		"p",
		"with spaces and symbols !@#$%^&*()",
		"ünïcødé-密码",
		strings.Repeat("x", MaxPasswordBytes),
	}
	for _, pw := range passwords {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)

		ok, err := h.Verify(pw, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", pw)

		ok, err = h.Verify("!"+pw[1:], hash)
		require.NoError(t, err)
		assert.False(t, ok, "altered password %q must not verify", pw)
	}
}

func TestPasswordHasher_ManyDistinctPasswords(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	const n = 300
	seen := make(map[string]bool, n)
	pws := make([]string, 0, n)
	for len(pws) < n {
		pw, err := password.Generate(16, 4, 2, false, true)
		require.NoError(t, err)
		if !seen[pw] {
			seen[pw] = true
			pws = append(pws, pw)
		}
	}

	hashes := make([]string, n)
	for i, pw := range pws {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		hashes[i] = hash
	}

	for i, hash := range hashes {
		ok, err := h.Verify(pws[i], hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %d should verify", i)

		neighbour := pws[(i+1)%n]
		ok, err = h.Verify(neighbour, hash)
		require.NoError(t, err)
		assert.False(t, ok, "hash %d must reject password %d", i, (i+1)%n)
	}
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.NotPanics(t, func() {
		h.VerifyDummy("anything")
		h.VerifyDummy("")
	})
	assert.NotEmpty(t, h.dummyHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(h.dummyHash, []byte("dummy-password")))
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	ok, err := h.Verify("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"default", DefaultBcryptCost, DefaultBcryptCost},
		{"min", bcrypt.MinCost, bcrypt.MinCost},
		{"too low", 1, DefaultBcryptCost},
		{"too high", bcrypt.MaxCost + 1, DefaultBcryptCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPasswordHasher(tt.in).cost)
		})
	}
}

func TestPasswordHasher_StoredCost(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestCheckPasswordLength(t *testing.T) {
	assert.NoError(t, CheckPasswordLength("password", strings.Repeat("a", MaxPasswordBytes)))

	err := CheckPasswordLength("password", strings.Repeat("a", MaxPasswordBytes+1))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "password", fe.Field)

	// 25 three-byte runes: under the rune limit, over the byte limit
	assert.Error(t, CheckPasswordLength("password", strings.Repeat("密", 25)))
}
