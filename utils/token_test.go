package utils

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: map[string]time.Time{}}
}

func (f *fakeRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[id] = until
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[id]
	return ok, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(now)))

	token, issued, err := svc.Issue("665f1c2a9b1e8a0012345678")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, 24*time.Hour, issued.ExpiresAt.Sub(issued.IssuedAt.Time))

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "665f1c2a9b1e8a0012345678", claims.UserID)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenService_IssueVersionCarriesVersion(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, _, err := svc.IssueVersion("u1", 3)
	require.NoError(t, err)

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestTokenService_UniqueIDs(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	_, a, err := svc.Issue("u1")
	require.NoError(t, err)
	_, b, err := svc.Issue("u1")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt)))
	token, _, err := issuer.Issue("u1")
	require.NoError(t, err)

	justBefore := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt.Add(23*time.Hour))))
	_, err = justBefore.Verify(context.Background(), token)
	assert.NoError(t, err)

	after := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt.Add(25*time.Hour))))
	_, err = after.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "expired", TokenFailureReason(err))
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _, err := NewTokenService("right-secret", time.Hour).Issue("u1")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, _, err := svc.Issue("u1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, _, err := svc.Issue("u1")
	require.NoError(t, err)
	other, _, err := svc.Issue("someone-else")
	require.NoError(t, err)

	// header and signature of one token with the payload of another
	p1 := strings.Split(token, ".")
	p2 := strings.Split(other, ".")
	spliced := p1[0] + "." + p2[1] + "." + p1[2]

	_, err = svc.Verify(context.Background(), spliced)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b"} {
		_, err := svc.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), none)
	assert.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), hs512)
	assert.Error(t, err)
}

func TestTokenService_RequiresUserIDAndExpiry(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), noUser)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), noExp)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_Revoke(t *testing.T) {
	revocations := newFakeRevocations()
	svc := NewTokenService(testSecret, time.Hour, WithRevocationList(revocations))
	ctx := context.Background()

	token, _, err := svc.Issue("u1")
	require.NoError(t, err)
	other, _, err := svc.Issue("u1")
	require.NoError(t, err)

	claims, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, claims))
	assert.Equal(t, claims.ExpiresAt.Time, revocations.revoked[claims.ID])

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Equal(t, "revoked", TokenFailureReason(err))

	_, err = svc.Verify(ctx, other)
	assert.NoError(t, err, "revoking one token must not affect another")
}

func TestTokenService_RevokeWithoutList(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, _, err := svc.Issue("u1")
	require.NoError(t, err)
	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)

	assert.Error(t, svc.Revoke(context.Background(), claims))
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenService(testSecret, 0).TTL())
	assert.Equal(t, time.Minute, NewTokenService(testSecret, time.Minute).TTL())
}

func TestTokenFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrTokenMalformed, "malformed"},
		{ErrTokenSignatureInvalid, "signature_invalid"},
		{ErrTokenExpired, "expired"},
		{ErrTokenRevoked, "revoked"},
		{assert.AnError, "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenFailureReason(tt.err))
	}
}
