package utils

import (
	"context"
	"sync"
	"testing"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore enforces unique usernames like the real stores.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) AdminExists(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Username]; ok {
		return &DuplicateKeyError{Field: "username", Err: ErrDuplicateKey}
	}
	f.users[u.Username] = *u
	return nil
}

func TestEnsureAdmin_CreatesOnce(t *testing.T) {
	store := newFakeUserStore()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()

	outcome, err := EnsureAdmin(ctx, store, hasher, "admin", "admin123", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, AdminCreated, outcome)

	admin := store.users["admin"]
	assert.True(t, admin.IsAdmin)
	ok, err := hasher.Verify("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	outcome, err = EnsureAdmin(ctx, store, hasher, "admin", "other-password", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, AdminAlreadyExists, outcome)
	assert.Len(t, store.users, 1)
}

func TestEnsureAdmin_UsernameHeldByRegularUser(t *testing.T) {
	store := newFakeUserStore()
	store.users["admin"] = models.User{Username: "admin"}

	outcome, err := EnsureAdmin(context.Background(), store, NewPasswordHasher(bcrypt.MinCost), "admin", "admin123", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, AdminUsernameTaken, outcome)
	assert.False(t, store.users["admin"].IsAdmin)
}

func TestEnsureAdmin_Concurrent(t *testing.T) {
	store := newFakeUserStore()
	hasher := NewPasswordHasher(bcrypt.MinCost)

	const n = 8
	outcomes := make([]BootstrapOutcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := EnsureAdmin(context.Background(), store, hasher, "admin", "admin123", zap.NewNop())
			assert.NoError(t, err)
			outcomes[i] = out
		}(i)
	}
	wg.Wait()

	created := 0
	for _, o := range outcomes {
		if o == AdminCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, store.users, 1)
}

func TestEnsureAdmin_Errors(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	_, err := EnsureAdmin(context.Background(), newFakeUserStore(), hasher, "  ", "pw", zap.NewNop())
	assert.Error(t, err)

	store := newFakeUserStore()
	store.err = assert.AnError
	_, err = EnsureAdmin(context.Background(), store, hasher, "admin", "pw", zap.NewNop())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBootstrapOutcome_String(t *testing.T) {
	assert.Equal(t, "created", AdminCreated.String())
	assert.Equal(t, "already_exists", AdminAlreadyExists.String())
	assert.Equal(t, "username_taken", AdminUsernameTaken.String())
}
