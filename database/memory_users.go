package database

import (
	"context"
	"sync"
	"time"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryUserStore keeps accounts in process memory. Usernames are unique,
// enforced under the same lock as the insert.
type MemoryUserStore struct {
	mu         sync.RWMutex
	byID       map[bson.ObjectID]models.User
	byUsername map[string]bson.ObjectID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:       make(map[bson.ObjectID]models.User),
		byUsername: make(map[string]bson.ObjectID),
	}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		return &utils.DuplicateKeyError{Field: "username", Err: utils.ErrDuplicateKey}
	}

	now := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.byID[user.ID] = *user
	s.byUsername[user.Username] = user.ID
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.byUsername[username]
	s.mu.RUnlock()
	if !ok {
		return nil, utils.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *MemoryUserStore) AdminExists(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.byID {
		if u.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) UpdatePasswordHash(_ context.Context, id bson.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.PasswordHash = hash
	u.TokenVersion++
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}
