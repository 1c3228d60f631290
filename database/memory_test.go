package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMemoryUserStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	u := &models.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, store.Create(ctx, u))
	assert.False(t, u.ID.IsZero())
	assert.False(t, u.CreatedAt.IsZero())

	byName, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := store.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = store.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = store.FindByID(ctx, bson.NewObjectID())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestMemoryUserStore_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	require.NoError(t, store.Create(ctx, &models.User{Username: "alice"}))
	err := store.Create(ctx, &models.User{Username: "alice"})
	assert.True(t, utils.IsDuplicateKey(err))

	var dup *utils.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)
}

func TestMemoryUserStore_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Create(ctx, &models.User{Username: "racer"}); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			} else {
				assert.True(t, utils.IsDuplicateKey(err))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestMemoryUserStore_AdminExistsAndPassword(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	exists, err := store.AdminExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	u := &models.User{Username: "root", PasswordHash: "old", IsAdmin: true}
	require.NoError(t, store.Create(ctx, u))

	exists, err = store.AdminExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.UpdatePasswordHash(ctx, u.ID, "new"))
	got, err := store.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)
	assert.Equal(t, 1, got.TokenVersion)

	assert.ErrorIs(t, store.UpdatePasswordHash(ctx, bson.NewObjectID(), "x"), utils.ErrNotFound)
}

func seedMovie(t *testing.T, store MovieStore, title string, year int, rating float64, createdAt time.Time) *models.Movie {
	t.Helper()
	m := &models.Movie{
		Title:       title,
		Description: title + " description",
		ReleaseYear: year,
		Rating:      &rating,
		Genre:       []string{"Drama"},
		ContentType: models.ContentTypeMovie,
		CreatedAt:   createdAt,
	}
	require.NoError(t, store.Create(context.Background(), m))
	return m
}

func TestMemoryMovieStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMovieStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedMovie(t, store, "B", 2001, 7, base)
	seedMovie(t, store, "A", 1999, 9, base.Add(time.Hour))
	seedMovie(t, store, "C", 2010, 5, base.Add(2*time.Hour))

	titles := func(ms []models.Movie) []string {
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.Title)
		}
		return out
	}

	tests := []struct {
		sort utils.SortSpec
		want []string
	}{
		{utils.DefaultMovieSort, []string{"C", "A", "B"}},
		{utils.SortSpec{Field: "title"}, []string{"A", "B", "C"}},
		{utils.SortSpec{Field: "releaseYear", Descending: true}, []string{"C", "B", "A"}},
		{utils.SortSpec{Field: "rating"}, []string{"C", "B", "A"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s desc=%v", tt.sort.Field, tt.sort.Descending), func(t *testing.T) {
			got, err := store.List(ctx, tt.sort)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestMemoryMovieStore_Search(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMovieStore()
	now := time.Now()

	seedMovie(t, store, "The Dark Knight", 2008, 9, now)
	m := seedMovie(t, store, "Inception", 2010, 8.8, now.Add(time.Second))
	_, err := store.Update(ctx, m.ID, models.MoviePatch{Genre: &[]string{"Sci-Fi"}})
	require.NoError(t, err)
	seedMovie(t, store, "Price (1+1)", 2020, 5, now.Add(2*time.Second))

	got, err := store.Search(ctx, "dark")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Dark Knight", got[0].Title)

	got, err = store.Search(ctx, "sci-fi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Inception", got[0].Title)

	// regex metacharacters are matched literally
	got, err = store.Search(ctx, "(1+1)")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = store.Search(ctx, ".*")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestMemoryMovieStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMovieStore()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := seedMovie(t, store, "Old", 2000, 5, created)

	title := "New"
	updated, err := store.Update(ctx, m.ID, models.MoviePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 2000, updated.ReleaseYear)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created))

	_, err = store.Update(ctx, bson.NewObjectID(), models.MoviePatch{Title: &title})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, store.Delete(ctx, m.ID))
	assert.ErrorIs(t, store.Delete(ctx, m.ID), utils.ErrNotFound)
	_, err = store.FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestMemoryMovieStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMovieStore()
	m := seedMovie(t, store, "Copy", 2000, 5, time.Now())

	got, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	got.Genre[0] = "Mutated"

	again, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", again.Genre[0])
}

func TestMemoryMovieStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryMovieStore()
	seedMovie(t, store, "A", 2000, 5, time.Now())
	seedMovie(t, store, "B", 2000, 5, time.Now())

	n, err := store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err := store.List(ctx, utils.DefaultMovieSort)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	list := NewMemoryRevocationList()
	list.now = func() time.Time { return now }

	require.NoError(t, list.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, list.Revoke(ctx, "jti-past", now.Add(-time.Minute)))

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = list.IsRevoked(ctx, "jti-past")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens need no entry")

	now = now.Add(2 * time.Hour)
	revoked, err = list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, list.entries)
}
