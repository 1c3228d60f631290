package database

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryMovieStore keeps the catalog in process memory. Returned entries are
// copies; callers may mutate them freely.
type MemoryMovieStore struct {
	mu     sync.RWMutex
	movies map[bson.ObjectID]models.Movie
}

func NewMemoryMovieStore() *MemoryMovieStore {
	return &MemoryMovieStore{movies: make(map[bson.ObjectID]models.Movie)}
}

func (s *MemoryMovieStore) List(_ context.Context, sort utils.SortSpec) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, cloneMovie(m))
	}
	sortMovies(out, sort)
	return out, nil
}

func (s *MemoryMovieStore) Search(_ context.Context, query string) ([]models.Movie, error) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Movie{}
	for _, m := range s.movies {
		if re.MatchString(m.Title) || re.MatchString(m.Description) || slices.ContainsFunc(m.Genre, re.MatchString) {
			out = append(out, cloneMovie(m))
		}
	}
	sortMovies(out, utils.DefaultMovieSort)
	return out, nil
}

func (s *MemoryMovieStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	m = cloneMovie(m)
	return &m, nil
}

func (s *MemoryMovieStore) Create(_ context.Context, movie *models.Movie) error {
	now := time.Now().UTC()
	if movie.ID.IsZero() {
		movie.ID = bson.NewObjectID()
	}
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = now
	}
	if movie.UpdatedAt.IsZero() {
		movie.UpdatedAt = movie.CreatedAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[movie.ID] = cloneMovie(*movie)
	return nil
}

func (s *MemoryMovieStore) Update(_ context.Context, id bson.ObjectID, patch models.MoviePatch) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if patch.UpdatedAt.IsZero() {
		patch.UpdatedAt = time.Now().UTC()
	}
	patch.Apply(&m)
	m = cloneMovie(m)
	s.movies[id] = m

	out := cloneMovie(m)
	return &out, nil
}

func (s *MemoryMovieStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return utils.ErrNotFound
	}
	delete(s.movies, id)
	return nil
}

func (s *MemoryMovieStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.movies))
	s.movies = make(map[bson.ObjectID]models.Movie)
	return n, nil
}

func sortMovies(movies []models.Movie, spec utils.SortSpec) {
	slices.SortFunc(movies, func(a, b models.Movie) int {
		c := compareField(a, b, spec.Field)
		if c == 0 {
			c = strings.Compare(a.ID.Hex(), b.ID.Hex())
		}
		if spec.Descending {
			return -c
		}
		return c
	})
}

func compareField(a, b models.Movie, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "releaseYear":
		return cmp.Compare(a.ReleaseYear, b.ReleaseYear)
	case "rating":
		return compareRating(a.Rating, b.Rating)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// compareRating orders unrated entries first, as Mongo does for missing fields.
func compareRating(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

func cloneMovie(m models.Movie) models.Movie {
	if m.Rating != nil {
		r := *m.Rating
		m.Rating = &r
	}
	m.Genre = slices.Clone(m.Genre)
	m.DownloadOptions = slices.Clone(m.DownloadOptions)
	m.Screenshots = slices.Clone(m.Screenshots)
	m.Cast = slices.Clone(m.Cast)
	if m.Episodes != nil {
		eps := make([]models.Episode, len(m.Episodes))
		for i, e := range m.Episodes {
			e.DownloadLinks = slices.Clone(e.DownloadLinks)
			eps[i] = e
		}
		m.Episodes = eps
	}
	return m
}
