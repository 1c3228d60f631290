package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoMovieStore struct {
	col *mongo.Collection
}

func NewMongoMovieStore(db *mongo.Database) *MongoMovieStore {
	return &MongoMovieStore{col: db.Collection(MoviesCollection)}
}

func sortDocument(spec utils.SortSpec) bson.D {
	dir := 1
	if spec.Descending {
		dir = -1
	}
	// _id breaks ties so paging through equal keys is stable.
	return bson.D{{Key: spec.Field, Value: dir}, {Key: "_id", Value: dir}}
}

func (s *MongoMovieStore) List(ctx context.Context, sort utils.SortSpec) ([]models.Movie, error) {
	return s.find(ctx, bson.M{}, sort)
}

// Search matches the query case-insensitively as a literal substring of
// title, description or any genre.
func (s *MongoMovieStore) Search(ctx context.Context, query string) ([]models.Movie, error) {
	pattern := bson.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"genre": pattern},
	}}
	return s.find(ctx, filter, utils.DefaultMovieSort)
}

func (s *MongoMovieStore) find(ctx context.Context, filter bson.M, sort utils.SortSpec) ([]models.Movie, error) {
	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(sortDocument(sort)))
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return movies, nil
}

func (s *MongoMovieStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error) {
	var movie models.Movie
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&movie); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return &movie, nil
}

func (s *MongoMovieStore) Create(ctx context.Context, movie *models.Movie) error {
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
	if _, err := s.col.InsertOne(ctx, movie); err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

func (s *MongoMovieStore) Update(ctx context.Context, id bson.ObjectID, patch models.MoviePatch) (*models.Movie, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var movie models.Movie
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, patchUpdate(patch), opts).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}
	return &movie, nil
}

// patchUpdate builds the $set/$unset document for a partial update.
func patchUpdate(p models.MoviePatch) bson.M {
	set := bson.M{}
	setField(set, "title", p.Title)
	setField(set, "description", p.Description)
	setField(set, "releaseYear", p.ReleaseYear)
	setField(set, "genre", p.Genre)
	setField(set, "rating", p.Rating)
	setField(set, "posterUrl", p.PosterURL)
	setField(set, "downloadUrl", p.DownloadURL)
	setField(set, "downloadOptions", p.DownloadOptions)
	setField(set, "contentType", p.ContentType)
	if !p.UnsetEpisodes {
		setField(set, "episodes", p.Episodes)
	}
	setField(set, "screenshots", p.Screenshots)
	setField(set, "fullName", p.FullName)
	setField(set, "language", p.Language)
	setField(set, "size", p.Size)
	setField(set, "source", p.Source)
	setField(set, "cast", p.Cast)
	setField(set, "format", p.Format)
	setField(set, "subtitle", p.Subtitle)

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	set["updatedAt"] = updatedAt

	update := bson.M{"$set": set}
	if p.UnsetEpisodes {
		update["$unset"] = bson.M{"episodes": ""}
	}
	return update
}

func setField[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}

func (s *MongoMovieStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *MongoMovieStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear movies: %w", err)
	}
	return res.DeletedCount, nil
}
