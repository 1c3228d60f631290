package database

import (
	"context"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore persists accounts. Create fails with utils.ErrDuplicateKey when
// the username is taken; lookups fail with utils.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	AdminExists(ctx context.Context) (bool, error)
	UpdatePasswordHash(ctx context.Context, id bson.ObjectID, hash string) error
}

// MovieStore persists catalog entries. Update and Delete fail with
// utils.ErrNotFound when the id does not exist.
type MovieStore interface {
	List(ctx context.Context, sort utils.SortSpec) ([]models.Movie, error)
	Search(ctx context.Context, query string) ([]models.Movie, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, id bson.ObjectID, patch models.MoviePatch) (*models.Movie, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
}
