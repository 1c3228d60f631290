package database

import (
	"context"

	"github.com/streamnexus/nexusbackend/config"
	"go.uber.org/zap"
)

// Stores bundles the stores selected by DATABASE_DRIVER.
type Stores struct {
	Users  UserStore
	Movies MovieStore
	close  func(context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to MongoDB and ensures its indexes, or returns fresh
// in-memory stores for the memory driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		logger.Warn("using in-memory stores; data is lost on restart")
		return &Stores{
			Users:  NewMemoryUserStore(),
			Movies: NewMemoryMovieStore(),
		}, nil
	}

	client, err := Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Stores{
		Users:  NewMongoUserStore(db),
		Movies: NewMongoMovieStore(db),
		close:  client.Disconnect,
	}, nil
}
