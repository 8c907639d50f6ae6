package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ port.HealthChecker = (*MongoDB)(nil)

// A Config describes where the catalog collections live.
type Config struct {
	URI                string
	Database           string
	ProductsCollection string
	BrandsCollection   string
	TypesCollection    string
	ConnectTimeout     time.Duration
}

// A MongoDB wraps the pooled driver client shared by all requests.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

func NewMongoDB(ctx context.Context, cfg Config) (MongoDB, error) {
	const op = "NewMongoDB"
	log := slog.With("op", op)

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return MongoDB{}, fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}

	s := MongoDB{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}
	if err := s.Ping(ctx); err != nil {
		s.Close(context.WithoutCancel(ctx))
		return MongoDB{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("database is available", "database", cfg.Database)
	return s, nil
}

func (s MongoDB) Ping(ctx context.Context) error {
	const op = "MongoDB.Ping"
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}
	return nil
}

func (s MongoDB) Close(ctx context.Context) {
	const op = "MongoDB.Close"
	log := slog.With("op", op)

	log.Info("closing mongodb client...")

	if err := s.client.Disconnect(ctx); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("mongodb client is closed")
}

func (s MongoDB) products() *mongo.Collection {
	return s.db.Collection(s.cfg.ProductsCollection)
}

func (s MongoDB) brands() *mongo.Collection {
	return s.db.Collection(s.cfg.BrandsCollection)
}

func (s MongoDB) types() *mongo.Collection {
	return s.db.Collection(s.cfg.TypesCollection)
}

// classify maps driver failures onto domain errors.
func classify(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, primitive.ErrInvalidHex), errors.As(err, new(hex.InvalidByteError)):
		return fmt.Errorf("%w: malformed id: %w", domain.ErrInvalidInput, err)
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}
