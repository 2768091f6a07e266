package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sectiongrid/pkg/config"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
)

// MongoStore keeps each board as one document whose _id is the board id.
// Saves replace the whole document (upsert), matching the replace-whole
// collection contract.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg config.Mongo) (*MongoStore, error) {
	// Nested content documents decode as maps so they re-encode as JSON
	// objects.
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, board string) (*grid.Board, error) {
	if err := errors.ValidateBoardID(board); err != nil {
		return nil, err
	}
	var d sgio.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": board}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(board)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "mongo find board %q", board)
	}
	return fromDocument(board, &d)
}

func (s *MongoStore) Save(ctx context.Context, board string, b *grid.Board) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	d := sgio.NewDocument(board, b)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": board}, d, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "mongo replace board %q", board)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, board string) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": board}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "mongo delete board %q", board)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "mongo list boards")
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, fmt.Sprint(v))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes the whole collection. Used by tests.
func (s *MongoStore) Drop(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

var _ Store = (*MongoStore)(nil)
