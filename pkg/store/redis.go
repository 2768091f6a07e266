package store

import (
	"context"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/sectiongrid/pkg/config"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

// RedisStore keeps each board as a JSON string under "<prefix>board:<id>"
// and tracks board ids in the set "<prefix>boards".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg config.Redis) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) boardKey(board string) string { return s.prefix + "board:" + board }
func (s *RedisStore) indexKey() string             { return s.prefix + "boards" }

func (s *RedisStore) Load(ctx context.Context, board string) (*grid.Board, error) {
	if err := errors.ValidateBoardID(board); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.boardKey(board)).Bytes()
	if err == redis.Nil {
		return nil, notFound(board)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "redis get board %q", board)
	}
	return decode(board, data)
}

// Save writes the document and registers the id in one MULTI/EXEC block.
func (s *RedisStore) Save(ctx context.Context, board string, b *grid.Board) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	data, err := encode(board, b)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.boardKey(board), data, 0)
		p.SAdd(ctx, s.indexKey(), board)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis save board %q", board)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, board string) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.boardKey(board))
		p.SRem(ctx, s.indexKey(), board)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis delete board %q", board)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "redis list boards")
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
