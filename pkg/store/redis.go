package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/redis/go-redis/v9"
)

// Key layout: <prefix>record:<name> holds the JSON-encoded record, and
// <prefix>records is the set of stored names
const (
	recordPrefix = "record:"
	recordIndex  = "records"
)

// Redis is a record store backed by a Redis database. Records are keyed
// by name, so this backend cannot accumulate duplicates
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

// NewRedis creates a Redis-backed store. All keys are namespaced under
// prefix so several deployments can share a database
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (s *Redis) key(name api.Name) string {
	return s.prefix + recordPrefix + string(name)
}

func (s *Redis) indexKey() string {
	return s.prefix + recordIndex
}

// Put stores a record, replacing any existing record with the same name
func (s *Redis) Put(ctx context.Context, rec *api.ConfigRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(rec.Name), data, 0)
	pipe.SAdd(ctx, s.indexKey(), string(rec.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// Delete removes the record with the given name
func (s *Redis) Delete(ctx context.Context, name api.Name) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), string(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	return nil
}

// Query returns the record with the given name, or an empty result when
// none is stored
func (s *Redis) Query(
	ctx context.Context, name api.Name,
) ([]*api.ConfigRecord, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	var rec api.ConfigRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return []*api.ConfigRecord{&rec}, nil
}

// List returns every stored record sorted by name
func (s *Redis) List(ctx context.Context) ([]*api.ConfigRecord, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	slices.Sort(names)

	res := make([]*api.ConfigRecord, 0, len(names))
	for _, name := range names {
		recs, err := s.Query(ctx, api.Name(name))
		if err != nil {
			return nil, err
		}
		res = append(res, recs...)
	}
	return res, nil
}
