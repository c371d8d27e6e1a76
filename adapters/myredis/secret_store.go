package myredis

import (
	"context"
	"errors"
	"fmt"

	"mymesh/service"

	"github.com/go-redis/redis/v8"
)

// DefaultSecretKey is the redis key under which nodes sharing a redis instance keep the discovery secret.
const DefaultSecretKey = "mymesh:discovery_key"

type secretStore struct {
	client redis.UniversalClient
	key    string
}

// NewSecretStore creates redis implementation of interfaces.SecretStore. The secret has no TTL.
func NewSecretStore(client redis.UniversalClient, key string) *secretStore {
	return &secretStore{
		client: client,
		key:    key,
	}
}

func (s *secretStore) Load(ctx context.Context) (string, error) {
	secret, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", service.NewEntityNotFoundError("Secret not found", nil)
	}
	if err != nil {
		return "", service.NewInternalServerError("Redis get key error", fmt.Errorf("can't read secret from redis (key='%s'), err: %w", s.key, err))
	}
	return secret, nil
}

// Persist uses SETNX so that concurrently starting nodes converge on the first written secret.
func (s *secretStore) Persist(ctx context.Context, secret string) (string, error) {
	if err := s.client.SetNX(ctx, s.key, secret, 0).Err(); err != nil {
		return "", service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write secret to redis (key='%s'), err: %w", s.key, err))
	}
	return s.Load(ctx)
}
