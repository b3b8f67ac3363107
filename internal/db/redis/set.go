package redis

import (
	"context"

	"github.com/kailas-cloud/pokedex/internal/db"
)

// SAdd adds a member to a set and reports whether it was newly added.
func (s *Store) SAdd(ctx context.Context, key, member string) (bool, error) {
	cmd := s.b().Sadd().Key(key).Member(member).Build()
	added, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpSAdd, Err: err}
	}
	return added > 0, nil
}

// SRem removes a member from a set and reports whether it was present.
func (s *Store) SRem(ctx context.Context, key, member string) (bool, error) {
	cmd := s.b().Srem().Key(key).Member(member).Build()
	removed, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpSRem, Err: err}
	}
	return removed > 0, nil
}

// SMembers returns all members of a set.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}
