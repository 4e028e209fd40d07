package customers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
)

const (
	searchKeyPrefix = "cust:search:" // cached result set: cust:search:{normalized term}
	searchIndexKey  = "cust:search:keys"
	searchTTL       = 10 * time.Minute
)

// SearchService answers customer autocomplete queries through a read-through
// redis cache keyed by the normalized search term. Any customer write
// invalidates the whole cached set via InvalidateAll; results are small and
// the write rate is low, so coarse invalidation is fine.
type SearchService struct {
	store repository.Store
	rdb   *redis.Client
}

func NewSearchService(store repository.Store, rdb *redis.Client) *SearchService {
	return &SearchService{store: store, rdb: rdb}
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func (s *SearchService) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	term = normalizeTerm(term)
	if term == "" {
		return []domain.Customer{}, nil
	}

	if s.rdb != nil {
		key := searchKeyPrefix + term
		data, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var out []domain.Customer
			if err := json.Unmarshal([]byte(data), &out); err == nil {
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[customers] cache read %q: %v", term, err)
		}
	}

	out, err := s.store.SearchCustomers(ctx, term)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			key := searchKeyPrefix + term
			pipe := s.rdb.Pipeline()
			pipe.Set(ctx, key, data, searchTTL)
			pipe.SAdd(ctx, searchIndexKey, key)
			pipe.Expire(ctx, searchIndexKey, searchTTL)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("[customers] cache write %q: %v", term, err)
			}
		}
	}
	return out, nil
}

// InvalidateAll drops every cached search result. Wired as a post-commit
// hook so project mutations that touch customer rows refresh the cache.
func (s *SearchService) InvalidateAll(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	keys, err := s.rdb.SMembers(ctx, searchIndexKey).Result()
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	keys = append(keys, searchIndexKey)
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
