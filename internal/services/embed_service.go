package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	log "github.com/sirupsen/logrus"
)

// TweetFetcher looks up a single tweet for embedding.
type TweetFetcher interface {
	FetchTweet(ctx context.Context, id string) (json.RawMessage, error)
}

// EmbedService serves tweet payloads for previews, caching them in memory.
type EmbedService struct {
	fetcher TweetFetcher
	cache   *bigcache.BigCache
}

// NewEmbedService caches lookups for ttl; a non-positive ttl disables caching.
func NewEmbedService(ctx context.Context, fetcher TweetFetcher, ttl time.Duration) (*EmbedService, error) {
	s := &EmbedService{fetcher: fetcher}
	if ttl <= 0 {
		return s, nil
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 10000
	cfg.HardMaxCacheSize = 64 // MB
	cfg.Verbose = false
	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init embed cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

func (s *EmbedService) GetTweet(ctx context.Context, id string) (json.RawMessage, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(id); err == nil {
			log.WithField("id", id).Debug("embed cache hit")
			return json.RawMessage(data), nil
		} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
			log.WithError(err).WithField("id", id).Debug("embed cache read failed")
		}
	}

	raw, err := s.fetcher.FetchTweet(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(id, raw); err != nil {
			log.WithError(err).WithField("id", id).Debug("embed cache write failed")
		}
	}
	return raw, nil
}

func (s *EmbedService) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
