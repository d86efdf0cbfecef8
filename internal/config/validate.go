package config

import (
	"errors"
	"fmt"

	"hookhunter/internal/models"
)

/*
Validate checks structural settings only. API credentials are deliberately left
out: they are read per request so that a missing key fails that request rather
than the whole process.
*/
func (c *Config) Validate() error {
	if c.Search.TargetCount <= 0 {
		return errors.New("search.target_count must be a positive integer")
	}
	if c.Search.PageSize <= 0 {
		return errors.New("search.page_size must be a positive integer")
	}
	if _, ok := models.ParseRankingHint(c.Search.ResultType, models.RankingTop); !ok {
		return fmt.Errorf("search.result_type %q must be 'top' or 'latest'", c.Search.ResultType)
	}

	if c.Twitter.BaseURL == "" {
		return errors.New("twitter.base_url is required")
	}
	if c.Twitter.QueryID == "" {
		return errors.New("twitter.query_id is required")
	}
	if c.Twitter.RetryCount < 0 {
		return errors.New("twitter.retry_count must not be negative")
	}

	switch c.History.Driver {
	case "", "none":
	case "sqlite", "postgres":
		if c.History.DSN == "" {
			return fmt.Errorf("history.dsn is required for driver '%s'", c.History.Driver)
		}
	default:
		return fmt.Errorf("unknown history.driver '%s'", c.History.Driver)
	}

	if c.History.Async {
		if c.Redis.Address == "" {
			return errors.New("redis.address is required when history.async is true")
		}
		if c.Worker.Concurrency <= 0 {
			return errors.New("worker.concurrency must be a positive integer")
		}
		for name, priority := range c.Worker.Queues {
			if name == "" {
				return errors.New("worker.queues contains an empty queue name")
			}
			if priority <= 0 {
				return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
			}
		}
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format '%s' must be 'text' or 'json'", c.Log.Format)
	}
	return nil
}
