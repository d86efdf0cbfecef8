package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"hookhunter/internal/models"
	"hookhunter/internal/upstream/twitter"
)

// TweetSearcher fetches one page of search results from the upstream service.
type TweetSearcher interface {
	SearchTweets(ctx context.Context, filter models.TweetFilter, count int, cursor string, ranking models.RankingHint) (*models.TweetPage, error)
}

// HistoryRecorder persists executed searches. Implementations may be asynchronous.
type HistoryRecorder interface {
	Record(ctx context.Context, rec *models.SearchRecord) error
}

// SearchOptions holds the defaults Execute applies to every search.
type SearchOptions struct {
	TargetCount    int
	PageSize       int
	DefaultListID  string
	DefaultRanking models.RankingHint
}

type SearchService struct {
	searcher TweetSearcher
	hooks    *HookExtractor
	history  HistoryRecorder
	opts     SearchOptions
}

// NewSearchService wires the aggregator. hooks and history may be nil.
func NewSearchService(searcher TweetSearcher, hooks *HookExtractor, history HistoryRecorder, opts SearchOptions) *SearchService {
	if opts.DefaultListID == "" {
		opts.DefaultListID = models.DefaultListID
	}
	if opts.DefaultRanking == "" {
		opts.DefaultRanking = models.RankingTop
	}
	return &SearchService{
		searcher: searcher,
		hooks:    hooks,
		history:  history,
		opts:     opts,
	}
}

// NormalizeKeywords strips commas and drops empty tokens.
func NormalizeKeywords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		for _, tok := range strings.Fields(strings.ReplaceAll(w, ",", "")) {
			out = append(out, tok)
		}
	}
	return out
}

// ResolveFilter turns a caller filter into the effective upstream filter. A
// filter with neither list nor keywords falls back to the default list, and a
// missing or zero like-floor is left out of the upstream query.
func (s *SearchService) ResolveFilter(f models.SearchFilter) models.TweetFilter {
	eff := models.TweetFilter{
		ListID:         strings.TrimSpace(f.ListID),
		Words:          NormalizeKeywords(f.Keywords),
		Since:          f.StartDate,
		Until:          f.EndDate,
		IncludeReplies: f.IncludeReplies,
	}
	if eff.ListID == "" && len(eff.Words) == 0 {
		eff.ListID = s.opts.DefaultListID
	}
	if f.MinLikes != nil && *f.MinLikes > 0 {
		eff.MinLikes = *f.MinLikes
	}
	return eff
}

func (s *SearchService) ranking(f models.SearchFilter) models.RankingHint {
	if f.ResultType == "" {
		return s.opts.DefaultRanking
	}
	return f.ResultType
}

// Search pages through the upstream service until targetCount posts are
// accumulated, the cursor runs out, or a page comes back empty, then keeps only
// posts at or above the like-floor. Upstream order is preserved.
//
// A failure on the first page (or a missing credential) is returned as an
// error. A failure on a later page ends pagination and yields a partial result
// carrying the cause.
func (s *SearchService) Search(ctx context.Context, filter models.SearchFilter, targetCount, pageSize int) (*models.SearchResult, error) {
	if targetCount <= 0 || pageSize <= 0 {
		return nil, fmt.Errorf("%w: target count and page size must be positive", models.ErrInvalidInput)
	}

	eff := s.ResolveFilter(filter)
	ranking := s.ranking(filter)
	result := &models.SearchResult{Status: models.SearchComplete, Filter: eff}

	var (
		accumulated []models.Post
		cursor      string
	)
	for {
		page, err := s.searcher.SearchTweets(ctx, eff, pageSize, cursor, ranking)
		result.Pages++
		if err != nil {
			if errors.Is(err, models.ErrConfig) {
				return nil, err
			}
			if result.Pages == 1 {
				if errors.Is(err, models.ErrUpstream) {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
			}
			log.WithError(err).WithFields(log.Fields{
				"page":        result.Pages,
				"accumulated": len(accumulated),
			}).Warn("search page failed, returning partial results")
			result.Status = models.SearchPartial
			result.Cause = err
			break
		}

		accumulated = append(accumulated, page.Posts...)
		cursor = page.Next

		if len(accumulated) >= targetCount || cursor == "" || len(page.Posts) == 0 {
			break
		}
	}

	result.RawCount = len(accumulated)
	result.Posts = filterMinLikes(accumulated, effectiveMinLikes(filter))
	return result, nil
}

func effectiveMinLikes(f models.SearchFilter) int {
	if f.MinLikes == nil || *f.MinLikes < 0 {
		return 0
	}
	return *f.MinLikes
}

func filterMinLikes(posts []models.Post, floor int) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.LikeCount >= floor {
			out = append(out, p)
		}
	}
	return out
}

// Execute runs Search with the configured sizes, annotates hooks, and records
// the search in history when a recorder is configured.
func (s *SearchService) Execute(ctx context.Context, filter models.SearchFilter) (*models.SearchResult, error) {
	start := time.Now()
	res, err := s.Search(ctx, filter, s.opts.TargetCount, s.opts.PageSize)
	if err != nil {
		return nil, err
	}

	if s.hooks != nil {
		for i := range res.Posts {
			res.Posts[i].Hook = s.hooks.Extract(res.Posts[i].Text)
		}
	}

	log.WithFields(log.Fields{
		"query":    twitter.BuildRawQuery(res.Filter),
		"pages":    res.Pages,
		"raw":      res.RawCount,
		"returned": len(res.Posts),
		"status":   res.Status,
		"took":     time.Since(start).Round(time.Millisecond),
	}).Info("search finished")

	if s.history != nil {
		rec := NewSearchRecord(res, s.ranking(filter), time.Now().UTC())
		if err := s.history.Record(ctx, rec); err != nil {
			log.WithError(err).Warn("failed to record search history")
		}
	}
	return res, nil
}

// NewSearchRecord summarises a finished search for the history store.
func NewSearchRecord(res *models.SearchResult, ranking models.RankingHint, at time.Time) *models.SearchRecord {
	return &models.SearchRecord{
		ID:          uuid.New(),
		RawQuery:    twitter.BuildRawQuery(res.Filter),
		ListID:      res.Filter.ListID,
		Keywords:    strings.Join(res.Filter.Words, " "),
		MinLikes:    res.Filter.MinLikes,
		ResultType:  string(ranking),
		Pages:       res.Pages,
		RawCount:    res.RawCount,
		ResultCount: len(res.Posts),
		Status:      string(res.Status),
		ExecutedAt:  at,
	}
}
