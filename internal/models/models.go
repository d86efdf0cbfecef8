package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultListID is the curated list searched when a filter names neither a list
// nor any keywords, so a search never turns into a global query.
const DefaultListID = "1585430245762441216"

// RankingHint selects the upstream ordering mode.
type RankingHint string

const (
	RankingTop    RankingHint = "top"
	RankingLatest RankingHint = "latest"
)

// ParseRankingHint maps user input onto a RankingHint. Empty input yields def.
func ParseRankingHint(s string, def RankingHint) (RankingHint, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, true
	case "top":
		return RankingTop, true
	case "latest", "recent":
		return RankingLatest, true
	}
	return "", false
}

// Post is a single search hit with its engagement counters.
type Post struct {
	ID           string    `json:"id"`
	AuthorHandle string    `json:"authorHandle"`
	AuthorName   string    `json:"authorName,omitempty"`
	Text         string    `json:"text"`
	Hook         string    `json:"hook,omitempty"` // first sentence of Text
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int       `json:"likeCount"`
	RetweetCount int       `json:"retweetCount"`
	ViewCount    int       `json:"viewCount"`
	ReplyCount   int       `json:"replyCount"`
	QuoteCount   int       `json:"quoteCount"`
	URL          string    `json:"url,omitempty"`
}

// SearchFilter is the caller-facing search request. MinLikes is nil when no
// threshold was given.
type SearchFilter struct {
	ListID     string
	Keywords   []string
	MinLikes   *int
	StartDate  time.Time
	EndDate    time.Time
	ResultType RankingHint
	// IncludeReplies keeps replies in the results; they are excluded by default.
	IncludeReplies bool
}

// TweetFilter is the effective filter sent upstream. Zero values are omitted
// from the upstream query. Since and Until are inclusive.
type TweetFilter struct {
	ListID         string
	Words          []string
	MinLikes       int
	Since          time.Time
	Until          time.Time
	IncludeReplies bool
}

// TweetPage is one page returned by the upstream search service.
type TweetPage struct {
	Posts []Post
	Next  string // empty when there are no further pages
}

// SearchStatus tells a clean stop apart from a degraded one.
type SearchStatus string

const (
	SearchComplete SearchStatus = "complete"
	SearchPartial  SearchStatus = "partial"
)

// SearchResult is the aggregator's output. Cause is set only for partial results.
type SearchResult struct {
	Posts    []Post
	Status   SearchStatus
	Cause    error
	Pages    int
	RawCount int
	Filter   TweetFilter
}

// Partial reports whether pagination stopped on an upstream error.
func (r *SearchResult) Partial() bool {
	return r != nil && r.Status == SearchPartial
}

// SearchRecord is one row of the optional search history.
type SearchRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RawQuery    string    `db:"raw_query" json:"raw_query"`
	ListID      string    `db:"list_id" json:"list_id"`
	Keywords    string    `db:"keywords" json:"keywords"`
	MinLikes    int       `db:"min_likes" json:"min_likes"`
	ResultType  string    `db:"result_type" json:"result_type"`
	Pages       int       `db:"pages" json:"pages"`
	RawCount    int       `db:"raw_count" json:"raw_count"`
	ResultCount int       `db:"result_count" json:"result_count"`
	Status      string    `db:"status" json:"status"`
	ExecutedAt  time.Time `db:"executed_at" json:"executed_at"`
}
