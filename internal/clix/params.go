// Package clix turns raw caller input (flags or request fields) into search filters.
package clix

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"hookhunter/internal/models"
	"hookhunter/internal/tweettable"
)

// SearchInput is a search request as typed by a user.
type SearchInput struct {
	ListID     string
	Words      []string
	MinLikes   string
	StartDate  string
	EndDate    string
	TimePeriod string
	ResultType string
	Replies    bool
}

// Filter validates the input and builds a SearchFilter. now anchors time
// period presets.
func (in SearchInput) Filter(now time.Time) (models.SearchFilter, error) {
	f := models.SearchFilter{
		ListID:         ParseListID(in.ListID),
		Keywords:       in.Words,
		IncludeReplies: in.Replies,
	}

	minLikes, err := ParseMinLikes(in.MinLikes)
	if err != nil {
		return f, err
	}
	f.MinLikes = minLikes

	ranking, ok := models.ParseRankingHint(in.ResultType, "")
	if !ok {
		return f, fmt.Errorf("%w: resultType must be top or latest, got %q", models.ErrInvalidInput, in.ResultType)
	}
	f.ResultType = ranking

	if f.StartDate, err = ParseDate(in.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = ParseEndDate(in.EndDate); err != nil {
		return f, err
	}
	if f.StartDate.IsZero() && f.EndDate.IsZero() && strings.TrimSpace(in.TimePeriod) != "" {
		if f.StartDate, f.EndDate, err = PeriodRange(in.TimePeriod, now); err != nil {
			return f, err
		}
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return f, fmt.Errorf("%w: endDate is before startDate", models.ErrInvalidInput)
	}
	return f, nil
}

// ParseListID accepts a bare list id or a list URL such as
// https://x.com/i/lists/1585430245762441216 and returns the id.
func ParseListID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		s = u.Path
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// ParseMinLikes returns nil for an empty value.
func ParseMinLikes(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: minLikes must be a non-negative integer, got %q", models.ErrInvalidInput, s)
	}
	return &n, nil
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. A plain
// date is the start of that day.
func ParseDate(s string) (time.Time, error) {
	t, _, err := parseDate(s)
	return t, err
}

// ParseEndDate is ParseDate for the inclusive end of a range: a plain date
// covers the whole day and yields its last second.
func ParseEndDate(s string) (time.Time, error) {
	t, dateOnly, err := parseDate(s)
	if err != nil || !dateOnly {
		return t, err
	}
	return t.AddDate(0, 0, 1).Add(-time.Second), nil
}

func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: invalid date %q", models.ErrInvalidInput, s)
}

var periods = map[string]int{
	"1 day":   1,
	"1d":      1,
	"7 days":  7,
	"7d":      7,
	"21 days": 21,
	"21d":     21,
}

// PeriodRange maps a preset such as "7 Days" to [now-7d, now].
func PeriodRange(period string, now time.Time) (time.Time, time.Time, error) {
	days, ok := periods[strings.ToLower(strings.TrimSpace(period))]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown timePeriod %q (want 1 Day, 7 Days or 21 Days)", models.ErrInvalidInput, period)
	}
	end := now.UTC()
	return end.AddDate(0, 0, -days), end, nil
}

// ParseSort reads the --sort and --order flags.
func ParseSort(flags *pflag.FlagSet) (tweettable.SortKey, tweettable.Order, error) {
	keyStr, _ := flags.GetString("sort")
	orderStr, _ := flags.GetString("order")

	key, err := tweettable.ParseSortKey(keyStr)
	if err != nil {
		return "", "", err
	}
	order, err := tweettable.ParseOrder(orderStr)
	if err != nil {
		return "", "", err
	}
	return key, order, nil
}

// ParseLimit reads --limit, falling back to def for non-positive values.
func ParseLimit(flags *pflag.FlagSet, def int) int {
	limit, _ := flags.GetInt("limit")
	if limit <= 0 {
		return def
	}
	return limit
}
