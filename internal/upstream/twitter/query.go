package twitter

import (
	"strconv"
	"strings"
	"time"

	"hookhunter/internal/models"
)

// timeLayout is the second-precision form X accepts for since:/until:.
const timeLayout = "2006-01-02_15:04:05_UTC"

// BuildRawQuery renders a filter in X's advanced search syntax, e.g.
//
//	growth hooks list:123 min_faves:100 since:2024-01-01_00:00:00_UTC until:2024-01-08_00:00:00_UTC -filter:replies
//
// Since and Until are both inclusive. X treats until: as exclusive, so it is
// rendered one second past Until. Absent fields produce no operator at all.
func BuildRawQuery(f models.TweetFilter) string {
	parts := make([]string, 0, 6)
	if len(f.Words) > 0 {
		parts = append(parts, strings.Join(f.Words, " "))
	}
	if f.ListID != "" {
		parts = append(parts, "list:"+f.ListID)
	}
	if f.MinLikes > 0 {
		parts = append(parts, "min_faves:"+strconv.Itoa(f.MinLikes))
	}
	if !f.Since.IsZero() {
		parts = append(parts, "since:"+f.Since.UTC().Truncate(time.Second).Format(timeLayout))
	}
	if !f.Until.IsZero() {
		parts = append(parts, "until:"+f.Until.UTC().Truncate(time.Second).Add(time.Second).Format(timeLayout))
	}
	if !f.IncludeReplies {
		parts = append(parts, "-filter:replies")
	}
	return strings.Join(parts, " ")
}

func product(hint models.RankingHint) string {
	if hint == models.RankingLatest {
		return "Latest"
	}
	return "Top"
}
