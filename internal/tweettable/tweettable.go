// Package tweettable sorts posts for display and renders them as a terminal table.
package tweettable

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"hookhunter/internal/models"
)

type SortKey string

const (
	SortText      SortKey = "text"
	SortAuthor    SortKey = "author"
	SortCreatedAt SortKey = "createdAt"
	SortLikes     SortKey = "likes"
	SortRetweets  SortKey = "retweets"
	SortViews     SortKey = "views"
	SortReplies   SortKey = "replies"
)

var sortKeys = []SortKey{SortText, SortAuthor, SortCreatedAt, SortLikes, SortRetweets, SortViews, SortReplies}

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseSortKey matches case-insensitively; empty means createdAt.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortCreatedAt, nil
	}
	for _, k := range sortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (valid: %s)", s, strings.Join(KeyNames(), ", "))
}

// ParseOrder defaults to descending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Desc, nil
	case "asc":
		return Asc, nil
	}
	return "", fmt.Errorf("unknown sort order %q (valid: asc, desc)", s)
}

func KeyNames() []string {
	names := make([]string, len(sortKeys))
	for i, k := range sortKeys {
		names[i] = string(k)
	}
	return names
}

// Sort orders posts in place. Equal elements keep their relative order.
func Sort(posts []models.Post, key SortKey, order Order) {
	less := lessFunc(key)
	sort.SliceStable(posts, func(i, j int) bool {
		if order == Asc {
			return less(posts[i], posts[j])
		}
		return less(posts[j], posts[i])
	})
}

func lessFunc(key SortKey) func(a, b models.Post) bool {
	switch key {
	case SortText:
		return func(a, b models.Post) bool { return strings.ToLower(a.Text) < strings.ToLower(b.Text) }
	case SortAuthor:
		return func(a, b models.Post) bool { return strings.ToLower(a.AuthorHandle) < strings.ToLower(b.AuthorHandle) }
	case SortLikes:
		return func(a, b models.Post) bool { return a.LikeCount < b.LikeCount }
	case SortRetweets:
		return func(a, b models.Post) bool { return a.RetweetCount < b.RetweetCount }
	case SortViews:
		return func(a, b models.Post) bool { return a.ViewCount < b.ViewCount }
	case SortReplies:
		return func(a, b models.Post) bool { return a.ReplyCount < b.ReplyCount }
	default:
		return func(a, b models.Post) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

const hookWidth = 60

// Render writes posts as a table with one row per post.
func Render(w io.Writer, posts []models.Post) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Author", "Hook", "Likes", "Retweets", "Views", "Replies", "Created"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, p := range posts {
		hook := p.Hook
		if hook == "" {
			hook = strings.Join(strings.Fields(p.Text), " ")
		}
		table.Append([]string{
			"@" + p.AuthorHandle,
			truncate(hook, hookWidth),
			Compact(p.LikeCount),
			Compact(p.RetweetCount),
			Compact(p.ViewCount),
			Compact(p.ReplyCount),
			p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// Compact formats a counter the way the web client does: 950, 1.2K, 3.4M.
func Compact(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimZero(float64(n)/1_000) + "K"
	}
	return strconv.Itoa(n)
}

func trimZero(f float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(f, 'f', 1, 64), ".0")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
