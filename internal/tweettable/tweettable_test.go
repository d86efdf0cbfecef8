package tweettable

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookhunter/internal/models"
)

func samplePosts() []models.Post {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.Post{
		{ID: "1", AuthorHandle: "bob", Text: "beta", LikeCount: 10, ViewCount: 5, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "2", AuthorHandle: "Alice", Text: "Alpha", LikeCount: 30, ViewCount: 5, CreatedAt: base},
		{ID: "3", AuthorHandle: "carol", Text: "gamma", LikeCount: 10, ViewCount: 9, CreatedAt: base.Add(time.Hour)},
	}
}

func order(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		key   SortKey
		order Order
		want  []string
	}{
		{SortCreatedAt, Desc, []string{"1", "3", "2"}},
		{SortCreatedAt, Asc, []string{"2", "3", "1"}},
		{SortLikes, Desc, []string{"2", "1", "3"}},
		{SortLikes, Asc, []string{"1", "3", "2"}},
		{SortViews, Desc, []string{"3", "1", "2"}},
		{SortAuthor, Asc, []string{"2", "1", "3"}},
		{SortText, Desc, []string{"3", "1", "2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key)+"/"+string(tt.order), func(t *testing.T) {
			posts := samplePosts()
			Sort(posts, tt.key, tt.order)
			assert.Equal(t, tt.want, order(posts))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortCreatedAt, k)

	k, err = ParseSortKey("LIKES")
	require.NoError(t, err)
	assert.Equal(t, SortLikes, k)

	_, err = ParseSortKey("score")
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, Desc, o)

	_, err = ParseOrder("sideways")
	assert.Error(t, err)
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "950", Compact(950))
	assert.Equal(t, "1K", Compact(1000))
	assert.Equal(t, "1.2K", Compact(1234))
	assert.Equal(t, "3.4M", Compact(3_400_000))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	posts := samplePosts()
	posts[0].Hook = "Beta hook."
	Render(&buf, posts)

	out := buf.String()
	assert.Contains(t, out, "AUTHOR")
	assert.Contains(t, out, "@bob")
	assert.Contains(t, out, "Beta hook.")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "2024-06-01 02:00")
}
