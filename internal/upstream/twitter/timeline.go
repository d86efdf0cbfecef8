package twitter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hookhunter/internal/models"
	"hookhunter/internal/textclean"
)

// searchResponse is the subset of the SearchTimeline GraphQL payload we read.
type searchResponse struct {
	Data struct {
		SearchByRawQuery struct {
			SearchTimeline struct {
				Timeline struct {
					Instructions []instruction `json:"instructions"`
				} `json:"timeline"`
			} `json:"search_timeline"`
		} `json:"search_by_raw_query"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type instruction struct {
	Type    string  `json:"type"`
	Entries []entry `json:"entries"`
	Entry   *entry  `json:"entry"` // TimelineReplaceEntry
}

type entry struct {
	EntryID string       `json:"entryId"`
	Content entryContent `json:"content"`
}

type entryContent struct {
	EntryType   string       `json:"entryType"`
	CursorType  string       `json:"cursorType"`
	Value       string       `json:"value"`
	ItemContent *itemContent `json:"itemContent"`
}

type itemContent struct {
	ItemType     string `json:"itemType"`
	TweetResults struct {
		Result *tweetResult `json:"result"`
	} `json:"tweet_results"`
}

type userResult struct {
	Legacy struct {
		ScreenName string `json:"screen_name"`
		Name       string `json:"name"`
	} `json:"legacy"`
	Core struct {
		ScreenName string `json:"screen_name"`
		Name       string `json:"name"`
	} `json:"core"`
}

type tweetResult struct {
	Typename string       `json:"__typename"`
	RestID   string       `json:"rest_id"`
	Tweet    *tweetResult `json:"tweet"` // set for TweetWithVisibilityResults
	Core     struct {
		UserResults struct {
			Result userResult `json:"result"`
		} `json:"user_results"`
	} `json:"core"`
	Legacy struct {
		FullText      string `json:"full_text"`
		CreatedAt     string `json:"created_at"`
		FavoriteCount int    `json:"favorite_count"`
		RetweetCount  int    `json:"retweet_count"`
		ReplyCount    int    `json:"reply_count"`
		QuoteCount    int    `json:"quote_count"`
	} `json:"legacy"`
	NoteTweet struct {
		NoteTweetResults struct {
			Result struct {
				Text string `json:"text"`
			} `json:"result"`
		} `json:"note_tweet_results"`
	} `json:"note_tweet"`
	Views struct {
		Count string `json:"count"`
	} `json:"views"`
}

// toPage flattens the timeline instructions into posts (in timeline order) and
// the bottom cursor.
func (r *searchResponse) toPage() (*models.TweetPage, error) {
	if len(r.Errors) > 0 && len(r.Data.SearchByRawQuery.SearchTimeline.Timeline.Instructions) == 0 {
		return nil, fmt.Errorf("%w: graphql error %d: %s", models.ErrUpstream, r.Errors[0].Code, r.Errors[0].Message)
	}

	page := &models.TweetPage{Posts: []models.Post{}}
	visit := func(e *entry) {
		if e == nil {
			return
		}
		c := e.Content
		if c.CursorType == "Bottom" {
			page.Next = c.Value
			return
		}
		if c.ItemContent == nil {
			return
		}
		if post, ok := c.ItemContent.TweetResults.Result.toPost(); ok {
			page.Posts = append(page.Posts, post)
		}
	}

	for _, ins := range r.Data.SearchByRawQuery.SearchTimeline.Timeline.Instructions {
		switch ins.Type {
		case "TimelineAddEntries":
			for i := range ins.Entries {
				visit(&ins.Entries[i])
			}
		case "TimelineReplaceEntry":
			visit(ins.Entry)
		}
	}
	return page, nil
}

func (t *tweetResult) toPost() (models.Post, bool) {
	if t == nil {
		return models.Post{}, false
	}
	if t.Typename == "TweetWithVisibilityResults" && t.Tweet != nil {
		t = t.Tweet
	}
	if t.RestID == "" || t.Typename == "TweetTombstone" || t.Typename == "TweetUnavailable" {
		return models.Post{}, false
	}

	user := t.Core.UserResults.Result
	handle := firstNonEmpty(user.Core.ScreenName, user.Legacy.ScreenName)
	text := textclean.Clean(firstNonEmpty(t.NoteTweet.NoteTweetResults.Result.Text, t.Legacy.FullText))

	post := models.Post{
		ID:           t.RestID,
		AuthorHandle: handle,
		AuthorName:   firstNonEmpty(user.Core.Name, user.Legacy.Name),
		Text:         text,
		LikeCount:    t.Legacy.FavoriteCount,
		RetweetCount: t.Legacy.RetweetCount,
		ReplyCount:   t.Legacy.ReplyCount,
		QuoteCount:   t.Legacy.QuoteCount,
	}
	if views, err := strconv.Atoi(t.Views.Count); err == nil {
		post.ViewCount = views
	}
	if created, err := time.Parse(time.RubyDate, t.Legacy.CreatedAt); err == nil {
		post.CreatedAt = created.UTC()
	}
	if handle != "" {
		post.URL = "https://x.com/" + handle + "/status/" + t.RestID
	}
	return post, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
