package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hookhunter/internal/app"
	"hookhunter/internal/clix"
	"hookhunter/internal/models"
)

// SubscribedCookie marks a browser that has joined the newsletter.
const SubscribedCookie = "hh_subscribed"

const subscribedValue = "1"

const subscribedCookieMaxAge = 365 * 24 * 60 * 60

type APIHandler struct {
	App *app.App
	now func() time.Time
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app, now: time.Now}
}

// TweetsRequest is the body of POST /api/tweets.
type TweetsRequest struct {
	ListID     string   `json:"listID"`
	MinLikes   string   `json:"minLikes"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Words      []string `json:"words"`
	ResultType string   `json:"resultType"`
	TimePeriod string   `json:"timePeriod"`
	// IncludeReplies keeps replies, which are filtered out by default.
	IncludeReplies bool `json:"includeReplies"`
}

type TweetsResponse struct {
	Tweets  []models.Post `json:"tweets"`
	Partial bool          `json:"partial,omitempty"`
}

func (h *APIHandler) TweetsHandler(c *gin.Context) {
	var req TweetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body", err)
		return
	}

	filter, err := clix.SearchInput{
		ListID:     req.ListID,
		Words:      req.Words,
		MinLikes:   req.MinLikes,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TimePeriod: req.TimePeriod,
		ResultType: req.ResultType,
		Replies:    req.IncludeReplies,
	}.Filter(h.now())
	if err != nil {
		BadRequest(c, "Invalid search parameters", err)
		return
	}

	res, err := h.App.SearchService.Execute(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, "Error fetching tweets", err)
		return
	}

	c.JSON(http.StatusOK, TweetsResponse{Tweets: res.Posts, Partial: res.Partial()})
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeHandler serves both /api/subscribe and /api/newsletter.
func (h *APIHandler) SubscribeHandler(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body", err)
		return
	}

	sub, err := h.App.SubscriptionService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		RespondError(c, "Error subscribing to newsletter", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SubscribedCookie, subscribedValue, subscribedCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"success": true, "subscriber": sub})
}

type FetchTweetRequest struct {
	ID string `json:"id"`
}

func (h *APIHandler) FetchReactTweetHandler(c *gin.Context) {
	var req FetchTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		BadRequest(c, "Tweet id is required", nil)
		return
	}

	tweet, err := h.App.EmbedService.GetTweet(c.Request.Context(), req.ID)
	if err != nil {
		RespondError(c, "Error fetching tweet", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", tweet)
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
