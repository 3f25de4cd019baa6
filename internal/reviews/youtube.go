// Package reviews fetches patient experience videos from YouTube and
// scores their sentiment for the review vertical.
package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ahrie-ai/platform/internal/i18n"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultUserAgent  = "ahrie-reviews/0.1"
	maxResultsPerPage = 50
)

// Config controls how the YouTube client behaves.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client wraps the YouTube Data API v3 endpoints the review vertical needs.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("reviews: youtube api key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// Video is a normalized YouTube search result.
type Video struct {
	VideoID      string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  time.Time
	ThumbnailURL string
	Language     i18n.Language
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Duration     time.Duration
	HasCaptions  bool
}

// SearchRequest describes a video search.
type SearchRequest struct {
	Query      string
	MaxResults int
	Language   i18n.Language
}

// SearchVideos searches YouTube and enriches results with statistics
// and durations from the videos endpoint.
func (c *Client) SearchVideos(ctx context.Context, req SearchRequest) ([]Video, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New("reviews: search query required")
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxResults > maxResultsPerPage {
		maxResults = maxResultsPerPage
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", req.Query)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("order", "relevance")
	if req.Language != "" {
		q.Set("relevanceLanguage", string(req.Language))
	}

	data, err := c.invoke(ctx, "/search", q)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("reviews: decode search response: %w", err)
	}

	videos := make([]Video, 0, len(parsed.Items))
	ids := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		v := Video{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
			Language:     i18n.Detect(item.Snippet.Title + " " + item.Snippet.Description),
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			v.PublishedAt = t
		}
		videos = append(videos, v)
		ids = append(ids, item.ID.VideoID)
	}

	if len(ids) == 0 {
		return videos, nil
	}

	details, err := c.videoDetails(ctx, ids)
	if err != nil {
		// Search results are still useful without statistics.
		c.logger.Warn("youtube video details failed", "error", err)
		return videos, nil
	}
	for i := range videos {
		if d, ok := details[videos[i].VideoID]; ok {
			videos[i].ViewCount = d.ViewCount
			videos[i].LikeCount = d.LikeCount
			videos[i].CommentCount = d.CommentCount
			videos[i].Duration = d.Duration
			videos[i].HasCaptions = d.HasCaptions
		}
	}
	return videos, nil
}

type videoDetail struct {
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Duration     time.Duration
	HasCaptions  bool
}

func (c *Client) videoDetails(ctx context.Context, ids []string) (map[string]videoDetail, error) {
	q := url.Values{}
	q.Set("part", "statistics,contentDetails")
	q.Set("id", strings.Join(ids, ","))

	data, err := c.invoke(ctx, "/videos", q)
	if err != nil {
		return nil, err
	}

	var parsed videosResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("reviews: decode videos response: %w", err)
	}

	out := make(map[string]videoDetail, len(parsed.Items))
	for _, item := range parsed.Items {
		out[item.ID] = videoDetail{
			ViewCount:    parseCount(item.Statistics.ViewCount),
			LikeCount:    parseCount(item.Statistics.LikeCount),
			CommentCount: parseCount(item.Statistics.CommentCount),
			Duration:     parseISODuration(item.ContentDetails.Duration),
			HasCaptions:  item.ContentDetails.Caption == "true",
		}
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, path string, query url.Values) ([]byte, error) {
	query.Set("key", c.apiKey)
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("reviews: build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !shouldRetry(0, err) || attempt == c.maxRetries {
				return nil, fmt.Errorf("reviews: http error: %w", err)
			}
			lastErr = err
			c.logRetry(path, attempt, 0, err)
			if sleepErr := c.sleep(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reviews: read response: %w", readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return data, nil
		}
		apiErr := decodeAPIError(resp.StatusCode, data)
		if attempt < c.maxRetries && shouldRetry(resp.StatusCode, nil) {
			lastErr = apiErr
			c.logRetry(path, attempt, resp.StatusCode, apiErr)
			if sleepErr := c.sleep(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		return nil, apiErr
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("reviews: request failed without response")
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	delay := c.backoff * time.Duration(1<<attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) logRetry(path string, attempt int, status int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("youtube retry",
		"path", path,
		"attempt", attempt+1,
		"status", status,
		"error", err,
	)
}

func shouldRetry(status int, err error) bool {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}
		return !errors.Is(err, context.Canceled)
	}
	if status == http.StatusTooManyRequests {
		return true
	}
	if status >= 500 && status <= 599 {
		return true
	}
	return false
}

type apiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"-"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("reviews: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("reviews: http status %d", e.StatusCode)
}

func decodeAPIError(status int, body []byte) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &apiError{StatusCode: status, Message: string(body)}
	}
	return &apiError{StatusCode: status, Message: parsed.Error.Message}
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

func parseISODuration(s string) time.Duration {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	seconds, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
			Caption  string `json:"caption"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// BuildReviewQuery assembles a language-appropriate search query for
// patient experience videos.
func BuildReviewQuery(procedure, clinic string, lang i18n.Language) string {
	var parts []string
	switch lang {
	case i18n.Arabic:
		parts = []string{"كوريا", "تجميل", "تجربتي", "عملية"}
	case i18n.Korean:
		parts = []string{"성형외과", "후기", "경험"}
	default:
		parts = []string{"Korea", "plastic surgery", "review", "experience"}
	}
	if procedure != "" {
		parts = append(parts, procedure)
	}
	if clinic != "" {
		parts = append(parts, clinic)
	}
	return strings.Join(parts, " ")
}

var relevantKeywords = []string{
	"review", "experience", "journey", "vlog", "result",
	"before after", "تجربتي", "رحلتي", "후기", "경험",
}

var excludeKeywords = []string{
	"trailer", "news", "documentary", "advertisement",
}

// IsRelevantReview reports whether a video looks like a genuine patient
// review: review-ish keywords, nothing promotional, and 5 to 60 minutes long.
func IsRelevantReview(v Video) bool {
	text := strings.ToLower(v.Title + " " + v.Description)

	var hasRelevant bool
	for _, kw := range relevantKeywords {
		if strings.Contains(text, kw) {
			hasRelevant = true
			break
		}
	}
	for _, kw := range excludeKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return hasRelevant && v.Duration >= 5*time.Minute && v.Duration <= time.Hour
}
