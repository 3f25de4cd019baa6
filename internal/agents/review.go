package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/internal/reviews"
	"github.com/ahrie-ai/platform/pkg/logging"
)

type videoSearcher interface {
	SearchVideos(ctx context.Context, req reviews.SearchRequest) ([]reviews.Video, error)
}

type reviewArchive interface {
	UpsertVideoReview(ctx context.Context, rec reviews.Record) (uuid.UUID, error)
}

// ReviewAgent summarizes patient experiences from YouTube, weighting
// reviews in the user's own language. Found videos are archived in the
// reviews table when a store is attached.
type ReviewAgent struct {
	client  llm.Client
	videos  videoSearcher
	archive reviewArchive
	tuning  tuning
	logger  *logging.Logger
}

func NewReviewAgent(client llm.Client, videos videoSearcher, archive reviewArchive, logger *logging.Logger, opts ...AgentOption) *ReviewAgent {
	if client == nil {
		panic("agents: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ReviewAgent{client: client, videos: videos, archive: archive, tuning: newTuning(opts), logger: logger}
}

func (a *ReviewAgent) Role() Role { return RoleReview }

func (a *ReviewAgent) Respond(ctx context.Context, q Query) (Reply, error) {
	var grounding []string
	if a.videos != nil {
		if facts := a.videoFacts(ctx, q); facts != "" {
			grounding = append(grounding, facts)
		}
	}
	return complete(ctx, a.client, RoleReview, q, grounding, a.tuning)
}

// videoFacts searches for patient review videos matching the query and
// summarizes them as grounding lines. A failed search degrades to an
// ungrounded answer.
func (a *ReviewAgent) videoFacts(ctx context.Context, q Query) string {
	found, err := a.videos.SearchVideos(ctx, reviews.SearchRequest{
		Query:      reviews.BuildReviewQuery(reviewTopic(q.Text), "", q.Language),
		MaxResults: a.tuning.maxVideos,
		Language:   q.Language,
	})
	if err != nil {
		a.logger.Warn("review video search failed", "error", err)
		return ""
	}

	var b strings.Builder
	var count int
	for _, v := range found {
		if !reviews.IsRelevantReview(v) {
			continue
		}
		score := reviews.SentimentScore(v.Title + " " + v.Description)
		a.archiveVideo(ctx, v, score, q.Language)
		fmt.Fprintf(&b, "- %q by %s (%d views, %s sentiment)\n",
			v.Title, v.ChannelTitle, v.ViewCount, reviews.SentimentLabel(score))
		count++
		if count == 5 {
			break
		}
	}
	if count == 0 {
		return ""
	}
	return "Patient review videos found for this query, cite these:\n" + b.String()
}

// archiveVideo keeps the reviews table current with what patients are
// actually shown. Failures only log; archiving never blocks a reply.
func (a *ReviewAgent) archiveVideo(ctx context.Context, v reviews.Video, score float64, lang i18n.Language) {
	if a.archive == nil {
		return
	}
	if _, err := a.archive.UpsertVideoReview(ctx, reviews.Record{
		Title:          v.Title,
		Content:        v.Description,
		YouTubeVideoID: v.VideoID,
		YouTubeChannel: v.ChannelTitle,
		Language:       string(lang),
		SentimentScore: score,
	}); err != nil {
		a.logger.Warn("failed to archive review video", "video_id", v.VideoID, "error", err)
	}
}

// reviewTopic strips filler so the search query carries the procedure
// or clinic terms, not the whole sentence.
func reviewTopic(text string) string {
	fields := strings.Fields(text)
	if len(fields) <= 6 {
		return text
	}
	return strings.Join(fields[:6], " ")
}
