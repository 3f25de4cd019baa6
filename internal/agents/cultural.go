package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahrie-ai/platform/internal/catalog"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

type halalDirectory interface {
	ListHalalPlaces(ctx context.Context, district, placeType string, limit int) ([]catalog.HalalPlace, error)
}

// Districts the cultural agent recognizes in queries, with the spellings
// visitors actually type.
var districtAliases = map[string][]string{
	"Gangnam":    {"gangnam", "강남", "كانغنام", "جانجنام"},
	"Myeongdong": {"myeongdong", "명동", "ميونغدونغ"},
	"Hongdae":    {"hongdae", "홍대", "هونغدا"},
	"Itaewon":    {"itaewon", "이태원", "إيتايوون", "ايتايون"},
}

// CulturalAgent covers halal food, prayer facilities, and day-to-day
// guidance for Muslim visitors, grounded in the halal venue directory.
type CulturalAgent struct {
	client    llm.Client
	places    halalDirectory
	retriever knowledge.Retriever
	tuning    tuning
	logger    *logging.Logger
}

func NewCulturalAgent(client llm.Client, places halalDirectory, retriever knowledge.Retriever, logger *logging.Logger, opts ...AgentOption) *CulturalAgent {
	if client == nil {
		panic("agents: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CulturalAgent{client: client, places: places, retriever: retriever, tuning: newTuning(opts), logger: logger}
}

func (a *CulturalAgent) Role() Role { return RoleCultural }

func (a *CulturalAgent) Respond(ctx context.Context, q Query) (Reply, error) {
	var grounding []string

	if a.places != nil {
		if facts := a.placeFacts(ctx, q); facts != "" {
			grounding = append(grounding, facts)
		}
	}
	if a.retriever != nil {
		docs, err := a.retriever.Query(ctx, "cultural", q.Text, a.tuning.topK)
		if err != nil {
			a.logger.Warn("cultural knowledge lookup failed", "error", err)
		} else if len(docs) > 0 {
			grounding = append(grounding, "Reference notes:\n"+strings.Join(docs, "\n"))
		}
	}

	return complete(ctx, a.client, RoleCultural, q, grounding, a.tuning)
}

func (a *CulturalAgent) placeFacts(ctx context.Context, q Query) string {
	district := detectDistrict(q.Text)

	placeType := ""
	lowered := strings.ToLower(q.Text)
	switch {
	case strings.Contains(lowered, "mosque") || strings.Contains(lowered, "مسجد") || strings.Contains(lowered, "모스크") ||
		strings.Contains(lowered, "prayer") || strings.Contains(lowered, "صلاة") || strings.Contains(lowered, "기도"):
		placeType = catalog.PlaceMosque
	case strings.Contains(lowered, "market") || strings.Contains(lowered, "grocery") || strings.Contains(lowered, "سوق"):
		placeType = catalog.PlaceMarket
	case strings.Contains(lowered, "restaurant") || strings.Contains(lowered, "food") || strings.Contains(lowered, "eat") ||
		strings.Contains(lowered, "مطعم") || strings.Contains(lowered, "طعام") || strings.Contains(lowered, "식당"):
		placeType = catalog.PlaceRestaurant
	}

	places, err := a.places.ListHalalPlaces(ctx, district, placeType, 5)
	if err != nil {
		a.logger.Warn("halal place lookup failed", "error", err)
		return ""
	}
	if len(places) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range places {
		fmt.Fprintf(&b, "- %s (%s, %s)", p.Name, p.PlaceType, p.District)
		if p.Certification != "" {
			fmt.Fprintf(&b, ", %s certified", p.Certification)
		}
		if p.Delivery {
			b.WriteString(", delivers")
		}
		b.WriteString("\n")
	}
	return "Verified halal venues, recommend from these first:\n" + b.String()
}

func detectDistrict(text string) string {
	lowered := strings.ToLower(text)
	for district, aliases := range districtAliases {
		for _, alias := range aliases {
			if strings.Contains(lowered, alias) {
				return district
			}
		}
	}
	return ""
}
