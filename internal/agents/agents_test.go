package agents

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ahrie-ai/platform/internal/catalog"
	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/internal/reviews"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// captureClient records the last request and returns canned text.
type captureClient struct {
	last llm.Request
	text string
}

func (c *captureClient) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	c.last = req
	return llm.Response{Text: c.text}, nil
}

type stubCatalog struct {
	procedures []catalog.Procedure
	clinics    []catalog.Clinic
}

func (s *stubCatalog) ListProcedures(ctx context.Context, category string) ([]catalog.Procedure, error) {
	return s.procedures, nil
}

func (s *stubCatalog) ListClinicsForProcedure(ctx context.Context, procedureID uuid.UUID, limit int) ([]catalog.Clinic, error) {
	return s.clinics, nil
}

func (s *stubCatalog) ListClinics(ctx context.Context, filter catalog.ClinicFilter) ([]catalog.Clinic, error) {
	if filter.FemaleStaff {
		var out []catalog.Clinic
		for _, c := range s.clinics {
			if c.FemaleStaff {
				out = append(out, c)
			}
		}
		return out, nil
	}
	return s.clinics, nil
}

type stubRetriever struct {
	topK int
	docs []string
}

func (s *stubRetriever) Query(ctx context.Context, topic string, query string, topK int) ([]string, error) {
	s.topK = topK
	return s.docs, nil
}

type stubDirectory struct {
	district  string
	placeType string
	places    []catalog.HalalPlace
}

func (s *stubDirectory) ListHalalPlaces(ctx context.Context, district, placeType string, limit int) ([]catalog.HalalPlace, error) {
	s.district = district
	s.placeType = placeType
	return s.places, nil
}

type stubSearcher struct {
	query  reviews.SearchRequest
	videos []reviews.Video
}

func (s *stubSearcher) SearchVideos(ctx context.Context, req reviews.SearchRequest) ([]reviews.Video, error) {
	s.query = req
	return s.videos, nil
}

type stubArchive struct {
	records []reviews.Record
}

func (s *stubArchive) UpsertVideoReview(ctx context.Context, rec reviews.Record) (uuid.UUID, error) {
	s.records = append(s.records, rec)
	return uuid.New(), nil
}

func TestMedicalAgentGroundsOnCatalog(t *testing.T) {
	client := &captureClient{text: "grounded answer"}
	cat := &stubCatalog{
		procedures: []catalog.Procedure{{
			ID:              uuid.New(),
			Name:            "Rhinoplasty",
			NameAR:          "عملية الأنف",
			PriceMinUSD:     3000,
			PriceMaxUSD:     8000,
			RecoveryDaysMin: 7,
			RecoveryDaysMax: 14,
		}},
		clinics: []catalog.Clinic{{
			Name:          "Banobagi Plastic Surgery",
			District:      "Gangnam",
			Rating:        4.8,
			FemaleStaff:   true,
			HalalFriendly: true,
		}},
	}
	agent := NewMedicalAgent(client, cat, nil, logging.Default())

	reply, err := agent.Respond(context.Background(), Query{
		Text:     "How much is rhinoplasty?",
		Language: i18n.English,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "grounded answer" {
		t.Errorf("unexpected reply: %q", reply.Text)
	}

	system := strings.Join(client.last.System, "\n")
	if !strings.Contains(system, "Dr. Sarah Kim") {
		t.Error("persona missing from system prompt")
	}
	if !strings.Contains(system, "Rhinoplasty") || !strings.Contains(system, "$3000") {
		t.Errorf("catalog facts missing from system prompt: %q", system)
	}
	if !strings.Contains(system, "Banobagi Plastic Surgery") || !strings.Contains(system, "female doctors") {
		t.Errorf("clinic facts missing from system prompt: %q", system)
	}
}

func TestMedicalAgentFemaleStaffFallback(t *testing.T) {
	client := &captureClient{text: "ok"}
	cat := &stubCatalog{
		clinics: []catalog.Clinic{
			{Name: "Mixed Staff Clinic", District: "Gangnam", Rating: 4.0},
			{Name: "View Plastic Surgery", District: "Gangnam", Rating: 4.6, FemaleStaff: true},
		},
	}
	agent := NewMedicalAgent(client, cat, nil, logging.Default())

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "I want a female doctor for my consultation",
		Language: i18n.English,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := strings.Join(client.last.System, "\n")
	if !strings.Contains(system, "View Plastic Surgery") {
		t.Errorf("female-staff clinic missing: %q", system)
	}
	if strings.Contains(system, "Mixed Staff Clinic") {
		t.Errorf("non-matching clinic leaked into prompt: %q", system)
	}
}

func TestCulturalAgentDetectsDistrictAndType(t *testing.T) {
	client := &captureClient{text: "ok"}
	dir := &stubDirectory{places: []catalog.HalalPlace{{
		Name:          "Eid Halal Korean Food",
		PlaceType:     catalog.PlaceRestaurant,
		District:      "Itaewon",
		Certification: "KMF",
		Delivery:      true,
	}}}
	agent := NewCulturalAgent(client, dir, nil, logging.Default())

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "Where can I find a halal restaurant in Itaewon?",
		Language: i18n.English,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir.district != "Itaewon" {
		t.Errorf("district = %q, want Itaewon", dir.district)
	}
	if dir.placeType != catalog.PlaceRestaurant {
		t.Errorf("placeType = %q, want restaurant", dir.placeType)
	}
	system := strings.Join(client.last.System, "\n")
	if !strings.Contains(system, "Eid Halal Korean Food") || !strings.Contains(system, "KMF certified") {
		t.Errorf("venue facts missing: %q", system)
	}
	if !strings.Contains(system, "Fatima Al-Hassan") {
		t.Error("persona missing from system prompt")
	}
}

func TestCulturalAgentArabicMosqueQuery(t *testing.T) {
	client := &captureClient{text: "ok"}
	dir := &stubDirectory{}
	agent := NewCulturalAgent(client, dir, nil, logging.Default())

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "أين أقرب مسجد في إيتايوون؟",
		Language: i18n.Arabic,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir.district != "Itaewon" {
		t.Errorf("district = %q, want Itaewon", dir.district)
	}
	if dir.placeType != catalog.PlaceMosque {
		t.Errorf("placeType = %q, want mosque", dir.placeType)
	}
}

func TestReviewAgentFiltersAndCites(t *testing.T) {
	client := &captureClient{text: "ok"}
	searcher := &stubSearcher{videos: []reviews.Video{
		{
			Title:        "My rhinoplasty experience in Korea",
			ChannelTitle: "Sara Vlogs",
			ViewCount:    120000,
			Duration:     15 * time.Minute,
		},
		{
			Title:        "Clinic advertisement",
			ChannelTitle: "Promo",
			Duration:     2 * time.Minute,
		},
	}}
	archive := &stubArchive{}
	agent := NewReviewAgent(client, searcher, archive, logging.Default())

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "rhinoplasty reviews",
		Language: i18n.Arabic,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if searcher.query.Language != i18n.Arabic {
		t.Errorf("search language = %q, want ar", searcher.query.Language)
	}
	if !strings.Contains(searcher.query.Query, "تجربتي") {
		t.Errorf("expected Arabic review query, got %q", searcher.query.Query)
	}
	system := strings.Join(client.last.System, "\n")
	if !strings.Contains(system, "My rhinoplasty experience in Korea") || !strings.Contains(system, "Sara Vlogs") {
		t.Errorf("relevant video missing: %q", system)
	}
	if strings.Contains(system, "Clinic advertisement") {
		t.Errorf("irrelevant video leaked: %q", system)
	}
	if len(archive.records) != 1 {
		t.Fatalf("archived %d videos, want 1", len(archive.records))
	}
	if archive.records[0].Title != "My rhinoplasty experience in Korea" {
		t.Errorf("archived wrong video: %q", archive.records[0].Title)
	}
	if archive.records[0].Language != "ar" {
		t.Errorf("archived language = %q, want ar", archive.records[0].Language)
	}
}

func TestCoordinatorHistoryTrimmed(t *testing.T) {
	client := &captureClient{text: "ok"}
	agent := NewCoordinatorAgent(client, logging.Default())

	history := make([]llm.ChatMessage, 20)
	for i := range history {
		history[i] = llm.ChatMessage{Role: llm.ChatRoleUser, Content: "turn"}
	}
	if _, err := agent.Respond(context.Background(), Query{
		Text:     "hello",
		Language: i18n.English,
		History:  history,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.last.Messages) != historyLimit+1 {
		t.Errorf("messages = %d, want %d", len(client.last.Messages), historyLimit+1)
	}
}

func TestAgentTuningOptions(t *testing.T) {
	client := &captureClient{text: "ok"}
	retr := &stubRetriever{docs: []string{"rhinoplasty recovery takes two weeks"}}
	agent := NewMedicalAgent(client, nil, retr, logging.Default(),
		WithMaxTokens(512), WithTemperature(0.2), WithKnowledgeTopK(7))

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "rhinoplasty cost",
		Language: i18n.English,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.last.MaxTokens != 512 {
		t.Errorf("max tokens = %d, want 512", client.last.MaxTokens)
	}
	if client.last.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", client.last.Temperature)
	}
	if retr.topK != 7 {
		t.Errorf("retriever topK = %d, want 7", retr.topK)
	}
}

func TestAgentTuningDefaults(t *testing.T) {
	client := &captureClient{text: "ok"}
	agent := NewCoordinatorAgent(client, logging.Default())

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "hello",
		Language: i18n.English,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.last.MaxTokens != defaultMaxTokens {
		t.Errorf("max tokens = %d, want %d", client.last.MaxTokens, defaultMaxTokens)
	}
	if client.last.Temperature != defaultTemperature {
		t.Errorf("temperature = %v, want %v", client.last.Temperature, defaultTemperature)
	}
}

func TestReviewAgentSearchLimit(t *testing.T) {
	client := &captureClient{text: "ok"}
	searcher := &stubSearcher{}
	agent := NewReviewAgent(client, searcher, nil, logging.Default(), WithMaxVideoResults(4))

	if _, err := agent.Respond(context.Background(), Query{
		Text:     "rhinoplasty reviews",
		Language: i18n.English,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if searcher.query.MaxResults != 4 {
		t.Errorf("search max results = %d, want 4", searcher.query.MaxResults)
	}
}
