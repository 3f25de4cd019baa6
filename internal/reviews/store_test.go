package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestUpsertVideoReview(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := NewStore(mock)

	procID := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(pgxmock.AnyArg(), uuid.NullUUID{}, procID, 0.0, "My rhinoplasty vlog", "full journey",
			"vid123", "Sara", "youtube", "ar", 0.75).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := store.UpsertVideoReview(context.Background(), Record{
		ProcedureID:    procID,
		Title:          "My rhinoplasty vlog",
		Content:        "full journey",
		YouTubeVideoID: "vid123",
		YouTubeChannel: "Sara",
		Language:       "ar",
		SentimentScore: 0.75,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == uuid.Nil {
		t.Error("expected generated id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListForProcedure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := NewStore(mock)

	procID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM reviews").
		WithArgs(procID, 5).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "clinic_id", "procedure_id", "rating", "title", "content",
			"youtube_video_id", "youtube_channel", "source", "language", "sentiment_score",
		}).AddRow(uuid.New(), uuid.NullUUID{}, uuid.NullUUID{UUID: procID, Valid: true}, 4.5,
			"review", "content", "vid1", "ch", "youtube", "en", 0.6))

	out, err := store.ListForProcedure(context.Background(), procID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].YouTubeVideoID != "vid1" {
		t.Errorf("unexpected reviews: %#v", out)
	}
}

func TestSummarizeForProcedure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	store := NewStore(mock)

	procID := uuid.New()
	mock.ExpectQuery("SELECT count").
		WithArgs(procID).
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg", "pos", "neu", "neg"}).
			AddRow(10, 0.42, 6, 3, 1))

	sum, err := store.SummarizeForProcedure(context.Background(), procID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.ReviewCount != 10 || sum.Positive != 6 || sum.AverageScore != 0.42 {
		t.Errorf("unexpected summary: %#v", sum)
	}
}
