package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/ahrie-ai/platform/internal/i18n"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewStore(mock), mock
}

func clinicRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "name_ar", "name_ko", "description", "address", "district", "city",
		"phone", "website", "specialties", "certifications", "languages",
		"halal_friendly", "arabic_support", "female_staff", "rating", "review_count", "price_range",
	})
}

func TestUpsertClinic(t *testing.T) {
	store, mock := newMockStore(t)

	id := uuid.New()
	mock.ExpectExec("INSERT INTO clinics").
		WithArgs(id, "Banobagi Plastic Surgery", "بانوباغي", "바노바기", "", "123 Nonhyeon-ro", "Gangnam", "Seoul",
			"", "", []string{"rhinoplasty"}, []string{}, []string{"en", "ko", "ar"},
			true, true, true, 4.8, 120, "$$$").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := store.UpsertClinic(context.Background(), nil, Clinic{
		ID:            id,
		Name:          "Banobagi Plastic Surgery",
		NameAR:        "بانوباغي",
		NameKO:        "바노바기",
		Address:       "123 Nonhyeon-ro",
		District:      "Gangnam",
		City:          "Seoul",
		Specialties:   []string{"rhinoplasty"},
		Languages:     []string{"en", "ko", "ar"},
		HalalFriendly: true,
		ArabicSupport: true,
		FemaleStaff:   true,
		Rating:        4.8,
		ReviewCount:   120,
		PriceRange:    "$$$",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("expected id %s, got %s", id, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListClinicsFilters(t *testing.T) {
	store, mock := newMockStore(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM clinics").
		WithArgs("Gangnam", 5).
		WillReturnRows(clinicRows().AddRow(
			id, "ID Hospital", "", "아이디병원", "", "addr", "Gangnam", "Seoul",
			"", "", []string{"facial_contouring"}, []string{}, []string{"ko", "en"},
			true, false, true, 4.6, 88, "$$$$",
		))

	out, err := store.ListClinics(context.Background(), ClinicFilter{
		District:      "Gangnam",
		HalalFriendly: true,
		FemaleStaff:   true,
		Limit:         5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Name != "ID Hospital" {
		t.Errorf("unexpected clinics: %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetClinicNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM clinics").
		WithArgs(id).
		WillReturnRows(clinicRows())

	rec, err := store.GetClinic(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil clinic, got %#v", rec)
	}
}

func TestClinicLocalizedName(t *testing.T) {
	c := Clinic{Name: "Banobagi", NameAR: "بانوباغي", NameKO: "바노바기"}
	if got := c.LocalizedName(i18n.Arabic); got != "بانوباغي" {
		t.Errorf("unexpected Arabic name: %s", got)
	}
	if got := c.LocalizedName(i18n.Korean); got != "바노바기" {
		t.Errorf("unexpected Korean name: %s", got)
	}
	empty := Clinic{Name: "Banobagi"}
	if got := empty.LocalizedName(i18n.Arabic); got != "Banobagi" {
		t.Errorf("expected fallback to primary name, got %s", got)
	}
}

func TestUpsertProcedureAndList(t *testing.T) {
	store, mock := newMockStore(t)

	id := uuid.New()
	mock.ExpectExec("INSERT INTO procedures").
		WithArgs(id, "Rhinoplasty", "تجميل الأنف", "코 성형", "nose", "Nose reshaping",
			120, 180, 7, 14, 3000, 8000).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if _, err := store.UpsertProcedure(context.Background(), nil, Procedure{
		ID:              id,
		Name:            "Rhinoplasty",
		NameAR:          "تجميل الأنف",
		NameKO:          "코 성형",
		Category:        "nose",
		Description:     "Nose reshaping",
		DurationMin:     120,
		DurationMax:     180,
		RecoveryDaysMin: 7,
		RecoveryDaysMax: 14,
		PriceMinUSD:     3000,
		PriceMaxUSD:     8000,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM procedures").
		WithArgs("nose").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "name_ar", "name_ko", "category", "description",
			"duration_min", "duration_max", "recovery_days_min", "recovery_days_max",
			"price_min_usd", "price_max_usd",
		}).AddRow(id, "Rhinoplasty", "تجميل الأنف", "코 성형", "nose", "Nose reshaping", 120, 180, 7, 14, 3000, 8000))

	procs, err := store.ListProcedures(context.Background(), "nose")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(procs) != 1 || procs[0].PriceMaxUSD != 8000 {
		t.Errorf("unexpected procedures: %#v", procs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListClinicsForProcedure(t *testing.T) {
	store, mock := newMockStore(t)

	procID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM clinics c").
		WithArgs(procID, 3).
		WillReturnRows(clinicRows().AddRow(
			uuid.New(), "Banobagi", "", "", "", "addr", "Gangnam", "Seoul",
			"", "", []string{}, []string{}, []string{},
			true, true, false, 4.8, 200, "$$$",
		))

	out, err := store.ListClinicsForProcedure(context.Background(), procID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one clinic, got %d", len(out))
	}
}

func TestListHalalPlaces(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM halal_places").
		WithArgs("Itaewon", PlaceRestaurant, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "name_ar", "place_type", "cuisine", "certification",
			"address", "district", "phone", "delivery", "rating", "price_range",
		}).AddRow(uuid.New(), "Eid Halal Korean Food", "عيد", PlaceRestaurant, "korean", "KMF",
			"addr", "Itaewon", "", true, 4.7, "$$"))

	out, err := store.ListHalalPlaces(context.Background(), "Itaewon", PlaceRestaurant, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Certification != "KMF" {
		t.Errorf("unexpected places: %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
