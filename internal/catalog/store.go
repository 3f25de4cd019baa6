// Package catalog persists the medical-tourism domain catalog: Seoul
// clinics, cosmetic procedures, their price links, and halal venues.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ahrie-ai/platform/internal/i18n"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxPool is the subset of pgxpool.Pool the store needs.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists catalog state in Postgres.
type Store struct {
	pool PgxPool
}

func NewStore(pool PgxPool) *Store {
	if pool == nil {
		return nil
	}
	return &Store{pool: pool}
}

func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.pool.Begin(ctx)
}

// Clinic is a Seoul clinic with its localized names and the attributes
// Gulf visitors filter on.
type Clinic struct {
	ID             uuid.UUID
	Name           string
	NameAR         string
	NameKO         string
	Description    string
	Address        string
	District       string
	City           string
	Phone          string
	Website        string
	Specialties    []string
	Certifications []string
	Languages      []string
	HalalFriendly  bool
	ArabicSupport  bool
	FemaleStaff    bool
	Rating         float64
	ReviewCount    int
	PriceRange     string
}

// LocalizedName returns the clinic name in the requested language,
// falling back to the primary name.
func (c Clinic) LocalizedName(lang i18n.Language) string {
	switch lang {
	case i18n.Arabic:
		if c.NameAR != "" {
			return c.NameAR
		}
	case i18n.Korean:
		if c.NameKO != "" {
			return c.NameKO
		}
	}
	return c.Name
}

// ClinicFilter narrows ListClinics results. Zero values mean no filter.
type ClinicFilter struct {
	District      string
	Specialty     string
	HalalFriendly bool
	ArabicSupport bool
	FemaleStaff   bool
	Limit         int
}

func (s *Store) UpsertClinic(ctx context.Context, q Querier, rec Clinic) (uuid.UUID, error) {
	if q == nil {
		q = s.pool
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Specialties == nil {
		rec.Specialties = []string{}
	}
	if rec.Certifications == nil {
		rec.Certifications = []string{}
	}
	if rec.Languages == nil {
		rec.Languages = []string{}
	}
	query := `
		INSERT INTO clinics (
			id, name, name_ar, name_ko, description, address, district, city,
			phone, website, specialties, certifications, languages,
			halal_friendly, arabic_support, female_staff,
			rating, review_count, price_range
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			name_ar = EXCLUDED.name_ar,
			name_ko = EXCLUDED.name_ko,
			description = EXCLUDED.description,
			address = EXCLUDED.address,
			district = EXCLUDED.district,
			city = EXCLUDED.city,
			phone = EXCLUDED.phone,
			website = EXCLUDED.website,
			specialties = EXCLUDED.specialties,
			certifications = EXCLUDED.certifications,
			languages = EXCLUDED.languages,
			halal_friendly = EXCLUDED.halal_friendly,
			arabic_support = EXCLUDED.arabic_support,
			female_staff = EXCLUDED.female_staff,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			price_range = EXCLUDED.price_range,
			updated_at = now()
	`
	_, err := q.Exec(ctx, query,
		rec.ID, rec.Name, rec.NameAR, rec.NameKO, rec.Description, rec.Address, rec.District, rec.City,
		rec.Phone, rec.Website, rec.Specialties, rec.Certifications, rec.Languages,
		rec.HalalFriendly, rec.ArabicSupport, rec.FemaleStaff,
		rec.Rating, rec.ReviewCount, rec.PriceRange,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("catalog: upsert clinic: %w", err)
	}
	return rec.ID, nil
}

const clinicColumns = `id, name, name_ar, name_ko, description, address, district, city,
		phone, website, specialties, certifications, languages,
		halal_friendly, arabic_support, female_staff, rating, review_count, price_range`

func (s *Store) GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE id = $1 AND is_active`
	rec, err := scanClinic(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: get clinic: %w", err)
	}
	return rec, nil
}

// ListClinics returns active clinics matching the filter, best rated first.
func (s *Store) ListClinics(ctx context.Context, filter ClinicFilter) ([]Clinic, error) {
	var conds []string
	var args []any
	conds = append(conds, "is_active")
	if filter.District != "" {
		args = append(args, filter.District)
		conds = append(conds, fmt.Sprintf("district = $%d", len(args)))
	}
	if filter.Specialty != "" {
		args = append(args, filter.Specialty)
		conds = append(conds, fmt.Sprintf("$%d = ANY(specialties)", len(args)))
	}
	if filter.HalalFriendly {
		conds = append(conds, "halal_friendly")
	}
	if filter.ArabicSupport {
		conds = append(conds, "arabic_support")
	}
	if filter.FemaleStaff {
		conds = append(conds, "female_staff")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)

	query := `SELECT ` + clinicColumns + `
		FROM clinics
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY rating DESC, review_count DESC
		LIMIT $` + fmt.Sprint(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list clinics: %w", err)
	}
	defer rows.Close()

	var out []Clinic
	for rows.Next() {
		rec, err := scanClinic(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan clinic: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanClinic(row pgx.Row) (*Clinic, error) {
	var rec Clinic
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.NameAR, &rec.NameKO, &rec.Description, &rec.Address, &rec.District, &rec.City,
		&rec.Phone, &rec.Website, &rec.Specialties, &rec.Certifications, &rec.Languages,
		&rec.HalalFriendly, &rec.ArabicSupport, &rec.FemaleStaff, &rec.Rating, &rec.ReviewCount, &rec.PriceRange,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
