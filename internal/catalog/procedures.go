package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ahrie-ai/platform/internal/i18n"
)

// Procedure is a cosmetic procedure with localized names, typical
// durations, recovery windows, and USD price bands.
type Procedure struct {
	ID              uuid.UUID
	Name            string
	NameAR          string
	NameKO          string
	Category        string
	Description     string
	DurationMin     int
	DurationMax     int
	RecoveryDaysMin int
	RecoveryDaysMax int
	PriceMinUSD     int
	PriceMaxUSD     int
}

// LocalizedName returns the procedure name in the requested language.
func (p Procedure) LocalizedName(lang i18n.Language) string {
	switch lang {
	case i18n.Arabic:
		if p.NameAR != "" {
			return p.NameAR
		}
	case i18n.Korean:
		if p.NameKO != "" {
			return p.NameKO
		}
	}
	return p.Name
}

// ClinicProcedure links a clinic to a procedure it offers with its
// own price band.
type ClinicProcedure struct {
	ID          uuid.UUID
	ClinicID    uuid.UUID
	ProcedureID uuid.UUID
	PriceMin    int
	PriceMax    int
	Notes       string
}

func (s *Store) UpsertProcedure(ctx context.Context, q Querier, rec Procedure) (uuid.UUID, error) {
	if q == nil {
		q = s.pool
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	query := `
		INSERT INTO procedures (
			id, name, name_ar, name_ko, category, description,
			duration_min, duration_max, recovery_days_min, recovery_days_max,
			price_min_usd, price_max_usd
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (name) DO UPDATE
		SET name_ar = EXCLUDED.name_ar,
			name_ko = EXCLUDED.name_ko,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			duration_min = EXCLUDED.duration_min,
			duration_max = EXCLUDED.duration_max,
			recovery_days_min = EXCLUDED.recovery_days_min,
			recovery_days_max = EXCLUDED.recovery_days_max,
			price_min_usd = EXCLUDED.price_min_usd,
			price_max_usd = EXCLUDED.price_max_usd,
			updated_at = now()
	`
	_, err := q.Exec(ctx, query,
		rec.ID, rec.Name, rec.NameAR, rec.NameKO, rec.Category, rec.Description,
		rec.DurationMin, rec.DurationMax, rec.RecoveryDaysMin, rec.RecoveryDaysMax,
		rec.PriceMinUSD, rec.PriceMaxUSD,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("catalog: upsert procedure: %w", err)
	}
	return rec.ID, nil
}

const procedureColumns = `id, name, name_ar, name_ko, category, description,
		duration_min, duration_max, recovery_days_min, recovery_days_max,
		price_min_usd, price_max_usd`

// GetProcedureByName matches on the English name, case-insensitively.
func (s *Store) GetProcedureByName(ctx context.Context, name string) (*Procedure, error) {
	query := `SELECT ` + procedureColumns + ` FROM procedures WHERE lower(name) = lower($1) AND is_active`
	rec, err := scanProcedure(s.pool.QueryRow(ctx, query, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: get procedure by name: %w", err)
	}
	return rec, nil
}

// ListProcedures returns active procedures, optionally limited to a category.
func (s *Store) ListProcedures(ctx context.Context, category string) ([]Procedure, error) {
	query := `SELECT ` + procedureColumns + ` FROM procedures WHERE is_active`
	var args []any
	if category != "" {
		args = append(args, category)
		query += ` AND category = $1`
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list procedures: %w", err)
	}
	defer rows.Close()

	var out []Procedure
	for rows.Next() {
		rec, err := scanProcedure(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan procedure: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanProcedure(row pgx.Row) (*Procedure, error) {
	var rec Procedure
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.NameAR, &rec.NameKO, &rec.Category, &rec.Description,
		&rec.DurationMin, &rec.DurationMax, &rec.RecoveryDaysMin, &rec.RecoveryDaysMax,
		&rec.PriceMinUSD, &rec.PriceMaxUSD,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) LinkClinicProcedure(ctx context.Context, q Querier, rec ClinicProcedure) error {
	if q == nil {
		q = s.pool
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	query := `
		INSERT INTO clinic_procedures (id, clinic_id, procedure_id, price_min, price_max, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (clinic_id, procedure_id) DO UPDATE
		SET price_min = EXCLUDED.price_min,
			price_max = EXCLUDED.price_max,
			notes = EXCLUDED.notes,
			is_available = TRUE
	`
	if _, err := q.Exec(ctx, query, rec.ID, rec.ClinicID, rec.ProcedureID, rec.PriceMin, rec.PriceMax, rec.Notes); err != nil {
		return fmt.Errorf("catalog: link clinic procedure: %w", err)
	}
	return nil
}

// ListClinicsForProcedure returns clinics offering the procedure,
// best rated first.
func (s *Store) ListClinicsForProcedure(ctx context.Context, procedureID uuid.UUID, limit int) ([]Clinic, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT c.id, c.name, c.name_ar, c.name_ko, c.description, c.address, c.district, c.city,
			c.phone, c.website, c.specialties, c.certifications, c.languages,
			c.halal_friendly, c.arabic_support, c.female_staff, c.rating, c.review_count, c.price_range
		FROM clinics c
		JOIN clinic_procedures cp ON cp.clinic_id = c.id
		WHERE cp.procedure_id = $1 AND cp.is_available AND c.is_active
		ORDER BY c.rating DESC, c.review_count DESC
		LIMIT $2
	`
	rows, err := s.pool.Query(ctx, query, procedureID, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: list clinics for procedure: %w", err)
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
