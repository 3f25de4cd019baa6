package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Halal place types.
const (
	PlaceRestaurant = "restaurant"
	PlaceMarket     = "market"
	PlaceMosque     = "mosque"
)

// HalalPlace is a halal-certified venue near the clinic districts.
type HalalPlace struct {
	ID            uuid.UUID
	Name          string
	NameAR        string
	PlaceType     string
	Cuisine       string
	Certification string
	Address       string
	District      string
	Phone         string
	Delivery      bool
	Rating        float64
	PriceRange    string
}

func (s *Store) UpsertHalalPlace(ctx context.Context, q Querier, rec HalalPlace) (uuid.UUID, error) {
	if q == nil {
		q = s.pool
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	query := `
		INSERT INTO halal_places (
			id, name, name_ar, place_type, cuisine, certification,
			address, district, phone, delivery, rating, price_range
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			name_ar = EXCLUDED.name_ar,
			place_type = EXCLUDED.place_type,
			cuisine = EXCLUDED.cuisine,
			certification = EXCLUDED.certification,
			address = EXCLUDED.address,
			district = EXCLUDED.district,
			phone = EXCLUDED.phone,
			delivery = EXCLUDED.delivery,
			rating = EXCLUDED.rating,
			price_range = EXCLUDED.price_range,
			updated_at = now()
	`
	_, err := q.Exec(ctx, query,
		rec.ID, rec.Name, rec.NameAR, rec.PlaceType, rec.Cuisine, rec.Certification,
		rec.Address, rec.District, rec.Phone, rec.Delivery, rec.Rating, rec.PriceRange,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("catalog: upsert halal place: %w", err)
	}
	return rec.ID, nil
}

// ListHalalPlaces returns active venues, optionally filtered by
// district and place type, best rated first.
func (s *Store) ListHalalPlaces(ctx context.Context, district, placeType string, limit int) ([]HalalPlace, error) {
	conds := []string{"is_active"}
	var args []any
	if district != "" {
		args = append(args, district)
		conds = append(conds, fmt.Sprintf("district = $%d", len(args)))
	}
	if placeType != "" {
		args = append(args, placeType)
		conds = append(conds, fmt.Sprintf("place_type = $%d", len(args)))
	}
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)

	query := `
		SELECT id, name, name_ar, place_type, cuisine, certification,
			address, district, phone, delivery, rating, price_range
		FROM halal_places
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY rating DESC
		LIMIT $` + fmt.Sprint(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list halal places: %w", err)
	}
	defer rows.Close()

	var out []HalalPlace
	for rows.Next() {
		var rec HalalPlace
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.NameAR, &rec.PlaceType, &rec.Cuisine, &rec.Certification,
			&rec.Address, &rec.District, &rec.Phone, &rec.Delivery, &rec.Rating, &rec.PriceRange,
		); err != nil {
			return nil, fmt.Errorf("catalog: scan halal place: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
