package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ahrie-ai/platform/internal/catalog"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// CatalogHandler lets admins maintain the clinic, procedure, and halal
// venue directories the agents ground on.
type CatalogHandler struct {
	store  *catalog.Store
	logger *logging.Logger
}

func NewCatalogHandler(store *catalog.Store, logger *logging.Logger) *CatalogHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogHandler{store: store, logger: logger.Component("admin_catalog")}
}

type clinicPayload struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	NameAR         string   `json:"name_ar,omitempty"`
	NameKO         string   `json:"name_ko,omitempty"`
	Description    string   `json:"description,omitempty"`
	Address        string   `json:"address,omitempty"`
	District       string   `json:"district,omitempty"`
	City           string   `json:"city,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Website        string   `json:"website,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	HalalFriendly  bool     `json:"halal_friendly,omitempty"`
	ArabicSupport  bool     `json:"arabic_support,omitempty"`
	FemaleStaff    bool     `json:"female_staff,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	ReviewCount    int      `json:"review_count,omitempty"`
	PriceRange     string   `json:"price_range,omitempty"`
}

// UpsertClinic creates or updates a clinic.
// POST /admin/catalog/clinics
func (h *CatalogHandler) UpsertClinic(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	var payload clinicPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	rec := catalog.Clinic{
		Name:           strings.TrimSpace(payload.Name),
		NameAR:         payload.NameAR,
		NameKO:         payload.NameKO,
		Description:    payload.Description,
		Address:        payload.Address,
		District:       payload.District,
		City:           payload.City,
		Phone:          payload.Phone,
		Website:        payload.Website,
		Specialties:    payload.Specialties,
		Certifications: payload.Certifications,
		Languages:      payload.Languages,
		HalalFriendly:  payload.HalalFriendly,
		ArabicSupport:  payload.ArabicSupport,
		FemaleStaff:    payload.FemaleStaff,
		Rating:         payload.Rating,
		ReviewCount:    payload.ReviewCount,
		PriceRange:     payload.PriceRange,
	}
	if payload.ID != "" {
		id, err := uuid.Parse(payload.ID)
		if err != nil {
			jsonError(w, "invalid clinic id", http.StatusBadRequest)
			return
		}
		rec.ID = id
	}

	id, err := h.store.UpsertClinic(r.Context(), nil, rec)
	if err != nil {
		h.logger.Error("failed to upsert clinic", "name", rec.Name, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// ListClinics returns clinics matching the query filters.
// GET /admin/catalog/clinics
func (h *CatalogHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()
	filter := catalog.ClinicFilter{
		District:      q.Get("district"),
		Specialty:     q.Get("specialty"),
		HalalFriendly: q.Get("halal_friendly") == "true",
		ArabicSupport: q.Get("arabic_support") == "true",
		FemaleStaff:   q.Get("female_staff") == "true",
		Limit:         queryLimit(q.Get("limit")),
	}

	clinics, err := h.store.ListClinics(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list clinics", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clinics": clinics})
}

type procedurePayload struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	NameAR          string `json:"name_ar,omitempty"`
	NameKO          string `json:"name_ko,omitempty"`
	Category        string `json:"category,omitempty"`
	Description     string `json:"description,omitempty"`
	DurationMin     int    `json:"duration_min,omitempty"`
	DurationMax     int    `json:"duration_max,omitempty"`
	RecoveryDaysMin int    `json:"recovery_days_min,omitempty"`
	RecoveryDaysMax int    `json:"recovery_days_max,omitempty"`
	PriceMinUSD     int    `json:"price_min_usd,omitempty"`
	PriceMaxUSD     int    `json:"price_max_usd,omitempty"`
}

// UpsertProcedure creates or updates a procedure.
// POST /admin/catalog/procedures
func (h *CatalogHandler) UpsertProcedure(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	var payload procedurePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	rec := catalog.Procedure{
		Name:            strings.TrimSpace(payload.Name),
		NameAR:          payload.NameAR,
		NameKO:          payload.NameKO,
		Category:        payload.Category,
		Description:     payload.Description,
		DurationMin:     payload.DurationMin,
		DurationMax:     payload.DurationMax,
		RecoveryDaysMin: payload.RecoveryDaysMin,
		RecoveryDaysMax: payload.RecoveryDaysMax,
		PriceMinUSD:     payload.PriceMinUSD,
		PriceMaxUSD:     payload.PriceMaxUSD,
	}
	if payload.ID != "" {
		id, err := uuid.Parse(payload.ID)
		if err != nil {
			jsonError(w, "invalid procedure id", http.StatusBadRequest)
			return
		}
		rec.ID = id
	}

	id, err := h.store.UpsertProcedure(r.Context(), nil, rec)
	if err != nil {
		h.logger.Error("failed to upsert procedure", "name", rec.Name, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// ListProcedures returns procedures, optionally filtered by category.
// GET /admin/catalog/procedures
func (h *CatalogHandler) ListProcedures(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	procedures, err := h.store.ListProcedures(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("failed to list procedures", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"procedures": procedures})
}

type clinicProcedurePayload struct {
	ClinicID    string `json:"clinic_id"`
	ProcedureID string `json:"procedure_id"`
	PriceMin    int    `json:"price_min,omitempty"`
	PriceMax    int    `json:"price_max,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// LinkClinicProcedure attaches a procedure to a clinic with its price
// band.
// POST /admin/catalog/clinic-procedures
func (h *CatalogHandler) LinkClinicProcedure(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	var payload clinicProcedurePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	clinicID, err := uuid.Parse(payload.ClinicID)
	if err != nil {
		jsonError(w, "invalid clinic_id", http.StatusBadRequest)
		return
	}
	procedureID, err := uuid.Parse(payload.ProcedureID)
	if err != nil {
		jsonError(w, "invalid procedure_id", http.StatusBadRequest)
		return
	}

	rec := catalog.ClinicProcedure{
		ClinicID:    clinicID,
		ProcedureID: procedureID,
		PriceMin:    payload.PriceMin,
		PriceMax:    payload.PriceMax,
		Notes:       payload.Notes,
	}
	if err := h.store.LinkClinicProcedure(r.Context(), nil, rec); err != nil {
		h.logger.Error("failed to link clinic procedure", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "linked"})
}

type halalPlacePayload struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	NameAR        string  `json:"name_ar,omitempty"`
	PlaceType     string  `json:"place_type"`
	Cuisine       string  `json:"cuisine,omitempty"`
	Certification string  `json:"certification,omitempty"`
	Address       string  `json:"address,omitempty"`
	District      string  `json:"district,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Delivery      bool    `json:"delivery,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	PriceRange    string  `json:"price_range,omitempty"`
}

// UpsertHalalPlace creates or updates a halal venue.
// POST /admin/catalog/halal-places
func (h *CatalogHandler) UpsertHalalPlace(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	var payload halalPlacePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	switch payload.PlaceType {
	case catalog.PlaceRestaurant, catalog.PlaceMarket, catalog.PlaceMosque:
	default:
		jsonError(w, "invalid place_type", http.StatusBadRequest)
		return
	}

	rec := catalog.HalalPlace{
		Name:          strings.TrimSpace(payload.Name),
		NameAR:        payload.NameAR,
		PlaceType:     payload.PlaceType,
		Cuisine:       payload.Cuisine,
		Certification: payload.Certification,
		Address:       payload.Address,
		District:      payload.District,
		Phone:         payload.Phone,
		Delivery:      payload.Delivery,
		Rating:        payload.Rating,
		PriceRange:    payload.PriceRange,
	}
	if payload.ID != "" {
		id, err := uuid.Parse(payload.ID)
		if err != nil {
			jsonError(w, "invalid place id", http.StatusBadRequest)
			return
		}
		rec.ID = id
	}

	id, err := h.store.UpsertHalalPlace(r.Context(), nil, rec)
	if err != nil {
		h.logger.Error("failed to upsert halal place", "name", rec.Name, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// ListHalalPlaces returns halal venues, optionally filtered by district
// and type.
// GET /admin/catalog/halal-places
func (h *CatalogHandler) ListHalalPlaces(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		jsonError(w, "catalog disabled", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()
	places, err := h.store.ListHalalPlaces(r.Context(), q.Get("district"), q.Get("place_type"), queryLimit(q.Get("limit")))
	if err != nil {
		h.logger.Error("failed to list halal places", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": places})
}

func queryLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
