// Seeds a running API instance with catalog and knowledge data through
// the admin endpoints.
//
// Usage:
//
//	ADMIN_JWT_SECRET=... go run ./scripts/seed [seed-file.json]
//
// The file defaults to scripts/seed/seed.json. API_URL overrides the
// target (default http://localhost:8080).
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type seedFile struct {
	Clinics     []json.RawMessage   `json:"clinics"`
	Procedures  []json.RawMessage   `json:"procedures"`
	HalalPlaces []json.RawMessage   `json:"halal_places"`
	Knowledge   map[string][]string `json:"knowledge"`

	// Links pair clinics and procedures by list index.
	Links []seedLink `json:"links"`
}

type seedLink struct {
	Clinic    int    `json:"clinic"`
	Procedure int    `json:"procedure"`
	PriceMin  int    `json:"price_min,omitempty"`
	PriceMax  int    `json:"price_max,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func main() {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		fmt.Println("Error: ADMIN_JWT_SECRET environment variable not set")
		os.Exit(1)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	path := "scripts/seed/seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Printf("Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	token, err := adminToken(secret)
	if err != nil {
		fmt.Printf("Error signing admin token: %v\n", err)
		os.Exit(1)
	}

	c := &client{base: apiURL, token: token, http: &http.Client{Timeout: 15 * time.Second}}

	fmt.Printf("Seeding %s from %s\n\n", apiURL, path)

	clinicIDs := make([]string, len(seed.Clinics))
	for i, body := range seed.Clinics {
		id, err := c.postForID("/admin/catalog/clinics", body)
		if err != nil {
			fmt.Printf("  clinic %d: %v\n", i, err)
			os.Exit(1)
		}
		clinicIDs[i] = id
		fmt.Printf("  clinic %d -> %s\n", i, id)
	}

	procedureIDs := make([]string, len(seed.Procedures))
	for i, body := range seed.Procedures {
		id, err := c.postForID("/admin/catalog/procedures", body)
		if err != nil {
			fmt.Printf("  procedure %d: %v\n", i, err)
			os.Exit(1)
		}
		procedureIDs[i] = id
		fmt.Printf("  procedure %d -> %s\n", i, id)
	}

	for _, link := range seed.Links {
		if link.Clinic >= len(clinicIDs) || link.Procedure >= len(procedureIDs) {
			fmt.Printf("  link out of range: %+v\n", link)
			os.Exit(1)
		}
		payload, _ := json.Marshal(map[string]any{
			"clinic_id":    clinicIDs[link.Clinic],
			"procedure_id": procedureIDs[link.Procedure],
			"price_min":    link.PriceMin,
			"price_max":    link.PriceMax,
			"notes":        link.Notes,
		})
		if _, err := c.post("/admin/catalog/clinic-procedures", payload); err != nil {
			fmt.Printf("  link %d/%d: %v\n", link.Clinic, link.Procedure, err)
			os.Exit(1)
		}
		fmt.Printf("  linked clinic %d to procedure %d\n", link.Clinic, link.Procedure)
	}

	for i, body := range seed.HalalPlaces {
		id, err := c.postForID("/admin/catalog/halal-places", body)
		if err != nil {
			fmt.Printf("  halal place %d: %v\n", i, err)
			os.Exit(1)
		}
		fmt.Printf("  halal place %d -> %s\n", i, id)
	}

	for topic, docs := range seed.Knowledge {
		payload, _ := json.Marshal(map[string]any{"documents": docs})
		req, err := http.NewRequest(http.MethodPut, apiURL+"/admin/knowledge/"+topic, bytes.NewReader(payload))
		if err != nil {
			fmt.Printf("  knowledge %s: %v\n", topic, err)
			os.Exit(1)
		}
		if _, err := c.do(req); err != nil {
			fmt.Printf("  knowledge %s: %v\n", topic, err)
			os.Exit(1)
		}
		fmt.Printf("  knowledge %s: %d documents\n", topic, len(docs))
	}

	fmt.Println("\nDone.")
}

func adminToken(secret string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) postForID(path string, body []byte) (string, error) {
	respBody, err := c.post(path, body)
	if err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.ID, nil
}

func (c *client) post(path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, string(respBody))
	}
	return respBody, nil
}
