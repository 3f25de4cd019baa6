// Package knowledge provides retrieval over curated medical-tourism
// snippets: embeddings in memory for similarity search, raw documents
// in Redis so the index can be rebuilt on boot.
package knowledge

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// Retriever exposes the query capability agents need.
type Retriever interface {
	Query(ctx context.Context, topic string, query string, topK int) ([]string, error)
}

// MemoryStore keeps embeddings in memory and supports simple cosine
// retrieval. Documents are bucketed by topic; the "" bucket is global
// and included in every query.
type MemoryStore struct {
	embedder llm.Embedder
	logger   *logging.Logger

	mu        sync.RWMutex
	documents map[string][]document
}

type document struct {
	content   string
	embedding []float32
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(embedder llm.Embedder, logger *logging.Logger) *MemoryStore {
	if embedder == nil {
		panic("knowledge: embedder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MemoryStore{
		embedder:  embedder,
		logger:    logger,
		documents: make(map[string][]document),
	}
}

// AddDocuments embeds and stores the provided contents under a topic.
func (s *MemoryStore) AddDocuments(ctx context.Context, topic string, contents []string) error {
	if len(contents) == 0 {
		return nil
	}

	vectors, err := s.embedder.Embed(ctx, contents)
	if err != nil {
		return err
	}
	if len(vectors) != len(contents) {
		return errors.New("knowledge: embedding response size mismatch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, vec := range vectors {
		s.documents[topic] = append(s.documents[topic], document{
			content:   contents[i],
			embedding: vec,
		})
	}
	return nil
}

// ReplaceTopic re-embeds a topic from scratch, dropping whatever was
// indexed for it before.
func (s *MemoryStore) ReplaceTopic(ctx context.Context, topic string, contents []string) error {
	var docs []document
	if len(contents) > 0 {
		vectors, err := s.embedder.Embed(ctx, contents)
		if err != nil {
			return err
		}
		if len(vectors) != len(contents) {
			return errors.New("knowledge: embedding response size mismatch")
		}
		docs = make([]document, len(contents))
		for i := range contents {
			docs[i] = document{content: contents[i], embedding: vectors[i]}
		}
	}

	s.mu.Lock()
	s.documents[topic] = docs
	s.mu.Unlock()
	return nil
}

// Query returns the topK documents for a topic plus global documents.
func (s *MemoryStore) Query(ctx context.Context, topic string, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 3
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	queryVec := vectors[0]

	s.mu.RLock()
	defer s.mu.RUnlock()
	var candidates []document
	if docs, ok := s.documents[topic]; ok {
		candidates = append(candidates, docs...)
	}
	if topic != "" {
		if docs, ok := s.documents[""]; ok {
			candidates = append(candidates, docs...)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	type scored struct {
		score   float64
		content string
	}
	results := make([]scored, 0, len(candidates))
	for _, doc := range candidates {
		results = append(results, scored{
			score:   cosineSimilarity(queryVec, doc.embedding),
			content: doc.content,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := topK
	if len(results) < limit {
		limit = len(results)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = results[i].content
	}
	return out, nil
}

// Hydrate rebuilds the in-memory index from the repository's raw
// documents. Called on boot before the store serves queries.
func (s *MemoryStore) Hydrate(ctx context.Context, repo Repository) error {
	all, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for topic, docs := range all {
		if err := s.AddDocuments(ctx, topic, docs); err != nil {
			return err
		}
		s.logger.Info("hydrated knowledge topic", "topic", topic, "docs", len(docs))
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	var normA float64
	var normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
