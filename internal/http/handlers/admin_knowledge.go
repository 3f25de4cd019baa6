package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ahrie-ai/platform/internal/compliance"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/pkg/logging"
)

const maxKnowledgeDocs = 500

// KnowledgeIndexer is the live embedding index kept in step with the
// repository.
type KnowledgeIndexer interface {
	AddDocuments(ctx context.Context, topic string, contents []string) error
	ReplaceTopic(ctx context.Context, topic string, contents []string) error
}

// KnowledgeHandler exposes the knowledge base to admins: the raw
// documents agents ground on, per topic.
type KnowledgeHandler struct {
	repo    knowledge.Repository
	indexer KnowledgeIndexer
	audit   *compliance.AuditService
	logger  *logging.Logger
}

func NewKnowledgeHandler(repo knowledge.Repository, indexer KnowledgeIndexer, audit *compliance.AuditService, logger *logging.Logger) *KnowledgeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &KnowledgeHandler{repo: repo, indexer: indexer, audit: audit, logger: logger.Component("admin_knowledge")}
}

// GetTopic returns the documents stored under a topic.
// GET /admin/knowledge/{topic}
func (h *KnowledgeHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(chi.URLParam(r, "topic"))
	if topic == "" {
		jsonError(w, "missing topic", http.StatusBadRequest)
		return
	}
	if h.repo == nil {
		jsonError(w, "knowledge disabled", http.StatusServiceUnavailable)
		return
	}

	docs, err := h.repo.GetDocuments(r.Context(), topic)
	if err != nil {
		h.logger.Error("failed to fetch knowledge", "topic", topic, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topic":     topic,
		"documents": docs,
		"version":   h.topicVersion(r.Context(), topic),
	})
}

// PutTopic replaces the documents under a topic and re-embeds them.
// PUT /admin/knowledge/{topic}
func (h *KnowledgeHandler) PutTopic(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(chi.URLParam(r, "topic"))
	if topic == "" {
		jsonError(w, "missing topic", http.StatusBadRequest)
		return
	}
	if h.repo == nil {
		jsonError(w, "knowledge disabled", http.StatusServiceUnavailable)
		return
	}

	docs, ok := h.decodeDocuments(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.repo.ReplaceDocuments(ctx, topic, docs); err != nil {
		h.logger.Error("failed to replace knowledge", "topic", topic, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if h.indexer != nil {
		if err := h.indexer.ReplaceTopic(ctx, topic, docs); err != nil {
			h.logger.Error("failed to reindex knowledge", "topic", topic, "error", err)
			jsonError(w, "stored but not reindexed", http.StatusInternalServerError)
			return
		}
	}

	if h.audit != nil {
		_ = h.audit.LogKnowledgeUpdated(ctx, topic, len(docs))
	}
	h.logger.Info("knowledge topic replaced", "topic", topic, "docs", len(docs))

	writeJSON(w, http.StatusOK, map[string]any{
		"topic":   topic,
		"count":   len(docs),
		"version": h.topicVersion(ctx, topic),
	})
}

// AppendTopic adds documents to a topic without dropping the existing
// ones.
// POST /admin/knowledge/{topic}
func (h *KnowledgeHandler) AppendTopic(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(chi.URLParam(r, "topic"))
	if topic == "" {
		jsonError(w, "missing topic", http.StatusBadRequest)
		return
	}
	if h.repo == nil {
		jsonError(w, "knowledge disabled", http.StatusServiceUnavailable)
		return
	}

	docs, ok := h.decodeDocuments(w, r)
	if !ok {
		return
	}
	if len(docs) == 0 {
		jsonError(w, "documents cannot be empty", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := h.repo.AppendDocuments(ctx, topic, docs); err != nil {
		h.logger.Error("failed to append knowledge", "topic", topic, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if h.indexer != nil {
		if err := h.indexer.AddDocuments(ctx, topic, docs); err != nil {
			h.logger.Error("failed to index knowledge", "topic", topic, "error", err)
			jsonError(w, "stored but not indexed", http.StatusInternalServerError)
			return
		}
	}

	if h.audit != nil {
		_ = h.audit.LogKnowledgeUpdated(ctx, topic, len(docs))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topic":   topic,
		"added":   len(docs),
		"version": h.topicVersion(ctx, topic),
	})
}

// topicVersion is best effort; a lookup failure only logs.
func (h *KnowledgeHandler) topicVersion(ctx context.Context, topic string) int64 {
	version, err := h.repo.Version(ctx, topic)
	if err != nil {
		h.logger.Warn("failed to read knowledge version", "topic", topic, "error", err)
		return 0
	}
	return version
}

func (h *KnowledgeHandler) decodeDocuments(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var payload struct {
		Documents []string `json:"documents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return nil, false
	}
	if len(payload.Documents) > maxKnowledgeDocs {
		jsonError(w, "too many documents", http.StatusBadRequest)
		return nil, false
	}
	docs := make([]string, 0, len(payload.Documents))
	for _, d := range payload.Documents {
		d = strings.TrimSpace(d)
		if d == "" {
			jsonError(w, "documents cannot contain empty entries", http.StatusBadRequest)
			return nil, false
		}
		docs = append(docs, d)
	}
	return docs, true
}
