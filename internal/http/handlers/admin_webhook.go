package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/ahrie-ai/platform/internal/telegram"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// WebhookRegistrar is the slice of the Telegram client used to manage
// webhook registration.
type WebhookRegistrar interface {
	SetWebhook(ctx context.Context, webhookURL, secretToken string) error
	DeleteWebhook(ctx context.Context) error
	GetWebhookInfo(ctx context.Context) (*telegram.WebhookInfo, error)
}

// WebhookAdminHandler registers, inspects, or removes the bot's
// webhook with the Bot API. Used during deploys and when rotating the
// secret.
type WebhookAdminHandler struct {
	bot           WebhookRegistrar
	publicBaseURL string
	secret        string
	logger        *logging.Logger
}

func NewWebhookAdminHandler(bot WebhookRegistrar, publicBaseURL, secret string, logger *logging.Logger) *WebhookAdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookAdminHandler{
		bot:           bot,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		secret:        secret,
		logger:        logger.Component("admin_webhook"),
	}
}

// Register points the Bot API at this deployment's webhook URL.
// POST /admin/telegram/webhook
func (h *WebhookAdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.bot == nil {
		jsonError(w, "telegram client not configured", http.StatusServiceUnavailable)
		return
	}
	if h.publicBaseURL == "" {
		jsonError(w, "public base URL not configured", http.StatusServiceUnavailable)
		return
	}

	url := h.publicBaseURL + "/webhooks/telegram"
	if err := h.bot.SetWebhook(r.Context(), url, h.secret); err != nil {
		h.logger.Error("failed to register telegram webhook", "url", url, "error", err)
		jsonError(w, "failed to register webhook", http.StatusBadGateway)
		return
	}
	h.logger.Info("telegram webhook registered", "url", url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Unregister removes the webhook so updates stop arriving.
// DELETE /admin/telegram/webhook
func (h *WebhookAdminHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if h.bot == nil {
		jsonError(w, "telegram client not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.bot.DeleteWebhook(r.Context()); err != nil {
		h.logger.Error("failed to delete telegram webhook", "error", err)
		jsonError(w, "failed to delete webhook", http.StatusBadGateway)
		return
	}
	h.logger.Info("telegram webhook removed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// Info reports the registration as Telegram sees it, useful for
// checking the update backlog and the last delivery failure.
// GET /admin/telegram/webhook
func (h *WebhookAdminHandler) Info(w http.ResponseWriter, r *http.Request) {
	if h.bot == nil {
		jsonError(w, "telegram client not configured", http.StatusServiceUnavailable)
		return
	}
	info, err := h.bot.GetWebhookInfo(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch telegram webhook info", "error", err)
		jsonError(w, "failed to fetch webhook info", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"url":                  info.URL,
		"pending_update_count": info.PendingUpdateCount,
		"last_error_date":      info.LastErrorDate,
		"last_error_message":   info.LastErrorMessage,
	})
}
