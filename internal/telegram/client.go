package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.telegram.org"
	defaultUserAgent = "ahrie-telegram/0.1"

	// ParseModeMarkdown is the parse mode all bot replies use.
	ParseModeMarkdown = "Markdown"

	// ActionTyping is the chat action shown while agents work.
	ActionTyping = "typing"
)

// Config controls how the Bot API client behaves.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client wraps the Telegram Bot API methods the platform calls.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		token:      cfg.Token,
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// SendMessageRequest describes an outgoing message.
type SendMessageRequest struct {
	ChatID                int64                 `json:"chat_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// SendMessage delivers a message to a chat.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if req.ChatID == 0 {
		return nil, errors.New("telegram: chat id is required")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("telegram: message text is required")
	}
	data, err := c.invoke(ctx, "sendMessage", req)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("telegram: decode sendMessage result: %w", err)
	}
	return &msg, nil
}

// SendChatAction shows a chat action, typically typing, while the
// reply is being produced. Failures are not worth surfacing.
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action string) error {
	_, err := c.invoke(ctx, "sendChatAction", map[string]any{
		"chat_id": chatID,
		"action":  action,
	})
	return err
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing its progress spinner.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	payload := map[string]any{"callback_query_id": callbackID}
	if text != "" {
		payload["text"] = text
	}
	_, err := c.invoke(ctx, "answerCallbackQuery", payload)
	return err
}

// EditMessageTextRequest describes an in-place edit of a sent message.
type EditMessageTextRequest struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int64                 `json:"message_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// EditMessageText rewrites a previously sent message, used when menu
// buttons swap one keyboard for another.
func (c *Client) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	if req.ChatID == 0 || req.MessageID == 0 {
		return errors.New("telegram: chat id and message id are required")
	}
	_, err := c.invoke(ctx, "editMessageText", req)
	return err
}

// SetWebhook registers the webhook endpoint with its secret token.
// Telegram echoes the secret on every delivery so the handler can
// reject forged requests.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	if strings.TrimSpace(webhookURL) == "" {
		return errors.New("telegram: webhook url is required")
	}
	payload := map[string]any{
		"url":             webhookURL,
		"allowed_updates": []string{"message", "callback_query"},
	}
	if secretToken != "" {
		payload["secret_token"] = secretToken
	}
	_, err := c.invoke(ctx, "setWebhook", payload)
	return err
}

// DeleteWebhook unregisters the webhook.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	_, err := c.invoke(ctx, "deleteWebhook", map[string]any{})
	return err
}

// WebhookInfo is the Bot API's view of the webhook registration.
type WebhookInfo struct {
	URL                  string `json:"url"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
	PendingUpdateCount   int    `json:"pending_update_count"`
	LastErrorDate        int64  `json:"last_error_date,omitempty"`
	LastErrorMessage     string `json:"last_error_message,omitempty"`
	MaxConnections       int    `json:"max_connections,omitempty"`
}

// GetWebhookInfo fetches the current webhook registration, including
// the backlog of undelivered updates and the last delivery error.
func (c *Client) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	data, err := c.invoke(ctx, "getWebhookInfo", map[string]any{})
	if err != nil {
		return nil, err
	}
	var info WebhookInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("telegram: decode getWebhookInfo result: %w", err)
	}
	return &info, nil
}

// GetMe fetches the bot account, useful as a connectivity check.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	data, err := c.invoke(ctx, "getMe", map[string]any{})
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("telegram: decode getMe result: %w", err)
	}
	return &u, nil
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

func (c *Client) invoke(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("telegram: encode %s payload: %w", method, err)
	}
	fullURL := c.baseURL + "/bot" + c.token + "/" + method

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("telegram: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !shouldRetry(0, err) || attempt == c.maxRetries {
				return nil, fmt.Errorf("telegram: http error: %w", err)
			}
			lastErr = err
			c.logRetry(method, attempt, 0, err)
			if sleepErr := c.sleep(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("telegram: read response: %w", readErr)
		}

		var parsed apiResponse
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("telegram: decode %s response: %w", method, err)
		}
		if parsed.OK {
			return parsed.Result, nil
		}

		apiErr := &apiError{StatusCode: resp.StatusCode, Code: parsed.ErrorCode, Description: parsed.Description}
		if attempt < c.maxRetries && shouldRetry(resp.StatusCode, nil) {
			lastErr = apiErr
			c.logRetry(method, attempt, resp.StatusCode, apiErr)
			if sleepErr := c.sleep(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		return nil, apiErr
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("telegram: request failed without response")
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	delay := c.backoff * time.Duration(1<<attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) logRetry(method string, attempt int, status int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("telegram retry",
		"method", method,
		"attempt", attempt+1,
		"status", status,
		"error", err,
	)
}

func shouldRetry(status int, err error) bool {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}
		return !errors.Is(err, context.Canceled)
	}
	if status == http.StatusTooManyRequests {
		return true
	}
	if status >= 500 && status <= 599 {
		return true
	}
	return false
}

type apiError struct {
	StatusCode  int
	Code        int
	Description string
}

func (e *apiError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram: %s (code=%d)", e.Description, e.Code)
	}
	return fmt.Sprintf("telegram: http status %d", e.StatusCode)
}
