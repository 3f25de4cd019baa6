package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahrie-ai/platform/internal/catalog"
	"github.com/ahrie-ai/platform/internal/compliance"
	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/internal/telegram"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// BotMessenger is the slice of the Telegram client the webhook handler
// needs to reply synchronously.
type BotMessenger interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// ClinicLister backs the /clinics command and the clinic detail
// buttons.
type ClinicLister interface {
	ListClinics(ctx context.Context, filter catalog.ClinicFilter) ([]catalog.Clinic, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*catalog.Clinic, error)
}

// TelegramHandlerConfig wires the webhook handler's collaborators.
type TelegramHandlerConfig struct {
	WebhookSecret string
	// DefaultLanguage is the reply language when neither a saved
	// preference nor a client locale is available.
	DefaultLanguage i18n.Language
	Service         conversation.Service
	History         *conversation.HistoryStore
	Users           *conversation.Store
	Jobs            conversation.JobRecorder
	Publisher       *conversation.Publisher
	Bot             BotMessenger
	Clinics         ClinicLister
	Audit           *compliance.AuditService
	Metrics         *metrics.Metrics
	Logger          *logging.Logger
}

// TelegramHandler receives Bot API updates. Commands and menu taps are
// answered synchronously; free-text questions are enqueued for the
// conversation worker so the webhook returns before the models run.
type TelegramHandler struct {
	secret      string
	defaultLang i18n.Language
	service     conversation.Service
	history     *conversation.HistoryStore
	users       *conversation.Store
	jobs        conversation.JobRecorder
	publisher   *conversation.Publisher
	bot         BotMessenger
	clinics     ClinicLister
	audit       *compliance.AuditService
	metrics     *metrics.Metrics
	logger      *logging.Logger
}

// NewTelegramHandler creates the webhook handler.
func NewTelegramHandler(cfg TelegramHandlerConfig) *TelegramHandler {
	if cfg.Service == nil {
		panic("handlers: conversation service is required")
	}
	if cfg.Bot == nil {
		panic("handlers: bot messenger is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	defaultLang := cfg.DefaultLanguage
	if defaultLang == "" {
		defaultLang = i18n.DefaultLanguage
	}
	return &TelegramHandler{
		secret:      strings.TrimSpace(cfg.WebhookSecret),
		defaultLang: defaultLang,
		service:     cfg.Service,
		history:     cfg.History,
		users:       cfg.Users,
		jobs:        cfg.Jobs,
		publisher:   cfg.Publisher,
		bot:         cfg.Bot,
		clinics:     cfg.Clinics,
		audit:       cfg.Audit,
		metrics:     cfg.Metrics,
		logger:      logger.Component("telegram_webhook"),
	}
}

// Handle processes one webhook delivery.
// POST /webhooks/telegram
func (h *TelegramHandler) Handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	if !telegram.VerifyWebhook(r, h.secret) {
		h.logger.Warn("rejected webhook with bad secret token", "remote_addr", r.RemoteAddr)
		if h.audit != nil {
			_ = h.audit.LogWebhookRejected(ctx, r.RemoteAddr)
		}
		h.metrics.ObserveWebhook("unknown", "rejected")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.metrics.ObserveWebhook("unknown", "invalid")
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	updateType := "message"
	if update.CallbackQuery != nil {
		updateType = "callback_query"
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Command() != "":
		h.handleCommand(ctx, update)
	case update.Message != nil && strings.TrimSpace(update.Message.Text) != "":
		h.handleText(ctx, update)
	default:
		// Edits, stickers, join events and the like are acknowledged
		// without a reply.
	}

	h.metrics.ObserveWebhook(updateType, "accepted")
	h.metrics.ObserveWebhookLatency(updateType, time.Since(start).Seconds())
	// Telegram only needs a 200 to stop retrying; the body mirrors the
	// Bot API's own envelope.
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *TelegramHandler) handleCommand(ctx context.Context, update telegram.Update) {
	chatID := update.ChatID()
	sender := update.Sender()
	lang := h.preferredLanguage(ctx, chatID, sender)

	switch update.Command() {
	case "start":
		h.startConversation(ctx, chatID, sender)
	case "help":
		h.send(ctx, chatID, i18n.T("help_message", lang), telegram.HelpKeyboard(lang))
	case "language":
		h.send(ctx, chatID, i18n.T("choose_language", lang), telegram.LanguageKeyboard())
	case "procedures":
		h.send(ctx, chatID, i18n.T("procedures_menu", lang), telegram.ProceduresKeyboard(lang))
	case "clinics":
		h.sendClinicList(ctx, chatID, lang)
	case "about":
		h.send(ctx, chatID, i18n.T("about_message", lang), nil)
	default:
		h.send(ctx, chatID, i18n.T("unknown_command", lang), nil)
	}
}

func (h *TelegramHandler) handleText(ctx context.Context, update telegram.Update) {
	langCode := ""
	if sender := update.Sender(); sender != nil {
		langCode = sender.LanguageCode
	}
	h.enqueueText(ctx, update.ChatID(), update.Sender(), update.Message.Text, langCode)
}

func (h *TelegramHandler) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if err := h.bot.AnswerCallbackQuery(ctx, cb.ID, ""); err != nil {
		h.logger.Warn("failed to answer callback query", "callback_id", cb.ID, "error", err)
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	lang := h.preferredLanguage(ctx, chatID, &cb.From)
	data := cb.Data

	switch {
	case strings.HasPrefix(data, telegram.CallbackPrefixLang):
		h.switchLanguage(ctx, chatID, cb.From.ID, strings.TrimPrefix(data, telegram.CallbackPrefixLang))
	case data == telegram.CallbackMainMenu:
		h.send(ctx, chatID, i18n.T("main_menu", lang), telegram.MainMenuKeyboard(lang))
	case data == telegram.CallbackPrefixMenu+"procedures":
		h.send(ctx, chatID, i18n.T("procedures_menu", lang), telegram.ProceduresKeyboard(lang))
	case data == telegram.CallbackPrefixMenu+"clinics":
		h.sendClinicList(ctx, chatID, lang)
	case data == telegram.CallbackPrefixMenu+"language":
		h.send(ctx, chatID, i18n.T("choose_language", lang), telegram.LanguageKeyboard())
	case data == telegram.CallbackPrefixMenu+"help":
		h.send(ctx, chatID, i18n.T("help_message", lang), telegram.HelpKeyboard(lang))
	case data == telegram.CallbackPrefixMenu+"reviews":
		h.enqueueText(ctx, chatID, &cb.From, reviewQueries[lang], string(lang))
	case data == telegram.CallbackPrefixMenu+"halal":
		h.enqueueText(ctx, chatID, &cb.From, halalQueries[lang], string(lang))
	case data == telegram.CallbackPrefixQuick+"consultation":
		h.send(ctx, chatID, i18n.T("start_follow_up", lang), telegram.MainMenuKeyboard(lang))
	case strings.HasPrefix(data, telegram.CallbackPrefixProc):
		h.enqueueProcedure(ctx, chatID, &cb.From, strings.TrimPrefix(data, telegram.CallbackPrefixProc), lang)
	case strings.HasPrefix(data, telegram.CallbackPrefixClinic):
		h.sendClinicDetails(ctx, chatID, strings.TrimPrefix(data, telegram.CallbackPrefixClinic), lang)
	default:
		h.logger.Warn("unhandled callback data", "data", data)
	}
}

func (h *TelegramHandler) startConversation(ctx context.Context, chatID int64, sender *telegram.User) {
	req := conversation.StartRequest{ChatID: chatID}
	if sender != nil {
		req.TelegramID = sender.ID
		req.Username = sender.Username
		req.FirstName = sender.FirstName
		req.LastName = sender.LastName
		req.LanguageCode = sender.LanguageCode
	}
	resp, err := h.service.StartConversation(ctx, req)
	if err != nil {
		h.logger.Error("start conversation failed", "chat_id", chatID, "error", err)
		h.send(ctx, chatID, i18n.T("error_message", h.preferredLanguage(ctx, chatID, sender)), nil)
		return
	}
	if h.history != nil {
		if err := h.history.SetActiveConversation(ctx, chatID, resp.ConversationID); err != nil {
			h.logger.Warn("failed to save active conversation", "chat_id", chatID, "error", err)
		}
	}
	h.send(ctx, chatID, resp.Text, telegram.MainMenuKeyboard(resp.Language))
}

func (h *TelegramHandler) switchLanguage(ctx context.Context, chatID, telegramID int64, code string) {
	lang := i18n.Normalize(code)
	if h.history != nil {
		if err := h.history.SaveLanguage(ctx, chatID, lang); err != nil {
			h.logger.Warn("failed to save chat language", "chat_id", chatID, "error", err)
		}
	}
	if h.users != nil && telegramID != 0 {
		if err := h.users.SetUserLanguage(ctx, telegramID, lang); err != nil {
			h.logger.Warn("failed to persist user language", "telegram_id", telegramID, "error", err)
		}
	}
	h.send(ctx, chatID, i18n.T("language_updated", lang), telegram.MainMenuKeyboard(lang))
}

func (h *TelegramHandler) sendClinicList(ctx context.Context, chatID int64, lang i18n.Language) {
	if h.clinics == nil {
		h.send(ctx, chatID, i18n.T("no_results", lang), telegram.MainMenuKeyboard(lang))
		return
	}
	clinics, err := h.clinics.ListClinics(ctx, catalog.ClinicFilter{Limit: 5})
	if err != nil {
		h.logger.Error("failed to list clinics", "error", err)
	}
	if len(clinics) == 0 {
		h.send(ctx, chatID, i18n.T("no_results", lang), telegram.MainMenuKeyboard(lang))
		return
	}

	var b strings.Builder
	b.WriteString(i18n.T("clinics_intro", lang))
	options := make([]telegram.ClinicOption, 0, len(clinics))
	for _, c := range clinics {
		b.WriteString("\n\n• *")
		b.WriteString(c.LocalizedName(lang))
		b.WriteString("*")
		if c.District != "" {
			b.WriteString(" (")
			b.WriteString(c.District)
			b.WriteString(")")
		}
		if c.Rating > 0 {
			fmt.Fprintf(&b, "\n  ⭐ %.1f", c.Rating)
			if c.ReviewCount > 0 {
				fmt.Fprintf(&b, " · %s", i18n.FormatNumber(c.ReviewCount, lang))
			}
		}
		options = append(options, telegram.ClinicOption{
			ID:   c.ID.String(),
			Name: c.LocalizedName(lang),
		})
	}
	h.send(ctx, chatID, b.String(), telegram.ClinicsKeyboard(lang, options))
}

// sendClinicDetails answers a tap on a clinic button with the catalog
// record behind it.
func (h *TelegramHandler) sendClinicDetails(ctx context.Context, chatID int64, rawID string, lang i18n.Language) {
	if h.clinics == nil {
		h.send(ctx, chatID, i18n.T("no_results", lang), telegram.MainMenuKeyboard(lang))
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		h.logger.Warn("malformed clinic callback", "data", rawID)
		h.send(ctx, chatID, i18n.T("no_results", lang), telegram.MainMenuKeyboard(lang))
		return
	}
	clinic, err := h.clinics.GetClinic(ctx, id)
	if err != nil {
		h.logger.Error("clinic lookup failed", "clinic_id", rawID, "error", err)
	}
	if clinic == nil {
		h.send(ctx, chatID, i18n.T("no_results", lang), telegram.MainMenuKeyboard(lang))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, i18n.T("clinic_details", lang), "*"+clinic.LocalizedName(lang)+"*")
	if clinic.Address != "" {
		b.WriteString("\n📍 " + clinic.Address)
	} else if clinic.District != "" {
		b.WriteString("\n📍 " + clinic.District)
	}
	if clinic.Rating > 0 {
		fmt.Fprintf(&b, "\n⭐ %.1f", clinic.Rating)
		if clinic.ReviewCount > 0 {
			fmt.Fprintf(&b, " · %s", i18n.FormatNumber(clinic.ReviewCount, lang))
		}
	}
	if clinic.HalalFriendly {
		b.WriteString("\n🕌 " + i18n.T("badge_halal", lang))
	}
	if clinic.FemaleStaff {
		b.WriteString("\n👩‍⚕️ " + i18n.T("badge_female", lang))
	}
	if clinic.ArabicSupport {
		b.WriteString("\n🗣 " + i18n.T("badge_arabic", lang))
	}
	if clinic.Phone != "" {
		b.WriteString("\n📞 " + clinic.Phone)
	}
	if clinic.Website != "" {
		b.WriteString("\n🔗 " + clinic.Website)
	}
	h.send(ctx, chatID, b.String(), telegram.QuickActionsKeyboard(lang, "medical"))
}

func (h *TelegramHandler) enqueueProcedure(ctx context.Context, chatID int64, sender *telegram.User, key string, lang i18n.Language) {
	names, ok := procedureNames[key]
	if !ok {
		h.send(ctx, chatID, i18n.T("unknown_command", lang), telegram.ProceduresKeyboard(lang))
		return
	}
	text := fmt.Sprintf(procedureQueryTemplates[lang], names[lang])
	h.enqueueText(ctx, chatID, sender, text, string(lang))
}

// enqueueText hands a question to the conversation worker and records a
// pending job so its outcome can be inspected later.
func (h *TelegramHandler) enqueueText(ctx context.Context, chatID int64, sender *telegram.User, text, langCode string) {
	lang := h.preferredLanguage(ctx, chatID, sender)
	if h.publisher == nil {
		h.send(ctx, chatID, i18n.T("error_message", lang), nil)
		return
	}

	req := conversation.MessageRequest{
		ChatID:       chatID,
		Text:         text,
		LanguageCode: langCode,
	}
	if sender != nil {
		req.TelegramID = sender.ID
	}
	if h.history != nil {
		if convID, err := h.history.ActiveConversation(ctx, chatID); err == nil {
			req.ConversationID = convID
		}
	}

	jobID := uuid.NewString()
	if h.jobs != nil {
		if err := h.jobs.PutPending(ctx, &conversation.JobRecord{JobID: jobID, ChatID: chatID}); err != nil {
			h.logger.Warn("failed to record pending job", "job_id", jobID, "error", err)
		}
	}
	if err := h.publisher.EnqueueMessage(ctx, jobID, req); err != nil {
		h.logger.Error("failed to enqueue message", "chat_id", chatID, "error", err)
		h.send(ctx, chatID, i18n.T("error_message", lang), nil)
	}
}

// preferredLanguage resolves the language for synchronous replies: the
// saved chat preference wins, then the Telegram client locale.
func (h *TelegramHandler) preferredLanguage(ctx context.Context, chatID int64, sender *telegram.User) i18n.Language {
	if h.history != nil {
		if lang, err := h.history.LoadLanguage(ctx, chatID); err == nil && lang != "" {
			return lang
		}
	}
	if sender != nil && sender.LanguageCode != "" {
		return i18n.Normalize(sender.LanguageCode)
	}
	return h.defaultLang
}

func (h *TelegramHandler) send(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) {
	_, err := h.bot.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   telegram.ParseModeMarkdown,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

// Canned questions behind the menu buttons. They go through the same
// agent pipeline as typed text so the reply carries live catalog and
// video data.
var reviewQueries = map[i18n.Language]string{
	i18n.English: "Show me real patient review videos about cosmetic procedures in Seoul",
	i18n.Arabic:  "أريد مشاهدة تجارب حقيقية للمرضى عن عمليات التجميل في كوريا",
	i18n.Korean:  "서울 미용 시술 실제 환자 후기 영상을 보여주세요",
}

var halalQueries = map[i18n.Language]string{
	i18n.English: "Where can I find halal restaurants and prayer spaces near the clinics in Seoul?",
	i18n.Arabic:  "أين أجد مطاعم حلال وأماكن للصلاة بالقرب من العيادات في سيول؟",
	i18n.Korean:  "서울 클리닉 근처 할랄 식당과 기도 공간은 어디에 있나요?",
}

var procedureQueryTemplates = map[i18n.Language]string{
	i18n.English: "Tell me about %s in Seoul: typical cost, recovery time, and recommended clinics",
	i18n.Arabic:  "أخبرني عن %s في سيول: التكلفة المعتادة وفترة التعافي والعيادات الموصى بها",
	i18n.Korean:  "서울의 %s에 대해 알려주세요. 일반적인 비용, 회복 기간, 추천 클리닉이 궁금합니다",
}

var procedureNames = map[string]map[i18n.Language]string{
	"rhinoplasty":       {i18n.English: "rhinoplasty", i18n.Arabic: "عملية تجميل الأنف", i18n.Korean: "코 성형"},
	"double_eyelid":     {i18n.English: "double eyelid surgery", i18n.Arabic: "عملية الجفن المزدوج", i18n.Korean: "쌍꺼풀 수술"},
	"facial_contouring": {i18n.English: "facial contouring", i18n.Arabic: "نحت الوجه", i18n.Korean: "윤곽 성형"},
	"fillers":           {i18n.English: "botox and fillers", i18n.Arabic: "البوتوكس والفيلر", i18n.Korean: "보톡스와 필러"},
	"liposuction":       {i18n.English: "liposuction", i18n.Arabic: "شفط الدهون", i18n.Korean: "지방흡입"},
	"facelift":          {i18n.English: "facelift", i18n.Arabic: "شد الوجه", i18n.Korean: "리프팅"},
}
