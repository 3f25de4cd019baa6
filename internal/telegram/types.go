// Package telegram implements the Bot API surface the platform uses:
// a sending client, webhook types, and the inline keyboards shown to
// visitors.
package telegram

// Update is an incoming event from the Bot API webhook.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	EditedMessage *Message       `json:"edited_message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message is an incoming or outgoing chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

// CallbackQuery is a button press on an inline keyboard.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// User is a Telegram account.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Chat is the conversation a message belongs to.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// InlineKeyboardMarkup is an inline keyboard attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton is one button. Exactly one of URL or
// CallbackData should be set.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

// Command extracts the bot command from an update's message, without
// the leading slash or a trailing @botname suffix. Empty when the
// message is not a command.
func (u Update) Command() string {
	if u.Message == nil || len(u.Message.Text) == 0 || u.Message.Text[0] != '/' {
		return ""
	}
	cmd := u.Message.Text[1:]
	for i := 0; i < len(cmd); i++ {
		if cmd[i] == ' ' || cmd[i] == '@' {
			return cmd[:i]
		}
	}
	return cmd
}

// ChatID returns the chat the update belongs to, from either the
// message or the callback query. Zero when neither is present.
func (u Update) ChatID() int64 {
	if u.Message != nil {
		return u.Message.Chat.ID
	}
	if u.CallbackQuery != nil && u.CallbackQuery.Message != nil {
		return u.CallbackQuery.Message.Chat.ID
	}
	return 0
}

// Sender returns the user who produced the update, if any.
func (u Update) Sender() *User {
	if u.Message != nil {
		return u.Message.From
	}
	if u.CallbackQuery != nil {
		return &u.CallbackQuery.From
	}
	return nil
}
