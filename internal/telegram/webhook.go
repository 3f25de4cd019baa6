package telegram

import (
	"crypto/subtle"
	"net/http"
)

// SecretTokenHeader is the header Telegram echoes on every webhook
// delivery when a secret token was registered.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// VerifyWebhook reports whether the request carries the expected
// secret token. Comparison is constant time.
func VerifyWebhook(r *http.Request, secret string) bool {
	if secret == "" {
		return true
	}
	got := r.Header.Get(SecretTokenHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}
