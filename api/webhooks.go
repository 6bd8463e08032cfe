package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WebhooksHandler receives callbacks from the chat channels. The payloads are
// acknowledged and logged; conversational interview flow over these channels
// is not implemented yet.
type WebhooksHandler struct {
	verifyToken string
}

func NewWebhooksHandler(verifyToken string) *WebhooksHandler {
	return &WebhooksHandler{verifyToken: verifyToken}
}

// VerifyWhatsApp answers the hub challenge WhatsApp sends when the webhook
// URL is registered.
func (h *WebhooksHandler) VerifyWhatsApp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") != "subscribe" || q.Get("hub.verify_token") != h.verifyToken {
		http.Error(w, "verification failed", http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, q.Get("hub.challenge"))
}

func (h *WebhooksHandler) ReceiveWhatsApp(w http.ResponseWriter, r *http.Request) {
	h.receive(w, r, "whatsapp")
}

func (h *WebhooksHandler) ReceiveTelegram(w http.ResponseWriter, r *http.Request) {
	h.receive(w, r, "telegram")
}

func (h *WebhooksHandler) receive(w http.ResponseWriter, r *http.Request, channel string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var payload map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
	}

	logger.Info("webhook received", "channel", channel, "bytes", len(body))

	writeJSON(w, map[string]string{"status": "received"}, http.StatusOK)
}
