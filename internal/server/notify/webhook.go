package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/murillocortez/olhar-autoral/internal/netx"
	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

// Webhook posts {"record": <briefing row>} to a notification function.
type Webhook struct {
	url    string
	key    string
	client *http.Client
}

func NewWebhook(url, key string, timeout time.Duration) *Webhook {
	return &Webhook{url: url, key: key, client: &http.Client{Timeout: timeout}}
}

// webhookRecord is the briefings row as the notification function reads it.
type webhookRecord struct {
	Name                string `json:"nome"`
	Profession          string `json:"profissao"`
	Email               string `json:"email"`
	Phone               string `json:"telefone"`
	Goal                string `json:"objetivo"`
	CreativeDescription string `json:"descricao_fundamento"`
	DesiredPerception   string `json:"desejo_fotografico"`
	References          string `json:"referencias"`
}

type webhookPayload struct {
	Record webhookRecord `json:"record"`
}

func newWebhookPayload(b *models.Briefing) webhookPayload {
	return webhookPayload{Record: webhookRecord{
		Name:                b.Name,
		Profession:          b.Profession,
		Email:               b.Email,
		Phone:               b.Phone,
		Goal:                b.Goal,
		CreativeDescription: b.CreativeDescription,
		DesiredPerception:   b.DesiredPerception,
		References:          b.References,
	}}
}

func (w *Webhook) Notify(ctx context.Context, b *models.Briefing) error {
	body, err := json.Marshal(newWebhookPayload(b))
	if err != nil {
		return fmt.Errorf("webhook: encode: %w", err)
	}

	var headers map[string]string
	if w.key != "" {
		headers = map[string]string{"Authorization": "Bearer " + w.key}
	}

	if err := netx.PostJSON(ctx, w.client, w.url, headers, body); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}
