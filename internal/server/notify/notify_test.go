package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

func briefing() *models.Briefing {
	return &models.Briefing{
		ID:                  "b-1",
		Name:                "Ana",
		Profession:          "Chef",
		Email:               "ana@example.com",
		Goal:                "Cardápio",
		CreativeDescription: "Cozinha de memória",
		DesiredPerception:   "Acolhedora",
		References:          "https://example.com/ref",
	}
}

type notifierFunc func(ctx context.Context, b *models.Briefing) error

func (f notifierFunc) Notify(ctx context.Context, b *models.Briefing) error { return f(ctx, b) }

func TestMulti(t *testing.T) {
	var calls int
	ok := notifierFunc(func(context.Context, *models.Briefing) error { calls++; return nil })
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	require.NoError(t, Multi{ok, ok}.Notify(context.Background(), briefing()))
	assert.Equal(t, 2, calls)

	err := Multi{
		notifierFunc(func(context.Context, *models.Briefing) error { return errA }),
		ok,
		notifierFunc(func(context.Context, *models.Briefing) error { return errB }),
	}.Notify(context.Background(), briefing())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 3, calls, "a failing channel does not stop the others")

	assert.NoError(t, Multi(nil).Notify(context.Background(), briefing()))
	assert.NoError(t, Nop{}.Notify(context.Background(), briefing()))
}

func TestWebhook_Notify(t *testing.T) {
	var (
		gotAuth string
		gotBody map[string]map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, "anon-key", time.Second)
	require.NoError(t, w.Notify(context.Background(), briefing()))

	assert.Equal(t, "Bearer anon-key", gotAuth)
	require.Contains(t, gotBody, "record")
	assert.Equal(t, "Ana", gotBody["record"]["nome"])
	assert.Equal(t, "ana@example.com", gotBody["record"]["email"])
	assert.Equal(t, map[string]any{
		"nome":                 "Ana",
		"profissao":            "Chef",
		"email":                "ana@example.com",
		"telefone":             "",
		"objetivo":             "Cardápio",
		"descricao_fundamento": "Cozinha de memória",
		"desejo_fotografico":   "Acolhedora",
		"referencias":          "https://example.com/ref",
	}, gotBody["record"])
}

func TestWebhook_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, "", time.Second).Notify(context.Background(), briefing())
	assert.ErrorContains(t, err, "request failed: 502")

	err = NewWebhook("http://127.0.0.1:1", "", 200*time.Millisecond).Notify(context.Background(), briefing())
	assert.Error(t, err)

	err = NewWebhook("://bad", "", time.Second).Notify(context.Background(), briefing())
	assert.Error(t, err)
}

func TestMailer_Body(t *testing.T) {
	text, err := body(briefing())
	require.NoError(t, err)
	assert.Contains(t, text, "Nome: Ana")
	assert.Contains(t, text, "Profissão: Chef")
	assert.Contains(t, text, "Acolhedora")
	assert.Equal(t, "Novo briefing: Ana", subject(briefing()))
}

func TestMailer_Notify(t *testing.T) {
	orig := dialAndSend
	t.Cleanup(func() { dialAndSend = orig })

	var sent *mail.Msg
	dialAndSend = func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
		require.NotNil(t, c)
		sent = m
		return nil
	}

	m := NewMailer(MailConfig{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "user",
		Password: "pass",
		From:     "site@example.com",
		To:       []string{"foto@example.com"},
	})
	require.NoError(t, m.Notify(context.Background(), briefing()))
	require.NotNil(t, sent)

	dialAndSend = func(context.Context, *mail.Client, *mail.Msg) error { return errors.New("421 try later") }
	err := m.Notify(context.Background(), briefing())
	assert.ErrorContains(t, err, "mail: send: 421 try later")
}

func TestMailer_InvalidAddress(t *testing.T) {
	m := NewMailer(MailConfig{Host: "smtp.example.com", Port: 25, From: "not an address", To: []string{"foto@example.com"}})
	err := m.Notify(context.Background(), briefing())
	assert.ErrorContains(t, err, "mail: from")

	b := briefing()
	b.Email = "nope"
	m = NewMailer(MailConfig{Host: "smtp.example.com", Port: 25, From: "site@example.com", To: []string{"foto@example.com"}})
	assert.ErrorContains(t, m.Notify(context.Background(), b), "mail: reply-to")
}
