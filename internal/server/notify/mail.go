package notify

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/wneessen/go-mail"

	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

// MailConfig configures the SMTP channel.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

// Mailer e-mails the briefing to the photographer.
type Mailer struct {
	cfg MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// dialAndSend is a seam for testing delivery.
var dialAndSend = func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
	return c.DialAndSendWithContext(ctx, m)
}

var bodyTemplate = template.Must(template.New("briefing").Parse(`Novo briefing recebido

Nome: {{.Name}}
Profissão: {{.Profession}}
E-mail: {{.Email}}
Telefone: {{.Phone}}

Objetivo:
{{.Goal}}

Descrição criativa:
{{.CreativeDescription}}

Como quer ser visto(a):
{{.DesiredPerception}}

Referências:
{{.References}}
`))

func subject(b *models.Briefing) string {
	return "Novo briefing: " + b.Name
}

func body(b *models.Briefing) (string, error) {
	var sb strings.Builder
	if err := bodyTemplate.Execute(&sb, b); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (m *Mailer) message(b *models.Briefing) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("mail: from: %w", err)
	}
	if err := msg.To(m.cfg.To...); err != nil {
		return nil, fmt.Errorf("mail: to: %w", err)
	}
	if err := msg.ReplyTo(b.Email); err != nil {
		return nil, fmt.Errorf("mail: reply-to: %w", err)
	}
	msg.Subject(subject(b))

	text, err := body(b)
	if err != nil {
		return nil, fmt.Errorf("mail: body: %w", err)
	}
	msg.SetBodyString(mail.TypeTextPlain, text)
	return msg, nil
}

func (m *Mailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.User),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return mail.NewClient(m.cfg.Host, opts...)
}

func (m *Mailer) Notify(ctx context.Context, b *models.Briefing) error {
	msg, err := m.message(b)
	if err != nil {
		return err
	}

	c, err := m.client()
	if err != nil {
		return fmt.Errorf("mail: client: %w", err)
	}

	if err := dialAndSend(ctx, c, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}
