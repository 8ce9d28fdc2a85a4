package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
	Timeout  time.Duration
}

// SMTPMailer delivers verification mail in the background. Delivery
// failures are logged and dropped.
type SMTPMailer struct {
	client  *mail.Client
	from    string
	baseURL string
	timeout time.Duration
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{
		client:  client,
		from:    cfg.From,
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
	}, nil
}

func (m *SMTPMailer) buildMessage(user *models.User, link string) (*mail.Msg, error) {
	htmlBody, err := renderVerification(user, link)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.from, err)
	}
	if err := msg.To(user.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", user.Email, err)
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	msg.AddAlternativeString(mail.TypeTextPlain, plainVerification(user, link))
	return msg, nil
}

// SendVerificationEmail validates and queues the message. Only message
// construction errors are returned.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, user *models.User, uid, token string) error {
	msg, err := m.buildMessage(user, VerificationLink(m.baseURL, uid, token))
	if err != nil {
		return err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.client.DialAndSendWithContext(sendCtx, msg); err != nil {
			logger.Error("Failed to send verification email", "to", user.Email, "error", err)
			return
		}
		logger.Info("Verification email sent", "to", user.Email)
	}()

	return nil
}
