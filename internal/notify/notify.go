package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

const verificationSubject = "Confirm Your Email"

var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Hi {{.Username}},</p>
<p>Thanks for registering. Please confirm your email address to activate your account:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>If the button does not work, copy this address into your browser:<br>{{.Link}}</p>
</body>
</html>
`))

type verificationData struct {
	Username string
	Link     string
}

// VerificationLink builds the confirmation URL a new user receives.
func VerificationLink(baseURL, uid, token string) string {
	return fmt.Sprintf("%s/account/active/%s/%s/", baseURL, uid, token)
}

func renderVerification(user *models.User, link string) (string, error) {
	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, verificationData{Username: user.Username, Link: link}); err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return buf.String(), nil
}

func plainVerification(user *models.User, link string) string {
	return fmt.Sprintf("Hi %s,\n\nConfirm your email address to activate your account:\n%s\n", user.Username, link)
}

// LogMailer writes verification links to the log instead of sending mail.
type LogMailer struct {
	baseURL string
}

func NewLogMailer(baseURL string) *LogMailer {
	return &LogMailer{baseURL: baseURL}
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, user *models.User, uid, token string) error {
	logger.Info("Verification email (not sent, SMTP disabled)",
		"to", user.Email,
		"username", user.Username,
		"link", VerificationLink(m.baseURL, uid, token),
	)
	return nil
}
