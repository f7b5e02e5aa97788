package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"jubetech/config"
)

// Mailer sends transactional mail over SMTP. Constructed once at startup and
// passed into the controllers that need it.
type Mailer struct {
	host   string
	port   string
	sender string
	pass   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:   "smtp.gmail.com",
		port:   "587",
		sender: cfg.EmailSender,
		pass:   cfg.Password,
	}
}

// Send delivers an HTML mail to the given recipients.
func (m *Mailer) Send(to []string, subject string, htmlBody string) error {
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: JubeTech Platform <%s>\r\n", m.sender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.sender, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.sender, to, []byte(msg))
}

// SendOTP mails a signup verification code.
func (m *Mailer) SendOTP(email string, code int, refNo string) error {
	body := getEmailTemplate("Verify your email", fmt.Sprintf(`
		<p>Use this code to verify your identity:</p>
		<div class="info-box"><b>%06d</b></div>
		<p>Reference: %s</p>
		<p>The code expires in 15 minutes.</p>
	`, code, refNo))
	return m.Send([]string{email}, "Verify your email with OTP", body)
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; font-size: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>JUBETECH</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 JubeTech Platform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
