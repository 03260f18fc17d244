package mailer

import (
	"gopkg.in/gomail.v2"
)

// GomailSender implements notify.Mailer over SMTP using gomail. The dial and
// send are bounded by the SMTP client; any error is returned to the caller,
// which treats it as a delivery failure.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailSender(host string, port int, username, password, from string) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *GomailSender) Send(to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}
	return s.dialer.DialAndSend(m)
}
