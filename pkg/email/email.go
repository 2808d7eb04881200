package email

import (
	"go-jobboard-backend/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers HTML emails over SMTP.
type Sender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}

// IsConfigured checks if the sender has valid SMTP configuration
func (s *Sender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
