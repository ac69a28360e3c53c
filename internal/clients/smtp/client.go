package smtp

import (
	"github.com/devjobs/board/internal/config"
	"gopkg.in/gomail.v2"
)

// Client sends transactional mail over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

func NewClient(cfg config.SMTPConfig) *Client {
	return &Client{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (c *Client) Send(to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return c.dialer.DialAndSend(msg)
}
