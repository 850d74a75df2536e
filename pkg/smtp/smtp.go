package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mshevelin/event-lottery/pkg/logger"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Client is the outgoing mail client used to mirror organizer notices.
type Client struct {
	dialer *gomail.Dialer
}

func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendNotice sends a plain-text notice to the given address. Failures are
// logged and swallowed: mail is a best-effort mirror of the in-app inbox.
func (c *Client) SendNotice(to string, subject string, body string) {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	msg.SetHeader("Message-ID", generateMessageID(domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Errorf("failed to send notice to %s: %v", to, err)
		return
	}

	logger.Log.Debugf("notice email sent to %s", to)
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
