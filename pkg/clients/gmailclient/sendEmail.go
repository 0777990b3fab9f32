package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends an email with the specified subject and body
// Throttles requests to respect Gmail API rate limits
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		elapsed := time.Since(c.lastSendTime)
		if elapsed < c.interval {
			c.sleep(c.interval - elapsed)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(c.buildMessage(to, subject, body))),
	}

	if err := c.send(ctx, c.userID, gmailMessage); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}

func (c *Client) buildMessage(to, subject, body string) string {
	var b strings.Builder
	if c.from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", headerValue(c.from))
	}
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(to))
	// encoded-words carry control characters without breaking the header line
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	return b.String()
}

// headerValue drops line breaks so a value cannot start a new header
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
