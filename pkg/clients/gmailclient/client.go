package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/volunteer-board/internal/config"
	"github.com/jakechorley/volunteer-board/pkg/utils"
)

// sendFunc delivers one raw message for a Gmail user id
type sendFunc func(ctx context.Context, userID string, msg *gmail.Message) error

// Client wraps the Gmail API client
type Client struct {
	send   sendFunc
	from   string
	userID string

	interval     time.Duration
	lastSendTime time.Time
	sendMutex    sync.Mutex
	sleep        func(time.Duration)
}

// NewClient creates a new Gmail client using an existing OAuth token
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, notifications config.NotificationsConfig) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	send := func(ctx context.Context, userID string, msg *gmail.Message) error {
		_, err := service.Users.Messages.Send(userID, msg).Context(ctx).Do()
		return err
	}
	return newClient(send, notifications.GmailSender, notifications.GmailUserID), nil
}

func newClient(send sendFunc, from, userID string) *Client {
	if userID == "" {
		userID = "me"
	}
	return &Client{
		send:     send,
		from:     from,
		userID:   userID,
		interval: EMAIL_INTERVAL,
		sleep:    time.Sleep,
	}
}
