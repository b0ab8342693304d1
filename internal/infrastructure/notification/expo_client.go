package notification

import (
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"

	"mingle/pkg/logger"
)

// ExpoClient pushes notifications to the mobile app through Expo's push
// service. Device tokens live on the user documents.
type ExpoClient struct {
	client *expo.PushClient
}

func NewExpoClient() *ExpoClient {
	return &ExpoClient{
		client: expo.NewPushClient(nil),
	}
}

// Notify sends one push message to every valid token. Invalid tokens are
// skipped; delivery failures are logged and swallowed, push is best-effort.
func (c *ExpoClient) Notify(tokens []string, title, body string) {
	pushTokens := make([]expo.ExponentPushToken, 0, len(tokens))
	for _, raw := range tokens {
		if raw == "" {
			continue
		}
		token, err := expo.NewExponentPushToken(raw)
		if err != nil {
			logger.Warn("Skipping invalid expo token: %v", err)
			continue
		}
		pushTokens = append(pushTokens, token)
	}

	if len(pushTokens) == 0 {
		return
	}

	response, err := c.client.Publish(&expo.PushMessage{
		To:       pushTokens,
		Title:    title,
		Body:     body,
		Sound:    "default",
		Priority: expo.DefaultPriority,
	})
	if err != nil {
		logger.Error("Expo push failed: %v", err)
		return
	}

	if err := response.ValidateResponse(); err != nil {
		logger.Warn("Expo push rejected for %v", response.PushMessage.To)
	}
}
