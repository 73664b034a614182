package out

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
	apperrors "jadwal/internal/platform/errors"
)

// SlackNotifier posts reminders to an incoming webhook.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewSlackNotifier(webhookURL string) reminderout.Notifier {
	return NewSlackNotifierWithClient(webhookURL, &http.Client{Timeout: 10 * time.Second})
}

func NewSlackNotifierWithClient(webhookURL string, client *http.Client) reminderout.Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &SlackNotifier{webhookURL: webhookURL, client: client}
}

func (n *SlackNotifier) Name() string { return "slack" }

func (n *SlackNotifier) Ready(context.Context) error {
	if n.webhookURL == "" {
		return fmt.Errorf("%w: slack webhook URL is not configured", apperrors.ErrNotificationUnavailable)
	}
	return nil
}

func (n *SlackNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if err := n.Ready(ctx); err != nil {
		return err
	}
	msg := &slack.WebhookMessage{
		Username:  "jadwal",
		IconEmoji: ":bell:",
		Text:      fmt.Sprintf("*%s*\n%s", notification.Title, notification.Body),
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.client, msg); err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}
	return nil
}
