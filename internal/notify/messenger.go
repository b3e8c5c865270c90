package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tickety/tickety-server/internal/config"
)

// Messenger delivers short out-of-band messages (WhatsApp/SMS style) to a
// contact number. Delivery is always best-effort.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}

// NewMessenger returns an HTTP-backed messenger when a provider URL is
// configured, otherwise a log-only stub.
func NewMessenger(cfg config.NotificationConfig, logger *zap.Logger) Messenger {
	if cfg.MessengerURL == "" {
		return &logMessenger{logger: logger}
	}
	return &httpMessenger{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type logMessenger struct {
	logger *zap.Logger
}

func (m *logMessenger) Send(_ context.Context, to, body string) error {
	m.logger.Info("messenger not configured; dropping message",
		zap.String("to", to),
		zap.Int("body_len", len(body)))
	return nil
}

type httpMessenger struct {
	cfg    config.NotificationConfig
	logger *zap.Logger
	client *http.Client
}

func (m *httpMessenger) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]string{
		"from": m.cfg.MessengerFrom,
		"to":   to,
		"body": body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.MessengerURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.cfg.MessengerToken != "" {
		req.Header.Set("Authorization", "Bearer "+m.cfg.MessengerToken)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("messenger provider returned %d", resp.StatusCode)
	}
	m.logger.Info("message sent", zap.String("to", to))
	return nil
}
