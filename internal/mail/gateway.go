package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/config"
)

// Message is an outbound email.
type Message struct {
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	RecipientEmail string `json:"recipient_email"`
	From           string `json:"from"`
}

// Gateway delivers outbound email. Implementations must honor the context
// deadline supplied by callers.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// NewGateway returns an HTTP-backed gateway when an endpoint is configured,
// otherwise a log-only gateway.
func NewGateway(cfg config.MailConfig, logger *zap.Logger) Gateway {
	if cfg.GatewayURL == "" {
		return &logGateway{from: cfg.From, logger: logger}
	}
	return &httpGateway{
		url:  cfg.GatewayURL,
		from: cfg.From,
		client: &http.Client{
			Timeout: cfg.SendTimeout(),
		},
	}
}

type httpGateway struct {
	url    string
	from   string
	client *http.Client
}

func (g *httpGateway) Send(ctx context.Context, msg Message) error {
	msg.From = g.from
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail gateway responded %d", resp.StatusCode)
	}
	return nil
}

// logGateway stands in when no external gateway is configured.
type logGateway struct {
	from   string
	logger *zap.Logger
}

func (g *logGateway) Send(_ context.Context, msg Message) error {
	g.logger.Debug("mail gateway stub",
		zap.String("from", g.from),
		zap.String("to", msg.RecipientEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// SendTimeoutContext derives the bounded context used for gateway calls made
// while a transaction is open.
func SendTimeoutContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}
