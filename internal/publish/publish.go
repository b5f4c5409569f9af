// Package publish fans call results out to a message bus.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
)

// Static errors for err113 compliance.
var (
	ErrSubjectRequired = errors.New("nats subject is required")
	ErrClosed          = errors.New("publisher is closed")
)

// Header names set on published messages.
const (
	HeaderMethod = "Twitter-Method"
	HeaderStatus = "Twitter-Status"
)

// Event describes one completed call.
type Event struct {
	Method     string          `json:"method"`
	URL        string          `json:"url"`
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body,omitempty"`
	Raw        string          `json:"raw,omitempty"`
	Error      string          `json:"error,omitempty"`
	Time       time.Time       `json:"time"`
}

// NewEvent builds an Event from a request and the response observed for it.
// JSON bodies are embedded as is, anything else is carried as a string.
func NewEvent(req *twitter.Request, resp *twitter.Response) *Event {
	event := &Event{
		Method: req.Method,
		URL:    req.URL,
		Time:   time.Now().UTC(),
	}

	if resp == nil {
		return event
	}

	event.StatusCode = resp.StatusCode

	if resp.Error != nil {
		event.Error = resp.Error.Error()
	}

	if len(resp.Body) > 0 {
		if json.Valid(resp.Body) {
			event.Body = json.RawMessage(resp.Body)
		} else {
			event.Raw = string(resp.Body)
		}
	}

	return event
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// NATSPublisher publishes events as JSON messages on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  twitter.Logger
}

var _ Publisher = (*NATSPublisher)(nil)

// NATSConfig configures a NATSPublisher.
type NATSConfig struct {
	// URL of the NATS server, nats.DefaultURL when empty
	URL string
	// Subject events are published on
	Subject string
	// Name identifies the connection to the server
	Name string
	// Timeout bounds the initial connection
	Timeout time.Duration
	// Logger receives connection state changes
	Logger twitter.Logger
}

// NewNATSPublisher connects to NATS.
func NewNATSPublisher(config *NATSConfig) (*NATSPublisher, error) {
	if config.Subject == "" {
		return nil, ErrSubjectRequired
	}

	url := config.URL
	if url == "" {
		url = nats.DefaultURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.NATSConnectTimeout
	}

	name := config.Name
	if name == "" {
		name = constants.DefaultUserAgent
	}

	var logger twitter.Logger = nopLogger{}
	if config.Logger != nil {
		logger = config.Logger
	}

	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(timeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", map[string]interface{}{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", map[string]interface{}{"url": nc.ConnectedUrlRedacted()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}

	return &NATSPublisher{conn: conn, subject: config.Subject, logger: logger}, nil
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// Publish sends event and waits until the server has acknowledged it or ctx is done.
func (p *NATSPublisher) Publish(ctx context.Context, event *Event) error {
	if p.conn.IsClosed() {
		return ErrClosed
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(HeaderMethod, event.Method)
	msg.Header.Set(HeaderStatus, fmt.Sprint(event.StatusCode))

	err = p.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", p.subject, err)
	}

	// FlushWithContext refuses contexts without a deadline.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, constants.NATSFlushTimeout)
		defer cancel()
	}

	err = p.conn.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("flushing %s: %w", p.subject, err)
	}

	p.logger.Debug("published call event", map[string]interface{}{
		"subject": p.subject,
		"url":     event.URL,
	})

	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn.IsClosed() {
		return nil
	}

	return p.conn.Drain()
}

// ResponseInterceptor publishes an Event for every response, failed calls included.
// Publish failures are logged and do not fail the call.
func ResponseInterceptor(publisher Publisher, logger twitter.Logger) twitter.ResponseInterceptor {
	if logger == nil {
		logger = nopLogger{}
	}

	return func(ctx context.Context, req *twitter.Request, resp *twitter.Response) error {
		err := publisher.Publish(ctx, NewEvent(req, resp))
		if err != nil {
			logger.Warn("failed to publish call event", map[string]interface{}{
				"url":   req.URL,
				"error": err.Error(),
			})
		}

		return nil
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
