// Package chat connects an outing's group chat: history over REST, live
// messages and typing signals over the realtime bus.
package chat

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// ----------------------------------------
// Realtime transport port
// ----------------------------------------

// Subscription undoes a single topic subscription.
type Subscription interface {
	Unsubscribe() error
}

// Bus is the realtime transport the chat service publishes and subscribes
// through. The production implementation is NATS; tests swap in an
// in-process bus.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (Subscription, error)
	Close() error
}

// DialFunc lazily opens a Bus, authenticating with the session's current
// access token. The chat service dials only when a chat is opened, so
// embedders without realtime needs never connect.
type DialFunc func(accessToken string) (Bus, error)

// ----------------------------------------
// NATS adapter
// ----------------------------------------

type natsBus struct {
	conn *nats.Conn
}

// Dial connects to the realtime server. token may be empty when the server
// does not require one.
func Dial(url, token string) (Bus, error) {
	opts := []nats.Option{nats.Name("gathorapp")}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to realtime server: %w", err)
	}
	return &natsBus{conn: conn}, nil
}

// Dialer returns a DialFunc bound to a URL. The session access token passed
// at dial time authenticates the connection; fallbackToken covers servers
// with a static bus credential instead.
func Dialer(url, fallbackToken string) DialFunc {
	return func(accessToken string) (Bus, error) {
		token := accessToken
		if token == "" {
			token = fallbackToken
		}
		return Dial(url, token)
	}
}

func (b *natsBus) Publish(subject string, data []byte) error {
	return b.conn.Publish(subject, data)
}

func (b *natsBus) Subscribe(subject string, handler func(data []byte)) (Subscription, error) {
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	return sub, nil
}

// Close drains in-flight messages before disconnecting.
func (b *natsBus) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}
