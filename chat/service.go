package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/session"
	"github.com/lysandre995/gathorapp/transport"
)

const topicPrefix = "gathor.chat."

// Handlers receive realtime traffic for an open chat. Either field may be
// nil; traffic of that kind is dropped. Handlers run on the bus delivery
// goroutine and must not block.
type Handlers struct {
	OnMessage func(core.ChatMessage)
	OnTyping  func(core.TypingEvent)
}

// Service manages at most one open outing chat per instance. Open resolves
// the chat over REST, dials the bus and subscribes; Close tears everything
// down. All methods are safe for concurrent use.
type Service struct {
	rest    *transport.Client
	dial    DialFunc
	session session.Viewer
	tokens  core.TokenReader

	mu   sync.Mutex
	bus  Bus
	chat *core.ChatInfo
	subs []Subscription
}

func New(rest *transport.Client, dial DialFunc, viewer session.Viewer, tokens core.TokenReader) *Service {
	return &Service{rest: rest, dial: dial, session: viewer, tokens: tokens}
}

// Open resolves the chat attached to an outing and starts delivering its
// realtime traffic to h. Fails with core.ErrAlreadyConnected when a chat is
// already open on this instance.
func (s *Service) Open(ctx context.Context, outingID string, h Handlers) (*core.ChatInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bus != nil {
		return nil, core.ErrAlreadyConnected
	}

	var info core.ChatInfo
	if err := s.rest.Get(ctx, "/api/chats/outing/"+transport.PathEscape(outingID), &info); err != nil {
		return nil, fmt.Errorf("failed to resolve chat for outing %s: %w", outingID, err)
	}

	// The bus authenticates with the same token as the REST pipeline.
	bus, err := s.dial(s.accessToken())
	if err != nil {
		return nil, err
	}

	messageSub, err := bus.Subscribe(topicPrefix+info.ChatID, func(data []byte) {
		if h.OnMessage == nil {
			return
		}
		var msg core.ChatMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		h.OnMessage(msg)
	})
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	typingSub, err := bus.Subscribe(topicPrefix+info.ChatID+".typing", func(data []byte) {
		if h.OnTyping == nil {
			return
		}
		var event core.TypingEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return
		}
		h.OnTyping(event)
	})
	if err != nil {
		_ = messageSub.Unsubscribe()
		_ = bus.Close()
		return nil, err
	}

	s.bus = bus
	s.chat = &info
	s.subs = []Subscription{messageSub, typingSub}
	return &info, nil
}

// Send publishes a message to the open chat. The message ID is assigned
// client side so subscribers can deduplicate against the history endpoint.
func (s *Service) Send(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bus == nil {
		return core.ErrNotConnected
	}

	msg := core.ChatMessage{
		ID:        uuid.NewString(),
		ChatID:    s.chat.ChatID,
		Sender:    s.senderRef(),
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return s.bus.Publish(topicPrefix+s.chat.ChatID, data)
}

// Typing broadcasts a typing signal to the open chat.
func (s *Service) Typing(isTyping bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bus == nil {
		return core.ErrNotConnected
	}

	event := core.TypingEvent{IsTyping: isTyping}
	if user := s.currentUser(); user != nil {
		event.UserID = user.ID
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode typing event: %w", err)
	}
	return s.bus.Publish(topicPrefix+s.chat.ChatID+".typing", data)
}

// History returns the persisted messages of the open chat, oldest first.
func (s *Service) History(ctx context.Context) ([]core.ChatMessage, error) {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()

	if chat == nil {
		return nil, core.ErrNotConnected
	}

	var messages []core.ChatMessage
	path := "/api/chats/outing/" + transport.PathEscape(chat.OutingID) + "/messages"
	if err := s.rest.Get(ctx, path, &messages); err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}

// Close unsubscribes and disconnects. Safe to call when no chat is open.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bus == nil {
		return nil
	}
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	err := s.bus.Close()
	s.bus = nil
	s.chat = nil
	s.subs = nil
	return err
}

func (s *Service) senderRef() *core.PersonRef {
	user := s.currentUser()
	if user == nil {
		return nil
	}
	return &core.PersonRef{ID: user.ID, Name: user.Name}
}

func (s *Service) currentUser() *core.User {
	if s.session == nil {
		return nil
	}
	return s.session.CurrentUser()
}

func (s *Service) accessToken() string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken()
}
