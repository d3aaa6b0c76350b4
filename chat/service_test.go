package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/session"
	"github.com/lysandre995/gathorapp/transport"
)

// ----------------------------------------
// In-process bus fake
// ----------------------------------------

type fakeBus struct {
	mu       sync.Mutex
	handlers map[string][]func([]byte)
	closed   bool

	SubscribeErr error
	PublishErr   error
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: map[string][]func([]byte){}}
}

func (b *fakeBus) Publish(subject string, data []byte) error {
	if b.PublishErr != nil {
		return b.PublishErr
	}
	b.mu.Lock()
	handlers := append([]func([]byte){}, b.handlers[subject]...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (b *fakeBus) Subscribe(subject string, handler func([]byte)) (Subscription, error) {
	if b.SubscribeErr != nil {
		return nil, b.SubscribeErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[subject] = append(b.handlers[subject], handler)
	return &fakeSubscription{bus: b, subject: subject}, nil
}

func (b *fakeBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

type fakeSubscription struct {
	bus     *fakeBus
	subject string
}

func (s *fakeSubscription) Unsubscribe() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	delete(s.bus.handlers, s.subject)
	return nil
}

// ----------------------------------------
// Fixture
// ----------------------------------------

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

type fixture struct {
	service    *Service
	bus        *fakeBus
	state      *session.Store
	dialedWith []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chats/outing/o1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(core.ChatInfo{ChatID: "c1", OutingID: "o1"})
	})
	mux.HandleFunc("GET /api/chats/outing/o1/messages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]core.ChatMessage{
			{ID: "m1", ChatID: "c1", Content: "anyone going?"},
			{ID: "m2", ChatID: "c1", Content: "yes, see you there"},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	bus := newFakeBus()
	state := session.New()
	state.SetAuthenticated(core.TokenPair{AccessToken: "T1"}, &core.User{ID: "u1", Name: "Ada"})

	rest := transport.NewClient(server.URL, server.Client())
	fx := &fixture{bus: bus, state: state}
	dial := func(accessToken string) (Bus, error) {
		fx.dialedWith = append(fx.dialedWith, accessToken)
		return bus, nil
	}
	fx.service = New(rest, dial, state, staticTokens("T1"))
	return fx
}

// ----------------------------------------
// Tests
// ----------------------------------------

// Requirement: opening a chat resolves its ID over REST, subscribes to the
// message and typing topics, and delivers incoming traffic to the handlers.
func TestService_OpenDeliversTraffic(t *testing.T) {
	fx := newFixture(t)

	var gotMessages []core.ChatMessage
	var gotTyping []core.TypingEvent
	info, err := fx.service.Open(context.Background(), "o1", Handlers{
		OnMessage: func(msg core.ChatMessage) { gotMessages = append(gotMessages, msg) },
		OnTyping:  func(event core.TypingEvent) { gotTyping = append(gotTyping, event) },
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if info.ChatID != "c1" || info.OutingID != "o1" {
		t.Fatalf("Open() = %+v, want chat c1 for outing o1", info)
	}

	incoming, _ := json.Marshal(core.ChatMessage{ID: "m9", ChatID: "c1", Content: "running late"})
	if err := fx.bus.Publish("gathor.chat.c1", incoming); err != nil {
		t.Fatalf("publish: %v", err)
	}
	typing, _ := json.Marshal(core.TypingEvent{UserID: "u2", IsTyping: true})
	if err := fx.bus.Publish("gathor.chat.c1.typing", typing); err != nil {
		t.Fatalf("publish typing: %v", err)
	}

	if len(gotMessages) != 1 || gotMessages[0].Content != "running late" {
		t.Errorf("messages = %+v, want the published message", gotMessages)
	}
	if len(gotTyping) != 1 || gotTyping[0].UserID != "u2" || !gotTyping[0].IsTyping {
		t.Errorf("typing = %+v, want u2 typing", gotTyping)
	}
}

// Requirement: the bus is dialed with the session's current access token,
// the same credential the REST pipeline uses.
func TestService_OpenDialsWithAccessToken(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.service.Open(context.Background(), "o1", Handlers{}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(fx.dialedWith) != 1 || fx.dialedWith[0] != "T1" {
		t.Errorf("dialed with %v, want the current access token T1", fx.dialedWith)
	}
}

// Requirement: sent messages carry a fresh client-assigned ID, the signed-in
// sender, and land on the chat's message topic.
func TestService_SendStampsSender(t *testing.T) {
	fx := newFixture(t)

	var got []core.ChatMessage
	if _, err := fx.service.Open(context.Background(), "o1", Handlers{
		OnMessage: func(msg core.ChatMessage) { got = append(got, msg) },
	}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := fx.service.Send("hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if err := fx.service.Send("again"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("delivered = %d messages, want 2", len(got))
	}
	first := got[0]
	if first.ID == "" || first.ID == got[1].ID {
		t.Errorf("message IDs = %q, %q, want distinct non-empty IDs", first.ID, got[1].ID)
	}
	if first.ChatID != "c1" || first.Content != "hello" {
		t.Errorf("message = %+v, want hello on chat c1", first)
	}
	if first.Sender == nil || first.Sender.ID != "u1" || first.Sender.Name != "Ada" {
		t.Errorf("sender = %+v, want the signed-in user", first.Sender)
	}
}

// Requirement: typing signals carry the signed-in user's ID.
func TestService_Typing(t *testing.T) {
	fx := newFixture(t)

	var got []core.TypingEvent
	if _, err := fx.service.Open(context.Background(), "o1", Handlers{
		OnTyping: func(event core.TypingEvent) { got = append(got, event) },
	}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := fx.service.Typing(true); err != nil {
		t.Fatalf("Typing() error = %v", err)
	}
	if len(got) != 1 || got[0].UserID != "u1" || !got[0].IsTyping {
		t.Errorf("typing = %+v, want u1 typing", got)
	}
}

// Requirement: history comes from the REST endpoint of the open chat's
// outing, oldest first.
func TestService_History(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.service.Open(context.Background(), "o1", Handlers{}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	messages, err := fx.service.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(messages) != 2 || messages[0].ID != "m1" {
		t.Errorf("History() = %+v, want m1 then m2", messages)
	}
}

// Requirement: lifecycle misuse fails with the connection sentinels, and
// Close is idempotent.
func TestService_Lifecycle(t *testing.T) {
	fx := newFixture(t)

	if err := fx.service.Send("too early"); !errors.Is(err, core.ErrNotConnected) {
		t.Errorf("Send() before Open error = %v, want ErrNotConnected", err)
	}
	if _, err := fx.service.History(context.Background()); !errors.Is(err, core.ErrNotConnected) {
		t.Errorf("History() before Open error = %v, want ErrNotConnected", err)
	}

	if _, err := fx.service.Open(context.Background(), "o1", Handlers{}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := fx.service.Open(context.Background(), "o1", Handlers{}); !errors.Is(err, core.ErrAlreadyConnected) {
		t.Errorf("second Open() error = %v, want ErrAlreadyConnected", err)
	}

	if err := fx.service.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fx.bus.closed {
		t.Error("Close() never closed the bus")
	}
	if err := fx.service.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if err := fx.service.Send("after close"); !errors.Is(err, core.ErrNotConnected) {
		t.Errorf("Send() after Close error = %v, want ErrNotConnected", err)
	}
}

// Requirement: a failed typing-topic subscription tears down the partial
// connection instead of leaking it.
func TestService_OpenSubscribeFailureCleansUp(t *testing.T) {
	fx := newFixture(t)
	fx.bus.SubscribeErr = errors.New("subscribe refused")

	if _, err := fx.service.Open(context.Background(), "o1", Handlers{}); err == nil {
		t.Fatal("Open() succeeded despite subscription failure")
	}
	if !fx.bus.closed {
		t.Error("failed Open() left the bus connected")
	}
	if err := fx.service.Send("x"); !errors.Is(err, core.ErrNotConnected) {
		t.Errorf("Send() after failed Open error = %v, want ErrNotConnected", err)
	}
}
