package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osalazar/pobot/internal/adapters/storage/memory"
	"github.com/osalazar/pobot/internal/app/dialog"
	"github.com/osalazar/pobot/internal/domain"
)

type sentMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// fakeBotAPI records sendMessage calls the way api.telegram.org would
// accept them.
type fakeBotAPI struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeBotAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			_ = r.ParseForm()
			f.mu.Lock()
			f.sent = append(f.sent, sentMessage{
				ChatID:    r.PostForm.Get("chat_id"),
				Text:      r.PostForm.Get("text"),
				ParseMode: r.PostForm.Get("parse_mode"),
			})
			f.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})
}

func (f *fakeBotAPI) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type fixedSink struct{ id string }

func (s fixedSink) Append(context.Context, string, domain.Record) (string, error) {
	return s.id, nil
}

func newTestBot(t *testing.T) (*Bot, *fakeBotAPI) {
	t.Helper()

	api := &fakeBotAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	svc := dialog.NewService(
		memory.NewSessionStore(),
		"sheet-1",
		func(context.Context) (domain.Sink, error) { return fixedSink{id: "PO-1700000000"}, nil },
	)
	client := NewClient(srv.Client(), srv.URL, "test-token")
	return NewBot(client, svc), api
}

func update(userID int64, name, text string) Update {
	return Update{
		UpdateID: 1,
		Message: &Message{
			MessageID: 1,
			From:      &User{ID: userID, FirstName: name},
			Chat:      Chat{ID: userID},
			Text:      text,
		},
	}
}

func TestHandleUpdateStartCommand(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(7, "Ada", "/start"))

	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "7", sent[0].ChatID)
	assert.Contains(t, sent[0].Text, "/create_po")
	assert.Empty(t, sent[0].ParseMode)
}

func TestHandleUpdateTextWithoutSession(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(7, "Ada", "hello there"))

	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "/create_po")
}

func TestHandleUpdateIgnoresUnknownCommand(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(7, "Ada", "/weather"))

	assert.Empty(t, api.messages())
}

func TestHandleUpdateIgnoresNonTextUpdates(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), Update{UpdateID: 1})
	bot.HandleUpdate(context.Background(), Update{UpdateID: 2, Message: &Message{Chat: Chat{ID: 7}}})

	assert.Empty(t, api.messages())
}

func TestHandleUpdateFullDialogue(t *testing.T) {
	bot, api := newTestBot(t)
	ctx := context.Background()

	for _, text := range []string{"/create_po", "10 laptops", "$12,000", "Acme Corp", "Q3 refresh", "yes"} {
		bot.HandleUpdate(ctx, update(7, "Ada", text))
	}

	sent := api.messages()
	require.Len(t, sent, 6)

	preview := sent[4]
	assert.Contains(t, preview.Text, "PO Preview:")
	assert.Contains(t, preview.Text, "Ada")

	final := sent[5]
	assert.Contains(t, final.Text, "PO-1700000000")
	assert.Equal(t, "MarkdownV2", final.ParseMode)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		cmd  string
		ok   bool
	}{
		{"/start", "start", true},
		{"/create_po", "create_po", true},
		{"/create_po@po_helper_bot", "create_po", true},
		{"/cancel now please", "cancel", true},
		{"plain text", "", false},
		{"not /a command", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		cmd, ok := parseCommand(tt.text)
		assert.Equal(t, tt.ok, ok, "text=%q", tt.text)
		assert.Equal(t, tt.cmd, cmd, "text=%q", tt.text)
	}
}
