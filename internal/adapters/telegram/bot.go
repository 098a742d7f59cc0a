package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osalazar/pobot/internal/app/dialog"
	"github.com/osalazar/pobot/internal/domain"
	"github.com/osalazar/pobot/internal/observability"
)

// Bot maps Bot API updates onto the dialogue service: one inbound message,
// one service call, at most one reply.
type Bot struct {
	client *Client
	svc    *dialog.Service
}

func NewBot(client *Client, svc *dialog.Service) *Bot {
	return &Bot{client: client, svc: svc}
}

// HandleUpdate dispatches a single update and sends the reply, if any.
// Edits, joins and other non-text updates are dropped.
func (b *Bot) HandleUpdate(ctx context.Context, upd Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	user := domain.UserID(strconv.FormatInt(msg.From.ID, 10))
	ctx = observability.WithUserID(ctx, string(user))
	log := observability.LoggerFromContext(ctx)

	var reply dialog.Reply
	if cmd, ok := parseCommand(msg.Text); ok {
		switch cmd {
		case "start":
			reply = b.svc.Welcome(ctx, user)
		case "create_po":
			reply = b.svc.Begin(ctx, user)
		case "cancel":
			reply = b.svc.Cancel(ctx, user)
		default:
			log.Info("ignoring unrecognized command", "command", cmd)
			return
		}
	} else {
		reply = b.svc.HandleText(ctx, user, msg.From.DisplayName(), msg.Text)
	}

	if reply.Text == "" {
		return
	}

	parseMode := ""
	if reply.MarkdownV2 {
		parseMode = "MarkdownV2"
	}
	if err := b.client.SendMessage(ctx, msg.Chat.ID, reply.Text, parseMode); err != nil {
		log.Error("failed to send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}

// Run long-polls for updates until ctx is cancelled. The Bot API serializes
// updates per chat, which is what lets the dialogue layer assume one event
// at a time per user.
func (b *Bot) Run(ctx context.Context, pollTimeout time.Duration) error {
	log := observability.Logger()

	me, err := b.waitForMe(ctx)
	if err != nil {
		return err
	}
	log.Info("bot started, polling for updates", "bot_username", me.Username, "bot_id", me.ID)

	var offset int64
	for {
		updates, err := b.client.GetUpdates(ctx, offset, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("polling stopped")
				return nil
			}
			log.Warn("getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
				log.Info("polling stopped")
				return nil
			case <-time.After(2 * time.Second):
			}
			continue
		}

		for _, upd := range updates {
			updCtx := observability.WithRequestID(ctx, uuid.NewString())
			b.HandleUpdate(updCtx, upd)
			offset = upd.UpdateID + 1
		}
	}
}

// waitForMe verifies the token with getMe, retrying until it succeeds or
// the context ends.
func (b *Bot) waitForMe(ctx context.Context) (*User, error) {
	log := observability.Logger()
	for {
		me, err := b.client.GetMe(ctx)
		if err == nil {
			return me, nil
		}
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("getMe failed, retrying", "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

// parseCommand extracts a leading bot command, tolerating an @botname
// suffix ("/create_po@po_bot item" yields "create_po").
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	cmd = strings.TrimPrefix(cmd, "/")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	if cmd == "" {
		return "", false
	}
	return cmd, true
}
