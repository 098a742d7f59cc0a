// Package dialog sequences the purchase-order form dialogue: one fixed
// path of five inputs, a preview, and a confirmed hand-off to the sink.
package dialog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/osalazar/pobot/internal/domain"
	"github.com/osalazar/pobot/internal/observability"
)

type Service struct {
	store    domain.SessionStore
	sheetID  string
	openSink domain.SinkOpener
	now      func() time.Time
}

// NewService wires the dialogue controller. sheetID may be empty; the gap
// surfaces as a distinct failure at the first finalize attempt.
func NewService(store domain.SessionStore, sheetID string, openSink domain.SinkOpener) *Service {
	return &Service{
		store:    store,
		sheetID:  sheetID,
		openSink: openSink,
		now:      time.Now,
	}
}

// Welcome answers /start. No state change.
func (s *Service) Welcome(ctx context.Context, user domain.UserID) Reply {
	observability.LoggerFromContext(ctx).Info("user started the bot")
	return plain(msgWelcome)
}

// Begin starts a fresh dialogue, unconditionally overwriting any session
// the user already had. It cannot fail from the user's point of view.
func (s *Service) Begin(ctx context.Context, user domain.UserID) Reply {
	log := observability.LoggerFromContext(ctx)
	log.Info("PO creation initiated")

	if err := s.store.Put(ctx, domain.NewSession(user, s.now())); err != nil {
		log.Error("failed to store new session", "error", err)
		return plain(msgInternalFault)
	}
	return plain(msgPromptItem)
}

// Cancel deletes the user's session if one exists. Never fails.
func (s *Service) Cancel(ctx context.Context, user domain.UserID) Reply {
	log := observability.LoggerFromContext(ctx)

	if _, err := s.store.Get(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			log.Error("failed to load session for cancel", "error", err)
		}
		log.Info("cancel requested with no active PO creation")
		return plain(msgNothingToCancel)
	}

	if err := s.store.Delete(ctx, user); err != nil {
		log.Error("failed to delete session on cancel", "error", err)
	}
	log.Info("PO creation cancelled")
	return plain(msgCancelled)
}

// HandleText applies one step transition for a non-command message.
// displayName is the chat user's visible name, captured as the requester
// at the justification step.
func (s *Service) HandleText(ctx context.Context, user domain.UserID, displayName, text string) Reply {
	log := observability.LoggerFromContext(ctx)

	sess, err := s.store.Get(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			log.Warn("text received without active PO creation", "text", text)
			return plain(msgNoSession)
		}
		log.Error("failed to load session", "error", err)
		return plain(msgInternalFault)
	}

	if !sess.Step.Valid() {
		// Unreachable through this package; a foreign writer to the
		// session store could still produce it.
		log.Warn("session at undefined step", "step", int(sess.Step), "text", text)
		return plain(msgUndefinedStep)
	}

	switch sess.Step {
	case domain.StepAwaitingItem:
		sess.Record.ItemDescription = text
		return s.advance(ctx, sess, domain.StepAwaitingAmount, msgPromptAmount)

	case domain.StepAwaitingAmount:
		sess.Record.QuantityAmount = text
		return s.advance(ctx, sess, domain.StepAwaitingSupplier, msgPromptSupplier)

	case domain.StepAwaitingSupplier:
		sess.Record.SupplierVendor = text
		return s.advance(ctx, sess, domain.StepAwaitingJustification, msgPromptJustify)

	case domain.StepAwaitingJustification:
		sess.Record.Justification = text
		sess.Record.RequesterName = displayName
		if r := s.advance(ctx, sess, domain.StepAwaitingConfirmation, ""); r.Text != "" {
			return r
		}
		return previewReply(sess.Record, s.now())

	case domain.StepAwaitingConfirmation:
		// Case-folded but not trimmed: "  yes  " re-prompts rather than
		// confirming.
		switch strings.ToLower(text) {
		case "yes":
			return s.finalize(ctx, sess)
		case "cancel":
			return s.Cancel(ctx, user)
		default:
			log.Info("awaiting confirmation, input not understood", "text", text)
			return plain(msgConfirmRetry)
		}

	default:
		// Valid ruled this out above; keeps the switch total.
		return plain(msgUndefinedStep)
	}
}

// advance moves the session to the next step and persists it. An empty
// prompt means the caller composes its own reply on success.
func (s *Service) advance(ctx context.Context, sess *domain.Session, next domain.Step, prompt string) Reply {
	log := observability.LoggerFromContext(ctx)
	log.Info("collected field", "step", sess.Step.String())

	sess.Step = next
	sess.UpdatedAt = s.now()
	if err := s.store.Put(ctx, sess); err != nil {
		log.Error("failed to store session", "error", err, "step", next.String())
		return plain(msgInternalFault)
	}
	return plain(prompt)
}

// finalize runs the one permitted persistence attempt for a confirmed
// session. Whatever happens, the session is gone afterwards: a failed save
// means redoing the whole dialogue, never a silent resubmission.
func (s *Service) finalize(ctx context.Context, sess *domain.Session) Reply {
	user := sess.UserID
	log := observability.LoggerFromContext(ctx)

	defer func() {
		if err := s.store.Delete(ctx, user); err != nil {
			log.Error("failed to clear session after finalize attempt", "error", err)
			return
		}
		log.Info("cleared session after PO finalization attempt")
	}()

	// Detached copy; the deferred teardown must not race the sink call.
	rec := sess.Record

	if rec.Empty() {
		log.Error("finalize reached with no PO data")
		return plain(msgInternalFault)
	}

	log.Info("PO confirmed, saving to sheet",
		"item", rec.ItemDescription,
		"requester", rec.RequesterName,
	)

	if s.sheetID == "" {
		log.Error("sheet id not configured, PO not saved")
		return plain(msgSinkNotConfigured)
	}

	sink, err := s.openSink(ctx)
	if err != nil {
		log.Error("sheets service could not be initialized", "error", err)
		return sinkUnavailableReply(user)
	}

	poID, err := sink.Append(ctx, s.sheetID, rec)
	if err != nil {
		log.Error("failed to append PO to sheet",
			"error", err,
			"item", rec.ItemDescription,
			"quantity", rec.QuantityAmount,
			"supplier", rec.SupplierVendor,
			"justification", rec.Justification,
			"requester", rec.RequesterName,
		)
		return sinkWriteFailureReply(user)
	}

	log.Info("PO saved to sheet", "po_id", poID)
	return successReply(poID)
}
