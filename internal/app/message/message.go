/*
Package message owns the append-only log of messages exchanged between two participants.

Messages are immutable once persisted. The store is the only component holding a canonical
copy; delivery and clients only ever see transient copies for display.
*/
package message

import (
	"time"
	"unicode/utf8"

	"fitchat/internal/app/actor"
	"fitchat/internal/pkg/errs"
)

// MaxBodyRunes caps the length of a single message body.
const MaxBodyRunes = 5000

// Message is one persisted chat message between two actors.
type Message struct {
	ID        string    `json:"id"`
	Sender    actor.Ref `json:"sender"`
	Receiver  actor.Ref `json:"receiver"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateSend checks the preconditions for appending a new message:
// both references must be well-formed, the body non-empty and within limits,
// and a participant cannot message itself.
func ValidateSend(sender, receiver actor.Ref, body string) *errs.CustomError {
	if err := sender.Validate(); err != nil {
		return errs.NewError(errs.ErrActorKindInvalid)
	}
	if err := receiver.Validate(); err != nil {
		return errs.NewError(errs.ErrActorKindInvalid)
	}
	if sender.Equal(receiver) {
		return errs.NewError(errs.ErrSelfMessage)
	}
	if body == "" {
		return errs.NewError(errs.ErrMessageBodyEmpty)
	}
	if utf8.RuneCountInString(body) > MaxBodyRunes {
		return errs.NewError(errs.ErrMessageBodyTooLong)
	}
	return nil
}
