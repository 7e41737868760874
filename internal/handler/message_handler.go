/*
Package handler provides the HTTP handlers and routing setup for the chat service.

This file contains the message endpoints: sending a message and fetching the
thread with one other participant.
*/
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitchat/internal/app/actor"
	"fitchat/internal/pkg/errs"
	"fitchat/internal/pkg/logx"
	"fitchat/internal/pkg/req"
	"fitchat/internal/pkg/resp"
)

// SendMessageInput is the JSON body of POST /messages/send.
type SendMessageInput struct {
	ReceiverID   string `json:"receiverId" validate:"required,uuid"`
	ReceiverKind string `json:"receiverKind" validate:"required,oneof=user trainer"`
	Body         string `json:"body" validate:"required"`
}

// HandleSendMessage persists a new message and triggers best-effort live
// delivery into the receiver's room. Persistence failures are propagated to the
// caller; an empty receiver room is a normal no-op.
func HandleSendMessage(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, authErr := callerRef(r)
		if authErr != nil {
			resp.RespondError(w, r, authErr)
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		receiverKind, err := actor.ParseKind(input.ReceiverKind)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrActorKindInvalid))
			return
		}
		receiver := actor.Ref{Kind: receiverKind, ID: input.ReceiverID}

		msg, err := deps.Store.Send(r.Context(), caller, receiver, input.Body)
		if err != nil {
			var customErr *errs.CustomError
			if errors.As(err, &customErr) {
				resp.RespondError(w, r, customErr)
				return
			}
			logx.Error(err, "Failed to persist message", "sender_id", caller.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrPersistence))
			return
		}

		delivered := deps.Router.Publish(receiver.ID, msg)
		if delivered == 0 {
			logx.Info("No live subscriber for receiver room, message stored only.",
				"receiver_id", receiver.ID, "message_id", msg.ID)
		}

		resp.RespondCreated(w, r, msg)
	}
}

// HandleFetchThread returns every message between the caller and the actor in
// the URL, both directions merged, ascending by creation time. An unknown other
// id yields an empty list.
func HandleFetchThread(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, authErr := callerRef(r)
		if authErr != nil {
			resp.RespondError(w, r, authErr)
			return
		}

		otherID := chi.URLParam(r, "otherId")
		if _, err := uuid.Parse(otherID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		messages, err := deps.Store.FetchThread(r.Context(), caller, otherID)
		if err != nil {
			logx.Error(err, "Failed to fetch thread", "caller_id", caller.ID, "other_id", otherID)
			resp.RespondError(w, r, errs.NewError(errs.ErrPersistence))
			return
		}

		resp.RespondOK(w, r, messages)
	}
}
