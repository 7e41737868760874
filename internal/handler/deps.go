package handler

import (
	"net/http"

	"fitchat/internal/app/actor"
	"fitchat/internal/app/conversation"
	"fitchat/internal/app/delivery"
	"fitchat/internal/app/message"
	"fitchat/internal/app/storage"
	"fitchat/internal/configs"
	"fitchat/internal/pkg/auth/jwt"
	"fitchat/internal/pkg/errs"
)

// Deps bundles everything the handlers need. The delivery router is constructed
// once at process start and passed here explicitly; it is never looked up from
// ambient state.
type Deps struct {
	Config     *configs.AppConfig
	Store      message.Store
	Directory  actor.Directory
	Aggregator *conversation.Aggregator
	Search     *actor.Search
	Router     *delivery.Router
	Storage    storage.Service
}

// callerRef resolves the authenticated caller into an actor reference.
// Returns ErrUnauthenticated when no valid identity is present.
func callerRef(r *http.Request) (actor.Ref, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return actor.Ref{}, errs.NewError(errs.ErrUnauthenticated)
	}

	ref, err := payload.ActorRef()
	if err != nil {
		return actor.Ref{}, errs.NewError(errs.ErrUnauthenticated)
	}
	return ref, nil
}
