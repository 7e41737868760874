package handler

import (
	"net/http"

	"fitchat/internal/pkg/errs"
	"fitchat/internal/pkg/logx"
	"fitchat/internal/pkg/resp"
)

// HandleListConversations returns the caller's deduplicated correspondent list,
// merged from message history and the trainer/client assignment.
func HandleListConversations(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, authErr := callerRef(r)
		if authErr != nil {
			resp.RespondError(w, r, authErr)
			return
		}

		entries, err := deps.Aggregator.List(r.Context(), caller)
		if err != nil {
			logx.Error(err, "Failed to build conversation list", "caller_id", caller.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrPersistence))
			return
		}

		resp.RespondOK(w, r, entries)
	}
}
