package handler

import (
	"net/http"

	"fitchat/internal/pkg/errs"
	"fitchat/internal/pkg/logx"
	"fitchat/internal/pkg/resp"
)

// HandleSearch runs a case-insensitive substring search over both actor
// directories. A blank query returns an empty list; the caller is excluded.
func HandleSearch(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, authErr := callerRef(r)
		if authErr != nil {
			resp.RespondError(w, r, authErr)
			return
		}

		query := r.URL.Query().Get("query")

		summaries, err := deps.Search.Run(r.Context(), caller, query)
		if err != nil {
			logx.Error(err, "Directory search failed", "caller_id", caller.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrPersistence))
			return
		}

		resp.RespondOK(w, r, summaries)
	}
}
