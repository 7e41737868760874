/*
Package handler provides the HTTP handler for WebSocket connection upgrading.

The upgrade itself is token-gated: the bearer token rides in the Authorization
header or the "token" query parameter. After the upgrade, the connection stays
unjoined until the client sends a join_room frame over the socket.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"fitchat/internal/app/delivery"
	"fitchat/internal/pkg/auth/jwt"
	"fitchat/internal/pkg/errs"
	"fitchat/internal/pkg/limiter"
	"fitchat/internal/pkg/logx"
	"fitchat/internal/pkg/resp"
)

// HandleWebSocket processes WebSocket connection requests: rate limiting,
// identity resolution, upgrade, and client pump startup.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		tokenString := jwt.TokenFromRequest(r)
		if tokenString == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticated))
			return
		}

		payload, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket connection rejected: Invalid token.", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticated))
			return
		}

		ref, err := payload.ActorRef()
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticated))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := delivery.NewClient(deps.Router, conn, ref)

		go client.WritePump()

		logx.Info("WebSocket connection established", "actor_id", ref.ID, "actor_kind", string(ref.Kind))

		client.ReadPump()
	}
}
