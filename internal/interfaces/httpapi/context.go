package httpapi

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const actorContextKey contextKey = "actor_player_id"

// actorHeader carries the acting player's id, set by the gateway in front of the API.
const actorHeader = "X-Player-ID"

func withActor(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, actorContextKey, playerID)
}

func actorFromContext(ctx context.Context) string {
	playerID, _ := ctx.Value(actorContextKey).(string)
	return playerID
}

// ActorFromHeader stores the forwarded player id in the request context.
func ActorFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := strings.TrimSpace(r.Header.Get(actorHeader))
		if playerID == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), playerID)))
	})
}
