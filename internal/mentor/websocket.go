package mentor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Frame is a client question sent over the websocket.
type Frame struct {
	Query string `json:"query"`
}

// ReplyFrame carries part of the mentor's answer. Delta frames stream the
// reply as it is produced; the last frame of a turn has Done set and holds
// either the full Response or an Error.
type ReplyFrame struct {
	SessionID string `json:"session_id"`
	Delta     string `json:"delta,omitempty"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	Done      bool   `json:"done,omitempty"`
}

// WebSocketHandler serves a chat session per connection. The optional
// "user" query parameter scopes the token budget.
func (m *Mentor) WebSocketHandler(opts *websocket.AcceptOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			slog.Warn("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		sessionID, err := m.NewSession(r.URL.Query().Get("user"))
		if err != nil {
			conn.Close(websocket.StatusInternalError, "session unavailable")
			return
		}
		defer m.EndSession(sessionID)

		if err := m.serve(r.Context(), conn, sessionID); err != nil {
			slog.Warn("mentor websocket closed", "session_id", sessionID, "error", err)
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}
}

func (m *Mentor) serve(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	for {
		var in Frame
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return err
		}

		var writeErr error
		resp, err := m.AskStream(ctx, sessionID, in.Query, func(delta string) error {
			writeErr = wsjson.Write(ctx, conn, ReplyFrame{SessionID: sessionID, Delta: delta})
			return writeErr
		})
		if writeErr != nil {
			return writeErr
		}

		out := ReplyFrame{SessionID: sessionID, Done: true}
		switch {
		case err == nil:
			out.Response = resp
		case errors.Is(err, ErrEmptyQuery), errors.Is(err, ErrUnavailable), errors.Is(err, ErrBudgetExceeded):
			out.Error = err.Error()
		default:
			slog.Error("mentor ask failed", "session_id", sessionID, "error", err)
			out.Error = "The mentor is having trouble answering right now. Please try again."
		}

		if err := wsjson.Write(ctx, conn, out); err != nil {
			return err
		}
	}
}
