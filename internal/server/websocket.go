package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-overlay/internal/logger"
)

var (
	pingInterval = 30 * time.Second
	pingTimeout  = 5 * time.Second
	writeTimeout = 2 * time.Second
)

// only local clients are expected
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// onWebSocket treats every text message as a payload and answers each
// with a ShowResult or an APIError, in order.
func (s *Server) onWebSocket(ctx *gin.Context) {
	wc, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		s.Log(logger.Warn, "websocket upgrade failed: %v", err)
		return
	}
	defer wc.Close() //nolint:errcheck

	s.Log(logger.Debug, "websocket client %v connected", wc.RemoteAddr())

	wc.SetReadLimit(maxPayloadSize)
	wc.SetReadDeadline(time.Now().Add(pingInterval + pingTimeout)) //nolint:errcheck
	wc.SetPongHandler(func(string) error {
		wc.SetReadDeadline(time.Now().Add(pingInterval + pingTimeout)) //nolint:errcheck
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				wc.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)) //nolint:errcheck
			case <-done:
				return
			}
		}
	}()

	for {
		typ, byts, err := wc.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.Log(logger.Debug, "websocket client %v: %v", wc.RemoteAddr(), err)
			}
			return
		}
		wc.SetReadDeadline(time.Now().Add(pingInterval + pingTimeout)) //nolint:errcheck

		if typ != websocket.TextMessage {
			continue
		}

		var reply interface{}
		res, err := s.show(ctx.Request.Context(), string(byts))
		if err != nil {
			if !errors.Is(err, errNoBoxes) {
				s.Log(logger.Warn, err.Error())
			}
			reply = &APIError{Status: "error", Error: err.Error()}
		} else {
			reply = &res
		}

		wc.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
		if err := wc.WriteJSON(reply); err != nil {
			return
		}
	}
}
