// Package server exposes the overlay over HTTP and WebSocket, so that a host
// application can push payloads into a running overlay window.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"go-overlay/internal/logger"
	"go-overlay/internal/overlay"
	"go-overlay/internal/textbox"
)

const (
	maxPayloadSize = 1 << 20
	requestTimeout = 5 * time.Second
)

var errNoBoxes = errors.New("payload contains no boxes")

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// Box is the JSON form of a text box.
type Box struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Text   string `json:"text"`
}

// ShowResult is returned for every accepted payload.
type ShowResult struct {
	Boxes   int    `json:"boxes"`
	Outcome string `json:"outcome"`
}

// State describes what is on screen.
type State struct {
	ID       string     `json:"id,omitempty"`
	Visible  bool       `json:"visible"`
	Boxes    []Box      `json:"boxes"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// APIError is the body of failed requests.
type APIError struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Server is the control API.
type Server struct {
	Address     string
	ReadTimeout time.Duration
	Queue       overlay.Queue
	Pprof       bool
	Parent      logger.Writer

	ln    net.Listener
	inner *http.Server
}

// Initialize opens the listener and starts serving.
func (s *Server) Initialize() error {
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 10 * time.Second
	}

	var err error
	s.ln, err = net.Listen("tcp", s.Address)
	if err != nil {
		return err
	}

	s.inner = &http.Server{
		Handler:     s.router(),
		ReadTimeout: s.ReadTimeout,
		IdleTimeout: 30 * time.Second,
		ErrorLog:    log.New(&nilWriter{}, "", 0),
	}
	go s.inner.Serve(s.ln) //nolint:errcheck

	s.Log(logger.Info, "listener opened on %s", s.ln.Addr())
	return nil
}

// Close stops serving.
func (s *Server) Close() {
	s.Log(logger.Info, "listener is closing")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.inner.Shutdown(ctx) //nolint:errcheck
	s.ln.Close()          //nolint:errcheck
}

// Addr is the address the listener is bound to.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Log implements logger.Writer.
func (s *Server) Log(level logger.Level, format string, args ...interface{}) {
	if s.Parent != nil {
		s.Parent.Log(level, "[API] "+format, args...)
	}
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.SetTrustedProxies(nil) //nolint:errcheck
	router.Use(s.middlewareLog)

	group := router.Group("/v1")
	group.GET("/overlay", s.onGet)
	group.POST("/overlay", s.onShow)
	group.DELETE("/overlay", s.onClose)
	group.GET("/overlay/ws", s.onWebSocket)

	if s.Pprof {
		pprof.Register(router)
	}

	return router
}

func (s *Server) middlewareLog(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	s.Log(logger.Debug, "%s %s %d (%v)", ctx.Request.Method, ctx.Request.URL.Path,
		ctx.Writer.Status(), time.Since(start).Round(time.Microsecond))
}

func (s *Server) writeError(ctx *gin.Context, status int, err error) {
	s.Log(logger.Warn, err.Error())
	ctx.JSON(status, &APIError{
		Status: "error",
		Error:  err.Error(),
	})
}

// show parses a payload and hands it to the overlay loop.
func (s *Server) show(ctx context.Context, payload string) (ShowResult, error) {
	boxes := textbox.Parse(payload)
	if len(boxes) == 0 {
		return ShowResult{}, errNoBoxes
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var out overlay.Outcome
	err := s.Queue.Do(ctx, func(m *overlay.Manager) {
		out = m.Show(boxes)
	})
	if err != nil {
		return ShowResult{}, fmt.Errorf("overlay did not respond: %w", err)
	}
	return ShowResult{Boxes: len(boxes), Outcome: out.String()}, nil
}

func (s *Server) onShow(ctx *gin.Context) {
	byts, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxPayloadSize))
	if err != nil {
		s.writeError(ctx, http.StatusBadRequest, err)
		return
	}

	res, err := s.show(ctx.Request.Context(), string(byts))
	switch {
	case errors.Is(err, errNoBoxes):
		s.writeError(ctx, http.StatusUnprocessableEntity, err)
	case err != nil:
		s.writeError(ctx, http.StatusServiceUnavailable, err)
	default:
		ctx.JSON(http.StatusOK, &res)
	}
}

func (s *Server) onClose(ctx *gin.Context) {
	c, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	err := s.Queue.Do(c, func(m *overlay.Manager) {
		m.Close()
	})
	if err != nil {
		s.writeError(ctx, http.StatusServiceUnavailable, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) onGet(ctx *gin.Context) {
	c, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	st := State{Boxes: []Box{}}
	err := s.Queue.Do(c, func(m *overlay.Manager) {
		sf := m.Surface()
		if sf == nil {
			return
		}
		st.ID = sf.ID
		st.Visible = true
		for _, b := range sf.Boxes() {
			st.Boxes = append(st.Boxes, Box(b))
		}
		d := sf.Deadline()
		st.Deadline = &d
	})
	if err != nil {
		s.writeError(ctx, http.StatusServiceUnavailable, err)
		return
	}
	ctx.JSON(http.StatusOK, &st)
}
