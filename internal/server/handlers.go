package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vango-dev/feedback/internal/errors"
	"github.com/vango-dev/feedback/pkg/notify"
)

// Level names accepted by the toast endpoint.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// ToastRequest is the body of a toast request.
type ToastRequest struct {
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ReportRequest is the body of a report request. Error is any JSON value;
// objects with a string "message" member supply the description.
type ReportRequest struct {
	Title string `json:"title,omitempty"`
	Error any    `json:"error"`
}

func (s *Server) handleToast(w http.ResponseWriter, r *http.Request) {
	var req ToastRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("F121"))
		return
	}

	show, ok := s.levelFunc(req.Level)
	if !ok {
		s.writeError(w, http.StatusBadRequest,
			errors.New("F122").WithDetail("Level must be one of success, error, info or warning, got "+strconv.Quote(req.Level)))
		return
	}

	show(notify.Options{Title: req.Title, Description: req.Description})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) levelFunc(level string) (func(notify.Options), bool) {
	n := s.opts.Notifier
	switch strings.ToLower(level) {
	case LevelSuccess:
		return n.Success, true
	case LevelError:
		return n.Error, true
	case LevelInfo:
		return n.Info, true
	case LevelWarning:
		return n.Warning, true
	default:
		return nil, false
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.opts.Reporter.ReportContext(r.Context(), req.Error, req.Title)
	w.WriteHeader(http.StatusAccepted)
}
