package daemon

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/profile"
	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() (*template.Template, error) {
	funcs := template.FuncMap{
		// Markup comes from highlight.Render, which escapes every span
		"markup": func(s string) template.HTML { return template.HTML(s) },
		"percent": func(f float64) string {
			return fmt.Sprintf("%.0f%%", f)
		},
		"ago": func(a domain.Activity) string {
			return profile.Since(time.Now(), a.CreatedAt)
		},
	}
	return template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// page is the data handed to the workbench template
type page struct {
	SessionID string
	Screen    *workbench.Screen
	Error     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionService.Create(r.Context())
	if err != nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/ui/"+sess.ID, http.StatusSeeOther)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	screen, err := s.sessionService.Screen(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	s.render(w, http.StatusOK, page{
		SessionID: id,
		Screen:    screen,
		Error:     r.URL.Query().Get("error"),
	})
}

// actionFromForm reads a workbench action from form fields named like
// the JSON action
func actionFromForm(r *http.Request) workbench.Action {
	return workbench.Action{
		Type:       workbench.ActionType(r.PostFormValue("type")),
		View:       domain.View(r.PostFormValue("view")),
		Code:       r.PostFormValue("code"),
		ExerciseID: r.PostFormValue("exercise_id"),
		Difficulty: domain.Difficulty(r.PostFormValue("difficulty")),
		Topic:      r.PostFormValue("topic"),
	}
}

func (s *Server) handlePageAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// The editor form posts the buffer alongside step and run buttons
	action := actionFromForm(r)
	if action.Type != workbench.ActionEdit && r.PostForm.Has("code") {
		if _, err := s.sessionService.Dispatch(r.Context(), id, workbench.Edit(action.Code)); err != nil {
			s.redirectPage(w, r, id, err)
			return
		}
	}

	_, err := s.sessionService.Dispatch(r.Context(), id, action)
	s.redirectPage(w, r, id, err)
}

func (s *Server) handlePageRandom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, err := s.sessionService.SelectRandom(r.Context(), id)
	s.redirectPage(w, r, id, err)
}

func (s *Server) handlePageRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if r.PostForm.Has("code") {
		if _, err := s.sessionService.Dispatch(r.Context(), id, workbench.Edit(r.PostFormValue("code"))); err != nil {
			s.redirectPage(w, r, id, err)
			return
		}
	}

	_, err := s.startRun(r, id)
	s.redirectPage(w, r, id, err)
}

// redirectPage sends the browser back to the workbench. A missing session
// is a plain error page; other failures show as a banner.
func (s *Server) redirectPage(w http.ResponseWriter, r *http.Request, id string, err error) {
	target := "/ui/" + id
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		target += "?error=" + template.URLQueryEscaper(err.Error())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, status int, data page) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "workbench.html", data); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
