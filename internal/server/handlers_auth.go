// ABOUTME: Handlers for registration and login
// ABOUTME: Both endpoints are unauthenticated and return a session token on success

package server

import (
	"net/http"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionView struct {
	Token     string         `json:"token"`
	User      principalView  `json:"user"`
	Workspace *workspaceView `json:"workspace,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := s.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ws := viewWorkspace(sess.Workspace)
	writeData(w, http.StatusCreated, sessionView{
		Token:     sess.Token,
		User:      viewPrincipal(sess.Principal),
		Workspace: &ws,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, sessionView{
		Token: sess.Token,
		User:  viewPrincipal(sess.Principal),
	})
}
