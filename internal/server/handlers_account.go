// ABOUTME: Handlers for the authenticated principal's own profile
// ABOUTME: Covers /me, /me/workspace, and /profile/update

package server

import (
	"net/http"

	"github.com/2389/workbench/internal/auth"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	p, err := s.accounts.Me(r.Context(), identity.PrincipalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewPrincipal(p))
}

func (s *Server) handleHomeWorkspace(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	ws, err := s.accounts.HomeWorkspace(r.Context(), identity.PrincipalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewWorkspace(ws))
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.accounts.UpdateProfile(r.Context(), identity.PrincipalID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewPrincipal(p))
}
