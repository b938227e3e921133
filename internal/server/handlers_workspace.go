// ABOUTME: Handlers for workspace details, renames, membership, and access checks
// ABOUTME: Path IDs are parsed here; authorization happens inside the services

package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// pathID parses a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.Validation("invalid %s", name)
	}
	return id, nil
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ws, err := s.workspaces.Get(r.Context(), identity.PrincipalID, workspaceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewWorkspace(ws))
}

type updateWorkspaceRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateWorkspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ws, err := s.workspaces.UpdateName(r.Context(), identity.PrincipalID, workspaceID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewWorkspace(ws))
}

func (s *Server) handleCheckPermission(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := s.workspaces.CheckPermission(r.Context(), identity.PrincipalID, workspaceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"hasPermission": ok})
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	members, err := s.workspaces.ListMembers(r.Context(), identity.PrincipalID, workspaceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewMembers(members))
}

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := s.workspaces.AddMember(r.Context(), identity.PrincipalID, workspaceID, req.Email, store.Role(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, viewMember(m))
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	membershipID, err := pathID(r, "membershipID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.workspaces.RemoveMember(r.Context(), identity.PrincipalID, workspaceID, membershipID); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"removed": true})
}
