// ABOUTME: Handlers for workspace-scoped product CRUD
// ABOUTME: Update requests use pointer fields so absent keys leave values unchanged

package server

import (
	"net/http"

	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/product"
)

type createProductRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
	Status   string `json:"status"`
}

type updateProductRequest struct {
	Name     *string `json:"name"`
	Price    *int64  `json:"price"`
	ImageURL *string `json:"imageUrl"`
	Status   *string `json:"status"`
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := s.products.List(r.Context(), identity.PrincipalID, workspaceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewProducts(products))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.products.Create(r.Context(), identity.PrincipalID, workspaceID, product.CreateInput{
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Status:   req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, viewProduct(p))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.products.Get(r.Context(), identity.PrincipalID, workspaceID, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewProduct(p))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.products.Update(r.Context(), identity.PrincipalID, workspaceID, productID, product.UpdateInput{
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Status:   req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewProduct(p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	workspaceID, err := pathID(r, "workspaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.products.Delete(r.Context(), identity.PrincipalID, workspaceID, productID); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}
