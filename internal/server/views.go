// ABOUTME: JSON view types for API responses
// ABOUTME: Store records are mapped explicitly so password hashes never leak

package server

import (
	"time"

	"github.com/2389/workbench/internal/store"
)

type principalView struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func viewPrincipal(p *store.Principal) principalView {
	return principalView{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.DisplayName,
		CreatedAt:   p.CreatedAt,
		LastLoginAt: p.LastLoginAt,
	}
}

type workspaceView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewWorkspace(w *store.Workspace) workspaceView {
	return workspaceView{
		ID:        w.ID,
		Name:      w.Name,
		OwnerID:   w.OwnerID,
		CreatedAt: w.CreatedAt,
	}
}

type memberView struct {
	ID          int64      `json:"id"`
	PrincipalID int64      `json:"principalId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        store.Role `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func viewMember(m *store.Member) memberView {
	return memberView{
		ID:          m.ID,
		PrincipalID: m.PrincipalID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
	}
}

func viewMembers(members []store.Member) []memberView {
	views := make([]memberView, len(members))
	for i := range members {
		views[i] = viewMember(&members[i])
	}
	return views
}

type productView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func viewProduct(p *store.Product) productView {
	return productView{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Status:    p.Status,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func viewProducts(products []store.Product) []productView {
	views := make([]productView, len(products))
	for i := range products {
		views[i] = viewProduct(&products[i])
	}
	return views
}
