// ABOUTME: Product service for workspace-scoped resource CRUD
// ABOUTME: Reads require resource:read, writes resource:write, all scoped to one tenant

package product

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// Product statuses. New products default to active.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Store is the persistence surface the product service needs.
type Store interface {
	CreateProduct(ctx context.Context, p *store.Product) error
	GetProduct(ctx context.Context, id int64) (*store.Product, error)
	ListProducts(ctx context.Context, workspaceID int64) ([]store.Product, error)
	UpdateProduct(ctx context.Context, p *store.Product) error
	DeleteProduct(ctx context.Context, id, workspaceID int64) error
}

// CreateInput carries the fields for a new product.
type CreateInput struct {
	Name     string
	Price    int64
	ImageURL string
	Status   string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Price    *int64
	ImageURL *string
	Status   *string
}

// Service implements product operations.
type Service struct {
	store  Store
	guard  *auth.Guard
	logger *slog.Logger
}

// NewService creates a product service.
func NewService(s Store, guard *auth.Guard) *Service {
	return &Service{
		store:  s,
		guard:  guard,
		logger: slog.Default().With("component", "product"),
	}
}

func validStatus(status string) bool {
	return status == StatusActive || status == StatusArchived
}

// Create adds a product to the workspace.
func (s *Service) Create(ctx context.Context, principalID, workspaceID int64, in CreateInput) (*store.Product, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityResourceWrite); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fault.Validation("product name is required")
	}
	if in.Price < 0 {
		return nil, fault.Validation("price must not be negative")
	}
	if in.Status == "" {
		in.Status = StatusActive
	}
	if !validStatus(in.Status) {
		return nil, fault.Validation("status must be active or archived")
	}

	p := &store.Product{
		WorkspaceID: workspaceID,
		Name:        in.Name,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
		CreatedBy:   principalID,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, fault.Internal(err)
	}

	s.logger.Info("product created", "product_id", p.ID, "workspace_id", workspaceID, "principal_id", principalID)

	return p, nil
}

// Get returns one product. A product belonging to a different workspace is
// indistinguishable from one that does not exist.
func (s *Service) Get(ctx context.Context, principalID, workspaceID, productID int64) (*store.Product, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityResourceRead); err != nil {
		return nil, err
	}
	return s.getScoped(ctx, workspaceID, productID)
}

// List returns the workspace's products, newest first.
func (s *Service) List(ctx context.Context, principalID, workspaceID int64) ([]store.Product, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityResourceRead); err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx, workspaceID)
	if err != nil {
		return nil, fault.Internal(err)
	}
	return products, nil
}

// Update applies a partial update to a product and returns the result.
func (s *Service) Update(ctx context.Context, principalID, workspaceID, productID int64, in UpdateInput) (*store.Product, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityResourceWrite); err != nil {
		return nil, err
	}

	p, err := s.getScoped(ctx, workspaceID, productID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fault.Validation("product name is required")
		}
		p.Name = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fault.Validation("price must not be negative")
		}
		p.Price = *in.Price
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return nil, fault.Validation("status must be active or archived")
		}
		p.Status = *in.Status
	}

	if err := s.store.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("product not found")
		}
		return nil, fault.Internal(err)
	}
	return p, nil
}

// Delete removes a product from the workspace.
func (s *Service) Delete(ctx context.Context, principalID, workspaceID, productID int64) error {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityResourceWrite); err != nil {
		return err
	}

	if err := s.store.DeleteProduct(ctx, productID, workspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.NotFound("product not found")
		}
		return fault.Internal(err)
	}

	s.logger.Info("product deleted", "product_id", productID, "workspace_id", workspaceID, "principal_id", principalID)

	return nil
}

// getScoped fetches a product and hides rows from other workspaces.
func (s *Service) getScoped(ctx context.Context, workspaceID, productID int64) (*store.Product, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("product not found")
	}
	if err != nil {
		return nil, fault.Internal(err)
	}
	if p.WorkspaceID != workspaceID {
		return nil, fault.NotFound("product not found")
	}
	return p, nil
}
