package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// FranchisePage is one page of the public franchise listing.
type FranchisePage struct {
	Franchises []domain.Franchise `json:"franchises"`
	More       bool               `json:"more"`
}

// FranchiseService manages franchises and their stores.
type FranchiseService interface {
	// CreateFranchise creates a franchise administered by the users owning
	// adminEmails. Admin only.
	CreateFranchise(ctx context.Context, actor *domain.User, name string, adminEmails []string) (*domain.Franchise, error)

	// ListFranchises is the public, paginated franchise listing.
	ListFranchises(ctx context.Context, page store.Page, nameFilter string) (*FranchisePage, error)

	// ListForUser returns the franchises userID administers. Actors that may
	// not see them get an empty list, not an error.
	ListForUser(ctx context.Context, actor *domain.User, userID uuid.UUID) ([]domain.Franchise, error)

	// DeleteFranchise removes a franchise, its stores and its admins' roles.
	// Missing franchises are not an error.
	DeleteFranchise(ctx context.Context, franchiseID uuid.UUID) error

	// CreateStore adds a store. Admins and the franchise's franchisees only.
	CreateStore(ctx context.Context, actor *domain.User, franchiseID uuid.UUID, name string) (*domain.Store, error)

	// GetStore returns a store of the franchise.
	GetStore(ctx context.Context, franchiseID, storeID uuid.UUID) (*domain.Store, error)

	// DeleteStore removes a store. Admins and the franchise's franchisees only.
	DeleteStore(ctx context.Context, actor *domain.User, franchiseID, storeID uuid.UUID) error
}

type franchiseServiceImpl struct {
	franchises store.FranchiseStore
	users      store.UserStore
	logger     *slog.Logger
}

var _ FranchiseService = (*franchiseServiceImpl)(nil)

// NewFranchiseService creates a FranchiseService.
func NewFranchiseService(franchises store.FranchiseStore, users store.UserStore, logger *slog.Logger) (FranchiseService, error) {
	if franchises == nil || users == nil {
		return nil, fmt.Errorf("franchise service requires franchise and user stores")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &franchiseServiceImpl{
		franchises: franchises,
		users:      users,
		logger:     logger.With("component", "franchise_service"),
	}, nil
}

func (s *franchiseServiceImpl) CreateFranchise(
	ctx context.Context,
	actor *domain.User,
	name string,
	adminEmails []string,
) (*domain.Franchise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domain.NewAccessError("create franchise", msgCreateFranchise)
	}

	franchise, err := domain.NewFranchise(name)
	if err != nil {
		return nil, invalid(err)
	}

	seen := make(map[uuid.UUID]bool, len(adminEmails))
	for _, email := range adminEmails {
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Debug("franchise admin email not registered")
				return nil, ErrUnknownFranchiseAdmin
			}
			return nil, fmt.Errorf("failed to resolve franchise admin: %w", err)
		}
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		franchise.Admins = append(franchise.Admins, domain.AdminFromUser(user))
	}

	if err := s.franchises.Create(ctx, franchise); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// An admin was removed between lookup and insert.
			return nil, ErrUnknownFranchiseAdmin
		}
		return nil, fmt.Errorf("failed to create franchise: %w", err)
	}

	log.Info("franchise created",
		"franchise_id", franchise.ID,
		"admins", len(franchise.Admins))
	return franchise, nil
}

func (s *franchiseServiceImpl) ListFranchises(ctx context.Context, page store.Page, nameFilter string) (*FranchisePage, error) {
	list, more, err := s.franchises.List(ctx, NormalizePage(page), nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list franchises: %w", err)
	}
	return &FranchisePage{Franchises: list, More: more}, nil
}

func (s *franchiseServiceImpl) ListForUser(ctx context.Context, actor *domain.User, userID uuid.UUID) ([]domain.Franchise, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	list, err := s.franchises.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list franchises for user: %w", err)
	}
	return domain.VisibleFranchises(actor, userID, list), nil
}

func (s *franchiseServiceImpl) DeleteFranchise(ctx context.Context, franchiseID uuid.UUID) error {
	if err := s.franchises.Delete(ctx, franchiseID); err != nil {
		return fmt.Errorf("failed to delete franchise: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("franchise deleted", "franchise_id", franchiseID)
	return nil
}

func (s *franchiseServiceImpl) CreateStore(
	ctx context.Context,
	actor *domain.User,
	franchiseID uuid.UUID,
	name string,
) (*domain.Store, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !domain.CanManageFranchise(actor, franchiseID) {
		return nil, domain.NewAccessError("create store", msgCreateStore)
	}

	st, err := domain.NewStore(franchiseID, name)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.franchises.CreateStore(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("store created",
		"franchise_id", franchiseID,
		"store_id", st.ID)
	return st, nil
}

func (s *franchiseServiceImpl) GetStore(ctx context.Context, franchiseID, storeID uuid.UUID) (*domain.Store, error) {
	st, err := s.franchises.GetStore(ctx, franchiseID, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return st, nil
}

func (s *franchiseServiceImpl) DeleteStore(ctx context.Context, actor *domain.User, franchiseID, storeID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !domain.CanManageFranchise(actor, franchiseID) {
		return domain.NewAccessError("delete store", msgDeleteStore)
	}

	if err := s.franchises.DeleteStore(ctx, franchiseID, storeID); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("store deleted",
		"franchise_id", franchiseID,
		"store_id", storeID)
	return nil
}
