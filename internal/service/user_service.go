package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "fotolab/internal/errors"
	"fotolab/internal/model"
	"fotolab/internal/repository"
)

// UserPage is one page of the user listing.
type UserPage struct {
	Users      []model.UserSummary `json:"users"`
	TotalPages int64               `json:"totalPages"`
}

// UserService exposes user management. callerID is the session user, zero
// when the request carries no session.
type UserService interface {
	CreateUser(ctx context.Context, callerID uint, username, password, role string) (*model.UserSummary, error)
	CurrentUser(ctx context.Context, userID uint) (*model.UserSummary, error)
	Roles(ctx context.Context, userID uint) ([]string, error)
	ListUsers(ctx context.Context, callerID uint) ([]model.UserSummary, error)
	ListUsersPaged(ctx context.Context, callerID uint, page, limit int) (*UserPage, error)
	UpdateUser(ctx context.Context, callerID, id uint, username, password string) error
	DeleteUser(ctx context.Context, callerID, id uint) error
	RequireRole(ctx context.Context, userID uint, role string) error
}

type userService struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserService builds a UserService. bcryptCost is passed to bcrypt.
func NewUserService(repo repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

// RequireRole fails with ErrUnauthorized unless the user's single role is
// exactly role. A user without a role row is rejected.
func (s *userService) RequireRole(ctx context.Context, userID uint, role string) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	got, err := s.repo.RoleOf(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("load role: %w", err)
	}
	if got != role {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// CreateUser registers an account. Only an Admin session may create another
// Admin.
func (s *userService) CreateUser(ctx context.Context, callerID uint, username, password, role string) (*model.UserSummary, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)
	if username == "" || password == "" || role == "" {
		return nil, apperrors.ErrBadRequest
	}
	if role == model.RoleAdmin {
		if err := s.RequireRole(ctx, callerID, model.RoleAdmin); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.ErrBadRequest
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, PasswordHash: string(hash)}
	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		r, err := tx.FindRoleByName(ctx, role)
		if err != nil {
			if isNotFound(err) {
				return apperrors.ErrConflict
			}
			return err
		}
		if _, err := tx.FindByUsername(ctx, username); err == nil {
			return apperrors.ErrConflict
		} else if !isNotFound(err) {
			return err
		}
		user.RoleID = r.ID
		return tx.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, mapWriteError("create user", err, apperrors.ErrConflict)
	}

	return &model.UserSummary{ID: user.ID, Username: user.Username, Role: role}, nil
}

func (s *userService) CurrentUser(ctx context.Context, userID uint) (*model.UserSummary, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	summary, err := s.repo.Summary(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			// the session outlived its user
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return summary, nil
}

// Roles returns the caller's role names; empty when no role is assigned.
func (s *userService) Roles(ctx context.Context, userID uint) ([]string, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	role, err := s.repo.RoleOf(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("get roles: %w", err)
	}
	return []string{role}, nil
}

func (s *userService) ListUsers(ctx context.Context, callerID uint) ([]model.UserSummary, error) {
	if err := s.RequireRole(ctx, callerID, model.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListUsersPaged returns page (1-based) of the users ordered by id. A page
// past the end is empty.
func (s *userService) ListUsersPaged(ctx context.Context, callerID uint, page, limit int) (*UserPage, error) {
	if err := s.RequireRole(ctx, callerID, model.RoleAdmin); err != nil {
		return nil, err
	}
	if page < 1 || limit < 1 {
		return nil, apperrors.ErrBadRequest
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalPages := TotalPages(total, limit)

	users := []model.UserSummary{}
	if int64(page) <= totalPages {
		users, err = s.repo.ListPaged(ctx, (page-1)*limit, limit)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
	}
	return &UserPage{Users: users, TotalPages: totalPages}, nil
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit < 1 || total <= 0 {
		return 0
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}

// UpdateUser replaces the username and password of a user. Callers may
// update themselves; Admins may update anyone.
func (s *userService) UpdateUser(ctx context.Context, callerID, id uint, username, password string) error {
	username = strings.TrimSpace(username)
	if id == 0 || username == "" || password == "" {
		return apperrors.ErrBadRequest
	}
	if err := s.requireSelfOrAdmin(ctx, callerID, id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperrors.ErrBadRequest
		}
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.repo.UpdateCredentials(ctx, id, username, string(hash))
	return mapWriteError("update user", err, apperrors.ErrNotFound)
}

// DeleteUser removes a user and everything the user owns.
func (s *userService) DeleteUser(ctx context.Context, callerID, id uint) error {
	if id == 0 {
		return apperrors.ErrBadRequest
	}
	if err := s.requireSelfOrAdmin(ctx, callerID, id); err != nil {
		return err
	}
	return mapWriteError("delete user", s.repo.Delete(ctx, id), apperrors.ErrNotFound)
}

func (s *userService) requireSelfOrAdmin(ctx context.Context, callerID, id uint) error {
	if err := requireSession(callerID); err != nil {
		return err
	}
	if callerID == id {
		return nil
	}
	return s.RequireRole(ctx, callerID, model.RoleAdmin)
}
