package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-reports/internal/model"
)

type DepartmentAdminStore interface {
	List(ctx context.Context, search string) ([]model.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	Create(ctx context.Context, department *model.Department) error
	Update(ctx context.Context, department *model.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DepartmentService is the admin-only department CRUD.
type DepartmentService struct {
	departments DepartmentAdminStore
}

func NewDepartmentService(departments DepartmentAdminStore) *DepartmentService {
	return &DepartmentService{departments: departments}
}

func (s *DepartmentService) List(ctx context.Context, principal model.Principal, search string) ([]model.Department, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.departments.List(ctx, search)
}

func (s *DepartmentService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Department, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return department, nil
}

type DepartmentInput struct {
	Name        string
	Description *string
}

func (s *DepartmentService) Create(ctx context.Context, principal model.Principal, input DepartmentInput) (*model.Department, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if _, err := s.departments.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: department name already exists", ErrInvalid)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	department := &model.Department{Name: name, Description: input.Description}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *DepartmentService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input DepartmentInput) (*model.Department, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if name != department.Name {
		if _, err := s.departments.GetByName(ctx, name); err == nil {
			return nil, fmt.Errorf("%w: department name already exists", ErrInvalid)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	department.Name = name
	department.Description = input.Description
	if err := s.departments.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete removes the department; report references are nulled out by the
// store, never cascaded.
func (s *DepartmentService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if _, err := s.departments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.departments.Delete(ctx, id)
}
