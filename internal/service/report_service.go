package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-reports/internal/model"
)

// ReportStore is the persistence surface the report service needs.
type ReportStore interface {
	List(ctx context.Context, principal model.Principal, filter model.ReportFilter) ([]model.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	Create(ctx context.Context, report *model.Report) error
	Update(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type DepartmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
}

type ReportService struct {
	reports     ReportStore
	users       UserStore
	departments DepartmentStore
	now         func() time.Time
}

func NewReportService(reports ReportStore, users UserStore, departments DepartmentStore) *ReportService {
	return &ReportService{
		reports:     reports,
		users:       users,
		departments: departments,
		now:         time.Now,
	}
}

type CreateReportInput struct {
	Title       string
	Description string
	Category    model.Category
	Latitude    float64
	Longitude   float64
	Address     *string
	ImageURL    *string
	Priority    model.Priority
}

func (s *ReportService) Create(ctx context.Context, principal model.Principal, input CreateReportInput) (*model.Report, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid category", ErrInvalid)
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalid)
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalid)
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority", ErrInvalid)
	}

	lat, lng := input.Latitude, input.Longitude
	report := &model.Report{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Latitude:     &lat,
		Longitude:    &lng,
		Address:      input.Address,
		ImageURL:     input.ImageURL,
		Status:       model.StatusSubmitted,
		Priority:     priority,
		ReportedByID: principal.UserID,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List applies the role scope and filter. Citizens only ever receive their
// own reports regardless of the filter.
func (s *ReportService) List(ctx context.Context, principal model.Principal, filter model.ReportFilter) ([]model.Report, error) {
	return s.reports.List(ctx, principal, filter)
}

// ListOwn returns the principal's own submissions, newest first. The scope
// is forced to the citizen view even for admins.
func (s *ReportService) ListOwn(ctx context.Context, principal model.Principal) ([]model.Report, error) {
	own := model.Principal{UserID: principal.UserID, Role: model.RoleCitizen}
	return s.reports.List(ctx, own, model.ReportFilter{})
}

func (s *ReportService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// A citizen asking for somebody else's report gets a 404, not a 403,
	// so report ids are not probeable.
	if !principal.CanViewReport(report.ReportedByID) {
		return nil, ErrNotFound
	}
	return report, nil
}

type UpdateReportInput struct {
	Status               *model.Status
	Priority             *model.Priority
	AssignedDepartmentID *uuid.UUID
	AssignedToID         *uuid.UUID
}

// Update mutates status, priority and assignment. Admin only. The
// transition into resolved stamps resolved_at exactly once.
func (s *ReportService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateReportInput) (*model.Report, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalid)
		}
		if *input.Status == model.StatusResolved {
			report.Resolve(s.now())
		} else {
			// Leaving resolved clears the timestamp so that resolved_at
			// is set exactly when the status is resolved.
			report.Status = *input.Status
			report.ResolvedAt = nil
		}
	}

	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority", ErrInvalid)
		}
		report.Priority = *input.Priority
	}

	if input.AssignedDepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *input.AssignedDepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown department", ErrInvalid)
			}
			return nil, err
		}
		report.AssignedDepartmentID = input.AssignedDepartmentID
	}

	if input.AssignedToID != nil {
		assignee, err := s.users.GetByID(ctx, *input.AssignedToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown assignee", ErrInvalid)
			}
			return nil, err
		}
		if !assignee.IsAdmin() {
			return nil, fmt.Errorf("%w: reports can only be assigned to admin users", ErrInvalid)
		}
		report.AssignedToID = input.AssignedToID
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, id)
}

// Delete is allowed to the owner or an admin.
func (s *ReportService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !principal.IsAdmin() && report.ReportedByID != principal.UserID {
		return ErrPermissionDenied
	}
	return s.reports.Delete(ctx, id)
}
