package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-reports/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// List returns the reports visible to the principal, narrowed by the
// filter and ordered per its ordering clause. Citizens are always scoped
// to their own reports; every other clause is an AND conjunction, except
// the free-text search which matches any of title, description, address.
func (r *ReportRepository) List(ctx context.Context, principal model.Principal, filter model.ReportFilter) ([]model.Report, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Preload("ReportedBy").
		Preload("AssignedDepartment").
		Preload("AssignedTo")

	if !principal.IsAdmin() {
		query = query.Where("reported_by_id = ?", principal.UserID)
	}

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.DepartmentID != nil {
		query = query.Where("assigned_department_id = ?", *filter.DepartmentID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR address ILIKE ?", pattern, pattern, pattern)
	}

	if filter.Geo != nil {
		bounds := filter.Geo.Bounds()
		query = query.
			Where("latitude BETWEEN ? AND ?", bounds.LatMin, bounds.LatMax).
			Where("longitude BETWEEN ? AND ?", bounds.LngMin, bounds.LngMax)
	}

	var reports []model.Report
	if err := query.Order(filter.OrderClause()).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// All fetches every report with its reporter preloaded, for the analytics
// fold. Ordering comes from the caller, only the reporter name matters.
func (r *ReportRepository) All(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Preload("ReportedBy").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).
		Preload("ReportedBy").
		Preload("AssignedDepartment").
		Preload("AssignedTo").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) Update(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Report{}, "id = ?", id).Error
}
