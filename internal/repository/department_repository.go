package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-reports/internal/model"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) List(ctx context.Context, search string) ([]model.Department, error) {
	query := r.db.WithContext(ctx).Model(&model.Department{})

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var departments []model.Department
	if err := query.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).First(&department, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).First(&department, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *DepartmentRepository) Update(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

// Delete removes the department and nulls out report references. Reports
// are never cascaded.
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Report{}).
			Where("assigned_department_id = ?", id).
			Update("assigned_department_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Department{}, "id = ?", id).Error
	})
}
