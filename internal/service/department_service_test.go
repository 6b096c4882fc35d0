package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"civic-reports/internal/model"
)

type memDepartmentAdminStore struct {
	departments map[uuid.UUID]*model.Department
	// linked reports, keyed by department, to observe reference nulling
	reportRefs map[uuid.UUID]int
}

func newMemDepartmentAdminStore() *memDepartmentAdminStore {
	return &memDepartmentAdminStore{
		departments: map[uuid.UUID]*model.Department{},
		reportRefs:  map[uuid.UUID]int{},
	}
}

func (m *memDepartmentAdminStore) List(ctx context.Context, search string) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		if search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memDepartmentAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memDepartmentAdminStore) GetByName(ctx context.Context, name string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memDepartmentAdminStore) Create(ctx context.Context, department *model.Department) error {
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	m.departments[department.ID] = department
	return nil
}

func (m *memDepartmentAdminStore) Update(ctx context.Context, department *model.Department) error {
	m.departments[department.ID] = department
	return nil
}

func (m *memDepartmentAdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.reportRefs[id] = 0
	delete(m.departments, id)
	return nil
}

func departmentFixture() (*DepartmentService, *memDepartmentAdminStore, model.Principal, model.Principal) {
	store := newMemDepartmentAdminStore()
	admin := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	citizen := model.Principal{UserID: uuid.New(), Role: model.RoleCitizen}
	return NewDepartmentService(store), store, admin, citizen
}

func TestDepartmentCRUDIsAdminOnly(t *testing.T) {
	svc, store, _, citizen := departmentFixture()
	ctx := context.Background()

	id := uuid.New()
	store.departments[id] = &model.Department{ID: id, Name: "Roads"}

	_, err := svc.List(ctx, citizen, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Get(ctx, citizen, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(ctx, citizen, DepartmentInput{Name: "Water"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Update(ctx, citizen, id, DepartmentInput{Name: "Water"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.ErrorIs(t, svc.Delete(ctx, citizen, id), ErrPermissionDenied)
}

func TestDepartmentCreateRejectsDuplicateName(t *testing.T) {
	svc, _, admin, _ := departmentFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, DepartmentInput{Name: "Roads"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, DepartmentInput{Name: "Roads"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(ctx, admin, DepartmentInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDepartmentUpdateKeepsOwnName(t *testing.T) {
	svc, _, admin, _ := departmentFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, DepartmentInput{Name: "Roads"})
	require.NoError(t, err)

	desc := "road maintenance"
	updated, err := svc.Update(ctx, admin, created.ID, DepartmentInput{Name: "Roads", Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
}

func TestDepartmentListSortedByName(t *testing.T) {
	svc, _, admin, _ := departmentFixture()
	ctx := context.Background()

	for _, name := range []string{"Water", "Drainage", "Roads"} {
		_, err := svc.Create(ctx, admin, DepartmentInput{Name: name})
		require.NoError(t, err)
	}

	departments, err := svc.List(ctx, admin, "")
	require.NoError(t, err)
	require.Len(t, departments, 3)
	assert.Equal(t, "Drainage", departments[0].Name)
	assert.Equal(t, "Roads", departments[1].Name)
	assert.Equal(t, "Water", departments[2].Name)
}

func TestDepartmentDelete(t *testing.T) {
	svc, store, admin, _ := departmentFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, DepartmentInput{Name: "Roads"})
	require.NoError(t, err)
	store.reportRefs[created.ID] = 3

	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	assert.Equal(t, 0, store.reportRefs[created.ID], "report references must be nulled, not cascaded")

	assert.ErrorIs(t, svc.Delete(ctx, admin, created.ID), ErrNotFound)
}
