package department

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"staffpay/internal/shared/apperror"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, dept *Department) error
	findAllFn  func(ctx context.Context) ([]Department, error)
	findByIDFn func(ctx context.Context, id string) (*Department, error)
	updateFn   func(ctx context.Context, dept *Department) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) Create(ctx context.Context, dept *Department) error { return f.createFn(ctx, dept) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Department, error)  { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Department, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, dept *Department) error { return f.updateFn(ctx, dept) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error        { return f.deleteFn(ctx, id) }

func TestCreate_TrimsName(t *testing.T) {
	var created *Department
	repo := &fakeRepo{
		createFn: func(ctx context.Context, dept *Department) error {
			created = dept
			return nil
		},
	}

	svc := NewService(repo)
	resp, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "  Operations  "})

	assert.NoError(t, err)
	assert.Equal(t, "Operations", created.Name)
	assert.Equal(t, created.ID.String(), resp.ID)
}

func TestCreate_BlankName(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: " "})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Department, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)
	_, err := svc.GetByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, errDepartmentNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)
	err := svc.Delete(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, errDepartmentNotFound)
}
