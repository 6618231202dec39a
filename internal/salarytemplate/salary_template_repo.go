package salarytemplate

import (
	"context"

	"staffpay/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_template_repo.go -destination=mock/salary_template_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, template *SalaryTemplate) error
	FindByID(ctx context.Context, id string) (*SalaryTemplate, error)
	// FindActiveByCompany returns the latest-created template for the company.
	FindActiveByCompany(ctx context.Context, companyID string) (*SalaryTemplate, error)
	Update(ctx context.Context, template *SalaryTemplate) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, template *SalaryTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryTemplate, error) {
	var template SalaryTemplate
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) (*SalaryTemplate, error) {
	var template SalaryTemplate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) Update(ctx context.Context, template *SalaryTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&SalaryTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
