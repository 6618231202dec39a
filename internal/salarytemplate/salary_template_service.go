package salarytemplate

import (
	"context"
	"errors"
	"time"

	salarytemplateerrors "staffpay/internal/salarytemplate/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_template_service.go -destination=mock/salary_template_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryTemplateRequest) (SalaryTemplateResponse, error)
	GetByID(ctx context.Context, id string) (SalaryTemplateResponse, error)
	GetActiveByCompany(ctx context.Context, companyID string) (SalaryTemplateResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryTemplateRequest) (SalaryTemplateResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateSalaryTemplateRequest,
) (SalaryTemplateResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return SalaryTemplateResponse{}, salarytemplateerrors.ErrInvalidTemplateConfig
	}

	template := &SalaryTemplate{
		ID:              uuid.New(),
		CompanyID:       companyID,
		MandatoryFields: req.MandatoryFields,
		OptionalFields:  req.OptionalFields,
		CustomFields:    req.CustomFields,
	}

	// reject malformed field schemas up front, before anything is stored
	if _, err := Parse(template); err != nil {
		return SalaryTemplateResponse{}, err
	}

	if err := s.repo.Create(ctx, template); err != nil {
		return SalaryTemplateResponse{}, err
	}

	return mapToResponse(*template), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryTemplateResponse, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*template), nil
}

func (s *service) GetActiveByCompany(ctx context.Context, companyID string) (SalaryTemplateResponse, error) {
	template, err := s.repo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*template), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateSalaryTemplateRequest,
) (SalaryTemplateResponse, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryTemplateResponse{}, mapRepositoryError(err)
	}

	template.MandatoryFields = req.MandatoryFields
	template.OptionalFields = req.OptionalFields
	template.CustomFields = req.CustomFields

	if _, err := Parse(template); err != nil {
		return SalaryTemplateResponse{}, err
	}

	if err := s.repo.Update(ctx, template); err != nil {
		return SalaryTemplateResponse{}, err
	}

	return mapToResponse(*template), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarytemplateerrors.ErrTemplateNotFound
	}
	return err
}

func mapToResponse(template SalaryTemplate) SalaryTemplateResponse {
	return SalaryTemplateResponse{
		ID:              template.ID.String(),
		CompanyID:       template.CompanyID.String(),
		MandatoryFields: template.MandatoryFields,
		OptionalFields:  template.OptionalFields,
		CustomFields:    template.CustomFields,
		CreatedAt:       template.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       template.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
