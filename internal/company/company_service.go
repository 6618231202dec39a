package company

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	companyerrors "staffpay/internal/company/errors"
	"staffpay/internal/shared/apperror"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	GetAll(ctx context.Context, filter ListCompaniesQuery) ([]CompanyResponse, int64, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return CompanyResponse{}, apperror.RequiredField("name")
	}

	company := &Company{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, company); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*company), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, apperror.InvalidField("id")
	}

	company, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*company), nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter ListCompaniesQuery,
) ([]CompanyResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	companies, total, err := s.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]CompanyResponse, len(companies))
	for i, company := range companies {
		resp[i] = mapToResponse(company)
	}
	return resp, total, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, apperror.InvalidField("id")
	}

	company, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if req.Name != "" {
		company.Name = strings.TrimSpace(req.Name)
	}
	if req.Address != "" {
		company.Address = req.Address
	}
	if req.ContactPerson != "" {
		company.ContactPerson = req.ContactPerson
	}
	if req.ContactNumber != "" {
		company.ContactNumber = req.ContactNumber
	}
	if req.Email != "" {
		company.Email = req.Email
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, company); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*company), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidField("id")
	}
	return mapRepositoryError(s.repo.Delete(ctx, uid))
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_company_name" {
			return companyerrors.ErrCompanyAlreadyExists
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return companyerrors.ErrCompanyAlreadyExists
	}

	return err
}

func mapToResponse(company Company) CompanyResponse {
	return CompanyResponse{
		ID:            company.ID.String(),
		Name:          company.Name,
		Address:       company.Address,
		ContactPerson: company.ContactPerson,
		ContactNumber: company.ContactNumber,
		Email:         company.Email,
		IsActive:      company.IsActive,
	}
}
