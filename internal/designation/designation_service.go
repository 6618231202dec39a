package designation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"staffpay/internal/shared/apperror"
)

var (
	errDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Designation not found",
		http.StatusNotFound,
	)
	errDesignationExists = apperror.New(
		apperror.CodeConflict,
		"Designation with this name already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=designation_service.go -destination=mock/designation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context) ([]DesignationResponse, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
	Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DesignationResponse{}, apperror.RequiredField("name")
	}

	designation := &Designation{
		ID:   uuid.New(),
		Name: name,
	}
	if err := s.repo.Create(ctx, designation); err != nil {
		return DesignationResponse{}, mapWriteError(err)
	}

	return mapToResponse(*designation), nil
}

func (s *service) GetAll(ctx context.Context) ([]DesignationResponse, error) {
	designations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DesignationResponse, len(designations))
	for i, designation := range designations {
		resp[i] = mapToResponse(designation)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, apperror.InvalidField("id")
	}

	designation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, errDesignationNotFound
		}
		return DesignationResponse{}, err
	}

	return mapToResponse(*designation), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, apperror.InvalidField("id")
	}

	designation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, errDesignationNotFound
		}
		return DesignationResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		designation.Name = name
	}

	if err := s.repo.Update(ctx, designation); err != nil {
		return DesignationResponse{}, mapWriteError(err)
	}

	return mapToResponse(*designation), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errDesignationNotFound
		}
		return err
	}
	return nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errDesignationExists
	}
	if strings.Contains(err.Error(), "uq_designation_name") {
		return errDesignationExists
	}
	return err
}

func mapToResponse(designation Designation) DesignationResponse {
	return DesignationResponse{
		ID:   designation.ID.String(),
		Name: designation.Name,
	}
}
