package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	employeeerrors "staffpay/internal/employee/errors"
	"staffpay/internal/events"
	"staffpay/internal/messaging/kafka"
	"staffpay/internal/shared/apperror"
	"staffpay/internal/shared/contextutil"
	"staffpay/internal/shared/counter"
)

const personDateLayout = "02-01-2006"

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListEmployeesQuery) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	AssignToCompany(ctx context.Context, employeeID string, req AssignEmployeeRequest) (EmploymentResponse, error)
	LeaveCompany(ctx context.Context, employeeID string, req LeaveCompanyRequest) (EmploymentResponse, error)
	GetEmploymentHistory(ctx context.Context, employeeID string) ([]EmploymentResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func parsePersonDate(v string) (time.Time, error) {
	t, err := time.Parse(personDateLayout, v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatPersonDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(personDateLayout)
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		t, err := parsePersonDate(req.DateOfBirth)
		if err != nil {
			return EmployeeResponse{}, err
		}
		dateOfBirth = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	seq, err := s.counter.GetNextValue(ctx, "agency", "employee_number")
	if err != nil {
		s.logger.Error("employee number sequence failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: fmt.Sprintf("EMP-%04d", seq),
		FullName:       req.FullName,
		FatherName:     req.FatherName,
		DateOfBirth:    dateOfBirth,
		Phone:          req.Phone,
		Address:        req.Address,
		IsActive:       true,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:      "employee_created",
			RequestID:      rid,
			EmployeeID:     empl.ID.String(),
			EmployeeNumber: empl.EmployeeNumber,
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter ListEmployeesQuery,
) ([]EmployeeResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	employees, total, err := s.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(employees), total, nil
}

// GetOptions serves the id/name pairs admin forms need. The list changes
// rarely, so reads go through redis with singleflight guarding the refill.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(employees))
		for i, empl := range employees {
			resp[i] = EmployeeOptionResponse{
				ID:             empl.ID.String(),
				EmployeeNumber: empl.EmployeeNumber,
				FullName:       empl.FullName,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, apperror.InvalidField("id")
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, apperror.InvalidField("id")
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.FullName != "" {
		empl.FullName = req.FullName
	}
	if req.FatherName != "" {
		empl.FatherName = req.FatherName
	}
	if req.DateOfBirth != "" {
		t, err := parsePersonDate(req.DateOfBirth)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.DateOfBirth = &t
	}
	if req.Phone != "" {
		empl.Phone = req.Phone
	}
	if req.Address != "" {
		empl.Address = req.Address
	}
	if req.IsActive != nil {
		empl.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

// AssignToCompany opens a posting. An employee can hold postings at several
// companies, but only one active posting per company.
func (s *service) AssignToCompany(
	ctx context.Context,
	employeeID string,
	req AssignEmployeeRequest,
) (EmploymentResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return EmploymentResponse{}, apperror.InvalidField("employeeId")
	}
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return EmploymentResponse{}, apperror.InvalidField("companyId")
	}
	designationUUID, err := uuid.Parse(req.DesignationID)
	if err != nil {
		return EmploymentResponse{}, apperror.InvalidField("designationId")
	}
	var departmentUUID uuid.UUID
	if req.DepartmentID != "" {
		departmentUUID, err = uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmploymentResponse{}, apperror.InvalidField("departmentId")
		}
	}
	if req.MonthlySalary <= 0 {
		return EmploymentResponse{}, apperror.InvalidField("monthlySalary")
	}
	joiningDate, err := parsePersonDate(req.JoiningDate)
	if err != nil {
		return EmploymentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmploymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, employeeID); err != nil {
		return EmploymentResponse{}, mapRepositoryError(err)
	}

	existing, err := qtx.FindActiveEmployment(ctx, employeeID, req.CompanyID)
	if err != nil && !isNotFound(err) {
		return EmploymentResponse{}, err
	}
	if existing != nil {
		return EmploymentResponse{}, employeeerrors.ErrAlreadyEmployed
	}

	employment := &EmploymentHistory{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		CompanyID:     companyUUID,
		DesignationID: designationUUID,
		DepartmentID:  departmentUUID,
		MonthlySalary: req.MonthlySalary,
		JoiningDate:   joiningDate,
	}
	if err := qtx.CreateEmployment(ctx, employment); err != nil {
		s.logger.Error("assign employee persist failed",
			zap.String("employee_id", employeeID),
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return EmploymentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmploymentResponse{}, err
	}

	return mapToEmploymentResponse(*employment), nil
}

// LeaveCompany closes the active posting for the given company.
func (s *service) LeaveCompany(
	ctx context.Context,
	employeeID string,
	req LeaveCompanyRequest,
) (EmploymentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmploymentResponse{}, apperror.InvalidField("employeeId")
	}
	if _, err := uuid.Parse(req.CompanyID); err != nil {
		return EmploymentResponse{}, apperror.InvalidField("companyId")
	}
	leavingDate, err := parsePersonDate(req.LeavingDate)
	if err != nil {
		return EmploymentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmploymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employment, err := qtx.FindActiveEmployment(ctx, employeeID, req.CompanyID)
	if err != nil {
		if isNotFound(err) {
			return EmploymentResponse{}, employeeerrors.ErrEmploymentNotFound
		}
		return EmploymentResponse{}, err
	}

	if leavingDate.Before(employment.JoiningDate) {
		return EmploymentResponse{}, employeeerrors.ErrLeavingBeforeJoining
	}

	employment.LeavingDate = &leavingDate
	if err := qtx.UpdateEmployment(ctx, employment); err != nil {
		s.logger.Error("leave company persist failed",
			zap.String("employee_id", employeeID),
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return EmploymentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmploymentResponse{}, err
	}

	return mapToEmploymentResponse(*employment), nil
}

func (s *service) GetEmploymentHistory(
	ctx context.Context,
	employeeID string,
) ([]EmploymentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employeeId")
	}

	history, err := s.repo.FindEmploymentsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmploymentResponse, len(history))
	for i, employment := range history {
		resp[i] = mapToEmploymentResponse(employment)
	}
	return resp, nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		FatherName:     empl.FatherName,
		DateOfBirth:    formatPersonDate(empl.DateOfBirth),
		Phone:          empl.Phone,
		Address:        empl.Address,
		IsActive:       empl.IsActive,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, empl := range employees {
		resp[i] = mapToResponse(empl)
	}
	return resp
}

func mapToEmploymentResponse(employment EmploymentHistory) EmploymentResponse {
	resp := EmploymentResponse{
		ID:            employment.ID.String(),
		EmployeeID:    employment.EmployeeID.String(),
		CompanyID:     employment.CompanyID.String(),
		MonthlySalary: employment.MonthlySalary,
		JoiningDate:   employment.JoiningDate.Format(personDateLayout),
		LeavingDate:   formatPersonDate(employment.LeavingDate),
	}
	if employment.DesignationID != uuid.Nil {
		resp.DesignationID = employment.DesignationID.String()
	}
	if employment.DepartmentID != uuid.Nil {
		resp.DepartmentID = employment.DepartmentID.String()
	}
	return resp
}
