package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"staffpay/internal/shared/apperror"
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

var errInvalidMonth = apperror.New(
	apperror.CodeInvalidInput,
	"month must be in YYYY-MM format",
	http.StatusBadRequest,
)

var errInvalidPresentCount = apperror.New(
	apperror.CodeInvalidInput,
	"presentCount must be between 0 and 31",
	http.StatusBadRequest,
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error)
	BulkUpsert(ctx context.Context, req BulkUpsertAttendanceRequest) ([]AttendanceResponse, error)
	GetByCompanyAndMonth(ctx context.Context, companyID, month string) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func validateEntry(month string, presentCount int) error {
	if !monthPattern.MatchString(month) {
		return errInvalidMonth
	}
	if presentCount < 0 || presentCount > 31 {
		return errInvalidPresentCount
	}
	return nil
}

func (s *service) Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("employeeId")
	}
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("companyId")
	}
	if err := validateEntry(req.Month, req.PresentCount); err != nil {
		return AttendanceResponse{}, err
	}

	row := &MonthlyAttendance{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		CompanyID:    companyUUID,
		Month:        req.Month,
		PresentCount: req.PresentCount,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

// BulkUpsert takes a whole site roster for one month. All entries are
// validated up front and written in one transaction.
func (s *service) BulkUpsert(ctx context.Context, req BulkUpsertAttendanceRequest) ([]AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apperror.InvalidField("companyId")
	}
	if !monthPattern.MatchString(req.Month) {
		return nil, errInvalidMonth
	}

	rows := make([]*MonthlyAttendance, len(req.Entries))
	for i, entry := range req.Entries {
		employeeUUID, err := uuid.Parse(entry.EmployeeID)
		if err != nil {
			return nil, apperror.InvalidField("employeeId")
		}
		if err := validateEntry(req.Month, entry.PresentCount); err != nil {
			return nil, err
		}
		rows[i] = &MonthlyAttendance{
			ID:           uuid.New(),
			EmployeeID:   employeeUUID,
			CompanyID:    companyUUID,
			Month:        req.Month,
			PresentCount: entry.PresentCount,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		if err := qtx.Upsert(ctx, row); err != nil {
			return nil, err
		}
		resp[i] = mapToResponse(*row)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *service) GetByCompanyAndMonth(ctx context.Context, companyID, month string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, apperror.InvalidField("companyId")
	}
	if !monthPattern.MatchString(month) {
		return nil, errInvalidMonth
	}

	rows, err := s.repo.FindByCompanyAndMonth(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employeeId")
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(row MonthlyAttendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		CompanyID:    row.CompanyID.String(),
		Month:        row.Month,
		PresentCount: row.PresentCount,
	}
}

func mapToListResponse(rows []MonthlyAttendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
