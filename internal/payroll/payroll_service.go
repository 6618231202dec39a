package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"staffpay/internal/events"
	"staffpay/internal/messaging/kafka"
	payrollerrors "staffpay/internal/payroll/errors"
	"staffpay/internal/salarytemplate"
	salarytemplateerrors "staffpay/internal/salarytemplate/errors"
	"staffpay/internal/shared/apperror"
	"staffpay/internal/shared/contextutil"
)

const (
	StatusComputed           = "COMPUTED"
	StatusSkippedNoHistory   = "SKIPPED_NO_HISTORY"
	StatusSkippedNotEmployed = "SKIPPED_NOT_CURRENTLY_EMPLOYED"
	StatusError              = "ERROR"
)

// Per-employee skip reasons, surfaced verbatim in the result entry.
var (
	errNoHistory   = errors.New("No employment history found")
	errNotEmployed = errors.New("Employee is not currently employed")
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, req CalculatePayrollRequest) (CalculatePayrollResponse, error)
	Finalize(ctx context.Context, req FinalizePayrollRequest) (FinalizePayrollResponse, error)
	GetReport(ctx context.Context, filter ReportQuery) ([]SalaryRecordResponse, int64, error)
	GetByMonth(ctx context.Context, companyID, month string) ([]SalaryRecordResponse, error)
	GetEmployeeReport(ctx context.Context, employeeID string) ([]SalaryRecordResponse, error)
	GetStats(ctx context.Context) (PayrollStatsResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	templates salarytemplate.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
	stats     singleflight.Group
}

func NewService(db *sql.DB, repo Repository, templates salarytemplate.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, templates, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	templates salarytemplate.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:        db,
		repo:      repo,
		templates: templates,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Calculate produces the payroll preview for one company and month. Nothing
// is persisted; the caller reviews the result and finalizes it separately.
// Employee failures are isolated: a bad record yields an error entry for that
// employee while the rest of the batch computes normally.
func (s *service) Calculate(
	ctx context.Context,
	req CalculatePayrollRequest,
) (CalculatePayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !monthPattern.MatchString(req.PayrollMonth) {
		return CalculatePayrollResponse{}, payrollerrors.ErrInvalidMonthFormat
	}
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return CalculatePayrollResponse{}, apperror.InvalidField("companyId")
	}

	company, err := s.repo.FindCompany(ctx, req.CompanyID)
	if err != nil {
		return CalculatePayrollResponse{}, mapRepositoryError(err, payrollerrors.ErrCompanyNotFound)
	}

	template, err := s.templates.FindActiveByCompany(ctx, req.CompanyID)
	if err != nil {
		return CalculatePayrollResponse{}, mapTemplateError(err)
	}

	employees, err := s.repo.FindEmployeesByCompany(ctx, req.CompanyID)
	if err != nil {
		return CalculatePayrollResponse{}, err
	}
	if len(employees) == 0 {
		return CalculatePayrollResponse{}, payrollerrors.ErrNoEmployeesFound
	}

	parsed, err := salarytemplate.Parse(template)
	if err != nil {
		return CalculatePayrollResponse{}, err
	}
	basicDuty := parsed.ResolveBasicDuty()
	if basicDuty <= 0 {
		return CalculatePayrollResponse{}, salarytemplateerrors.ErrInvalidTemplateConfig
	}

	if missing := collectMissingAdminInputs(parsed, employees, req.AdminInputs); len(missing) > 0 {
		return CalculatePayrollResponse{}, payrollerrors.ErrMissingAdminInputs.WithDetails(missing)
	}

	employeeIDs := make([]string, len(employees))
	for i, emp := range employees {
		employeeIDs[i] = emp.ID.String()
	}
	attendance, err := s.repo.FindAttendanceByMonth(ctx, req.CompanyID, employeeIDs, req.PayrollMonth)
	if err != nil {
		return CalculatePayrollResponse{}, err
	}
	presentByEmployee := make(map[string]int, len(attendance))
	for _, row := range attendance {
		presentByEmployee[row.EmployeeID.String()] = row.PresentCount
	}

	results := make([]EmployeePayrollResult, 0, len(employees))
	for i, emp := range employees {
		result := EmployeePayrollResult{
			SerialNumber: i + 1,
			EmployeeID:   emp.ID.String(),
			EmployeeName: emp.FullName,
		}

		data, err := s.computeEmployee(
			ctx,
			emp,
			company,
			companyUUID,
			parsed,
			basicDuty,
			presentByEmployee[emp.ID.String()],
			req.AdminInputs[emp.ID.String()],
			i+1,
			req.PayrollMonth,
		)
		switch {
		case errors.Is(err, errNoHistory):
			result.Status = StatusSkippedNoHistory
			result.Error = err.Error()
		case errors.Is(err, errNotEmployed):
			result.Status = StatusSkippedNotEmployed
			result.Error = err.Error()
		case err != nil:
			result.Status = StatusError
			result.Error = err.Error()
			s.logger.Error("payroll computation failed for employee",
				zap.String("request_id", rid),
				zap.String("employee_id", emp.ID.String()),
				zap.String("company_id", req.CompanyID),
				zap.String("month", req.PayrollMonth),
				zap.Error(err),
			)
		default:
			result.Status = StatusComputed
			result.SalaryData = data
		}

		results = append(results, result)
	}

	return CalculatePayrollResponse{
		CompanyID:    req.CompanyID,
		CompanyName:  company.Name,
		PayrollMonth: req.PayrollMonth,
		Results:      results,
	}, nil
}

func (s *service) computeEmployee(
	ctx context.Context,
	emp employeeRow,
	company *companyRow,
	companyUUID uuid.UUID,
	parsed *salarytemplate.ParsedTemplate,
	basicDuty float64,
	presentDays int,
	adminInputs map[string]*float64,
	serialNumber int,
	month string,
) (map[string]any, error) {
	history, err := s.repo.FindEmploymentHistory(ctx, emp.ID.String())
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errNoHistory
	}

	var current *employmentRow
	for i := range history {
		if history[i].CompanyID == companyUUID && history[i].LeavingDate == nil {
			current = &history[i]
			break
		}
	}
	if current == nil {
		return nil, errNotEmployed
	}

	monthlySalary := current.MonthlySalary
	wagesPerDay := monthlySalary / basicDuty
	basicPay := wagesPerDay * float64(presentDays)

	evalCtx := salarytemplate.EvalContext{
		BasicPay:      basicPay,
		MonthlySalary: monthlySalary,
		PresentDays:   float64(presentDays),
		BasicDuty:     basicDuty,
		GrossSalary:   basicPay,
	}

	data := make(map[string]any, len(parsed.Fields)+16)
	var totalAllowances, totalDeductions float64

	// Fields evaluate in template order. GrossSalary grows as allowances are
	// summed, so a later percentage-of-grossSalary field sees earlier
	// allowances but not later ones.
	for _, field := range parsed.Fields {
		if field.Type == salarytemplate.FieldTypeText {
			continue
		}

		value := salarytemplate.Evaluate(field, evalCtx, adminInputs[field.Key])
		data[field.Key] = value

		switch field.Purpose {
		case salarytemplate.PurposeAllowance:
			totalAllowances += value
			evalCtx.GrossSalary = basicPay + totalAllowances
		case salarytemplate.PurposeDeduction:
			totalDeductions += value
		}
	}

	grossSalary := basicPay + totalAllowances
	netSalary := grossSalary - totalDeductions

	data["serialNumber"] = serialNumber
	data["employeeName"] = emp.FullName
	data["fatherName"] = emp.FatherName
	data["designation"] = current.DesignationName
	data["companyName"] = company.Name
	data["month"] = month
	data["presentDays"] = presentDays
	data["basicDuty"] = basicDuty
	data["monthlySalary"] = salarytemplate.Round2(monthlySalary)
	data["wagesPerDay"] = salarytemplate.Round2(wagesPerDay)
	data["basicPay"] = salarytemplate.Round2(basicPay)
	data["totalAllowances"] = salarytemplate.Round2(totalAllowances)
	data["totalDeductions"] = salarytemplate.Round2(totalDeductions)
	data["grossSalary"] = salarytemplate.Round2(grossSalary)
	data["netSalary"] = salarytemplate.Round2(netSalary)

	return data, nil
}

// collectMissingAdminInputs reports every (employee, field) pair lacking a
// required admin value. All gaps are gathered before failing so the caller can
// fix the whole batch in one round trip.
func collectMissingAdminInputs(
	parsed *salarytemplate.ParsedTemplate,
	employees []employeeRow,
	adminInputs map[string]map[string]*float64,
) []MissingAdminInput {
	var missing []MissingAdminInput
	for _, field := range parsed.AdminInputFields() {
		for _, emp := range employees {
			if adminInputs[emp.ID.String()][field.Key] == nil {
				missing = append(missing, MissingAdminInput{
					EmployeeID: emp.ID.String(),
					FieldKey:   field.Key,
				})
			}
		}
	}
	return missing
}

// Finalize writes the reviewed payroll to the ledger. Validation covers every
// record before the first write; one malformed record aborts the whole call.
// Upserts are keyed by (employeeId, companyId, month), so finalizing the same
// month twice overwrites the previous run.
func (s *service) Finalize(
	ctx context.Context,
	req FinalizePayrollRequest,
) (FinalizePayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !monthPattern.MatchString(req.PayrollMonth) {
		return FinalizePayrollResponse{}, payrollerrors.ErrInvalidMonthFormat
	}
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return FinalizePayrollResponse{}, apperror.InvalidField("companyId")
	}
	if len(req.PayrollRecords) == 0 {
		return FinalizePayrollResponse{}, payrollerrors.ErrInvalidPayrollRecords
	}

	employeeUUIDs := make([]uuid.UUID, len(req.PayrollRecords))
	var invalid []int
	for i, record := range req.PayrollRecords {
		employeeUUID, err := uuid.Parse(record.EmployeeID)
		if err != nil || len(record.SalaryData) == 0 {
			invalid = append(invalid, i)
			continue
		}
		employeeUUIDs[i] = employeeUUID
	}
	if len(invalid) > 0 {
		return FinalizePayrollResponse{}, payrollerrors.ErrInvalidPayrollRecords.WithDetails(invalid)
	}

	company, err := s.repo.FindCompany(ctx, req.CompanyID)
	if err != nil {
		return FinalizePayrollResponse{}, mapRepositoryError(err, payrollerrors.ErrCompanyNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FinalizePayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	for i, record := range req.PayrollRecords {
		entry := &SalaryRecord{
			ID:          uuid.New(),
			EmployeeID:  employeeUUIDs[i],
			CompanyID:   companyUUID,
			CompanyName: company.Name,
			Month:       req.PayrollMonth,
			SalaryData:  SalaryData(record.SalaryData),
		}
		if err := qtx.UpsertSalaryRecord(ctx, entry); err != nil {
			s.logger.Error("finalize payroll persist failed",
				zap.String("request_id", rid),
				zap.String("employee_id", record.EmployeeID),
				zap.Error(err),
			)
			return FinalizePayrollResponse{}, mapRepositoryError(err, payrollerrors.ErrSalaryRecordNotFound)
		}
	}

	if s.outbox != nil {
		event := events.PayrollFinalizedEvent{
			EventType:   "payroll_finalized",
			CompanyID:   req.CompanyID,
			Month:       req.PayrollMonth,
			RecordCount: len(req.PayrollRecords),
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return FinalizePayrollResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   req.CompanyID,
			EventType:     event.EventType,
			Topic:         events.PayrollFinalizedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("finalize payroll outbox persist failed",
				zap.String("request_id", rid),
				zap.String("company_id", req.CompanyID),
				zap.Error(err),
			)
			return FinalizePayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return FinalizePayrollResponse{}, err
	}

	s.logger.Info("finalize payroll success",
		zap.String("request_id", rid),
		zap.String("company_id", req.CompanyID),
		zap.String("month", req.PayrollMonth),
		zap.Int("record_count", len(req.PayrollRecords)),
	)

	return FinalizePayrollResponse{
		CompanyID:    req.CompanyID,
		PayrollMonth: req.PayrollMonth,
		RecordCount:  len(req.PayrollRecords),
	}, nil
}

func (s *service) GetReport(
	ctx context.Context,
	filter ReportQuery,
) ([]SalaryRecordResponse, int64, error) {
	if filter.Month != "" && !monthPattern.MatchString(filter.Month) {
		return nil, 0, payrollerrors.ErrInvalidMonthFormat
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	records, total, err := s.repo.FindRecords(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToRecordListResponse(records), total, nil
}

func (s *service) GetByMonth(
	ctx context.Context,
	companyID, month string,
) ([]SalaryRecordResponse, error) {
	if !monthPattern.MatchString(month) {
		return nil, payrollerrors.ErrInvalidMonthFormat
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, apperror.InvalidField("companyId")
	}

	records, err := s.repo.FindByCompanyAndMonth(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	return mapToRecordListResponse(records), nil
}

func (s *service) GetEmployeeReport(
	ctx context.Context,
	employeeID string,
) ([]SalaryRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employeeId")
	}

	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, payrollerrors.ErrSalaryRecordNotFound
	}
	return mapToRecordListResponse(records), nil
}

// GetStats collapses concurrent callers onto one aggregate query.
func (s *service) GetStats(ctx context.Context) (PayrollStatsResponse, error) {
	v, err, _ := s.stats.Do("payroll-stats", func() (any, error) {
		return s.repo.Stats(ctx)
	})
	if err != nil {
		return PayrollStatsResponse{}, err
	}

	agg := v.(*statsAggregate)
	return PayrollStatsResponse{
		TotalRecords:       agg.TotalRecords,
		CompaniesProcessed: agg.CompaniesProcessed,
		LatestMonth:        agg.LatestMonth,
		MonthlyTotals:      agg.MonthlyTotals,
	}, nil
}

func mapToRecordResponse(record SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:          record.ID.String(),
		EmployeeID:  record.EmployeeID.String(),
		CompanyID:   record.CompanyID.String(),
		CompanyName: record.CompanyName,
		Month:       record.Month,
		SalaryData:  record.SalaryData,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToRecordListResponse(records []SalaryRecord) []SalaryRecordResponse {
	resp := make([]SalaryRecordResponse, len(records))
	for i, record := range records {
		resp[i] = mapToRecordResponse(record)
	}
	return resp
}
