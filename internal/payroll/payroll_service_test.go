package payroll

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	payrollerrors "staffpay/internal/payroll/errors"
	"staffpay/internal/salarytemplate"
	salarytemplateerrors "staffpay/internal/salarytemplate/errors"
	"staffpay/internal/shared/apperror"
)

type fakeRepo struct {
	withTxFn                 func(tx *sql.Tx) Repository
	findCompanyFn            func(ctx context.Context, companyID string) (*companyRow, error)
	findEmployeesByCompanyFn func(ctx context.Context, companyID string) ([]employeeRow, error)
	findEmploymentHistoryFn  func(ctx context.Context, employeeID string) ([]employmentRow, error)
	findAttendanceByMonthFn  func(ctx context.Context, companyID string, employeeIDs []string, month string) ([]attendanceRow, error)
	upsertSalaryRecordFn     func(ctx context.Context, record *SalaryRecord) error
	findRecordsFn            func(ctx context.Context, filter ReportQuery, offset, limit int) ([]SalaryRecord, int64, error)
	findByCompanyAndMonthFn  func(ctx context.Context, companyID, month string) ([]SalaryRecord, error)
	findByEmployeeFn         func(ctx context.Context, employeeID string) ([]SalaryRecord, error)
	statsFn                  func(ctx context.Context) (*statsAggregate, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepo) FindCompany(ctx context.Context, companyID string) (*companyRow, error) {
	return f.findCompanyFn(ctx, companyID)
}

func (f *fakeRepo) FindEmployeesByCompany(ctx context.Context, companyID string) ([]employeeRow, error) {
	return f.findEmployeesByCompanyFn(ctx, companyID)
}

func (f *fakeRepo) FindEmploymentHistory(ctx context.Context, employeeID string) ([]employmentRow, error) {
	return f.findEmploymentHistoryFn(ctx, employeeID)
}

func (f *fakeRepo) FindAttendanceByMonth(ctx context.Context, companyID string, employeeIDs []string, month string) ([]attendanceRow, error) {
	return f.findAttendanceByMonthFn(ctx, companyID, employeeIDs, month)
}

func (f *fakeRepo) UpsertSalaryRecord(ctx context.Context, record *SalaryRecord) error {
	return f.upsertSalaryRecordFn(ctx, record)
}

func (f *fakeRepo) FindRecords(ctx context.Context, filter ReportQuery, offset, limit int) ([]SalaryRecord, int64, error) {
	return f.findRecordsFn(ctx, filter, offset, limit)
}

func (f *fakeRepo) FindByCompanyAndMonth(ctx context.Context, companyID, month string) ([]SalaryRecord, error) {
	return f.findByCompanyAndMonthFn(ctx, companyID, month)
}

func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}

func (f *fakeRepo) Stats(ctx context.Context) (*statsAggregate, error) {
	return f.statsFn(ctx)
}

type fakeTemplateRepo struct {
	findActiveByCompanyFn func(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error)
}

func (f *fakeTemplateRepo) Create(ctx context.Context, template *salarytemplate.SalaryTemplate) error {
	return nil
}

func (f *fakeTemplateRepo) FindByID(ctx context.Context, id string) (*salarytemplate.SalaryTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTemplateRepo) FindActiveByCompany(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error) {
	return f.findActiveByCompanyFn(ctx, companyID)
}

func (f *fakeTemplateRepo) Update(ctx context.Context, template *salarytemplate.SalaryTemplate) error {
	return nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func basicTemplate(companyID uuid.UUID) *salarytemplate.SalaryTemplate {
	return &salarytemplate.SalaryTemplate{
		ID:        uuid.New(),
		CompanyID: companyID,
		MandatoryFields: salarytemplate.FieldList{
			{
				Key:     "basicDuty",
				Label:   "Basic Duty",
				Type:    salarytemplate.FieldTypeNumber,
				Purpose: salarytemplate.PurposeCalculation,
				Enabled: true,
				Rules:   &salarytemplate.FieldRules{DefaultValue: floatPtr(30)},
			},
			{
				Key:     "hra",
				Label:   "House Rent Allowance",
				Type:    salarytemplate.FieldTypeNumber,
				Purpose: salarytemplate.PurposeAllowance,
				Enabled: true,
				Rules: &salarytemplate.FieldRules{
					CalculationType: "percentage",
					Percentage:      10,
					BasedOn:         "basicPay",
				},
			},
			{
				Key:     "pf",
				Label:   "Provident Fund",
				Type:    salarytemplate.FieldTypeNumber,
				Purpose: salarytemplate.PurposeDeduction,
				Enabled: true,
			},
		},
	}
}

type calcFixture struct {
	companyID uuid.UUID
	employees []employeeRow
	history   map[string][]employmentRow
	repo      *fakeRepo
	templates *fakeTemplateRepo
}

func newCalcFixture() *calcFixture {
	f := &calcFixture{
		companyID: uuid.New(),
		history:   make(map[string][]employmentRow),
	}

	f.repo = &fakeRepo{
		findCompanyFn: func(ctx context.Context, companyID string) (*companyRow, error) {
			return &companyRow{ID: f.companyID, Name: "Acme Security Services", IsActive: true}, nil
		},
		findEmployeesByCompanyFn: func(ctx context.Context, companyID string) ([]employeeRow, error) {
			return f.employees, nil
		},
		findEmploymentHistoryFn: func(ctx context.Context, employeeID string) ([]employmentRow, error) {
			return f.history[employeeID], nil
		},
		findAttendanceByMonthFn: func(ctx context.Context, companyID string, employeeIDs []string, month string) ([]attendanceRow, error) {
			return nil, nil
		},
	}
	f.templates = &fakeTemplateRepo{
		findActiveByCompanyFn: func(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error) {
			return basicTemplate(f.companyID), nil
		},
	}
	return f
}

func (f *calcFixture) addEmployee(name string, monthlySalary float64, employed bool) employeeRow {
	emp := employeeRow{ID: uuid.New(), FullName: name, FatherName: name + " Sr", IsActive: true}
	f.employees = append(f.employees, emp)
	if monthlySalary > 0 {
		row := employmentRow{
			ID:              uuid.New(),
			EmployeeID:      emp.ID,
			CompanyID:       f.companyID,
			MonthlySalary:   monthlySalary,
			DesignationName: "Security Guard",
		}
		if !employed {
			leavingDate := row.JoiningDate.AddDate(1, 0, 0)
			row.LeavingDate = &leavingDate
		}
		f.history[emp.ID.String()] = []employmentRow{row}
	}
	return emp
}

func TestCalculate_ThreeEmployeesOneWithoutHistory(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	f.addEmployee("Asha", 9000, true)
	f.addEmployee("Binod", 0, true) // no employment history at all
	f.addEmployee("Chitra", 12000, true)

	presentDays := map[string]int{
		f.employees[0].ID.String(): 30,
		f.employees[2].ID.String(): 30,
	}
	f.repo.findAttendanceByMonthFn = func(ctx context.Context, companyID string, employeeIDs []string, month string) ([]attendanceRow, error) {
		var rows []attendanceRow
		for _, emp := range f.employees {
			if days, ok := presentDays[emp.ID.String()]; ok {
				rows = append(rows, attendanceRow{EmployeeID: emp.ID, Month: month, PresentCount: days})
			}
		}
		return rows, nil
	}

	svc := NewService(db, f.repo, f.templates)
	resp, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Results, 3)

	assert.Equal(t, StatusComputed, resp.Results[0].Status)
	assert.Equal(t, 1, resp.Results[0].SerialNumber)

	assert.Equal(t, StatusSkippedNoHistory, resp.Results[1].Status)
	assert.Equal(t, "No employment history found", resp.Results[1].Error)
	assert.Equal(t, 2, resp.Results[1].SerialNumber)
	assert.Nil(t, resp.Results[1].SalaryData)

	assert.Equal(t, StatusComputed, resp.Results[2].Status)
	assert.Equal(t, 3, resp.Results[2].SerialNumber)

	// 9000/30*30 = 9000 basic, +10% hra = 9900 gross, -12% pf on basic = 1080
	first := resp.Results[0].SalaryData
	assert.Equal(t, 9000.0, first["basicPay"])
	assert.Equal(t, 900.0, first["hra"])
	assert.Equal(t, 9900.0, first["grossSalary"])
	assert.Equal(t, 1080.0, first["pf"])
	assert.Equal(t, 8820.0, first["netSalary"])
	assert.Equal(t, "Acme Security Services", first["companyName"])
	assert.Equal(t, "Security Guard", first["designation"])
}

func TestCalculate_FormerEmployeeIsSkipped(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	f.addEmployee("Asha", 9000, false)

	svc := NewService(db, f.repo, f.templates)
	resp, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, StatusSkippedNotEmployed, resp.Results[0].Status)
	assert.Equal(t, "Employee is not currently employed", resp.Results[0].Error)
}

func TestCalculate_MissingAttendanceMeansZeroPay(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	f.addEmployee("Asha", 9000, true)

	svc := NewService(db, f.repo, f.templates)
	resp, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	assert.NoError(t, err)
	data := resp.Results[0].SalaryData
	assert.Equal(t, 0, data["presentDays"])
	assert.Equal(t, 0.0, data["basicPay"])
	assert.Equal(t, 0.0, data["hra"])
	assert.Equal(t, 0.0, data["grossSalary"])
	assert.Equal(t, 0.0, data["netSalary"])
}

func TestCalculate_GrossSalaryPercentageSeesOnlyEarlierAllowances(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	f.addEmployee("Asha", 9000, true)
	f.repo.findAttendanceByMonthFn = func(ctx context.Context, companyID string, employeeIDs []string, month string) ([]attendanceRow, error) {
		return []attendanceRow{{EmployeeID: f.employees[0].ID, Month: month, PresentCount: 30}}, nil
	}

	template := basicTemplate(f.companyID)
	template.OptionalFields = salarytemplate.FieldList{
		{
			Key:     "bonus",
			Label:   "Bonus",
			Type:    salarytemplate.FieldTypeNumber,
			Purpose: salarytemplate.PurposeAllowance,
			Enabled: true,
			Rules: &salarytemplate.FieldRules{
				CalculationType: "percentage",
				Percentage:      5,
				BasedOn:         "grossSalary",
			},
		},
	}
	f.templates.findActiveByCompanyFn = func(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error) {
		return template, nil
	}

	svc := NewService(db, f.repo, f.templates)
	resp, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	assert.NoError(t, err)
	data := resp.Results[0].SalaryData

	// bonus evaluates after hra: 5% of (9000 basic + 900 hra) = 495, not
	// 5% of the final gross including itself.
	assert.Equal(t, 495.0, data["bonus"])
	assert.Equal(t, 10395.0, data["grossSalary"])
}

func TestCalculate_CollectsEveryMissingAdminInput(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	first := f.addEmployee("Asha", 9000, true)
	second := f.addEmployee("Binod", 9500, true)

	template := basicTemplate(f.companyID)
	template.CustomFields = salarytemplate.FieldList{
		{
			Key:                "fieldAllowance",
			Label:              "Field Allowance",
			Type:               salarytemplate.FieldTypeNumber,
			Purpose:            salarytemplate.PurposeAllowance,
			Enabled:            true,
			RequiresAdminInput: true,
		},
	}
	f.templates.findActiveByCompanyFn = func(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error) {
		return template, nil
	}

	svc := NewService(db, f.repo, f.templates)

	// Only the first employee has the input supplied.
	_, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
		AdminInputs: map[string]map[string]*float64{
			first.ID.String(): {"fieldAllowance": floatPtr(500)},
		},
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)

	missing, ok := appErr.Details.([]MissingAdminInput)
	assert.True(t, ok)
	assert.Len(t, missing, 1)
	assert.Equal(t, second.ID.String(), missing[0].EmployeeID)
	assert.Equal(t, "fieldAllowance", missing[0].FieldKey)
}

func TestCalculate_CompanyNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findCompanyFn: func(ctx context.Context, companyID string) (*companyRow, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, &fakeTemplateRepo{})
	_, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    uuid.NewString(),
		PayrollMonth: "2024-03",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrCompanyNotFound)
}

func TestCalculate_TemplateNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	f.addEmployee("Asha", 9000, true)
	f.templates.findActiveByCompanyFn = func(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, f.repo, f.templates)
	_, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	assert.ErrorIs(t, err, salarytemplateerrors.ErrTemplateNotFound)
}

func TestCalculate_NoEmployees(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()

	svc := NewService(db, f.repo, f.templates)
	_, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrNoEmployeesFound)
}

func TestCalculate_RejectsBadMonth(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeTemplateRepo{})

	for _, month := range []string{"2024-13", "2024-0", "03-2024", "2024/03", "202403"} {
		_, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
			CompanyID:    uuid.NewString(),
			PayrollMonth: month,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonthFormat, month)
	}
}

func TestFinalize_UpsertsEveryRecordInOneTransaction(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New()
	employeeA := uuid.NewString()
	employeeB := uuid.NewString()

	var upserted []*SalaryRecord
	repo := &fakeRepo{
		findCompanyFn: func(ctx context.Context, id string) (*companyRow, error) {
			return &companyRow{ID: companyID, Name: "Acme Security Services"}, nil
		},
		upsertSalaryRecordFn: func(ctx context.Context, record *SalaryRecord) error {
			upserted = append(upserted, record)
			return nil
		},
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewService(db, repo, &fakeTemplateRepo{})
	resp, err := svc.Finalize(context.Background(), FinalizePayrollRequest{
		CompanyID:    companyID.String(),
		PayrollMonth: "2024-03",
		PayrollRecords: []PayrollRecordInput{
			{EmployeeID: employeeA, SalaryData: map[string]any{"netSalary": 8820.0}},
			{EmployeeID: employeeB, SalaryData: map[string]any{"netSalary": 9100.0}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.RecordCount)
	assert.Len(t, upserted, 2)
	assert.Equal(t, "Acme Security Services", upserted[0].CompanyName)
	assert.Equal(t, "2024-03", upserted[0].Month)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculate_AdminInputRequiredOnOptionalFieldToo(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	f := newCalcFixture()
	emp := f.addEmployee("Asha", 9000, true)

	// required admin input on an optional field, not a custom one
	template := basicTemplate(f.companyID)
	template.OptionalFields = append(template.OptionalFields, salarytemplate.SalaryField{
		Key:                "uniformAllowance",
		Label:              "Uniform Allowance",
		Type:               salarytemplate.FieldTypeNumber,
		Purpose:            salarytemplate.PurposeAllowance,
		Enabled:            true,
		RequiresAdminInput: true,
	})
	f.templates.findActiveByCompanyFn = func(ctx context.Context, companyID string) (*salarytemplate.SalaryTemplate, error) {
		return template, nil
	}

	svc := NewService(db, f.repo, f.templates)
	_, err := svc.Calculate(context.Background(), CalculatePayrollRequest{
		CompanyID:    f.companyID.String(),
		PayrollMonth: "2024-03",
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	missing, ok := appErr.Details.([]MissingAdminInput)
	assert.True(t, ok)
	assert.Equal(t, []MissingAdminInput{{EmployeeID: emp.ID.String(), FieldKey: "uniformAllowance"}}, missing)
}

func TestFinalize_SecondFinalizeOverwritesSameKey(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New()
	employeeID := uuid.NewString()

	// keyed the way the ledger's unique index is
	type ledgerKey struct{ employee, company, month string }
	ledger := map[ledgerKey]*SalaryRecord{}

	repo := &fakeRepo{
		findCompanyFn: func(ctx context.Context, id string) (*companyRow, error) {
			return &companyRow{ID: companyID, Name: "Acme Security Services"}, nil
		},
		upsertSalaryRecordFn: func(ctx context.Context, record *SalaryRecord) error {
			key := ledgerKey{record.EmployeeID.String(), record.CompanyID.String(), record.Month}
			ledger[key] = record
			return nil
		},
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewService(db, repo, &fakeTemplateRepo{})

	_, err := svc.Finalize(context.Background(), FinalizePayrollRequest{
		CompanyID:    companyID.String(),
		PayrollMonth: "2024-03",
		PayrollRecords: []PayrollRecordInput{
			{EmployeeID: employeeID, SalaryData: map[string]any{"netSalary": 8820.0}},
		},
	})
	assert.NoError(t, err)

	_, err = svc.Finalize(context.Background(), FinalizePayrollRequest{
		CompanyID:    companyID.String(),
		PayrollMonth: "2024-03",
		PayrollRecords: []PayrollRecordInput{
			{EmployeeID: employeeID, SalaryData: map[string]any{"netSalary": 9250.0}},
		},
	})
	assert.NoError(t, err)

	// same key, one row, second payload wins
	assert.Len(t, ledger, 1)
	stored := ledger[ledgerKey{employeeID, companyID.String(), "2024-03"}]
	assert.NotNil(t, stored)
	assert.Equal(t, 9250.0, stored.SalaryData["netSalary"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize_InvalidRecordAbortsBeforeAnyWrite(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	upserts := 0
	repo := &fakeRepo{
		findCompanyFn: func(ctx context.Context, id string) (*companyRow, error) {
			return &companyRow{ID: uuid.New(), Name: "Acme"}, nil
		},
		upsertSalaryRecordFn: func(ctx context.Context, record *SalaryRecord) error {
			upserts++
			return nil
		},
	}

	svc := NewService(db, repo, &fakeTemplateRepo{})
	_, err := svc.Finalize(context.Background(), FinalizePayrollRequest{
		CompanyID:    uuid.NewString(),
		PayrollMonth: "2024-03",
		PayrollRecords: []PayrollRecordInput{
			{EmployeeID: uuid.NewString(), SalaryData: map[string]any{"netSalary": 8820.0}},
			{EmployeeID: "not-a-uuid", SalaryData: map[string]any{"netSalary": 9100.0}},
			{EmployeeID: uuid.NewString()}, // no salary data
		},
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollRecords)
	assert.Equal(t, 0, upserts)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, []int{1, 2}, appErr.Details)
}

func TestFinalize_RollsBackWhenUpsertFails(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findCompanyFn: func(ctx context.Context, id string) (*companyRow, error) {
			return &companyRow{ID: uuid.New(), Name: "Acme"}, nil
		},
		upsertSalaryRecordFn: func(ctx context.Context, record *SalaryRecord) error {
			return errors.New("connection reset")
		},
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, repo, &fakeTemplateRepo{})
	_, err := svc.Finalize(context.Background(), FinalizePayrollRequest{
		CompanyID:    uuid.NewString(),
		PayrollMonth: "2024-03",
		PayrollRecords: []PayrollRecordInput{
			{EmployeeID: uuid.NewString(), SalaryData: map[string]any{"netSalary": 100.0}},
		},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeReport_NotFoundWhenEmpty(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, employeeID string) ([]SalaryRecord, error) {
			return nil, nil
		},
	}

	svc := NewService(db, repo, &fakeTemplateRepo{})
	_, err := svc.GetEmployeeReport(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, payrollerrors.ErrSalaryRecordNotFound)
}

func TestGetStats_MapsAggregates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		statsFn: func(ctx context.Context) (*statsAggregate, error) {
			return &statsAggregate{
				TotalRecords:       42,
				CompaniesProcessed: 3,
				LatestMonth:        "2024-03",
				MonthlyTotals: []MonthlyTotal{
					{Month: "2024-03", Employees: 21, TotalNetSalary: 189000},
				},
			}, nil
		},
	}

	svc := NewService(db, repo, &fakeTemplateRepo{})
	stats, err := svc.GetStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalRecords)
	assert.Equal(t, "2024-03", stats.LatestMonth)
	assert.Len(t, stats.MonthlyTotals, 1)
}
