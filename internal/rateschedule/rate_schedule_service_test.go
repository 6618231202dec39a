package rateschedule

import (
	"context"
	"database/sql"
	"testing"
	"time"

	ratescheduleerrors "staffpay/internal/rateschedule/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn              func(tx *sql.Tx) Repository
	createFn              func(ctx context.Context, schedule *RateSchedule) error
	findByIDFn            func(ctx context.Context, id string) (*RateSchedule, error)
	findActiveBySegmentFn func(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error)
	findEffectiveFn       func(ctx context.Context, category Category, subCategory SubCategory, onDate time.Time, activeOnly bool) (*RateSchedule, error)
	listFn                func(ctx context.Context, filter ListRateSchedulesQuery, offset, limit int) ([]RateSchedule, int64, error)
	updateFn              func(ctx context.Context, schedule *RateSchedule) error
	deleteFn              func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepo) Create(ctx context.Context, schedule *RateSchedule) error {
	return f.createFn(ctx, schedule)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*RateSchedule, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindActiveBySegment(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error) {
	return f.findActiveBySegmentFn(ctx, category, subCategory)
}

func (f *fakeRepo) FindEffective(ctx context.Context, category Category, subCategory SubCategory, onDate time.Time, activeOnly bool) (*RateSchedule, error) {
	return f.findEffectiveFn(ctx, category, subCategory, onDate, activeOnly)
}

func (f *fakeRepo) List(ctx context.Context, filter ListRateSchedulesQuery, offset, limit int) ([]RateSchedule, int64, error) {
	return f.listFn(ctx, filter, offset, limit)
}

func (f *fakeRepo) Update(ctx context.Context, schedule *RateSchedule) error {
	return f.updateFn(ctx, schedule)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestService_Create_AutoClosesOngoingPredecessor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	ongoing := RateSchedule{
		ID:            uuid.New(),
		Category:      CategoryCentral,
		SubCategory:   SubCategorySkilled,
		RatePerDay:    800,
		EffectiveFrom: date(2024, 1, 1),
		IsActive:      true,
	}

	var closed *RateSchedule
	var created *RateSchedule

	repo := &fakeRepo{}
	repo.findActiveBySegmentFn = func(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error) {
		return []RateSchedule{ongoing}, nil
	}
	repo.updateFn = func(ctx context.Context, schedule *RateSchedule) error {
		closed = schedule
		return nil
	}
	repo.createFn = func(ctx context.Context, schedule *RateSchedule) error {
		created = schedule
		return nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, CreateRateScheduleRequest{
		Category:      "CENTRAL",
		SubCategory:   "SKILLED",
		RatePerDay:    850,
		EffectiveFrom: "2024-04-01",
	})
	assert.NoError(t, err)

	assert.NotNil(t, closed)
	assert.NotNil(t, closed.EffectiveTo)
	assert.Equal(t, "2024-03-31T23:59:59.999Z",
		closed.EffectiveTo.Format("2006-01-02T15:04:05.000Z07:00"))

	assert.NotNil(t, created)
	assert.Nil(t, created.EffectiveTo)
	assert.Equal(t, float64(850), resp.RatePerDay)
	assert.Nil(t, resp.EffectiveTo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsBoundedOverlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	bounded := date(2024, 6, 30)
	existing := RateSchedule{
		ID:            uuid.New(),
		Category:      CategoryCentral,
		SubCategory:   SubCategorySkilled,
		EffectiveFrom: date(2024, 1, 1),
		EffectiveTo:   &bounded,
		IsActive:      true,
	}

	repo := &fakeRepo{}
	repo.findActiveBySegmentFn = func(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error) {
		return []RateSchedule{existing}, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateRateScheduleRequest{
		Category:      "CENTRAL",
		SubCategory:   "SKILLED",
		RatePerDay:    900,
		EffectiveFrom: "2024-04-01",
	})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrOverlappingRateSchedule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsMultipleOngoingCandidates(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	a := RateSchedule{ID: uuid.New(), EffectiveFrom: date(2024, 1, 1), IsActive: true}
	b := RateSchedule{ID: uuid.New(), EffectiveFrom: date(2024, 2, 1), IsActive: true}

	repo := &fakeRepo{}
	repo.findActiveBySegmentFn = func(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error) {
		return []RateSchedule{a, b}, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateRateScheduleRequest{
		Category:      "STATE",
		SubCategory:   "UNSKILLED",
		RatePerDay:    700,
		EffectiveFrom: "2024-04-01",
	})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrOverlappingRateSchedule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_ValidatesInput(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.Create(context.Background(), CreateRateScheduleRequest{
		Category:      "CENTRAL",
		SubCategory:   "SKILLED",
		RatePerDay:    0,
		EffectiveFrom: "2024-01-01",
	})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrInvalidRate)

	to := "2024-01-01"
	_, err = svc.Create(context.Background(), CreateRateScheduleRequest{
		Category:      "CENTRAL",
		SubCategory:   "SKILLED",
		RatePerDay:    500,
		EffectiveFrom: "2024-06-01",
		EffectiveTo:   &to,
	})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrInvalidDateRange)

	_, err = svc.Create(context.Background(), CreateRateScheduleRequest{
		Category:      "FEDERAL",
		SubCategory:   "SKILLED",
		RatePerDay:    500,
		EffectiveFrom: "2024-06-01",
	})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrInvalidCategory)
}

func TestService_Update_ReChecksOverlapExcludingSelf(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	selfID := uuid.New()
	bounded := date(2024, 3, 31)
	self := RateSchedule{
		ID:            selfID,
		Category:      CategoryCentral,
		SubCategory:   SubCategorySkilled,
		RatePerDay:    800,
		EffectiveFrom: date(2024, 1, 1),
		EffectiveTo:   &bounded,
		IsActive:      true,
	}
	otherEnd := date(2024, 8, 31)
	other := RateSchedule{
		ID:            uuid.New(),
		Category:      CategoryCentral,
		SubCategory:   SubCategorySkilled,
		EffectiveFrom: date(2024, 4, 1),
		EffectiveTo:   &otherEnd,
		IsActive:      true,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*RateSchedule, error) {
		clone := self
		return &clone, nil
	}
	repo.findActiveBySegmentFn = func(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error) {
		return []RateSchedule{self, other}, nil
	}
	var updated *RateSchedule
	repo.updateFn = func(ctx context.Context, schedule *RateSchedule) error {
		updated = schedule
		return nil
	}

	svc := NewService(db, repo)

	// moving the end date into the other record's window conflicts
	mock.ExpectBegin()
	mock.ExpectRollback()
	to := "2024-05-15"
	_, err := svc.Update(context.Background(), selfID.String(), UpdateRateScheduleRequest{EffectiveTo: &to})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrOverlappingRateSchedule)

	// a pure rate change skips the overlap check entirely
	mock.ExpectBegin()
	mock.ExpectCommit()
	newRate := 825.0
	resp, err := svc.Update(context.Background(), selfID.String(), UpdateRateScheduleRequest{RatePerDay: &newRate})
	assert.NoError(t, err)
	assert.Equal(t, 825.0, resp.RatePerDay)
	assert.NotNil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*RateSchedule, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), uuid.New().String(), UpdateRateScheduleRequest{})
	assert.ErrorIs(t, err, ratescheduleerrors.ErrRateScheduleNotFound)
}

func TestService_LookupRate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	from := date(2024, 1, 1)
	to := date(2024, 6, 30)
	stored := RateSchedule{
		ID:            uuid.New(),
		Category:      CategoryCentral,
		SubCategory:   SubCategorySkilled,
		RatePerDay:    800,
		EffectiveFrom: from,
		EffectiveTo:   &to,
		IsActive:      true,
	}

	repo := &fakeRepo{}
	repo.findEffectiveFn = func(ctx context.Context, category Category, subCategory SubCategory, onDate time.Time, activeOnly bool) (*RateSchedule, error) {
		if !onDate.Before(from) && !onDate.After(to) {
			return &stored, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	// inside the interval, boundaries included
	for _, d := range []time.Time{from, date(2024, 3, 15), to} {
		resp, err := svc.GetRateForDate(context.Background(), "CENTRAL", "SKILLED", d)
		assert.NoError(t, err)
		assert.Equal(t, float64(800), resp.RatePerDay)
	}

	// just outside either boundary
	for _, d := range []time.Time{from.AddDate(0, 0, -1), to.AddDate(0, 0, 1)} {
		_, err := svc.GetRateForDate(context.Background(), "CENTRAL", "SKILLED", d)
		assert.ErrorIs(t, err, ratescheduleerrors.ErrNoEffectiveRate)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.deleteFn = func(ctx context.Context, id string) error {
		return gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	err := svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ratescheduleerrors.ErrRateScheduleNotFound)
}
