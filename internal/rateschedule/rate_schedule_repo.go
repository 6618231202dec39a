package rateschedule

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rate_schedule_repo.go -destination=mock/rate_schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, schedule *RateSchedule) error
	FindByID(ctx context.Context, id string) (*RateSchedule, error)
	FindActiveBySegment(ctx context.Context, category Category, subCategory SubCategory) ([]RateSchedule, error)
	FindEffective(ctx context.Context, category Category, subCategory SubCategory, onDate time.Time, activeOnly bool) (*RateSchedule, error)
	List(ctx context.Context, filter ListRateSchedulesQuery, offset, limit int) ([]RateSchedule, int64, error)
	Update(ctx context.Context, schedule *RateSchedule) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn binds queries to the active transaction when one is present. sql.Tx
// satisfies gorm's ConnPool, so the same repository code runs inside or
// outside a transaction.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, schedule *RateSchedule) error {
	return r.conn(ctx).Create(schedule).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*RateSchedule, error) {
	var schedule RateSchedule
	err := r.conn(ctx).
		First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) FindActiveBySegment(
	ctx context.Context,
	category Category,
	subCategory SubCategory,
) ([]RateSchedule, error) {
	var schedules []RateSchedule
	err := r.conn(ctx).
		Where("category = ? AND sub_category = ? AND is_active = TRUE", category, subCategory).
		Order("effective_from ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindEffective(
	ctx context.Context,
	category Category,
	subCategory SubCategory,
	onDate time.Time,
	activeOnly bool,
) (*RateSchedule, error) {
	db := r.conn(ctx).
		Where("category = ? AND sub_category = ?", category, subCategory)

	if activeOnly {
		db = db.Where("is_active = TRUE")
	}

	var schedules []RateSchedule
	if err := db.Order("effective_from DESC").Find(&schedules).Error; err != nil {
		return nil, err
	}

	// by the non-overlap invariant at most one interval contains onDate; the
	// DESC order makes the most recent effectiveFrom win if the data is dirty
	for i := range schedules {
		if containsDate(schedules[i].EffectiveFrom, schedules[i].EffectiveTo, onDate) {
			return &schedules[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *repository) List(
	ctx context.Context,
	filter ListRateSchedulesQuery,
	offset, limit int,
) ([]RateSchedule, int64, error) {
	db := r.conn(ctx).Model(&RateSchedule{})

	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.SubCategory != "" {
		db = db.Where("sub_category = ?", filter.SubCategory)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schedules []RateSchedule
	err := db.Order("effective_from DESC").
		Offset(offset).
		Limit(limit).
		Find(&schedules).Error
	return schedules, total, err
}

func (r *repository) Update(ctx context.Context, schedule *RateSchedule) error {
	return r.conn(ctx).Save(schedule).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&RateSchedule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
