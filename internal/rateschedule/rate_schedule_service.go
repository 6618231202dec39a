package rateschedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	ratescheduleerrors "staffpay/internal/rateschedule/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rate_schedule_service.go -destination=mock/rate_schedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRateScheduleRequest) (RateScheduleResponse, error)
	GetByID(ctx context.Context, id string) (RateScheduleResponse, error)
	GetAll(ctx context.Context, filter ListRateSchedulesQuery) ([]RateScheduleResponse, int64, error)
	Update(ctx context.Context, id string, req UpdateRateScheduleRequest) (RateScheduleResponse, error)
	Delete(ctx context.Context, id string) error
	GetActiveRate(ctx context.Context, category, subCategory string) (RateScheduleResponse, error)
	GetRateForDate(ctx context.Context, category, subCategory string, onDate time.Time) (RateScheduleResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// Create inserts a new rate for a segment. If the only conflicting active rate
// is an ongoing one that started earlier, it is closed at the day boundary
// before the new rate takes effect; both writes share one transaction. Any
// other overlap is rejected outright, with no writes.
func (s *service) Create(
	ctx context.Context,
	req CreateRateScheduleRequest,
) (RateScheduleResponse, error) {
	category, subCategory, err := parseSegment(req.Category, req.SubCategory)
	if err != nil {
		return RateScheduleResponse{}, err
	}

	if req.RatePerDay <= 0 {
		return RateScheduleResponse{}, ratescheduleerrors.ErrInvalidRate
	}

	effectiveFrom, err := parseScheduleDate(req.EffectiveFrom)
	if err != nil {
		return RateScheduleResponse{}, err
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != nil && *req.EffectiveTo != "" {
		t, err := parseScheduleDate(*req.EffectiveTo)
		if err != nil {
			return RateScheduleResponse{}, err
		}
		effectiveTo = &t
	}

	if effectiveTo != nil && !effectiveTo.After(effectiveFrom) {
		return RateScheduleResponse{}, ratescheduleerrors.ErrInvalidDateRange
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	schedule := &RateSchedule{
		ID:            uuid.New(),
		Category:      category,
		SubCategory:   subCategory,
		RatePerDay:    req.RatePerDay,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		IsActive:      isActive,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RateScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if isActive {
		active, err := qtx.FindActiveBySegment(ctx, category, subCategory)
		if err != nil {
			return RateScheduleResponse{}, err
		}

		var conflicting []RateSchedule
		for _, existing := range active {
			if overlaps(existing.EffectiveFrom, existing.EffectiveTo, effectiveFrom, effectiveTo) {
				conflicting = append(conflicting, existing)
			}
		}

		if len(conflicting) > 0 {
			predecessor, ok := autoCloseCandidate(conflicting, effectiveFrom)
			if !ok {
				return RateScheduleResponse{}, ratescheduleerrors.ErrOverlappingRateSchedule
			}

			closeAt := closeOfDayBefore(effectiveFrom)
			predecessor.EffectiveTo = &closeAt
			if err := qtx.Update(ctx, predecessor); err != nil {
				return RateScheduleResponse{}, err
			}
		}
	}

	if err := qtx.Create(ctx, schedule); err != nil {
		return RateScheduleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RateScheduleResponse{}, err
	}

	return mapToResponse(*schedule), nil
}

// autoCloseCandidate applies the conservative supersession rule: resolvable
// only when exactly one conflicting rate exists, it is ongoing, and it starts
// strictly before the new rate. Anything richer (bounded overlaps, multiple
// candidates) stays a conflict.
func autoCloseCandidate(conflicting []RateSchedule, newFrom time.Time) (*RateSchedule, bool) {
	if len(conflicting) != 1 {
		return nil, false
	}
	candidate := conflicting[0]
	if candidate.EffectiveTo != nil {
		return nil, false
	}
	if !candidate.EffectiveFrom.Before(newFrom) {
		return nil, false
	}
	return &candidate, true
}

func (s *service) GetByID(ctx context.Context, id string) (RateScheduleResponse, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RateScheduleResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*schedule), nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter ListRateSchedulesQuery,
) ([]RateScheduleResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	schedules, total, err := s.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return mapToListResponse(schedules), total, nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateRateScheduleRequest,
) (RateScheduleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RateScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	schedule, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RateScheduleResponse{}, mapRepositoryError(err)
	}

	intervalChanged := false

	if req.RatePerDay != nil {
		if *req.RatePerDay <= 0 {
			return RateScheduleResponse{}, ratescheduleerrors.ErrInvalidRate
		}
		schedule.RatePerDay = *req.RatePerDay
	}

	if req.EffectiveFrom != nil {
		from, err := parseScheduleDate(*req.EffectiveFrom)
		if err != nil {
			return RateScheduleResponse{}, err
		}
		schedule.EffectiveFrom = from
		intervalChanged = true
	}

	if req.EffectiveTo != nil {
		if *req.EffectiveTo == "" {
			schedule.EffectiveTo = nil
		} else {
			to, err := parseScheduleDate(*req.EffectiveTo)
			if err != nil {
				return RateScheduleResponse{}, err
			}
			schedule.EffectiveTo = &to
		}
		intervalChanged = true
	}

	if req.IsActive != nil {
		if *req.IsActive != schedule.IsActive {
			intervalChanged = true
		}
		schedule.IsActive = *req.IsActive
	}

	if schedule.EffectiveTo != nil && !schedule.EffectiveTo.After(schedule.EffectiveFrom) {
		return RateScheduleResponse{}, ratescheduleerrors.ErrInvalidDateRange
	}

	if intervalChanged && schedule.IsActive {
		active, err := qtx.FindActiveBySegment(ctx, schedule.Category, schedule.SubCategory)
		if err != nil {
			return RateScheduleResponse{}, err
		}

		for _, other := range active {
			if other.ID == schedule.ID {
				continue
			}
			if overlaps(other.EffectiveFrom, other.EffectiveTo, schedule.EffectiveFrom, schedule.EffectiveTo) {
				return RateScheduleResponse{}, ratescheduleerrors.ErrOverlappingRateSchedule
			}
		}
	}

	if err := qtx.Update(ctx, schedule); err != nil {
		return RateScheduleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RateScheduleResponse{}, err
	}

	return mapToResponse(*schedule), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) GetActiveRate(
	ctx context.Context,
	category, subCategory string,
) (RateScheduleResponse, error) {
	return s.lookupRate(ctx, category, subCategory, time.Now().UTC(), true)
}

// GetRateForDate serves historical lookups, so inactive records count too.
func (s *service) GetRateForDate(
	ctx context.Context,
	category, subCategory string,
	onDate time.Time,
) (RateScheduleResponse, error) {
	return s.lookupRate(ctx, category, subCategory, onDate, false)
}

func (s *service) lookupRate(
	ctx context.Context,
	category, subCategory string,
	onDate time.Time,
	activeOnly bool,
) (RateScheduleResponse, error) {
	cat, sub, err := parseSegment(category, subCategory)
	if err != nil {
		return RateScheduleResponse{}, err
	}

	schedule, err := s.repo.FindEffective(ctx, cat, sub, onDate, activeOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RateScheduleResponse{}, ratescheduleerrors.ErrNoEffectiveRate
		}
		return RateScheduleResponse{}, err
	}

	return mapToResponse(*schedule), nil
}

func parseSegment(category, subCategory string) (Category, SubCategory, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return "", "", err
	}
	sub, err := ParseSubCategory(subCategory)
	if err != nil {
		return "", "", err
	}
	return cat, sub, nil
}

// parseScheduleDate accepts full RFC3339 timestamps and bare dates.
func parseScheduleDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, ratescheduleerrors.ErrInvalidDateRange.WithDetails("expected ISO-8601 timestamp or YYYY-MM-DD date")
	}
	return t.UTC(), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ratescheduleerrors.ErrRateScheduleNotFound
	}
	return err
}

func mapToResponse(schedule RateSchedule) RateScheduleResponse {
	resp := RateScheduleResponse{
		ID:            schedule.ID.String(),
		Category:      string(schedule.Category),
		SubCategory:   string(schedule.SubCategory),
		RatePerDay:    schedule.RatePerDay,
		EffectiveFrom: schedule.EffectiveFrom.UTC().Format(time.RFC3339),
		IsActive:      schedule.IsActive,
		CreatedAt:     schedule.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     schedule.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if schedule.EffectiveTo != nil {
		v := schedule.EffectiveTo.UTC().Format("2006-01-02T15:04:05.000Z")
		resp.EffectiveTo = &v
	}

	return resp
}

func mapToListResponse(schedules []RateSchedule) []RateScheduleResponse {
	resp := make([]RateScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp[i] = mapToResponse(schedule)
	}
	return resp
}
