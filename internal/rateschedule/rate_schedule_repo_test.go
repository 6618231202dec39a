package rateschedule

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	return gdb, mock
}

func scheduleColumns() []string {
	return []string{
		"id", "category", "sub_category", "rate_per_day",
		"effective_from", "effective_to", "is_active", "created_at", "updated_at",
	}
}

// Two consecutive rates for one segment: a closed 2023 interval and the
// ongoing 2024 successor, in the effective_from DESC order the query uses.
func segmentRows(now time.Time) (*sqlmock.Rows, uuid.UUID, uuid.UUID) {
	closedEnd := date(2023, 12, 31)
	currentID, closedID := uuid.New(), uuid.New()

	rows := sqlmock.NewRows(scheduleColumns()).
		AddRow(currentID, "CENTRAL", "SKILLED", 780.0, date(2024, 1, 1), nil, true, now, now).
		AddRow(closedID, "CENTRAL", "SKILLED", 700.0, date(2023, 1, 1), closedEnd, true, now, now)
	return rows, currentID, closedID
}

func TestFindEffective_ReturnsRateContainingDate(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	now := time.Now().UTC()
	rows, _, closedID := segmentRows(now)
	mock.ExpectQuery(`SELECT .* FROM "salary_rate_schedules" WHERE .*ORDER BY effective_from DESC`).
		WillReturnRows(rows)

	found, err := repo.FindEffective(context.Background(), CategoryCentral, SubCategorySkilled, date(2023, 6, 15), true)

	assert.NoError(t, err)
	assert.Equal(t, closedID, found.ID)
	assert.Equal(t, 700.0, found.RatePerDay)
}

func TestFindEffective_IntervalEndsAreInclusive(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	now := time.Now().UTC()
	for _, onDate := range []time.Time{date(2023, 1, 1), date(2023, 12, 31)} {
		rows, _, closedID := segmentRows(now)
		mock.ExpectQuery(`FROM "salary_rate_schedules"`).WillReturnRows(rows)

		found, err := repo.FindEffective(context.Background(), CategoryCentral, SubCategorySkilled, onDate, true)

		assert.NoError(t, err)
		assert.Equal(t, closedID, found.ID)
	}
}

func TestFindEffective_NoRateOutsideEveryInterval(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	now := time.Now().UTC()
	// one day before the oldest interval starts
	rows, _, _ := segmentRows(now)
	mock.ExpectQuery(`FROM "salary_rate_schedules"`).WillReturnRows(rows)

	_, err := repo.FindEffective(context.Background(), CategoryCentral, SubCategorySkilled, date(2022, 12, 31), true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindEffective_OngoingRateServesAnyLaterDate(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	now := time.Now().UTC()
	rows, currentID, _ := segmentRows(now)
	mock.ExpectQuery(`FROM "salary_rate_schedules"`).WillReturnRows(rows)

	found, err := repo.FindEffective(context.Background(), CategoryCentral, SubCategorySkilled, date(2030, 6, 1), true)

	assert.NoError(t, err)
	assert.Equal(t, currentID, found.ID)
	assert.Nil(t, found.EffectiveTo)
}
