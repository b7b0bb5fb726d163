package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore/internal/apperr"
	"gymcore/internal/availability"
	"gymcore/internal/billing"
	"gymcore/internal/booking"
	"gymcore/internal/dashboard"
	"gymcore/internal/db"
	"gymcore/internal/db/dbtest"
	"gymcore/internal/gym"
)

type fixture struct {
	conn     *sqlx.DB
	bookings booking.Service
	views    dashboard.Service
	member   int
	other    int
	trainer  int
	room     int
}

// Week of 2025-12-01 (Monday). The trainer works 09:00-17:00 Monday and
// Wednesday.
func day(d, hour int) time.Time { return time.Date(2025, 12, d, hour, 0, 0, 0, time.UTC) }

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	conn := dbtest.Open(t)
	g := gym.NewRepository(conn)

	alice, err := g.CreateMember(ctx, "Alice", "alice@example.com", nil, nil)
	require.NoError(t, err)
	bob, err := g.CreateMember(ctx, "Bob", "bob@example.com", nil, nil)
	require.NoError(t, err)
	tom, err := g.CreateTrainer(ctx, "Tom", "tom@example.com")
	require.NoError(t, err)
	room, err := g.CreateRoom(ctx, "Studio", 20, nil)
	require.NoError(t, err)

	store := availability.NewStore(availability.NewRepository(conn), g, time.UTC)
	for _, dow := range []int{0, 2} {
		_, err := store.AddWindow(ctx, tom.ID, dow, 9*3600, 17*3600)
		require.NoError(t, err)
	}

	return fixture{
		conn:     conn,
		bookings: booking.NewService(db.NewTxManager(conn, 3), time.UTC, decimal.RequireFromString("40"), nil),
		views:    dashboard.NewService(g, booking.NewRepository(conn), billing.NewRepository(conn), store),
		member:   alice.ID,
		other:    bob.ID,
		trainer:  tom.ID,
		room:     room.ID,
	}
}

func (f fixture) session(t *testing.T, member int, start time.Time) *booking.SessionBooking {
	t.Helper()
	b, err := f.bookings.BookPrivateSession(context.Background(), booking.BookSessionRequest{
		MemberID: member, TrainerID: f.trainer, RoomID: f.room,
		StartTime: start, EndTime: start.Add(time.Hour),
	})
	require.NoError(t, err)
	return b
}

func (f fixture) class(t *testing.T, name string, start time.Time, capacity int) *booking.ClassSchedule {
	t.Helper()
	c, err := f.bookings.CreateOrUpdateClass(context.Background(), 0, booking.SaveClassRequest{
		TrainerID: f.trainer, RoomID: f.room, Name: name, Capacity: capacity,
		StartTime: start, Price: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	return c
}

func (f fixture) register(t *testing.T, classID, member int) {
	t.Helper()
	_, err := f.bookings.RegisterForClass(context.Background(), classID, member)
	require.NoError(t, err)
}

func TestMemberDashboard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := day(1, 12)

	f.session(t, f.member, day(1, 9))
	upcomingSession := f.session(t, f.member, day(3, 9))

	past := f.class(t, "Early Spin", day(1, 10), 5)
	skipped := f.class(t, "Late Spin", day(1, 11), 5)
	next := f.class(t, "Yoga", day(3, 12), 5)
	for _, c := range []int{past.ID, skipped.ID, next.ID} {
		f.register(t, c, f.member)
	}

	_, err := f.conn.Exec(`UPDATE class_registrations SET attended = 1 WHERE class_id = ?`, past.ID)
	require.NoError(t, err)

	_, err = gym.NewRepository(f.conn).LogHealthMetric(ctx, f.member, day(1, 8), nil, nil)
	require.NoError(t, err)

	d, err := f.views.MemberDashboard(ctx, f.member, now)
	require.NoError(t, err)

	assert.Equal(t, "Alice", d.Member.Name)
	require.NotNil(t, d.LatestMetric)
	assert.Equal(t, 1, d.PastClassesAttended)

	require.Len(t, d.UpcomingSessions, 1)
	assert.Equal(t, upcomingSession.Session.ID, d.UpcomingSessions[0].ID)
	require.Len(t, d.UpcomingClasses, 1)
	assert.Equal(t, next.ID, d.UpcomingClasses[0].ID)

	assert.Len(t, d.PendingBills, 5)
	assert.True(t, decimal.RequireFromString("110").Equal(d.PendingTotal), d.PendingTotal.String())
}

func TestMemberDashboard_BoundaryIsUpcoming(t *testing.T) {
	f := setup(t)

	s := f.session(t, f.member, day(1, 9))

	d, err := f.views.MemberDashboard(context.Background(), f.member, day(1, 9))
	require.NoError(t, err)
	require.Len(t, d.UpcomingSessions, 1)
	assert.Equal(t, s.Session.ID, d.UpcomingSessions[0].ID)
	assert.Nil(t, d.LatestMetric)
}

func TestMemberDashboard_UnknownMember(t *testing.T) {
	f := setup(t)
	_, err := f.views.MemberDashboard(context.Background(), 999, day(1, 9))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestTrainerSchedule(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.session(t, f.member, day(1, 9))
	later := f.session(t, f.other, day(3, 10))
	c := f.class(t, "Yoga", day(3, 12), 5)
	f.register(t, c.ID, f.member)
	f.register(t, c.ID, f.other)

	sched, err := f.views.TrainerSchedule(ctx, f.trainer, day(2, 0))
	require.NoError(t, err)

	assert.Equal(t, "Tom", sched.Trainer.Name)
	require.Len(t, sched.UpcomingSessions, 1)
	assert.Equal(t, later.Session.ID, sched.UpcomingSessions[0].ID)
	require.Len(t, sched.UpcomingClasses, 1)
	assert.Equal(t, 2, sched.UpcomingClasses[0].Registered)
	assert.Len(t, sched.Availability, 2)
	assert.Len(t, sched.BillingItems, 4)

	_, err = f.views.TrainerSchedule(ctx, 999, day(2, 0))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpcomingClasses(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.class(t, "Past", day(1, 9), 3)
	shown := f.class(t, "Spin", day(3, 10), 3)
	f.register(t, shown.ID, f.member)
	hidden := f.class(t, "Core", day(3, 15), 3)

	// Shrinking the trainer's Wednesday hours hides the 15:00 class.
	windows, err := availability.NewRepository(f.conn).ListByTrainerDay(ctx, f.trainer, 2)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	_, err = f.conn.Exec(`UPDATE trainer_availability SET end_time = '12:00:00' WHERE id = ?`, windows[0].ID)
	require.NoError(t, err)

	listings, err := f.views.UpcomingClasses(ctx, day(2, 0))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, shown.ID, listings[0].ID)
	assert.Equal(t, 2, listings[0].SeatsLeft)
	assert.NotEqual(t, hidden.ID, listings[0].ID)

	t.Run("no window that weekday keeps the class listed", func(t *testing.T) {
		_, err := f.conn.Exec(`DELETE FROM trainer_availability WHERE id = ?`, windows[0].ID)
		require.NoError(t, err)

		listings, err := f.views.UpcomingClasses(ctx, day(2, 0))
		require.NoError(t, err)
		assert.Len(t, listings, 2)
	})
}
