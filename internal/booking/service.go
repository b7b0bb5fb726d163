package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gymcore/internal/apperr"
	"gymcore/internal/availability"
	"gymcore/internal/billing"
	"gymcore/internal/conflict"
	"gymcore/internal/db"
	"gymcore/internal/gym"
	"gymcore/internal/logger"
	"gymcore/internal/metrics"
	"gymcore/internal/notify"
	"gymcore/internal/timewindow"
)

const (
	opBookSession          = "book_private_session"
	opRescheduleSession    = "reschedule_private_session"
	opSaveClass            = "create_or_update_class"
	opRegister             = "register_for_class"
	opSetAvailability      = "set_trainer_availability"
	opUpdateAvailability   = "update_trainer_availability"
	opAdminReassignRoom    = "admin_reassign_session_room"
	opAdminRescheduleClass = "admin_reschedule_class"
)

const classDuration = time.Hour

type Service interface {
	BookPrivateSession(ctx context.Context, req BookSessionRequest) (*SessionBooking, error)
	ReschedulePrivateSession(ctx context.Context, sessionID int, req RescheduleSessionRequest) (*SessionBooking, error)
	// CreateOrUpdateClass creates a class when classID is 0.
	CreateOrUpdateClass(ctx context.Context, classID int, req SaveClassRequest) (*ClassSchedule, error)
	RegisterForClass(ctx context.Context, classID, memberID int) (*Registration, error)
	SetTrainerAvailability(ctx context.Context, trainerID int, req availability.SetWindowRequest) (*availability.Window, error)
	UpdateTrainerAvailability(ctx context.Context, windowID int, req availability.UpdateWindowRequest) (*availability.Window, error)
	ListTrainerAvailability(ctx context.Context, trainerID int) ([]availability.Window, error)
	AdminReassignSessionRoom(ctx context.Context, sessionID int, req ReassignRoomRequest) (*SessionBooking, error)
	AdminRescheduleClass(ctx context.Context, classID int, req RescheduleClassRequest) (*ClassSchedule, error)
}

type service struct {
	tx           db.Transactor
	loc          *time.Location
	defaultPrice decimal.Decimal
	notifier     notify.Publisher
}

// NewService builds the booking engine. loc is the gym's local time zone,
// used for weekday and time-of-day matching against availability.
func NewService(tx db.Transactor, loc *time.Location, defaultPrice decimal.Decimal, notifier notify.Publisher) Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &service{
		tx:           tx,
		loc:          loc,
		defaultPrice: defaultPrice,
		notifier:     notifier,
	}
}

// unit holds the repositories of one unit of work, all bound to the same
// transaction.
type unit struct {
	bookings Repository
	gym      gym.Repository
	billing  billing.Repository
	avail    *availability.Store
}

func (s *service) run(ctx context.Context, op string, fn func(u *unit) error) error {
	err := s.tx.WithinTx(ctx, func(q db.Querier) error {
		g := gym.NewRepository(q)
		return fn(&unit{
			bookings: NewRepository(q),
			gym:      g,
			billing:  billing.NewRepository(q),
			avail:    availability.NewStore(availability.NewRepository(q), g, s.loc),
		})
	})
	record(op, err)
	return err
}

func record(op string, err error) {
	if err == nil {
		metrics.RecordBooking(op, "ok")
		return
	}

	e, ok := apperr.As(err)
	if !ok {
		metrics.RecordBooking(op, "error")
		return
	}

	metrics.RecordBooking(op, string(e.Kind))
	if e.Kind == apperr.KindResourceConflict {
		metrics.RecordConflict(e.Code())
	}
	logger.Debug("booking rejected", "operation", op, "code", e.Code(), "reason", e.Message)
}

func (s *service) publish(ctx context.Context, ev notify.Event) {
	if err := s.notifier.Publish(ctx, ev); err != nil {
		logger.WithError(err).Warn("notification not queued", "type", ev.Type)
	}
}

func requireAvailability(ctx context.Context, u *unit, trainerID int, start, end time.Time) error {
	ok, err := u.avail.SupportsWindow(ctx, trainerID, start, end)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.AvailabilityViolation("requested time is outside the trainer's available hours")
	}
	return nil
}

func (s *service) sessionDescription(trainer *gym.Trainer, start time.Time) string {
	return fmt.Sprintf("Private session with %s, %s", trainer.Name, start.In(s.loc).Format("Mon Jan 2 15:04"))
}

func (s *service) classDescription(c *ClassSchedule) string {
	return fmt.Sprintf("Class %s, %s", c.Name, c.StartTime.In(s.loc).Format("Mon Jan 2 15:04"))
}

func (s *service) BookPrivateSession(ctx context.Context, req BookSessionRequest) (*SessionBooking, error) {
	var result *SessionBooking

	err := s.run(ctx, opBookSession, func(u *unit) error {
		w, err := timewindow.New(req.StartTime.UTC(), req.EndTime.UTC())
		if err != nil {
			return err
		}

		price := s.defaultPrice
		if req.Price != nil {
			price = *req.Price
		}
		if !price.IsPositive() {
			return apperr.InvalidWindow("price must be positive")
		}

		if _, err := u.gym.GetMemberByID(ctx, req.MemberID); err != nil {
			return err
		}
		trainer, err := u.gym.GetTrainerByID(ctx, req.TrainerID)
		if err != nil {
			return err
		}
		if _, err := u.gym.GetRoomByID(ctx, req.RoomID); err != nil {
			return err
		}

		if err := requireAvailability(ctx, u, req.TrainerID, w.Start, w.End); err != nil {
			return err
		}

		memberID := req.MemberID
		err = conflict.Check(ctx, u.bookings, conflict.Candidate{
			Start:     w.Start,
			End:       w.End,
			RoomID:    req.RoomID,
			TrainerID: req.TrainerID,
			MemberID:  &memberID,
		})
		if err != nil {
			return err
		}

		session, err := u.bookings.CreateSession(ctx, req.MemberID, req.TrainerID, req.RoomID, w.Start, w.End, price)
		if err != nil {
			return fmt.Errorf("create private session: %w", err)
		}

		item, err := u.billing.UpsertForSession(ctx, session.ID, session.MemberID, session.TrainerID,
			s.sessionDescription(trainer, session.StartTime), session.Price)
		if err != nil {
			return fmt.Errorf("bill private session: %w", err)
		}

		result = &SessionBooking{Session: session, BillingItem: item}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session := result.Session
	logger.Info("private session booked", "session_id", session.ID, "member_id", session.MemberID, "trainer_id", session.TrainerID)
	s.publish(ctx, notify.Event{
		Type:      notify.SessionBooked,
		MemberID:  session.MemberID,
		TrainerID: session.TrainerID,
		RoomID:    session.RoomID,
		SessionID: session.ID,
		Start:     session.StartTime,
		End:       session.EndTime,
	})

	return result, nil
}

func (s *service) ReschedulePrivateSession(ctx context.Context, sessionID int, req RescheduleSessionRequest) (*SessionBooking, error) {
	var result *SessionBooking

	err := s.run(ctx, opRescheduleSession, func(u *unit) error {
		var err error
		result, err = s.reschedule(ctx, u, sessionID, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterReschedule(ctx, result.Session)
	return result, nil
}

// reschedule moves a session to a new room and/or time. Member and trainer
// stay fixed. The session itself is excluded from every conflict check.
func (s *service) reschedule(ctx context.Context, u *unit, sessionID int, req RescheduleSessionRequest) (*SessionBooking, error) {
	current, err := u.bookings.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	roomID, start, end := current.RoomID, current.StartTime, current.EndTime
	if req.RoomID != nil {
		roomID = *req.RoomID
	}
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}

	w, err := timewindow.New(start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	if _, err := u.gym.GetMemberByID(ctx, current.MemberID); err != nil {
		return nil, err
	}
	trainer, err := u.gym.GetTrainerByID(ctx, current.TrainerID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gym.GetRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	if err := requireAvailability(ctx, u, current.TrainerID, w.Start, w.End); err != nil {
		return nil, err
	}

	memberID := current.MemberID
	err = conflict.Check(ctx, u.bookings, conflict.Candidate{
		Start:            w.Start,
		End:              w.End,
		RoomID:           roomID,
		TrainerID:        current.TrainerID,
		MemberID:         &memberID,
		ExcludeSessionID: current.ID,
	})
	if err != nil {
		return nil, err
	}

	moved, err := u.bookings.MoveSession(ctx, current.ID, roomID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("move private session: %w", err)
	}

	item, err := u.billing.UpsertForSession(ctx, moved.ID, moved.MemberID, moved.TrainerID,
		s.sessionDescription(trainer, moved.StartTime), moved.Price)
	if err != nil {
		return nil, fmt.Errorf("bill private session: %w", err)
	}

	return &SessionBooking{Session: moved, BillingItem: item}, nil
}

func (s *service) afterReschedule(ctx context.Context, session *PrivateSession) {
	logger.Info("private session rescheduled", "session_id", session.ID, "room_id", session.RoomID, "start", session.StartTime)
	s.publish(ctx, notify.Event{
		Type:      notify.SessionRescheduled,
		MemberID:  session.MemberID,
		TrainerID: session.TrainerID,
		RoomID:    session.RoomID,
		SessionID: session.ID,
		Start:     session.StartTime,
		End:       session.EndTime,
	})
}

func (s *service) CreateOrUpdateClass(ctx context.Context, classID int, req SaveClassRequest) (*ClassSchedule, error) {
	var saved *ClassSchedule

	err := s.run(ctx, opSaveClass, func(u *unit) error {
		var err error
		saved, err = s.saveClass(ctx, u, classID, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterClassSaved(ctx, saved)
	return saved, nil
}

// saveClass creates (classID 0) or updates a class. The window is pinned to
// the top of the requested hour and lasts exactly one hour.
func (s *service) saveClass(ctx context.Context, u *unit, classID int, req SaveClassRequest) (*ClassSchedule, error) {
	start := timewindow.TopOfHour(req.StartTime.In(s.loc)).UTC()
	end := start.Add(classDuration)

	if !req.Price.IsPositive() {
		return nil, apperr.InvalidWindow("price must be positive")
	}
	if req.Capacity < 1 {
		return nil, apperr.InvalidWindow("capacity must be positive")
	}

	if _, err := u.gym.GetTrainerByID(ctx, req.TrainerID); err != nil {
		return nil, err
	}
	if _, err := u.gym.GetRoomByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	if classID != 0 {
		current, err := u.bookings.GetClassByID(ctx, classID)
		if err != nil {
			return nil, err
		}
		if current.TrainerID != req.TrainerID {
			return nil, apperr.OwnershipViolation("class belongs to another trainer")
		}
	}

	if err := requireAvailability(ctx, u, req.TrainerID, start, end); err != nil {
		return nil, err
	}

	err := conflict.Check(ctx, u.bookings, conflict.Candidate{
		Start:          start,
		End:            end,
		RoomID:         req.RoomID,
		TrainerID:      req.TrainerID,
		ExcludeClassID: classID,
	})
	if err != nil {
		return nil, err
	}

	class := ClassSchedule{
		ID:        classID,
		Name:      req.Name,
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
		StartTime: start,
		EndTime:   end,
		Capacity:  req.Capacity,
		Price:     req.Price,
	}

	if classID == 0 {
		created, err := u.bookings.CreateClass(ctx, class)
		if err != nil {
			return nil, fmt.Errorf("create class: %w", err)
		}
		return created, nil
	}

	registered, err := u.bookings.CountRegistrations(ctx, classID)
	if err != nil {
		return nil, err
	}
	if req.Capacity < registered {
		return nil, apperr.CapacityExceeded(fmt.Sprintf("class already has %d registrations", registered))
	}

	updated, err := u.bookings.UpdateClass(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}
	return updated, nil
}

func (s *service) afterClassSaved(ctx context.Context, c *ClassSchedule) {
	logger.Info("class saved", "class_id", c.ID, "trainer_id", c.TrainerID, "room_id", c.RoomID, "start", c.StartTime)
	s.publish(ctx, notify.Event{
		Type:      notify.ClassSaved,
		TrainerID: c.TrainerID,
		RoomID:    c.RoomID,
		ClassID:   c.ID,
		Start:     c.StartTime,
		End:       c.EndTime,
	})
}

func (s *service) RegisterForClass(ctx context.Context, classID, memberID int) (*Registration, error) {
	var (
		result *Registration
		class  *ClassSchedule
	)

	err := s.run(ctx, opRegister, func(u *unit) error {
		if _, err := u.gym.GetMemberByID(ctx, memberID); err != nil {
			return err
		}

		var err error
		class, err = u.bookings.GetClassByID(ctx, classID)
		if err != nil {
			return err
		}

		if err := requireAvailability(ctx, u, class.TrainerID, class.StartTime, class.EndTime); err != nil {
			return err
		}

		exists, err := u.bookings.RegistrationExists(ctx, memberID, classID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.DuplicateRegistration("member is already registered for this class")
		}

		count, err := u.bookings.CountRegistrations(ctx, classID)
		if err != nil {
			return err
		}
		if count >= class.Capacity {
			return apperr.CapacityExceeded("class is full")
		}

		if err := conflict.CheckMember(ctx, u.bookings, memberID, class.StartTime, class.EndTime, class.ID); err != nil {
			return err
		}

		reg, err := u.bookings.CreateRegistration(ctx, memberID, classID)
		if err != nil {
			return fmt.Errorf("create registration: %w", err)
		}

		item, err := u.billing.UpsertForRegistration(ctx, memberID, classID, class.TrainerID, s.classDescription(class), class.Price)
		if err != nil {
			return fmt.Errorf("bill registration: %w", err)
		}

		result = &Registration{Registration: reg, BillingItem: item}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("member registered for class", "class_id", classID, "member_id", memberID)
	s.publish(ctx, notify.Event{
		Type:      notify.ClassRegistered,
		MemberID:  memberID,
		TrainerID: class.TrainerID,
		RoomID:    class.RoomID,
		ClassID:   class.ID,
		Start:     class.StartTime,
		End:       class.EndTime,
	})

	return result, nil
}

func parseBounds(start, end string) (timewindow.Clock, timewindow.Clock, error) {
	from, err := timewindow.ParseClock(start)
	if err != nil {
		return 0, 0, apperr.InvalidWindow(err.Error())
	}
	to, err := timewindow.ParseClock(end)
	if err != nil {
		return 0, 0, apperr.InvalidWindow(err.Error())
	}
	return from, to, nil
}

func (s *service) SetTrainerAvailability(ctx context.Context, trainerID int, req availability.SetWindowRequest) (*availability.Window, error) {
	var window *availability.Window

	err := s.run(ctx, opSetAvailability, func(u *unit) error {
		start, end, err := parseBounds(req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if req.DayOfWeek == nil {
			return apperr.InvalidWindow("day_of_week is required")
		}

		window, err = u.avail.AddWindow(ctx, trainerID, *req.DayOfWeek, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("availability added", "window_id", window.ID, "trainer_id", trainerID, "day_of_week", window.DayOfWeek)
	return window, nil
}

func (s *service) UpdateTrainerAvailability(ctx context.Context, windowID int, req availability.UpdateWindowRequest) (*availability.Window, error) {
	var window *availability.Window

	err := s.run(ctx, opUpdateAvailability, func(u *unit) error {
		start, end, err := parseBounds(req.StartTime, req.EndTime)
		if err != nil {
			return err
		}

		window, err = u.avail.UpdateWindow(ctx, windowID, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("availability updated", "window_id", window.ID, "trainer_id", window.TrainerID)
	return window, nil
}

func (s *service) ListTrainerAvailability(ctx context.Context, trainerID int) ([]availability.Window, error) {
	var windows []availability.Window

	err := s.tx.WithinTx(ctx, func(q db.Querier) error {
		store := availability.NewStore(availability.NewRepository(q), gym.NewRepository(q), s.loc)

		var err error
		windows, err = store.ListByTrainer(ctx, trainerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return windows, nil
}

// AdminReassignSessionRoom confirms the target room and hands over to the
// member-facing reschedule path.
func (s *service) AdminReassignSessionRoom(ctx context.Context, sessionID int, req ReassignRoomRequest) (*SessionBooking, error) {
	var result *SessionBooking

	err := s.run(ctx, opAdminReassignRoom, func(u *unit) error {
		if _, err := u.gym.GetRoomByID(ctx, req.RoomID); err != nil {
			return err
		}

		roomID := req.RoomID
		var err error
		result, err = s.reschedule(ctx, u, sessionID, RescheduleSessionRequest{
			RoomID:    &roomID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterReschedule(ctx, result.Session)
	return result, nil
}

// AdminRescheduleClass confirms the target room and hands over to the
// trainer-facing class update path, keeping the class's own trainer, name,
// capacity and price.
func (s *service) AdminRescheduleClass(ctx context.Context, classID int, req RescheduleClassRequest) (*ClassSchedule, error) {
	var saved *ClassSchedule

	err := s.run(ctx, opAdminRescheduleClass, func(u *unit) error {
		if _, err := u.gym.GetRoomByID(ctx, req.RoomID); err != nil {
			return err
		}

		current, err := u.bookings.GetClassByID(ctx, classID)
		if err != nil {
			return err
		}

		saved, err = s.saveClass(ctx, u, classID, SaveClassRequest{
			TrainerID: current.TrainerID,
			RoomID:    req.RoomID,
			Name:      current.Name,
			Capacity:  current.Capacity,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Price:     current.Price,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterClassSaved(ctx, saved)
	return saved, nil
}
