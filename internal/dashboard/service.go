// Package dashboard assembles the read-only member and trainer views and the
// public class listing. Every view is computed against an explicit now.
package dashboard

import (
	"context"
	"time"

	"gymcore/internal/availability"
	"gymcore/internal/billing"
	"gymcore/internal/booking"
	"gymcore/internal/gym"
)

type Service interface {
	MemberDashboard(ctx context.Context, memberID int, now time.Time) (*MemberDashboard, error)
	TrainerSchedule(ctx context.Context, trainerID int, now time.Time) (*TrainerSchedule, error)
	UpcomingClasses(ctx context.Context, now time.Time) ([]ClassListing, error)
}

// Availability is the part of the availability store the views read.
type Availability interface {
	VisibleForListing(ctx context.Context, trainerID int, start, end time.Time) (bool, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]availability.Window, error)
}

type service struct {
	gym      gym.Repository
	bookings booking.Repository
	billing  billing.Repository
	avail    Availability
}

func NewService(gymRepo gym.Repository, bookings booking.Repository, bills billing.Repository, avail Availability) Service {
	return &service{
		gym:      gymRepo,
		bookings: bookings,
		billing:  bills,
		avail:    avail,
	}
}

func upcoming(start, now time.Time) bool {
	return !start.Before(now)
}

func (s *service) MemberDashboard(ctx context.Context, memberID int, now time.Time) (*MemberDashboard, error) {
	member, err := s.gym.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	latest, err := s.gym.GetLatestHealthMetric(ctx, memberID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.bookings.ListSessionsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	classes, err := s.bookings.ListClassesByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	bills, err := s.billing.ListPendingByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	d := &MemberDashboard{
		Member:           member,
		LatestMetric:     latest,
		UpcomingSessions: []booking.PrivateSession{},
		UpcomingClasses:  []booking.RegisteredClass{},
		PendingBills:     bills,
		PendingTotal:     billing.Total(bills),
	}

	for _, ps := range sessions {
		if upcoming(ps.StartTime, now) {
			d.UpcomingSessions = append(d.UpcomingSessions, ps)
		}
	}

	for _, rc := range classes {
		switch {
		case upcoming(rc.StartTime, now):
			d.UpcomingClasses = append(d.UpcomingClasses, rc)
		case rc.EndTime.Before(now) && rc.Attended:
			d.PastClassesAttended++
		}
	}

	return d, nil
}

func (s *service) TrainerSchedule(ctx context.Context, trainerID int, now time.Time) (*TrainerSchedule, error) {
	trainer, err := s.gym.GetTrainerByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.bookings.ListSessionsByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	classes, err := s.bookings.ListClassesByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	windows, err := s.avail.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	items, err := s.billing.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	sched := &TrainerSchedule{
		Trainer:          trainer,
		UpcomingSessions: []booking.PrivateSession{},
		UpcomingClasses:  []booking.ClassWithCount{},
		Availability:     windows,
		BillingItems:     items,
	}

	for _, ps := range sessions {
		if upcoming(ps.StartTime, now) {
			sched.UpcomingSessions = append(sched.UpcomingSessions, ps)
		}
	}
	for _, c := range classes {
		if upcoming(c.StartTime, now) {
			sched.UpcomingClasses = append(sched.UpcomingClasses, c)
		}
	}

	return sched, nil
}

// UpcomingClasses lists classes starting at or after now whose trainer still
// covers the slot. Trainers without any window on the class's weekday keep
// their classes listed.
func (s *service) UpcomingClasses(ctx context.Context, now time.Time) ([]ClassListing, error) {
	classes, err := s.bookings.ListClassesStartingFrom(ctx, now)
	if err != nil {
		return nil, err
	}

	listings := []ClassListing{}
	for _, c := range classes {
		visible, err := s.avail.VisibleForListing(ctx, c.TrainerID, c.StartTime, c.EndTime)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		listings = append(listings, ClassListing{ClassWithCount: c, SeatsLeft: c.SeatsLeft()})
	}

	return listings, nil
}
