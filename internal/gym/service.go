package gym

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gymcore/internal/apperr"
)

type Service interface {
	CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error)
	GetMember(ctx context.Context, id int) (*Member, error)
	UpdateMember(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
	LookupTrainerMembers(ctx context.Context, trainerID int, nameQuery string) ([]MemberLookup, error)
	CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*Trainer, error)
	GetTrainer(ctx context.Context, id int) (*Trainer, error)
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	LogHealthMetric(ctx context.Context, memberID int, req LogHealthMetricRequest) (*HealthMetric, error)
	GetHealthHistory(ctx context.Context, memberID int) ([]HealthMetric, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	return s.repo.CreateMember(ctx, req.Name, req.Email, req.TargetWeight, req.Notes)
}

func (s *service) GetMember(ctx context.Context, id int) (*Member, error) {
	return s.repo.GetMemberByID(ctx, id)
}

func (s *service) UpdateMember(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.TargetWeight != nil {
		member.TargetWeight = decimal.NewNullDecimal(*req.TargetWeight)
	}
	if req.Notes != nil {
		member.Notes = req.Notes
	}

	return s.repo.UpdateMember(ctx, member)
}

func (s *service) LookupTrainerMembers(ctx context.Context, trainerID int, nameQuery string) ([]MemberLookup, error) {
	if _, err := s.repo.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}

	members, err := s.repo.SearchTrainerMembers(ctx, trainerID, nameQuery)
	if err != nil {
		return nil, err
	}

	results := make([]MemberLookup, 0, len(members))
	for _, m := range members {
		latest, err := s.repo.GetLatestHealthMetric(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, MemberLookup{Member: m, LatestMetric: latest})
	}

	return results, nil
}

func (s *service) CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*Trainer, error) {
	return s.repo.CreateTrainer(ctx, req.Name, req.Email)
}

func (s *service) GetTrainer(ctx context.Context, id int) (*Trainer, error) {
	return s.repo.GetTrainerByID(ctx, id)
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	if req.PrimaryTrainerID != nil {
		if _, err := s.repo.GetTrainerByID(ctx, *req.PrimaryTrainerID); err != nil {
			return nil, err
		}
	}
	return s.repo.CreateRoom(ctx, req.Name, req.Capacity, req.PrimaryTrainerID)
}

func (s *service) ListRooms(ctx context.Context) ([]Room, error) {
	return s.repo.GetAllRooms(ctx)
}

func (s *service) LogHealthMetric(ctx context.Context, memberID int, req LogHealthMetricRequest) (*HealthMetric, error) {
	if _, err := s.repo.GetMemberByID(ctx, memberID); err != nil {
		return nil, err
	}

	recordedAt, err := time.Parse(time.RFC3339, req.RecordedAt)
	if err != nil {
		return nil, apperr.InvalidWindow("recorded_at must be RFC3339")
	}

	return s.repo.LogHealthMetric(ctx, memberID, recordedAt, req.Weight, req.HeartRate)
}

func (s *service) GetHealthHistory(ctx context.Context, memberID int) ([]HealthMetric, error) {
	if _, err := s.repo.GetMemberByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.GetHealthHistory(ctx, memberID)
}
