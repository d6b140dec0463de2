package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrAchievementNotFound = errors.New("achievement not found")

type achievementRepository interface {
	Create(ctx context.Context, achievement *entity.Achievement) error
	Update(ctx context.Context, achievement *entity.Achievement) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.Achievement, error)
	List(ctx context.Context) ([]*entity.Achievement, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Achievement, error)
}

type AchievementService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateAchievementRequest) (*types.AchievementResponse, error)
	List(ctx context.Context) ([]*types.AchievementResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.AchievementResponse, error)
	Get(ctx context.Context, id string) (*types.AchievementResponse, error)
	Update(ctx context.Context, req *types.UpdateAchievementRequest) (*types.AchievementResponse, error)
	Delete(ctx context.Context, id string) error
}

type achievementService struct {
	repo achievementRepository
	now  func() time.Time
}

func NewAchievementService(repo achievementRepository) AchievementService {
	return &achievementService{repo: repo, now: time.Now}
}

func (s *achievementService) Create(ctx context.Context, ownerID string, req *types.CreateAchievementRequest) (*types.AchievementResponse, error) {
	now := s.now()
	achievement := &entity.Achievement{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Date:      req.Date.Time,
		UserID:    nullString(ownerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Subtitle != nil {
		achievement.Subtitle = nullString(*req.Subtitle)
	}
	if req.Description != nil {
		achievement.Description = nullString(*req.Description)
	}
	if req.ImageURL != nil {
		achievement.ImageURL = nullString(*req.ImageURL)
	}
	if req.ImagePublicID != nil {
		achievement.ImagePublicID = nullString(*req.ImagePublicID)
	}
	if req.UserID != nil {
		achievement.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, achievement); err != nil {
		return nil, err
	}

	return toAchievementResponse(achievement), nil
}

func (s *achievementService) List(ctx context.Context) ([]*types.AchievementResponse, error) {
	achievements, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toAchievementResponses(achievements), nil
}

func (s *achievementService) ListByUser(ctx context.Context, userID string) ([]*types.AchievementResponse, error) {
	achievements, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAchievementResponses(achievements), nil
}

func (s *achievementService) Get(ctx context.Context, id string) (*types.AchievementResponse, error) {
	achievement, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAchievementResponse(achievement), nil
}

func (s *achievementService) Update(ctx context.Context, req *types.UpdateAchievementRequest) (*types.AchievementResponse, error) {
	achievement, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		achievement.Title = *req.Title
	}
	if req.Subtitle != nil {
		achievement.Subtitle = nullString(*req.Subtitle)
	}
	if req.Description != nil {
		achievement.Description = nullString(*req.Description)
	}
	if req.Date != nil {
		achievement.Date = req.Date.Time
	}
	if req.ImageURL != nil {
		achievement.ImageURL = nullString(*req.ImageURL)
	}
	if req.ImagePublicID != nil {
		achievement.ImagePublicID = nullString(*req.ImagePublicID)
	}
	if req.UserID != nil {
		achievement.UserID = nullString(*req.UserID)
	}
	achievement.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, achievement); err != nil {
		return nil, err
	}

	return toAchievementResponse(achievement), nil
}

func (s *achievementService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAchievementNotFound
	}
	return nil
}

func (s *achievementService) find(ctx context.Context, id string) (*entity.Achievement, error) {
	achievement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if achievement == nil {
		return nil, ErrAchievementNotFound
	}
	return achievement, nil
}

func toAchievementResponses(achievements []*entity.Achievement) []*types.AchievementResponse {
	out := make([]*types.AchievementResponse, 0, len(achievements))
	for _, achievement := range achievements {
		out = append(out, toAchievementResponse(achievement))
	}
	return out
}

func toAchievementResponse(achievement *entity.Achievement) *types.AchievementResponse {
	return &types.AchievementResponse{
		ID:            achievement.ID,
		Title:         achievement.Title,
		Subtitle:      stringPtr(achievement.Subtitle),
		Description:   stringPtr(achievement.Description),
		Date:          achievement.Date,
		ImageURL:      stringPtr(achievement.ImageURL),
		ImagePublicID: stringPtr(achievement.ImagePublicID),
		UserID:        stringPtr(achievement.UserID),
		CreatedAt:     achievement.CreatedAt,
		UpdatedAt:     achievement.UpdatedAt,
	}
}
