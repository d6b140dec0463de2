package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrWorkExperienceNotFound = errors.New("work experience not found")

type workExperienceRepository interface {
	Create(ctx context.Context, experience *entity.WorkExperience) error
	Update(ctx context.Context, experience *entity.WorkExperience) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.WorkExperience, error)
	List(ctx context.Context) ([]*entity.WorkExperience, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.WorkExperience, error)
}

type WorkExperienceService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateWorkExperienceRequest) (*types.WorkExperienceResponse, error)
	List(ctx context.Context) ([]*types.WorkExperienceResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.WorkExperienceResponse, error)
	Get(ctx context.Context, id string) (*types.WorkExperienceResponse, error)
	Update(ctx context.Context, req *types.UpdateWorkExperienceRequest) (*types.WorkExperienceResponse, error)
	Delete(ctx context.Context, id string) error
}

type workExperienceService struct {
	repo workExperienceRepository
	now  func() time.Time
}

func NewWorkExperienceService(repo workExperienceRepository) WorkExperienceService {
	return &workExperienceService{repo: repo, now: time.Now}
}

func (s *workExperienceService) Create(ctx context.Context, ownerID string, req *types.CreateWorkExperienceRequest) (*types.WorkExperienceResponse, error) {
	now := s.now()
	experience := &entity.WorkExperience{
		ID:          uuid.New().String(),
		CompanyName: req.CompanyName,
		Title:       req.Title,
		StartDate:   req.StartDate.Time,
		EndDate:     nullTime(req.EndDate),
		Points:      entity.StringList(nonNil(req.Points)),
		UserID:      nullString(ownerID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Location != nil {
		experience.Location = nullString(*req.Location)
	}
	if req.Description != nil {
		experience.Description = nullString(*req.Description)
	}
	if req.UserID != nil {
		experience.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, experience); err != nil {
		return nil, err
	}

	return toWorkExperienceResponse(experience), nil
}

func (s *workExperienceService) List(ctx context.Context) ([]*types.WorkExperienceResponse, error) {
	experiences, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toWorkExperienceResponses(experiences), nil
}

func (s *workExperienceService) ListByUser(ctx context.Context, userID string) ([]*types.WorkExperienceResponse, error) {
	experiences, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toWorkExperienceResponses(experiences), nil
}

func (s *workExperienceService) Get(ctx context.Context, id string) (*types.WorkExperienceResponse, error) {
	experience, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWorkExperienceResponse(experience), nil
}

func (s *workExperienceService) Update(ctx context.Context, req *types.UpdateWorkExperienceRequest) (*types.WorkExperienceResponse, error) {
	experience, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		experience.CompanyName = *req.CompanyName
	}
	if req.Title != nil {
		experience.Title = *req.Title
	}
	if req.Location != nil {
		experience.Location = nullString(*req.Location)
	}
	if req.StartDate != nil {
		experience.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		experience.EndDate = nullTime(req.EndDate)
	}
	if req.Description != nil {
		experience.Description = nullString(*req.Description)
	}
	if req.Points != nil {
		experience.Points = entity.StringList(*req.Points)
	}
	if req.UserID != nil {
		experience.UserID = nullString(*req.UserID)
	}
	if !validRange(experience.StartDate, experience.EndDate) {
		return nil, ErrInvalidDateRange
	}
	experience.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, experience); err != nil {
		return nil, err
	}

	return toWorkExperienceResponse(experience), nil
}

func (s *workExperienceService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWorkExperienceNotFound
	}
	return nil
}

func (s *workExperienceService) find(ctx context.Context, id string) (*entity.WorkExperience, error) {
	experience, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if experience == nil {
		return nil, ErrWorkExperienceNotFound
	}
	return experience, nil
}

func toWorkExperienceResponses(experiences []*entity.WorkExperience) []*types.WorkExperienceResponse {
	out := make([]*types.WorkExperienceResponse, 0, len(experiences))
	for _, experience := range experiences {
		out = append(out, toWorkExperienceResponse(experience))
	}
	return out
}

func toWorkExperienceResponse(experience *entity.WorkExperience) *types.WorkExperienceResponse {
	return &types.WorkExperienceResponse{
		ID:          experience.ID,
		CompanyName: experience.CompanyName,
		Title:       experience.Title,
		Location:    stringPtr(experience.Location),
		StartDate:   experience.StartDate,
		EndDate:     timePtr(experience.EndDate),
		Description: stringPtr(experience.Description),
		Points:      nonNil(experience.Points),
		UserID:      stringPtr(experience.UserID),
		CreatedAt:   experience.CreatedAt,
		UpdatedAt:   experience.UpdatedAt,
	}
}
