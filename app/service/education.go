package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrEducationNotFound = errors.New("education not found")

type educationRepository interface {
	Create(ctx context.Context, education *entity.Education) error
	Update(ctx context.Context, education *entity.Education) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.Education, error)
	List(ctx context.Context) ([]*entity.Education, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Education, error)
}

type EducationService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateEducationRequest) (*types.EducationResponse, error)
	List(ctx context.Context) ([]*types.EducationResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.EducationResponse, error)
	Get(ctx context.Context, id string) (*types.EducationResponse, error)
	Update(ctx context.Context, req *types.UpdateEducationRequest) (*types.EducationResponse, error)
	Delete(ctx context.Context, id string) error
}

type educationService struct {
	repo educationRepository
	now  func() time.Time
}

func NewEducationService(repo educationRepository) EducationService {
	return &educationService{repo: repo, now: time.Now}
}

func (s *educationService) Create(ctx context.Context, ownerID string, req *types.CreateEducationRequest) (*types.EducationResponse, error) {
	now := s.now()
	education := &entity.Education{
		ID:          uuid.New().String(),
		Degree:      req.Degree,
		CollegeName: req.CollegeName,
		StartDate:   req.StartDate.Time,
		EndDate:     nullTime(req.EndDate),
		Tags:        entity.StringList(nonNil(req.Tags)),
		UserID:      nullString(ownerID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Description != nil {
		education.Description = nullString(*req.Description)
	}
	if req.UserID != nil {
		education.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, education); err != nil {
		return nil, err
	}

	return toEducationResponse(education), nil
}

func (s *educationService) List(ctx context.Context) ([]*types.EducationResponse, error) {
	educations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toEducationResponses(educations), nil
}

func (s *educationService) ListByUser(ctx context.Context, userID string) ([]*types.EducationResponse, error) {
	educations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toEducationResponses(educations), nil
}

func (s *educationService) Get(ctx context.Context, id string) (*types.EducationResponse, error) {
	education, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEducationResponse(education), nil
}

func (s *educationService) Update(ctx context.Context, req *types.UpdateEducationRequest) (*types.EducationResponse, error) {
	education, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Degree != nil {
		education.Degree = *req.Degree
	}
	if req.CollegeName != nil {
		education.CollegeName = *req.CollegeName
	}
	if req.StartDate != nil {
		education.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		education.EndDate = nullTime(req.EndDate)
	}
	if req.Description != nil {
		education.Description = nullString(*req.Description)
	}
	if req.Tags != nil {
		education.Tags = entity.StringList(*req.Tags)
	}
	if req.UserID != nil {
		education.UserID = nullString(*req.UserID)
	}
	if !validRange(education.StartDate, education.EndDate) {
		return nil, ErrInvalidDateRange
	}
	education.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, education); err != nil {
		return nil, err
	}

	return toEducationResponse(education), nil
}

func (s *educationService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEducationNotFound
	}
	return nil
}

func (s *educationService) find(ctx context.Context, id string) (*entity.Education, error) {
	education, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if education == nil {
		return nil, ErrEducationNotFound
	}
	return education, nil
}

func toEducationResponses(educations []*entity.Education) []*types.EducationResponse {
	out := make([]*types.EducationResponse, 0, len(educations))
	for _, education := range educations {
		out = append(out, toEducationResponse(education))
	}
	return out
}

func toEducationResponse(education *entity.Education) *types.EducationResponse {
	return &types.EducationResponse{
		ID:          education.ID,
		Degree:      education.Degree,
		CollegeName: education.CollegeName,
		StartDate:   education.StartDate,
		EndDate:     timePtr(education.EndDate),
		Description: stringPtr(education.Description),
		Tags:        nonNil(education.Tags),
		UserID:      stringPtr(education.UserID),
		CreatedAt:   education.CreatedAt,
		UpdatedAt:   education.UpdatedAt,
	}
}
