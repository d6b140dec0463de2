package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var (
	ErrTimelineEntryNotFound = errors.New("timeline item not found")
	ErrInvalidDateRange      = errors.New("endDate must not be before startDate")
)

type timelineRepository interface {
	Create(ctx context.Context, entry *entity.TimelineEntry) error
	Update(ctx context.Context, entry *entity.TimelineEntry) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.TimelineEntry, error)
	List(ctx context.Context) ([]*entity.TimelineEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.TimelineEntry, error)
}

type TimelineService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateTimelineRequest) (*types.TimelineResponse, error)
	List(ctx context.Context) ([]*types.TimelineResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.TimelineResponse, error)
	Get(ctx context.Context, id string) (*types.TimelineResponse, error)
	Update(ctx context.Context, req *types.UpdateTimelineRequest) (*types.TimelineResponse, error)
	Delete(ctx context.Context, id string) error
}

type timelineService struct {
	repo timelineRepository
	now  func() time.Time
}

func NewTimelineService(repo timelineRepository) TimelineService {
	return &timelineService{repo: repo, now: time.Now}
}

func (s *timelineService) Create(ctx context.Context, ownerID string, req *types.CreateTimelineRequest) (*types.TimelineResponse, error) {
	now := s.now()
	entry := &entity.TimelineEntry{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Type:      req.Type,
		StartDate: req.StartDate.Time,
		EndDate:   nullTime(req.EndDate),
		Tags:      entity.StringList(nonNil(req.Tags)),
		Skills:    entity.StringList(nonNil(req.Skills)),
		UserID:    nullString(ownerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.SubTitle != nil {
		entry.SubTitle = nullString(*req.SubTitle)
	}
	if req.Description != nil {
		entry.Description = nullString(*req.Description)
	}
	if req.UserID != nil {
		entry.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return toTimelineResponse(entry), nil
}

func (s *timelineService) List(ctx context.Context) ([]*types.TimelineResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toTimelineResponses(entries), nil
}

func (s *timelineService) ListByUser(ctx context.Context, userID string) ([]*types.TimelineResponse, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toTimelineResponses(entries), nil
}

func (s *timelineService) Get(ctx context.Context, id string) (*types.TimelineResponse, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTimelineResponse(entry), nil
}

// Update rejects changes that would leave the entry ending before it starts.
func (s *timelineService) Update(ctx context.Context, req *types.UpdateTimelineRequest) (*types.TimelineResponse, error) {
	entry, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.SubTitle != nil {
		entry.SubTitle = nullString(*req.SubTitle)
	}
	if req.Type != nil {
		entry.Type = *req.Type
	}
	if req.StartDate != nil {
		entry.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		entry.EndDate = nullTime(req.EndDate)
	}
	if req.Description != nil {
		entry.Description = nullString(*req.Description)
	}
	if req.Tags != nil {
		entry.Tags = entity.StringList(*req.Tags)
	}
	if req.Skills != nil {
		entry.Skills = entity.StringList(*req.Skills)
	}
	if req.UserID != nil {
		entry.UserID = nullString(*req.UserID)
	}
	if !validRange(entry.StartDate, entry.EndDate) {
		return nil, ErrInvalidDateRange
	}
	entry.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return toTimelineResponse(entry), nil
}

func (s *timelineService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTimelineEntryNotFound
	}
	return nil
}

func (s *timelineService) find(ctx context.Context, id string) (*entity.TimelineEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrTimelineEntryNotFound
	}
	return entry, nil
}

func toTimelineResponses(entries []*entity.TimelineEntry) []*types.TimelineResponse {
	out := make([]*types.TimelineResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toTimelineResponse(entry))
	}
	return out
}

func toTimelineResponse(entry *entity.TimelineEntry) *types.TimelineResponse {
	return &types.TimelineResponse{
		ID:          entry.ID,
		Title:       entry.Title,
		SubTitle:    stringPtr(entry.SubTitle),
		Type:        entry.Type,
		StartDate:   entry.StartDate,
		EndDate:     timePtr(entry.EndDate),
		Description: stringPtr(entry.Description),
		Tags:        nonNil(entry.Tags),
		Skills:      nonNil(entry.Skills),
		UserID:      stringPtr(entry.UserID),
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}
