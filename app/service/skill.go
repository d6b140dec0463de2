package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type skillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	Update(ctx context.Context, skill *entity.Skill) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.Skill, error)
	List(ctx context.Context) ([]*entity.Skill, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Skill, error)
}

type SkillService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateSkillRequest) (*types.SkillResponse, error)
	List(ctx context.Context) ([]*types.SkillResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.SkillResponse, error)
	Get(ctx context.Context, id string) (*types.SkillResponse, error)
	Update(ctx context.Context, req *types.UpdateSkillRequest) (*types.SkillResponse, error)
	Delete(ctx context.Context, id string) error
}

type skillService struct {
	repo skillRepository
	now  func() time.Time
}

func NewSkillService(repo skillRepository) SkillService {
	return &skillService{repo: repo, now: time.Now}
}

func (s *skillService) Create(ctx context.Context, ownerID string, req *types.CreateSkillRequest) (*types.SkillResponse, error) {
	now := s.now()
	skill := &entity.Skill{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Section:   req.Section,
		UserID:    nullString(ownerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IconName != nil {
		skill.IconName = nullString(*req.IconName)
	}
	if req.IconLibrary != nil {
		skill.IconLibrary = nullString(*req.IconLibrary)
	}
	if req.UserID != nil {
		skill.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, err
	}

	return toSkillResponse(skill), nil
}

func (s *skillService) List(ctx context.Context) ([]*types.SkillResponse, error) {
	skills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toSkillResponses(skills), nil
}

func (s *skillService) ListByUser(ctx context.Context, userID string) ([]*types.SkillResponse, error) {
	skills, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSkillResponses(skills), nil
}

func (s *skillService) Get(ctx context.Context, id string) (*types.SkillResponse, error) {
	skill, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSkillResponse(skill), nil
}

func (s *skillService) Update(ctx context.Context, req *types.UpdateSkillRequest) (*types.SkillResponse, error) {
	skill, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.IconName != nil {
		skill.IconName = nullString(*req.IconName)
	}
	if req.Section != nil {
		skill.Section = *req.Section
	}
	if req.IconLibrary != nil {
		skill.IconLibrary = nullString(*req.IconLibrary)
	}
	if req.UserID != nil {
		skill.UserID = nullString(*req.UserID)
	}
	skill.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, skill); err != nil {
		return nil, err
	}

	return toSkillResponse(skill), nil
}

func (s *skillService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSkillNotFound
	}
	return nil
}

func (s *skillService) find(ctx context.Context, id string) (*entity.Skill, error) {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, ErrSkillNotFound
	}
	return skill, nil
}

func toSkillResponses(skills []*entity.Skill) []*types.SkillResponse {
	out := make([]*types.SkillResponse, 0, len(skills))
	for _, skill := range skills {
		out = append(out, toSkillResponse(skill))
	}
	return out
}

func toSkillResponse(skill *entity.Skill) *types.SkillResponse {
	return &types.SkillResponse{
		ID:          skill.ID,
		Name:        skill.Name,
		IconName:    stringPtr(skill.IconName),
		Section:     skill.Section,
		IconLibrary: stringPtr(skill.IconLibrary),
		UserID:      stringPtr(skill.UserID),
		CreatedAt:   skill.CreatedAt,
		UpdatedAt:   skill.UpdatedAt,
	}
}
