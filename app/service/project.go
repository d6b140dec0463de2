package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type projectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Project, error)
}

type ProjectService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateProjectRequest) (*types.ProjectResponse, error)
	List(ctx context.Context) ([]*types.ProjectResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.ProjectResponse, error)
	Get(ctx context.Context, id string) (*types.ProjectResponse, error)
	Update(ctx context.Context, req *types.UpdateProjectRequest) (*types.ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo projectRepository
	now  func() time.Time
}

func NewProjectService(repo projectRepository) ProjectService {
	return &projectService{repo: repo, now: time.Now}
}

// Create assigns the project to ownerID unless the request names a user.
func (s *projectService) Create(ctx context.Context, ownerID string, req *types.CreateProjectRequest) (*types.ProjectResponse, error) {
	now := s.now()
	project := &entity.Project{
		ID:        uuid.New().String(),
		Domain:    req.Domain,
		Name:      req.Name,
		Skills:    entity.StringList(nonNil(req.Skills)),
		Images:    entity.StringList(nonNil(req.Images)),
		UserID:    nullString(ownerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		project.Description = nullString(*req.Description)
	}
	if req.Blob != nil {
		project.Blob = entity.ProjectBlob(*req.Blob)
	}
	if req.UserID != nil {
		project.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *projectService) List(ctx context.Context) ([]*types.ProjectResponse, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(projects), nil
}

func (s *projectService) ListByUser(ctx context.Context, userID string) ([]*types.ProjectResponse, error) {
	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(projects), nil
}

func (s *projectService) Get(ctx context.Context, id string) (*types.ProjectResponse, error) {
	project, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, req *types.UpdateProjectRequest) (*types.ProjectResponse, error) {
	project, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Domain != nil {
		project.Domain = *req.Domain
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = nullString(*req.Description)
	}
	if req.Skills != nil {
		project.Skills = entity.StringList(*req.Skills)
	}
	if req.Images != nil {
		project.Images = entity.StringList(*req.Images)
	}
	if req.Blob != nil {
		project.Blob = entity.ProjectBlob(*req.Blob)
	}
	if req.UserID != nil {
		project.UserID = nullString(*req.UserID)
	}
	project.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}
	return nil
}

func (s *projectService) find(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func toProjectResponses(projects []*entity.Project) []*types.ProjectResponse {
	out := make([]*types.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, toProjectResponse(project))
	}
	return out
}

func toProjectResponse(project *entity.Project) *types.ProjectResponse {
	return &types.ProjectResponse{
		ID:          project.ID,
		Domain:      project.Domain,
		Name:        project.Name,
		Description: stringPtr(project.Description),
		Skills:      nonNil(project.Skills),
		Images:      nonNil(project.Images),
		Blob:        types.ProjectBlob(project.Blob),
		UserID:      stringPtr(project.UserID),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
