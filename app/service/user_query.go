package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrUserQueryNotFound = errors.New("user query not found")

type userQueryRepository interface {
	Create(ctx context.Context, q *entity.UserQuery) error
	FindByID(ctx context.Context, id string) (*entity.UserQuery, error)
	List(ctx context.Context) ([]*entity.UserQuery, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserQueryService interface {
	Create(ctx context.Context, req *types.CreateUserQueryRequest) (*types.UserQueryResponse, error)
	List(ctx context.Context) ([]*types.UserQueryResponse, error)
	Get(ctx context.Context, id string) (*types.UserQueryResponse, error)
	Delete(ctx context.Context, id string) error
}

type userQueryService struct {
	repo       userQueryRepository
	queue      mailQueue
	adminEmail string
	now        func() time.Time
}

func NewUserQueryService(repo userQueryRepository, queue mailQueue, adminEmail string) UserQueryService {
	return &userQueryService{
		repo:       repo,
		queue:      queue,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

// Create stores the query, then notifies the admin and confirms receipt to
// the sender.
func (s *userQueryService) Create(ctx context.Context, req *types.CreateUserQueryRequest) (*types.UserQueryResponse, error) {
	now := s.now()
	q := &entity.UserQuery{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}

	if _, err := s.queue.Enqueue(ctx, mail.JobUserQueryNotification, mail.UserQueryNotificationPayload{
		QueryID:    q.ID,
		AdminEmail: s.adminEmail,
		Name:       q.Name,
		Email:      q.Email,
		Subject:    q.Subject,
		Message:    q.Message,
	}); err != nil {
		return nil, err
	}

	if _, err := s.queue.Enqueue(ctx, mail.JobUserQueryConfirmation, mail.UserQueryConfirmationPayload{
		Email:   q.Email,
		Name:    q.Name,
		Subject: q.Subject,
	}); err != nil {
		return nil, err
	}

	return toUserQueryResponse(q), nil
}

func (s *userQueryService) List(ctx context.Context) ([]*types.UserQueryResponse, error) {
	queries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*types.UserQueryResponse, 0, len(queries))
	for _, q := range queries {
		out = append(out, toUserQueryResponse(q))
	}
	return out, nil
}

func (s *userQueryService) Get(ctx context.Context, id string) (*types.UserQueryResponse, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrUserQueryNotFound
	}
	return toUserQueryResponse(q), nil
}

func (s *userQueryService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserQueryNotFound
	}
	return nil
}

func toUserQueryResponse(q *entity.UserQuery) *types.UserQueryResponse {
	return &types.UserQueryResponse{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Subject:   q.Subject,
		Message:   q.Message,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
