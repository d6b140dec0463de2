package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/google/uuid"
)

var ErrCertificateNotFound = errors.New("certificate not found")

type certificateRepository interface {
	Create(ctx context.Context, certificate *entity.Certificate) error
	Update(ctx context.Context, certificate *entity.Certificate) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.Certificate, error)
	List(ctx context.Context) ([]*entity.Certificate, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Certificate, error)
}

type CertificateService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateCertificateRequest) (*types.CertificateResponse, error)
	List(ctx context.Context) ([]*types.CertificateResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*types.CertificateResponse, error)
	Get(ctx context.Context, id string) (*types.CertificateResponse, error)
	Update(ctx context.Context, req *types.UpdateCertificateRequest) (*types.CertificateResponse, error)
	Delete(ctx context.Context, id string) error
}

type certificateService struct {
	repo certificateRepository
	now  func() time.Time
}

func NewCertificateService(repo certificateRepository) CertificateService {
	return &certificateService{repo: repo, now: time.Now}
}

// Create stores the image reference as given. Uploading it is the caller's job.
func (s *certificateService) Create(ctx context.Context, ownerID string, req *types.CreateCertificateRequest) (*types.CertificateResponse, error) {
	now := s.now()
	certificate := &entity.Certificate{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Date:      req.Date.Time,
		UserID:    nullString(ownerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Subtitle != nil {
		certificate.Subtitle = nullString(*req.Subtitle)
	}
	if req.Description != nil {
		certificate.Description = nullString(*req.Description)
	}
	if req.ImageURL != nil {
		certificate.ImageURL = nullString(*req.ImageURL)
	}
	if req.ImagePublicID != nil {
		certificate.ImagePublicID = nullString(*req.ImagePublicID)
	}
	if req.UserID != nil {
		certificate.UserID = nullString(*req.UserID)
	}

	if err := s.repo.Create(ctx, certificate); err != nil {
		return nil, err
	}

	return toCertificateResponse(certificate), nil
}

func (s *certificateService) List(ctx context.Context) ([]*types.CertificateResponse, error) {
	certificates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCertificateResponses(certificates), nil
}

func (s *certificateService) ListByUser(ctx context.Context, userID string) ([]*types.CertificateResponse, error) {
	certificates, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCertificateResponses(certificates), nil
}

func (s *certificateService) Get(ctx context.Context, id string) (*types.CertificateResponse, error) {
	certificate, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCertificateResponse(certificate), nil
}

func (s *certificateService) Update(ctx context.Context, req *types.UpdateCertificateRequest) (*types.CertificateResponse, error) {
	certificate, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		certificate.Title = *req.Title
	}
	if req.Subtitle != nil {
		certificate.Subtitle = nullString(*req.Subtitle)
	}
	if req.Description != nil {
		certificate.Description = nullString(*req.Description)
	}
	if req.Date != nil {
		certificate.Date = req.Date.Time
	}
	if req.ImageURL != nil {
		certificate.ImageURL = nullString(*req.ImageURL)
	}
	if req.ImagePublicID != nil {
		certificate.ImagePublicID = nullString(*req.ImagePublicID)
	}
	if req.UserID != nil {
		certificate.UserID = nullString(*req.UserID)
	}
	certificate.UpdatedAt = s.now()

	if err = s.repo.Update(ctx, certificate); err != nil {
		return nil, err
	}

	return toCertificateResponse(certificate), nil
}

func (s *certificateService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCertificateNotFound
	}
	return nil
}

func (s *certificateService) find(ctx context.Context, id string) (*entity.Certificate, error) {
	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if certificate == nil {
		return nil, ErrCertificateNotFound
	}
	return certificate, nil
}

func toCertificateResponses(certificates []*entity.Certificate) []*types.CertificateResponse {
	out := make([]*types.CertificateResponse, 0, len(certificates))
	for _, certificate := range certificates {
		out = append(out, toCertificateResponse(certificate))
	}
	return out
}

func toCertificateResponse(certificate *entity.Certificate) *types.CertificateResponse {
	return &types.CertificateResponse{
		ID:            certificate.ID,
		Title:         certificate.Title,
		Subtitle:      stringPtr(certificate.Subtitle),
		Description:   stringPtr(certificate.Description),
		Date:          certificate.Date,
		ImageURL:      stringPtr(certificate.ImageURL),
		ImagePublicID: stringPtr(certificate.ImagePublicID),
		UserID:        stringPtr(certificate.UserID),
		CreatedAt:     certificate.CreatedAt,
		UpdatedAt:     certificate.UpdatedAt,
	}
}
