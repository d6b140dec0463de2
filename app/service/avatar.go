package service

import (
	"context"
	"io"

	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/sirupsen/logrus"
)

// AvatarService stores a profile picture and points the user's profile at it.
type AvatarService struct {
	users   UserAuthService
	uploads UploadService
}

func NewAvatarService(users UserAuthService, uploads UploadService) *AvatarService {
	return &AvatarService{users: users, uploads: uploads}
}

func (s *AvatarService) Replace(ctx context.Context, userID, filename, contentType string, size int64, body io.Reader) (*types.UserProfile, error) {
	current, err := s.users.GetUserDetails(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploads.Upload(ctx, ProfileFolder, filename, contentType, size, body)
	if err != nil {
		return nil, err
	}

	profile, err := s.users.UpdateUserDetails(ctx, userID, &types.UpdateUserRequest{
		ProfileImageURL:      &uploaded.URL,
		ProfileImagePublicID: &uploaded.PublicID,
	})
	if err != nil {
		s.discard(ctx, userID, uploaded.PublicID)
		return nil, err
	}

	if current.ProfileImagePublicID != nil && *current.ProfileImagePublicID != "" && *current.ProfileImagePublicID != uploaded.PublicID {
		s.discard(ctx, userID, *current.ProfileImagePublicID)
	}

	return profile, nil
}

func (s *AvatarService) discard(ctx context.Context, userID, publicID string) {
	if err := s.uploads.Delete(ctx, publicID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).WithField("public_id", publicID).Warn("failed to delete avatar object")
	}
}
