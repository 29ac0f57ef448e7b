package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	repo "github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/slug"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService updates user details, social links and avatars.
type ProfileService struct {
	Users     repo.UserRepository
	Profiles  repo.ProfileRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProfileService(users repo.UserRepository, profiles repo.ProfileRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, Profiles: profiles, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *ProfileService) GetBySlug(ctx context.Context, slugStr string) (*entity.User, *entity.Profile, error) {
	p, err := s.Profiles.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, err
	}
	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, p, nil
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Contact   string
	Country   string
	Facebook  string
	Instagram string
	LinkedIn  string
	Twitter   string
}

// Update changes account details and social links. A name change refreshes
// the profile slug, keeping it unique.
func (s *ProfileService) Update(ctx context.Context, userID int64, in UpdateProfileInput) (*entity.User, *entity.Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, err
	}

	nameChanged := false
	if in.FirstName != "" && in.FirstName != u.FirstName {
		u.FirstName = in.FirstName
		nameChanged = true
	}
	if in.LastName != "" && in.LastName != u.LastName {
		u.LastName = in.LastName
		nameChanged = true
	}
	if in.Contact != "" {
		u.Contact = in.Contact
	}
	if in.Country != "" {
		u.Country = in.Country
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, nil, err
	}

	if nameChanged {
		p.Slug, err = slug.Unique(ctx, slug.Make(u.FullName()), s.Profiles.SlugExists)
		if err != nil {
			return nil, nil, err
		}
	}
	if in.Facebook != "" {
		p.Facebook = in.Facebook
	}
	if in.Instagram != "" {
		p.Instagram = in.Instagram
	}
	if in.LinkedIn != "" {
		p.LinkedIn = in.LinkedIn
	}
	if in.Twitter != "" {
		p.Twitter = in.Twitter
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, nil, err
	}
	return u, p, nil
}

// UploadAvatar stores the image in GCS and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID int64, r io.Reader, filename, contentType string) (string, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", p.Slug, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	p.AvatarURL = url
	if err := s.Profiles.Update(ctx, p); err != nil {
		return "", err
	}
	return url, nil
}
