package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	repo "github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
)

// ContactService records contact form submissions.
type ContactService struct {
	Contacts repo.ContactRepository
	Logger   *logrus.Logger
}

func NewContactService(contacts repo.ContactRepository, logger *logrus.Logger) *ContactService {
	return &ContactService{Contacts: contacts, Logger: logger}
}

type ContactInput struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*entity.Contact, error) {
	c := &entity.Contact{
		FullName: in.FullName,
		Email:    entity.NormalizeEmail(in.Email),
		Subject:  in.Subject,
		Message:  in.Message,
	}
	if err := s.Contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	s.Logger.WithField("contact_id", c.ID).Info("contact message received")
	return c, nil
}

func (s *ContactService) List(ctx context.Context, p repo.ListParams) ([]entity.Contact, int, error) {
	return s.Contacts.List(ctx, clampList(p))
}

// FeedbackService stores prediction feedback from users.
type FeedbackService struct {
	Feedback repo.FeedbackRepository
	Logger   *logrus.Logger
}

func NewFeedbackService(feedback repo.FeedbackRepository, logger *logrus.Logger) *FeedbackService {
	return &FeedbackService{Feedback: feedback, Logger: logger}
}

type FeedbackInput struct {
	UserID         *int64
	ImageURL       string
	PredictedLabel string
	IsCorrect      bool
	ActualLabel    string
	Comment        string
}

func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (*entity.Feedback, error) {
	f := &entity.Feedback{
		UserID:         in.UserID,
		ImageURL:       in.ImageURL,
		PredictedLabel: in.PredictedLabel,
		IsCorrect:      in.IsCorrect,
		ActualLabel:    in.ActualLabel,
		Comment:        in.Comment,
	}
	if err := s.Feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context, p repo.ListParams) ([]entity.Feedback, int, error) {
	return s.Feedback.List(ctx, clampList(p))
}
