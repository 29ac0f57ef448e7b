package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/config"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	repo "github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer"
	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer/templates"
	"github.com/surajkarki66/MediLeaf-backend/pkg/slug"
	"github.com/surajkarki66/MediLeaf-backend/pkg/token"
)

var (
	// ErrInvalidCredentials covers every login failure: unknown email,
	// wrong password, deactivated account. Callers must not distinguish
	// between them.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotVerified        = errors.New("account is not verified")
	ErrAlreadyVerified    = errors.New("account is already verified")
	ErrInvalidLink        = errors.New("invalid link")
	ErrLinkExpired        = errors.New("verification link has expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSamePassword       = errors.New("new password must differ from the current one")
)

// Notifier hands rendered-checked email jobs to the delivery pipeline.
type Notifier interface {
	Dispatch(ctx context.Context, job mailer.EmailJob) error
}

// AccountService implements the account lifecycle: signup with email
// verification, login/logout, password change and reset.
type AccountService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	Tokens   *token.Maker
	Notify   Notifier
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewAccountService(users repo.UserRepository, profiles repo.ProfileRepository, tokens *token.Maker, notify Notifier, cfg *config.Config, logger *logrus.Logger) *AccountService {
	return &AccountService{
		Users:    users,
		Profiles: profiles,
		Tokens:   tokens,
		Notify:   notify,
		Cfg:      cfg,
		Logger:   logger,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Contact   string
	Country   string
}

// Signup creates the account with its profile and default group, then sends
// the verification email. The email render is checked before the job is
// queued, so a broken template fails the request instead of dropping mail.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)

	if err := helpers.ValidatePasswordStrength(in.Password, s.Cfg.MinPasswordLen); err != nil {
		return nil, err
	}

	taken, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	exp := time.Now().Add(s.Cfg.VerifyLinkTTL)
	u := &entity.User{
		FirstName:                  in.FirstName,
		LastName:                   in.LastName,
		Email:                      email,
		Password:                   hash,
		Contact:                    in.Contact,
		Country:                    in.Country,
		VerificationLinkExpiration: &exp,
	}

	profileSlug, err := slug.Unique(ctx, slug.Make(u.FullName()), s.Profiles.SlugExists)
	if err != nil {
		return nil, err
	}

	if err := s.Users.Create(ctx, u, profileSlug); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.sendVerification(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AccountService) sendVerification(ctx context.Context, u *entity.User) error {
	fp := token.Fingerprint(u.Password, u.IsVerified)
	tok, err := s.Tokens.Mint(u.ID, fp, token.PurposeVerify)
	if err != nil {
		return err
	}
	return s.Notify.Dispatch(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.VerifyEmail,
		Data: map[string]any{
			"Name": u.FullName(),
			"Link": s.Cfg.VerifyLink(token.EncodeID(u.ID), tok),
		},
	})
}

// Login validates credentials. Every failure maps to ErrInvalidCredentials
// so responses cannot be used to probe which emails have accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// burn a bcrypt comparison so unknown emails take as long
			// as wrong passwords
			helpers.CheckPassword("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive || !helpers.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Verify consumes a verification link. Already-verified accounts succeed
// with alreadyVerified set so the endpoint stays idempotent.
func (s *AccountService) Verify(ctx context.Context, uid, tok string) (alreadyVerified bool, err error) {
	id, err := token.DecodeID(uid)
	if err != nil {
		return false, ErrInvalidLink
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrInvalidLink
		}
		return false, err
	}
	if u.IsVerified {
		return true, nil
	}
	if u.VerificationLinkExpiration != nil && time.Now().After(*u.VerificationLinkExpiration) {
		return false, ErrLinkExpired
	}
	fp := token.Fingerprint(u.Password, u.IsVerified)
	if !s.Tokens.Check(u.ID, fp, token.PurposeVerify, tok) {
		return false, ErrInvalidLink
	}
	if err := s.Users.MarkVerified(ctx, u.ID); err != nil {
		return false, err
	}
	s.Logger.WithField("user_id", u.ID).Info("account verified")
	return false, nil
}

// ResendVerification restarts the verification window and emails a fresh
// link. The new expiration invalidates nothing by itself; the old token
// stays valid until the account state changes.
func (s *AccountService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	exp := time.Now().Add(s.Cfg.VerifyLinkTTL)
	u.VerificationLinkExpiration = &exp
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}
	return s.sendVerification(ctx, u)
}

// ChangePassword verifies the current password before replacing it. Only
// verified accounts may change their password. The state change
// invalidates any outstanding reset or verify tokens.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !u.IsVerified {
		return ErrNotVerified
	}
	if !helpers.CheckPassword(u.Password, current) {
		return ErrWrongPassword
	}
	if current == next {
		return ErrSamePassword
	}
	if err := helpers.ValidatePasswordStrength(next, s.Cfg.MinPasswordLen); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, u.ID, hash)
}

// ForgotPassword emails a reset link. Only verified accounts may reset;
// the distinct errors let the handler tell the caller what to do next.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !u.IsVerified {
		return ErrNotVerified
	}
	fp := token.Fingerprint(u.Password, u.IsVerified)
	tok, err := s.Tokens.Mint(u.ID, fp, token.PurposeReset)
	if err != nil {
		return err
	}
	return s.Notify.Dispatch(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.ResetPassword,
		Data: map[string]any{
			"Name": u.FullName(),
			"Link": s.Cfg.ResetPasswordLink(token.EncodeID(u.ID), tok),
		},
	})
}

// CheckResetToken validates a reset link without consuming it, so the
// front end can gate the new-password form.
func (s *AccountService) CheckResetToken(ctx context.Context, uid, tok string) (*entity.User, error) {
	id, err := token.DecodeID(uid)
	if err != nil {
		return nil, ErrInvalidLink
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	fp := token.Fingerprint(u.Password, u.IsVerified)
	if !s.Tokens.Check(u.ID, fp, token.PurposeReset, tok) {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// ResetPassword consumes a reset link and sets the new password. The
// password change flips the token fingerprint, so the link is single-use.
func (s *AccountService) ResetPassword(ctx context.Context, uid, tok, next string) error {
	u, err := s.CheckResetToken(ctx, uid, tok)
	if err != nil {
		return err
	}
	if err := helpers.ValidatePasswordStrength(next, s.Cfg.MinPasswordLen); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	// confirmation mail is best effort; the reset already happened
	if err := s.Notify.Dispatch(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.ResetSuccess,
		Data: map[string]any{
			"Name": u.FullName(),
			"Link": s.Cfg.SiteDomain + "/login",
		},
	}); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("reset confirmation mail failed")
	}
	return nil
}

// Me returns the account with its profile.
func (s *AccountService) Me(ctx context.Context, userID int64) (*entity.User, *entity.Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, nil, err
	}
	return u, p, nil
}
