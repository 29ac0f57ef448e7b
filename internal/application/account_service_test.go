package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surajkarki66/MediLeaf-backend/config"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	repo "github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer"
	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer/templates"
	"github.com/surajkarki66/MediLeaf-backend/pkg/token"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
	slugs  map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}, slugs: map[string]string{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User, profileSlug string) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.IsActive = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	f.slugs[profileSlug] = profileSlug
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	stored, ok := f.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.Contact = u.Contact
	stored.Country = u.Country
	stored.VerificationLinkExpiration = u.VerificationLinkExpiration
	stored.IsActive = u.IsActive
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsVerified = true
	u.IsActive = true
	u.VerificationLinkExpiration = nil
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[int64]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[int64]*entity.Profile{}}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*entity.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetBySlug(_ context.Context, slug string) (*entity.Profile, error) {
	for _, p := range f.profiles {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range f.profiles {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	jobs []mailer.EmailJob
	err  error
}

func (f *fakeNotifier) Dispatch(_ context.Context, job mailer.EmailJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MinPasswordLen: 8,
		VerifyLinkTTL:  24 * time.Hour,
		SiteDomain:     "http://localhost:3000",
	}
}

func newTestService(t *testing.T) (*AccountService, *fakeUserRepo, *fakeNotifier) {
	t.Helper()
	users := newFakeUserRepo()
	notify := &fakeNotifier{}
	logger := logrus.New()
	svc := NewAccountService(users, newFakeProfileRepo(), token.NewMaker("test-secret", time.Hour), notify, testConfig(), logger)
	return svc, users, notify
}

func signupInput() SignupInput {
	return SignupInput{
		FirstName: "Suraj",
		LastName:  "Karki",
		Email:     "suraj@Example.COM",
		Password:  "correct horse battery",
		Country:   "NP",
	}
}

func TestSignupCreatesUnverifiedAccountAndQueuesMail(t *testing.T) {
	svc, users, notify := newTestService(t)

	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	assert.Equal(t, "suraj@example.com", u.Email, "email domain should be normalized")
	assert.False(t, u.IsVerified)
	require.NotNil(t, u.VerificationLinkExpiration)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *u.VerificationLinkExpiration, time.Minute)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, helpers.CheckPassword(stored.Password, "correct horse battery"))

	require.Len(t, notify.jobs, 1)
	assert.Equal(t, templates.VerifyEmail, notify.jobs[0].Template)
	assert.Equal(t, "suraj@example.com", notify.jobs[0].To)
	assert.Contains(t, notify.jobs[0].Data["Link"], "http://localhost:3000/verify/")
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	in := signupInput()
	in.Email = "suraj@example.com"
	_, err = svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupRejectsWeakPasswords(t *testing.T) {
	svc, _, notify := newTestService(t)

	in := signupInput()
	in.Password = "short"
	_, err := svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, helpers.ErrPasswordTooShort)

	in.Password = "1234567890"
	_, err = svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, helpers.ErrPasswordAllNumeric)

	assert.Empty(t, notify.jobs, "no mail for rejected signups")
}

func TestSignupFailsWhenDispatchFails(t *testing.T) {
	svc, _, notify := newTestService(t)
	notify.err = assert.AnError

	_, err := svc.Signup(context.Background(), signupInput())
	assert.Error(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, users, _ := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "nobody@example.com", "whatever12")
	unknownErr := err
	_, err = svc.Login(context.Background(), u.Email, "wrong password")
	wrongErr := err

	users.users[u.ID].IsActive = false
	_, err = svc.Login(context.Background(), u.Email, "correct horse battery")
	inactiveErr := err

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.ErrorIs(t, inactiveErr, ErrInvalidCredentials)
}

func TestLoginSucceedsForUnverifiedAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	got, err := svc.Login(context.Background(), "suraj@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func verifyLinkParts(t *testing.T, job mailer.EmailJob) (uid, tok string) {
	t.Helper()
	link, _ := job.Data["Link"].(string)
	require.NotEmpty(t, link)
	// .../verify/{uid}/{token} or .../reset-password/{uid}/{token}
	var parts []string
	for _, p := range splitPath(link) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	require.GreaterOrEqual(t, len(parts), 2)
	return parts[len(parts)-2], parts[len(parts)-1]
}

func splitPath(link string) []string {
	var parts []string
	cur := ""
	for _, r := range link {
		if r == '/' {
			parts = append(parts, cur)
			cur = ""
			continue
		}
		cur += string(r)
	}
	return append(parts, cur)
}

func TestVerifyRoundTrip(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	uid, tok := verifyLinkParts(t, notify.jobs[0])

	already, err := svc.Verify(context.Background(), uid, tok)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, users.users[u.ID].IsVerified)

	// second click is an idempotent success
	already, err = svc.Verify(context.Background(), uid, tok)
	require.NoError(t, err)
	assert.True(t, already)
}

func TestVerifyReactivatesAccount(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	users.users[u.ID].IsActive = false
	uid, tok := verifyLinkParts(t, notify.jobs[0])

	_, err = svc.Verify(context.Background(), uid, tok)
	require.NoError(t, err)
	assert.True(t, users.users[u.ID].IsVerified)
	assert.True(t, users.users[u.ID].IsActive)

	_, err = svc.Login(context.Background(), u.Email, "correct horse battery")
	assert.NoError(t, err)
}

func TestVerifyRejectsTamperedLinks(t *testing.T) {
	svc, _, notify := newTestService(t)
	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	uid, tok := verifyLinkParts(t, notify.jobs[0])

	_, err = svc.Verify(context.Background(), "!!!", tok)
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = svc.Verify(context.Background(), uid, tok+"x")
	assert.ErrorIs(t, err, ErrInvalidLink)

	// a link for a user that does not exist
	_, err = svc.Verify(context.Background(), token.EncodeID(9999), tok)
	assert.ErrorIs(t, err, ErrInvalidLink)
}

func TestVerifyRejectsExpiredWindow(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	uid, tok := verifyLinkParts(t, notify.jobs[0])

	past := time.Now().Add(-time.Hour)
	users.users[u.ID].VerificationLinkExpiration = &past

	_, err = svc.Verify(context.Background(), uid, tok)
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestVerifyTokenDiesOnPasswordChange(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	uid, tok := verifyLinkParts(t, notify.jobs[0])

	// any change to the stored hash flips the fingerprint the link was
	// minted against
	hash, err := helpers.HashPassword("another strong one")
	require.NoError(t, err)
	users.users[u.ID].Password = hash

	_, err = svc.Verify(context.Background(), uid, tok)
	assert.ErrorIs(t, err, ErrInvalidLink)
}

func TestResendVerification(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	require.NoError(t, svc.ResendVerification(context.Background(), u.Email))
	assert.Len(t, notify.jobs, 2)

	assert.ErrorIs(t, svc.ResendVerification(context.Background(), "nobody@example.com"), ErrUserNotFound)

	users.users[u.ID].IsVerified = true
	assert.ErrorIs(t, svc.ResendVerification(context.Background(), u.Email), ErrAlreadyVerified)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	// unverified accounts may log in but may not change their password
	assert.ErrorIs(t, svc.ChangePassword(context.Background(), u.ID, "correct horse battery", "new strong pass"), ErrNotVerified)

	users.users[u.ID].IsVerified = true
	assert.ErrorIs(t, svc.ChangePassword(context.Background(), u.ID, "nope", "new strong pass"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(context.Background(), u.ID, "correct horse battery", "correct horse battery"), ErrSamePassword)
	assert.ErrorIs(t, svc.ChangePassword(context.Background(), u.ID, "correct horse battery", "tiny"), helpers.ErrPasswordTooShort)

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "correct horse battery", "new strong pass"))
	_, err = svc.Login(context.Background(), u.Email, "new strong pass")
	assert.NoError(t, err)
	_, err = svc.Login(context.Background(), u.Email, "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPasswordRequiresVerifiedAccount(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), "nobody@example.com"), ErrUserNotFound)
	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), u.Email), ErrNotVerified)

	users.users[u.ID].IsVerified = true
	require.NoError(t, svc.ForgotPassword(context.Background(), u.Email))
	last := notify.jobs[len(notify.jobs)-1]
	assert.Equal(t, templates.ResetPassword, last.Template)
	assert.Contains(t, last.Data["Link"], "/reset-password/")
}

func TestResetPasswordFlow(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	users.users[u.ID].IsVerified = true

	require.NoError(t, svc.ForgotPassword(context.Background(), u.Email))
	uid, tok := verifyLinkParts(t, notify.jobs[len(notify.jobs)-1])

	_, err = svc.CheckResetToken(context.Background(), uid, tok)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), uid, tok, "brand new password"))
	_, err = svc.Login(context.Background(), u.Email, "brand new password")
	assert.NoError(t, err)

	// the password change invalidated the link
	err = svc.ResetPassword(context.Background(), uid, tok, "yet another pass")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// confirmation mail was queued
	last := notify.jobs[len(notify.jobs)-1]
	assert.Equal(t, templates.ResetSuccess, last.Template)
}

func TestCheckResetTokenFailureKinds(t *testing.T) {
	svc, users, notify := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	users.users[u.ID].IsVerified = true
	require.NoError(t, svc.ForgotPassword(context.Background(), u.Email))
	uid, tok := verifyLinkParts(t, notify.jobs[len(notify.jobs)-1])

	_, err = svc.CheckResetToken(context.Background(), "%%%", tok)
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = svc.CheckResetToken(context.Background(), token.EncodeID(4242), tok)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.CheckResetToken(context.Background(), uid, tok+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMe(t *testing.T) {
	svc, _, _ := newTestService(t)
	u, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	got, _, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Suraj Karki", got.FullName())

	_, _, err = svc.Me(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
