package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/dbx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/password"
	activationsrepo "github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/activations"
	sessionsrepo "github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/sessions"
	usersrepo "github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newTestHasher(t *testing.T) *password.Hasher {
	t.Helper()
	return password.NewHasher(bcrypt.MinCost)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	findByUsernameOut *models.User
	findByUsernameErr error

	findByEmailOut *models.User
	findByEmailErr error

	updateOut *models.User
	updateErr error

	setFeaturesErr error
	setFeaturesGot models.FeatureSet
	setFeaturesID  uuid.UUID

	usernameTaken    bool
	usernameTakenErr error
	emailTaken       bool
	emailTakenErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) FindOneByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.findByUsernameErr != nil {
		return nil, f.findByUsernameErr
	}
	return f.findByUsernameOut, nil
}

func (f *fakeUsersRepo) FindOneByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	return f.findByEmailOut, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) SetFeatures(ctx context.Context, userID uuid.UUID, features models.FeatureSet) error {
	f.setFeaturesID = userID
	f.setFeaturesGot = features
	return f.setFeaturesErr
}

func (f *fakeUsersRepo) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	return f.usernameTaken, f.usernameTakenErr
}

func (f *fakeUsersRepo) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return f.emailTaken, f.emailTakenErr
}

type fakeActivationsRepo struct {
	createOut *models.ActivationToken
	createErr error

	findOut *models.ActivationToken
	findErr error

	markUsedOut *models.ActivationToken
	markUsedErr error
}

func (f *fakeActivationsRepo) Create(ctx context.Context, tok *models.ActivationToken) (*models.ActivationToken, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return tok, nil
}

func (f *fakeActivationsRepo) FindOneValidByID(ctx context.Context, id uuid.UUID) (*models.ActivationToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeActivationsRepo) MarkUsed(ctx context.Context, id uuid.UUID) (*models.ActivationToken, error) {
	if f.markUsedErr != nil {
		return nil, f.markUsedErr
	}
	return f.markUsedOut, nil
}

type fakeSessionsRepo struct {
	createOut *models.Session
	createErr error

	findOut *models.Session
	findErr error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return s, nil
}

func (f *fakeSessionsRepo) FindOneValidByToken(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	a *fakeActivationsRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.u }
func (m *fakeRepoManager) Activations(db dbx.DBTX) activationsrepo.Repository { return m.a }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository       { return m.s }

func assertAppError(t *testing.T, err error, name string, status int) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.AppError, got %T: %v", err, err)
	}
	if appErr.Name != name {
		t.Errorf("error name = %q, want %q", appErr.Name, name)
	}
	if appErr.StatusCode != status {
		t.Errorf("status code = %d, want %d", appErr.StatusCode, status)
	}
	return appErr
}

// --- tests ---

func TestUserCreate_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	hasher := newTestHasher(t)
	s := NewUserService(db, rm, hasher)

	user, err := s.Create(context.Background(), "brunonogaki", "bruno@example.com", "senha-secreta")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if user.Username != "brunonogaki" || user.Email != "bruno@example.com" {
		t.Errorf("unexpected user identity: %q / %q", user.Username, user.Email)
	}
	if user.ID == uuid.Nil {
		t.Error("expected a generated user id")
	}
	if !hasher.Compare("senha-secreta", user.Password) {
		t.Error("stored password does not verify against the submitted plaintext")
	}
	if user.Password == "senha-secreta" {
		t.Error("password stored in plaintext")
	}
	if !user.Features.Has(models.FeatureReadActivationToken) {
		t.Error("new user is missing the activation-token capability")
	}
	if user.Features.Has(models.FeatureCreateSession) {
		t.Error("new user must not be able to create sessions before activation")
	}
}

func TestUserCreate_DuplicateUsernamePrecheck(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{usernameTaken: true}}
	s := NewUserService(db, rm, newTestHasher(t))

	_, err := s.Create(context.Background(), "taken", "novo@example.com", "senha")
	appErr := assertAppError(t, err, "ValidationError", 400)
	if appErr.Message != "O username informado já está sendo utilizado." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestUserCreate_DuplicateEmailPrecheck(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{emailTaken: true}}
	s := NewUserService(db, rm, newTestHasher(t))

	_, err := s.Create(context.Background(), "novo", "taken@example.com", "senha")
	appErr := assertAppError(t, err, "ValidationError", 400)
	if appErr.Message != "O email informado já está sendo utilizado." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestUserCreate_DuplicateRaceOnInsert(t *testing.T) {
	// The pre-check passes but a concurrent insert wins; the unique index
	// violation must surface as the same validation error.
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorDuplicateEmail}}
	s := NewUserService(db, rm, newTestHasher(t))

	_, err := s.Create(context.Background(), "novo", "taken@example.com", "senha")
	appErr := assertAppError(t, err, "ValidationError", 400)
	if appErr.Message != "O email informado já está sendo utilizado." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestUserCreate_EmptyPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := NewUserService(db, rm, newTestHasher(t))

	if _, err := s.Create(context.Background(), "novo", "novo@example.com", ""); err == nil {
		t.Fatal("expected an error for an empty password")
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{findByUsernameErr: common.ErrorNotFound}}
	s := NewUserService(db, rm, newTestHasher(t))

	username := "outro"
	_, err := s.Update(context.Background(), "fantasma", UserPatch{Username: &username})
	assertAppError(t, err, "NotFoundError", 404)
}

func TestUserUpdate_PartialPatch(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	existing := &models.User{
		ID:       uuid.New(),
		Username: "bruno",
		Email:    "bruno@example.com",
		Password: "$2a$04$existinghash",
		Features: models.NewUserFeatures(),
	}
	rm := &fakeRepoManager{u: &fakeUsersRepo{findByUsernameOut: existing}}
	s := NewUserService(db, rm, newTestHasher(t))

	email := "novo@example.com"
	updated, err := s.Update(context.Background(), "bruno", UserPatch{Email: &email})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Email != "novo@example.com" {
		t.Errorf("email = %q, want %q", updated.Email, "novo@example.com")
	}
	if updated.Username != "bruno" {
		t.Errorf("username changed unexpectedly: %q", updated.Username)
	}
	if updated.Password != "$2a$04$existinghash" {
		t.Error("password changed without a password patch")
	}
}

func TestUserUpdate_PasswordRehash(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	existing := &models.User{ID: uuid.New(), Username: "bruno", Email: "b@example.com", Password: "old"}
	rm := &fakeRepoManager{u: &fakeUsersRepo{findByUsernameOut: existing}}
	hasher := newTestHasher(t)
	s := NewUserService(db, rm, hasher)

	plaintext := "nova-senha"
	updated, err := s.Update(context.Background(), "bruno", UserPatch{Password: &plaintext})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !hasher.Compare("nova-senha", updated.Password) {
		t.Error("updated password does not verify against the new plaintext")
	}
}

func TestUserUpdate_DuplicateUsername(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	existing := &models.User{ID: uuid.New(), Username: "bruno", Email: "b@example.com"}
	rm := &fakeRepoManager{u: &fakeUsersRepo{findByUsernameOut: existing, usernameTaken: true}}
	s := NewUserService(db, rm, newTestHasher(t))

	username := "taken"
	_, err := s.Update(context.Background(), "bruno", UserPatch{Username: &username})
	appErr := assertAppError(t, err, "ValidationError", 400)
	if appErr.Action != "Utilize outro username para realizar esta operação." {
		t.Errorf("unexpected action: %q", appErr.Action)
	}
}

func TestUserUpdate_SameValueKeepsOwnRow(t *testing.T) {
	// Re-submitting the current username must not trip the duplicate
	// check; the fake reports "not taken" because the real query excludes
	// the user's own row, and the patch flows through unchanged.
	db, _ := newSQLMockDB(t)
	defer db.Close()

	existing := &models.User{ID: uuid.New(), Username: "bruno", Email: "b@example.com"}
	rm := &fakeRepoManager{u: &fakeUsersRepo{findByUsernameOut: existing}}
	s := NewUserService(db, rm, newTestHasher(t))

	username := "bruno"
	updated, err := s.Update(context.Background(), "bruno", UserPatch{Username: &username})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Username != "bruno" {
		t.Errorf("username = %q, want %q", updated.Username, "bruno")
	}
}

func TestUserFindOneByUsername_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{findByUsernameErr: common.ErrorNotFound}}
	s := NewUserService(db, rm, newTestHasher(t))

	_, err := s.FindOneByUsername(context.Background(), "fantasma")
	appErr := assertAppError(t, err, "NotFoundError", 404)
	if appErr.Message != "O username informado não foi encontrado no sistema." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}
