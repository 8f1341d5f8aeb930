package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-match/internal/domain/user"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type memUserRepo struct {
	byEmail map[string]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]user.User{}}
}

func (m *memUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, repository.ErrUserNotFound
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func newAuthForTest() (*Auth, *memUserRepo) {
	repo := newMemUserRepo()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(repo, svc), repo
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	uc, _ := newAuthForTest()

	usr, access, refresh, err := uc.Register(context.Background(), RegisterInput{
		Email:    "Dev@Example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if usr.Email != "dev@example.com" {
		t.Fatalf("email not normalized: %q", usr.Email)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}
	if usr.PasswordHash != "" {
		t.Fatal("password hash leaked")
	}

	_, _, _, err = uc.Login(context.Background(), LoginInput{Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthForTest()
	in := RegisterInput{Email: "dev@example.com", Password: "hunter2hunter2"}

	if _, _, _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, _, err := uc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	uc, _ := newAuthForTest()
	if _, _, _, err := uc.Register(context.Background(), RegisterInput{Email: "dev@example.com", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, err := uc.Login(context.Background(), LoginInput{Email: "dev@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	uc, _ := newAuthForTest()
	_, access, _, err := uc.Register(context.Background(), RegisterInput{Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for access token, got %v", err)
	}
}

func TestAuth_RefreshIssuesNewTokens(t *testing.T) {
	uc, _ := newAuthForTest()
	_, _, refresh, err := uc.Register(context.Background(), RegisterInput{Email: "dev@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" || newRefresh == "" {
		t.Fatal("expected fresh token pair")
	}
}
