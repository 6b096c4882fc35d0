package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-reports/internal/auth"
	"civic-reports/internal/model"
)

type memAuthUserStore struct {
	byUsername map[string]*model.User
	byEmail    map[string]*model.User
}

func newMemAuthUserStore() *memAuthUserStore {
	return &memAuthUserStore{byUsername: map[string]*model.User{}, byEmail: map[string]*model.User{}}
}

func (m *memAuthUserStore) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.byUsername[user.Username] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memAuthUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAuthUserStore) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	_, userTaken := m.byUsername[username]
	_, emailTaken := m.byEmail[email]
	return userTaken || emailTaken, nil
}

func newAuthFixture() (*AuthService, *memAuthUserStore, *auth.Manager) {
	store := newMemAuthUserStore()
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(store, tokens), store, tokens
}

func TestRegisterDefaultsToCitizen(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.RoleCitizen {
		t.Errorf("Role = %v, want citizen", user.Role)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "hunter22"})
	if err == nil {
		t.Error("duplicate username must be rejected")
	}

	_, err = svc.Register(ctx, RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "hunter22"})
	if err == nil {
		t.Error("duplicate email must be rejected")
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing username", RegisterInput{Email: "a@b.com", Password: "hunter22"}},
		{"missing email", RegisterInput{Username: "alice", Password: "hunter22"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@b.com", Password: "abc"}},
		{"bad role", RegisterInput{Username: "alice", Email: "a@b.com", Password: "hunter22", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "hunter22",
		Role:     model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(ctx, "admin", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user ID = %v, want %v", user.ID, registered.ID)
	}

	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != model.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "hunter22"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "hunter22"); err != ErrInvalidCredentials {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}
