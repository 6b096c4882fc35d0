package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"civic-reports/internal/model"
)

func TestIssueParseRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Issue(userID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("Role = %v, want %v", claims.Role, model.RoleAdmin)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	good := NewManager("secret-a", time.Hour)
	bad := NewManager("secret-b", time.Hour)

	token, err := good.Issue(uuid.New(), model.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := bad.Parse(token); err == nil {
		t.Error("token signed with a different secret must not parse")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Issue(uuid.New(), model.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := manager.Parse(token); err == nil {
		t.Error("expired token must not parse")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	if _, err := manager.Parse("not-a-token"); err == nil {
		t.Error("garbage must not parse")
	}
}
