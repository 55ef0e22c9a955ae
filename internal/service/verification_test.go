package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"synco/social-api/db"
	"synco/social-api/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, id string) {
	t.Helper()

	u := model.User{
		ID:           id,
		Username:     id,
		Email:        id + "@example.com",
		PasswordHash: "x",
	}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestFreshTokenRedeems(t *testing.T) {
	conn := newTestDB(t)
	seedUser(t, conn, "alice")

	token, err := IssueVerificationToken(conn, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	status, err := RedeemVerificationToken(conn, token.Token)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if status != TokenVerified {
		t.Fatalf("expected TokenVerified, got %v", status)
	}

	verified, err := EmailVerified(conn, "alice")
	if err != nil {
		t.Fatalf("email verified: %v", err)
	}
	if !verified {
		t.Fatal("expected email to be verified after redeeming")
	}
}

func TestUsedTokenStaysDead(t *testing.T) {
	conn := newTestDB(t)
	seedUser(t, conn, "alice")

	token, err := IssueVerificationToken(conn, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := RedeemVerificationToken(conn, token.Token); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	status, err := RedeemVerificationToken(conn, token.Token)
	if err != nil {
		t.Fatalf("redeem again: %v", err)
	}
	if status != TokenAlreadyUsed {
		t.Fatalf("expected TokenAlreadyUsed, got %v", status)
	}
}

func TestNewerTokenSupersedesOlder(t *testing.T) {
	conn := newTestDB(t)
	seedUser(t, conn, "alice")

	t1, err := IssueVerificationToken(conn, "alice")
	if err != nil {
		t.Fatalf("issue t1: %v", err)
	}

	t2, err := IssueVerificationToken(conn, "alice")
	if err != nil {
		t.Fatalf("issue t2: %v", err)
	}

	// t1 is unexpired and unused but no longer the newest
	status, err := RedeemVerificationToken(conn, t1.Token)
	if err != nil {
		t.Fatalf("redeem t1: %v", err)
	}
	if status != TokenSuperseded {
		t.Fatalf("expected TokenSuperseded for t1, got %v", status)
	}

	status, err = RedeemVerificationToken(conn, t2.Token)
	if err != nil {
		t.Fatalf("redeem t2: %v", err)
	}
	if status != TokenVerified {
		t.Fatalf("expected TokenVerified for t2, got %v", status)
	}
}

func TestExpiredToken(t *testing.T) {
	conn := newTestDB(t)
	seedUser(t, conn, "alice")

	token, err := IssueVerificationToken(conn, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	err = conn.Model(&model.VerificationToken{}).
		Where("id = ?", token.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).
		Error
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}

	status, err := RedeemVerificationToken(conn, token.Token)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if status != TokenExpired {
		t.Fatalf("expected TokenExpired, got %v", status)
	}
}

func TestUnknownToken(t *testing.T) {
	conn := newTestDB(t)

	status, err := RedeemVerificationToken(conn, "nope")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if status != TokenInvalid {
		t.Fatalf("expected TokenInvalid, got %v", status)
	}
}

func TestEmailVerifiedResetsOnNewToken(t *testing.T) {
	conn := newTestDB(t)
	seedUser(t, conn, "alice")

	token, err := IssueVerificationToken(conn, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := RedeemVerificationToken(conn, token.Token); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	// An email change issues a fresh token, dropping the verified state
	// until the new address is confirmed
	if _, err := IssueVerificationToken(conn, "alice"); err != nil {
		t.Fatalf("issue again: %v", err)
	}

	verified, err := EmailVerified(conn, "alice")
	if err != nil {
		t.Fatalf("email verified: %v", err)
	}
	if verified {
		t.Fatal("expected verified state to reset after a new token")
	}
}

func TestEmailVerifiedNoTokens(t *testing.T) {
	conn := newTestDB(t)
	seedUser(t, conn, "alice")

	verified, err := EmailVerified(conn, "alice")
	if err != nil {
		t.Fatalf("email verified: %v", err)
	}
	if verified {
		t.Fatal("expected unverified with no tokens")
	}
}
