package token

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{Secret: "test-secret-0123456789", Issuer: "mapchelin-test"})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return iss
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	if _, err := NewIssuer(Config{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssuePair_RoundTrip(t *testing.T) {
	iss := testIssuer(t)
	userID := primitive.NewObjectID()

	pair, err := iss.IssuePair(userID, "kimchi-lover", "user")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens should differ")
	}

	claims, err := iss.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if claims.Subject != userID.Hex() {
		t.Errorf("Subject: got %q, want %q", claims.Subject, userID.Hex())
	}
	if claims.Nickname != "kimchi-lover" {
		t.Errorf("Nickname: got %q, want %q", claims.Nickname, "kimchi-lover")
	}
	if claims.Role != "user" {
		t.Errorf("Role: got %q, want %q", claims.Role, "user")
	}

	gotID, err := iss.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("refresh subject: got %v, want %v", gotID, userID)
	}
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	iss := testIssuer(t)
	pair, err := iss.IssuePair(primitive.NewObjectID(), "nick", "user")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	// A refresh token must never pass as a Bearer credential, or its
	// 14-day lifetime would defeat the short access TTL.
	if _, err := iss.VerifyAccess(pair.RefreshToken); err != ErrInvalidToken {
		t.Errorf("VerifyAccess(refresh token): got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	iss := testIssuer(t)
	pair, err := iss.IssuePair(primitive.NewObjectID(), "nick", "user")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	// An access token must never mint fresh pairs.
	if _, err := iss.VerifyRefresh(pair.AccessToken); err != ErrInvalidToken {
		t.Errorf("VerifyRefresh(access token): got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	iss := testIssuer(t)
	other, _ := NewIssuer(Config{Secret: "a-completely-different-secret"})

	pair, err := iss.IssuePair(primitive.NewObjectID(), "nick", "user")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	if _, err := other.VerifyAccess(pair.AccessToken); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAccess_Expired(t *testing.T) {
	iss, err := NewIssuer(Config{Secret: "test-secret-0123456789", AccessTTL: time.Millisecond})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	pair, err := iss.IssuePair(primitive.NewObjectID(), "nick", "user")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := iss.VerifyAccess(pair.AccessToken); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyAccess_Garbage(t *testing.T) {
	iss := testIssuer(t)
	if _, err := iss.VerifyAccess("not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
