package kakao

import (
	"encoding/json"
	"testing"
)

func parse(t *testing.T, raw string) *userInfo {
	t.Helper()
	var info userInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return &info
}

func TestNormalize_ModernProfile(t *testing.T) {
	info := parse(t, `{
		"id": 12345678,
		"properties": {"nickname": "legacy-nick", "profile_image": "http://img/legacy.png"},
		"kakao_account": {
			"email": "user@kakao.com",
			"profile": {"nickname": "modern-nick", "profile_image_url": "http://img/modern.png"}
		}
	}`)

	p, err := Normalize(info)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if p.ID != "12345678" {
		t.Errorf("ID: got %q", p.ID)
	}
	if p.Nickname != "modern-nick" {
		t.Errorf("Nickname: got %q, want the kakao_account profile value", p.Nickname)
	}
	if p.AvatarURL != "http://img/modern.png" {
		t.Errorf("AvatarURL: got %q", p.AvatarURL)
	}
	if p.Email != "user@kakao.com" {
		t.Errorf("Email: got %q", p.Email)
	}
}

func TestNormalize_LegacyPropertiesFallback(t *testing.T) {
	info := parse(t, `{
		"id": 42,
		"properties": {"nickname": "legacy-nick", "profile_image": "http://img/legacy.png"}
	}`)

	p, err := Normalize(info)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if p.Nickname != "legacy-nick" {
		t.Errorf("Nickname: got %q, want legacy fallback", p.Nickname)
	}
	if p.AvatarURL != "http://img/legacy.png" {
		t.Errorf("AvatarURL: got %q", p.AvatarURL)
	}
}

func TestNormalize_NicknameDefault(t *testing.T) {
	info := parse(t, `{"id": 99}`)

	p, err := Normalize(info)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if p.Nickname != "kakao-99" {
		t.Errorf("Nickname: got %q, want kakao-99", p.Nickname)
	}
}

func TestNormalize_MissingID(t *testing.T) {
	info := parse(t, `{"properties": {"nickname": "n"}}`)

	if _, err := Normalize(info); err == nil {
		t.Fatal("expected error for payload without id")
	}
}

func TestGenerateState_Unique(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	if a == b {
		t.Error("expected distinct states")
	}
	if len(a) < 32 {
		t.Errorf("state too short: %d", len(a))
	}
}
