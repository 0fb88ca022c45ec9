// Package kakao adapts Kakao's OAuth payloads into the internal profile
// shape the account service consumes, keeping provider-specific schema out
// of the core.
package kakao

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/kakao"
)

const userInfoURL = "https://kapi.kakao.com/v2/user/me"

// Provider is the provider tag stored on users created through this flow.
const Provider = "kakao"

// Profile is the normalized identity extracted from a Kakao account.
type Profile struct {
	ID        string
	Nickname  string
	Email     string
	AvatarURL string
}

// Client drives the Kakao OAuth code flow.
type Client struct {
	conf *oauth2.Config
}

// New builds a Client. redirectURL is the absolute callback URL.
func New(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile_nickname", "profile_image"},
			Endpoint:     kakao.Endpoint,
		},
	}
}

// IsConfigured reports whether OAuth credentials are present.
func (c *Client) IsConfigured() bool {
	return c.conf.ClientID != ""
}

// AuthCodeURL returns the consent-screen URL for the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and fetches the user's
// normalized profile.
func (c *Client) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return fetchProfile(ctx, tok)
}

// userInfo mirrors the fields of Kakao's /v2/user/me response this app
// reads. Display fields appear both under the modern kakao_account.profile
// object and the legacy top-level properties map.
type userInfo struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"properties"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func fetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))

	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info: unexpected status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return Normalize(&info)
}

// Normalize flattens a raw Kakao userinfo payload into a Profile. The
// kakao_account.profile fields win over legacy properties; a missing
// nickname falls back to "kakao-<id>".
func Normalize(info *userInfo) (*Profile, error) {
	if info.ID == 0 {
		return nil, fmt.Errorf("user info has no id")
	}
	id := strconv.FormatInt(info.ID, 10)

	nickname := info.KakaoAccount.Profile.Nickname
	if nickname == "" {
		nickname = info.Properties.Nickname
	}
	if nickname == "" {
		nickname = "kakao-" + id
	}

	avatar := info.KakaoAccount.Profile.ProfileImageURL
	if avatar == "" {
		avatar = info.Properties.ProfileImage
	}

	return &Profile{
		ID:        id,
		Nickname:  nickname,
		Email:     info.KakaoAccount.Email,
		AvatarURL: avatar,
	}, nil
}

// GenerateState creates a cryptographically secure random state string.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
