// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account, whether it was created with an
// email/password pair or on first Kakao login.
//
// NOTE:
//   - Password is a pointer so OAuth-only accounts can omit it entirely,
//     and it is never serialized to JSON.
//   - Email is optional for the same reason; Kakao does not always share it.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      *string            `bson:"email,omitempty" json:"email,omitempty"`
	Password   *string            `bson:"password,omitempty" json:"-"`
	Nickname   string             `bson:"nickname" json:"nickname"`
	NicknameCI string             `bson:"nickname_ci" json:"-"` // lowercase, diacritics-stripped
	Role       string             `bson:"role" json:"role"`     // user | owner | admin
	Provider   string             `bson:"provider,omitempty" json:"provider,omitempty"`
	ProviderID string             `bson:"provider_id,omitempty" json:"-"`
	AvatarURL  string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the projection returned from auth endpoints. It never
// carries the credential, and omits email where the operation calls for it.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Nickname  string             `json:"nickname"`
	Role      string             `json:"role"`
	AvatarURL string             `json:"avatar_url,omitempty"`
}

// Public returns the credential-free projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Nickname:  u.Nickname,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}
