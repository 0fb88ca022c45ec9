package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mapchelin/mapchelin/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID       primitive.ObjectID
	Nickname string
	Role     string
}

// RegularUser returns a TestUser with the default role.
func RegularUser() TestUser {
	return TestUser{
		ID:       primitive.NewObjectID(),
		Nickname: "test-user",
		Role:     "user",
	}
}

// UserWithID returns a TestUser bound to an existing document id, for
// handler tests operating on fixture users.
func UserWithID(id primitive.ObjectID, nickname string) TestUser {
	return TestUser{
		ID:       id,
		Nickname: nickname,
		Role:     "user",
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers, bypassing token verification.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.TokenUser{
		ID:       user.ID,
		Nickname: user.Nickname,
		Role:     user.Role,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// DecodeBody parses a recorded JSON response body into a generic map.
func DecodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertMsg checks the "msg" field of the JSON envelope.
func (r *ResponseRecorder) AssertMsg(t *testing.T, expected string) {
	t.Helper()
	body := DecodeBody(t, bytes.NewReader(r.Body.Bytes()))
	if got, _ := body["msg"].(string); got != expected {
		t.Errorf("msg: got %q, want %q", got, expected)
	}
}
