package txn

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsNotSupported_CommandCodes(t *testing.T) {
	tests := []struct {
		name string
		code int32
		want bool
	}{
		{"illegal operation", 20, true},
		{"command not supported", 51, true},
		{"operation not supported in transaction", 263, true},
		{"unrelated code", 100, false},
		{"duplicate key", 11000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mongo.CommandError{Code: tt.code, Message: "server rejected operation"}
			if got := IsNotSupported(err); got != tt.want {
				t.Errorf("IsNotSupported(code=%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsNotSupported_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("some random error"), false},
		{"transaction alone", errors.New("transaction failed"), false},
		{"transaction on standalone", errors.New("Transaction numbers are only allowed on a replica set member"), true},
		{"sessions unsupported", errors.New("session operations are not supported on this server"), true},
		{"transaction in session", errors.New("cannot start transaction in current session state"), true},
		{"illegal operation", errors.New("illegal operation during transaction"), true},
		{"case insensitive", errors.New("TRANSACTION FAILED on REPLICA SET"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotSupported_WrappedCommandError(t *testing.T) {
	inner := mongo.CommandError{Code: 263, Message: "cannot run in a multi-document transaction"}
	wrapped := fmt.Errorf("purge accounts: %w", inner)

	if !IsNotSupported(wrapped) {
		t.Error("expected wrapped command error to be detected")
	}
}
