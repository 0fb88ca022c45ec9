// Package txn wraps MongoDB multi-document transactions and detects
// deployments (standalone mongod) that cannot run them.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fn is the unit of work executed inside a transaction. The context passed
// in is session-scoped while a transaction is active, so all reads and
// writes made with it participate in the transaction.
type Fn func(ctx context.Context) error

// WithTransaction runs fn inside a session transaction, committing on a nil
// return and aborting on any error. On deployments where transactions are
// not supported it degrades to running fn without one, logging the
// downgrade once per call.
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn Fn) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return runWithoutTransaction(ctx, log, fn)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil && IsNotSupported(err) {
		return runWithoutTransaction(ctx, log, fn)
	}
	return err
}

// runWithoutTransaction applies fn's writes sequentially without atomicity.
func runWithoutTransaction(ctx context.Context, log *zap.Logger, fn Fn) error {
	if log != nil {
		log.Warn("mongodb deployment does not support transactions; running sequentially")
	}
	return fn(ctx)
}

// Server error codes that indicate the deployment cannot run transactions.
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err indicates the MongoDB deployment does
// not support sessions or multi-document transactions (typically a
// standalone mongod rather than a replica set or mongos).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "illegal operation"):
		return true
	case strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set"):
		return true
	case strings.Contains(msg, "transaction") && strings.Contains(msg, "session"):
		return true
	case strings.Contains(msg, "session") && strings.Contains(msg, "not supported"):
		return true
	}
	return false
}
