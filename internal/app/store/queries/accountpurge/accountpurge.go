// Package accountpurge removes an account and everything that references
// it in one transaction, so a half-deleted user can never be observed.
package accountpurge

import (
	"context"

	"github.com/mapchelin/mapchelin/internal/app/store/bookmarks"
	"github.com/mapchelin/mapchelin/internal/app/store/comments"
	"github.com/mapchelin/mapchelin/internal/app/store/notifications"
	"github.com/mapchelin/mapchelin/internal/app/store/stores"
	"github.com/mapchelin/mapchelin/internal/app/store/users"
	"github.com/mapchelin/mapchelin/internal/app/system/apperr"
	"github.com/mapchelin/mapchelin/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Purger struct {
	Client        *mongo.Client
	Users         *userstore.Store
	Stores        *storestore.Store
	Comments      *commentstore.Store
	Bookmarks     *bookmarkstore.Store
	Notifications *notificationstore.Store
	Log           *zap.Logger

	// afterStep, when set, runs after each named step. Tests use it to
	// force a mid-cascade failure and observe the rollback.
	afterStep func(step string) error
}

func New(client *mongo.Client, db *mongo.Database, log *zap.Logger) *Purger {
	return &Purger{
		Client:        client,
		Users:         userstore.New(db),
		Stores:        storestore.New(db),
		Comments:      commentstore.New(db),
		Bookmarks:     bookmarkstore.New(db),
		Notifications: notificationstore.New(db),
		Log:           log,
	}
}

// Purge deletes the user and cascades through everything the account owns
// or touches. The whole sequence runs in one transaction: either every
// step lands or none do. Tagged domain errors pass through unchanged;
// any other failure is wrapped as a generic internal error after the
// transaction has rolled back.
func (p *Purger) Purge(ctx context.Context, userID primitive.ObjectID) error {
	err := txn.WithTransaction(ctx, p.Client, p.Log, func(ctx context.Context) error {
		return p.purgeSteps(ctx, userID)
	})
	if err == nil {
		return nil
	}
	if apperr.From(err) != nil {
		return err
	}
	return apperr.Internal("account deletion failed, rolled back", err)
}

func (p *Purger) purgeSteps(ctx context.Context, userID primitive.ObjectID) error {
	u, err := p.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return apperr.NotFound("user not found")
	}
	if err != nil {
		return err
	}
	if err := p.step("load user"); err != nil {
		return err
	}

	st, err := p.Stores.GetByOwner(ctx, u.ID)
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}
	if err := p.step("locate store"); err != nil {
		return err
	}

	// A store owned by the user takes its own dependents with it:
	// comments left on it and notifications it sent.
	if st != nil {
		if _, err := p.Comments.DeleteByStore(ctx, st.ID); err != nil {
			return err
		}
		if _, err := p.Notifications.DeleteBySender(ctx, st.ID); err != nil {
			return err
		}
		if _, err := p.Stores.Delete(ctx, st.ID); err != nil {
			return err
		}
		if err := p.step("delete store"); err != nil {
			return err
		}
	}

	if _, err := p.Bookmarks.DeleteByUser(ctx, u.ID); err != nil {
		return err
	}
	if err := p.step("delete bookmarks"); err != nil {
		return err
	}

	// Notifications addressed to the user survive; only the recipient
	// entry is removed.
	if _, err := p.Notifications.PullRecipient(ctx, u.ID); err != nil {
		return err
	}
	if err := p.step("pull recipient"); err != nil {
		return err
	}

	if _, err := p.Comments.DeleteByAuthor(ctx, u.ID); err != nil {
		return err
	}
	if err := p.step("delete comments"); err != nil {
		return err
	}

	n, err := p.Users.Delete(ctx, u.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("user not found")
	}
	return p.step("delete user")
}

func (p *Purger) step(name string) error {
	if p.afterStep == nil {
		return nil
	}
	return p.afterStep(name)
}
