// Package txn runs multi-document writes inside a MongoDB transaction when
// the deployment supports it.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotSupported reports that the server cannot run multi-document
// transactions (standalone mongod).
var ErrNotSupported = errors.New("transactions not supported by this deployment")

// Runner executes functions inside a session transaction.
type Runner struct {
	client *mongo.Client
}

// New returns a Runner bound to client.
func New(client *mongo.Client) *Runner {
	return &Runner{client: client}
}

// Run executes fn in a transaction. fn must use the context it receives for
// every operation that belongs to the transaction. If the deployment does
// not support transactions, Run returns an error wrapping ErrNotSupported and
// the caller is expected to fall back to its non-transactional path.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return classify(err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return classify(err)
}

// classify marks topology rejections with ErrNotSupported and keeps the
// driver error reachable through errors.As.
func classify(err error) error {
	if IsNotSupported(err) {
		return errors.Join(ErrNotSupported, err)
	}
	return err
}

// IsNotSupported reports whether err indicates the server rejected a
// transaction or session because of its topology.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, IllegalOpMsgFlag, OperationNotSupportedInTransaction
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	has := func(a, b string) bool { return strings.Contains(msg, a) && strings.Contains(msg, b) }
	return has("transaction", "replica set") ||
		has("transaction", "session") ||
		has("illegal operation", "transaction") ||
		has("session", "not supported")
}
