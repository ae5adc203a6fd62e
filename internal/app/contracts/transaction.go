package contracts

import "context"

// Transactor runs fn inside a storage transaction. Repository calls made
// with the context passed to fn take part in it; when fn returns an error
// nothing is committed.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
