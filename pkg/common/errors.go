package common

import "github.com/cockroachdb/errors"

// ErrDuplicate is returned by repo implementations when a transaction with
// the same ref has already been saved.
var ErrDuplicate = errors.New("duplicate transaction")
