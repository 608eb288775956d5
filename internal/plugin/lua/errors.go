package lua

import (
	nverrors "github.com/neviraide/neviraide-core/internal/errors"
)

// ErrStateClosed is returned when operating on a closed state.
var ErrStateClosed = nverrors.ErrStateClosed

// hostErr classifies a runtime error into the host error taxonomy.
func hostErr(err error) error {
	if err == nil {
		return nil
	}
	return nverrors.FromLua(err)
}
