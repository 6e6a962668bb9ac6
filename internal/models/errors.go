package models

import "errors"

// IsNotFound reports whether err names a table that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}
