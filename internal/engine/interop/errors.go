package interop

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

// fail returns an error that matches sentinel with errors.Is, carries cause when
// non-nil and has the given key/value pairs attached as metadata.
func fail(sentinel, cause error, kv ...any) error {
	err := sentinel
	if cause != nil {
		err = errors.Join(sentinel, cause)
	}

	err = zerr.Wrap(err, "")
	for i := 0; i+1 < len(kv); i += 2 {
		err = zerr.With(err, fmt.Sprint(kv[i]), kv[i+1])
	}
	return err
}
