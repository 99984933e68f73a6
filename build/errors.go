package build

import (
	"github.com/NebulousLabs/errors"
)

// ExtendErr prefixes err with a human-readable call-site description,
// preserving err's identity for errors.Contains. A nil err yields nil.
func ExtendErr(s string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Extend(err, errors.New(s))
}

// ComposeErrors joins any number of possibly-nil errors into a single
// error, dropping the nils. It returns nil if every input was nil.
func ComposeErrors(errs ...error) error {
	return errors.Compose(errs...)
}
