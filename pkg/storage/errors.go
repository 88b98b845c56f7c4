package storage

import "errors"

var ErrMissingCredentials = errors.New("storage credentials missing: set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
