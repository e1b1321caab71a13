package taskqueue

import "errors"

var ErrUnknownBackend = errors.New("unknown task queue backend")
