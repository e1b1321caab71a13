package broker

import "errors"

var (
	ErrConnectFailed   = errors.New("failed to connect to message broker")
	ErrDeclareFailed   = errors.New("failed to declare queue")
	ErrConsumeFailed   = errors.New("failed to start consuming")
	ErrDeliveriesEnded = errors.New("delivery channel closed by broker")
	ErrNilHandler      = errors.New("consumer handler is nil")
)
