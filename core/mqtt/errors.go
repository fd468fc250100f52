package mqtt

import "errors"

// ErrNotConnected is returned when publishing on a closed connection.
var ErrNotConnected = errors.New("mqtt: not connected")

// ErrAckTimeout is returned when no depot confirms a schedule in time.
var ErrAckTimeout = errors.New("mqtt: acknowledgment timeout")
