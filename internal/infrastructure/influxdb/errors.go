package influxdb

import "errors"

var (
	// ErrDisabled is returned by Connect when forwarding is switched off.
	ErrDisabled = errors.New("influxdb: forwarding disabled")

	// ErrConnectionFailed means the server did not answer the initial ping.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrNotConnected is returned by HealthCheck after Close.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrWriteFailed wraps batch errors passed to the SetOnError callback.
	ErrWriteFailed = errors.New("influxdb: write failed")
)
