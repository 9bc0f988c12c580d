package health

import "errors"

var (
	// ErrCheckFailed marks a probe that reached its dependency and got a wrong answer.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that did not finish before the probe deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
