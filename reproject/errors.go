package reproject

import "errors"

var (
	// ErrInvalidParameter marks malformed or out-of-range input. Detected before any
	// projection work is done.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrProjection marks a coordinate that could not be projected.
	ErrProjection = errors.New("projection error")
	// ErrToleranceNotGuaranteed is a warning: the search for a densification hit its
	// iteration ceiling, the returned geometry is a best effort.
	ErrToleranceNotGuaranteed = errors.New("tolerance not guaranteed")
)
