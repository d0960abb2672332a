package reproject

import (
	"fmt"
	"math"

	"github.com/creasty/defaults"
	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
)

const DefaultPrecision = 3

// Options configure the reprojection of a geometry.
type Options struct {
	// Maximum deviation in the destination CRS's linear unit. Nil skips densification.
	Tolerance *float64 `validate:"omitempty,gte=0"`
	// Number of decimals in the output coordinates.
	Precision uint `default:"3" validate:"lte=15"`
	// The first densification spacing is the ring's perimeter divided by this.
	InitialSegments int `default:"100" validate:"gt=0"`
	// Maximum number of times the densification spacing is halved.
	MaxIterations int `default:"12" validate:"gt=0,lte=30"`
	// Maximum number of rings processed at the same time. 0 means no limit.
	Concurrency int `validate:"gte=0"`

	Logger logr.Logger `validate:"-"`
}

// NewOptions returns Options with defaults applied and a discarding logger.
func NewOptions() Options {
	opts := Options{Logger: logr.Discard()}
	if err := defaults.Set(&opts); err != nil {
		panic(fmt.Errorf("invalid defaults for reproject options: %w", err))
	}
	return opts
}

// WithTolerance returns a copy of the options with the tolerance set.
func (o Options) WithTolerance(tolerance float64) Options {
	o.Tolerance = &tolerance
	return o
}

func (o Options) Validate() error {
	if o.Tolerance != nil && (math.IsNaN(*o.Tolerance) || math.IsInf(*o.Tolerance, 0)) {
		return fmt.Errorf("%w: tolerance should be a finite number, got %v", ErrInvalidParameter, *o.Tolerance)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return nil
}
