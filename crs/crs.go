// Package crs turns coordinate reference system definitions (proj4 strings, WKT
// or a few well-known EPSG codes) into point transforms.
package crs

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ctessum/geom/proj"
	"github.com/muesli/reflow/truncate"
)

const maxDefinitionLenInMessages = 80

var ErrUnknownCRS = errors.New("unknown CRS")

// Projector maps a single coordinate from one CRS to another.
type Projector interface {
	Project(c [2]float64) ([2]float64, error)
}

// Transform projects coordinates from Source to Destination.
// It is safe for concurrent use.
type Transform struct {
	Source      string
	Destination string

	// the underlying transformer mutates its spatial references on every call
	mu          sync.Mutex
	transformer proj.Transformer
}

// New creates a Transform between two CRS definitions. Definitions whose projection
// is not supported are rejected here instead of on the first Project call.
func New(src, dst string) (*Transform, error) {
	srcSR, err := parse(src)
	if err != nil {
		return nil, err
	}
	dstSR, err := parse(dst)
	if err != nil {
		return nil, err
	}
	transformer, err := newTransformer(srcSR, dstSR)
	if err != nil {
		return nil, fmt.Errorf("could not create transform from %s to %s: %w", shorten(src), shorten(dst), err)
	}
	return &Transform{
		Source:      src,
		Destination: dst,
		transformer: transformer,
	}, nil
}

func (t *Transform) Project(c [2]float64) ([2]float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	x, y, err := t.transformer(c[0], c[1])
	if err != nil {
		return [2]float64{}, fmt.Errorf("could not project %v: %w", c, err)
	}
	return [2]float64{x, y}, nil
}

// newTransformer chains the sinusoidal projection, which proj lacks, with a proj
// transform on the geographic side. Other projections go through proj alone.
func newTransformer(src, dst *proj.SR) (proj.Transformer, error) {
	var inverse, forward proj.Transformer
	if isSinusoidal(src) {
		s, err := newSinusoidal(src)
		if err != nil {
			return nil, err
		}
		inverse = s.inverse
		if src, err = geographic(); err != nil {
			return nil, err
		}
	}
	if isSinusoidal(dst) {
		s, err := newSinusoidal(dst)
		if err != nil {
			return nil, err
		}
		forward = s.forward
		if dst, err = geographic(); err != nil {
			return nil, err
		}
	}

	if !src.Equal(dst, 3) {
		for _, sr := range []*proj.SR{src, dst} {
			if _, _, err := sr.Transformers(); err != nil {
				return nil, fmt.Errorf("unsupported projection %s: %w", sr.Name, err)
			}
		}
	}
	transformer, err := src.NewTransform(dst)
	if err != nil {
		return nil, err
	}
	return chain(inverse, transformer, forward), nil
}

// chain applies the non-nil transformers in order.
func chain(transformers ...proj.Transformer) proj.Transformer {
	return func(x, y float64) (float64, float64, error) {
		var err error
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if x, y, err = t(x, y); err != nil {
				return 0, 0, err
			}
		}
		return x, y, nil
	}
}

func parse(definition string) (*proj.SR, error) {
	resolved, err := Resolve(definition)
	if err != nil {
		return nil, err
	}
	sr, err := proj.Parse(resolved)
	if err != nil {
		return nil, fmt.Errorf("could not parse CRS %s: %w", shorten(definition), err)
	}
	return sr, nil
}

func shorten(definition string) string {
	return truncate.StringWithTail(strings.TrimSpace(definition), maxDefinitionLenInMessages, "...")
}
