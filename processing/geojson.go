package processing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
)

const outfileSuffix = "-reprojected.json"

var ErrMalformedInput = errors.New("malformed input")

// GeoJSONFile is a Source and Target for a single GeoJSON geometry object in a file.
type GeoJSONFile struct {
	Path string
}

func (f GeoJSONFile) ReadGeometry() (geom.Geometry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", f.Path, err)
	}
	var g geojson.Geometry
	if err = json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%w: %s is not a GeoJSON geometry: %w", ErrMalformedInput, f.Path, err)
	}
	if g.Geometry == nil {
		return nil, fmt.Errorf("%w: %s contains no geometry", ErrMalformedInput, f.Path)
	}
	return g.Geometry, nil
}

func (f GeoJSONFile) WriteGeometry(g geom.Geometry) error {
	data, err := json.Marshal(&geojson.Geometry{Geometry: g})
	if err != nil {
		return fmt.Errorf("could not encode geometry for %s: %w", f.Path, err)
	}
	if err = os.WriteFile(f.Path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("could not write %s: %w", f.Path, err)
	}
	return nil
}

// DefaultOutfile derives the output path from the input path,
// e.g. footprint.json becomes footprint-reprojected.json.
func DefaultOutfile(infile string) string {
	return strings.TrimSuffix(infile, filepath.Ext(infile)) + outfileSuffix
}
