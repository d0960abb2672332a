package crs

import (
	"fmt"
	"strconv"
	"strings"
)

const epsgPrefix = "EPSG:"

var epsgDefinitions = map[int]string{
	4326: "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs",
	4269: "+proj=longlat +ellps=GRS80 +datum=NAD83 +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +no_defs",
}

// Resolve returns the proj4 definition for an EPSG:<code> identifier.
// Any other definition (proj4 string or WKT) is returned as is.
func Resolve(definition string) (string, error) {
	trimmed := strings.TrimSpace(definition)
	if len(trimmed) < len(epsgPrefix) || !strings.EqualFold(trimmed[:len(epsgPrefix)], epsgPrefix) {
		return definition, nil
	}
	code, err := strconv.Atoi(trimmed[len(epsgPrefix):])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCRS, definition)
	}
	if def, ok := epsgDefinitions[code]; ok {
		return def, nil
	}
	// WGS 84 / UTM zones, north 326xx and south 327xx
	switch zone := code % 100; {
	case code/100 == 326 && zone >= 1 && zone <= 60:
		return fmt.Sprintf("+proj=utm +zone=%d +ellps=WGS84 +datum=WGS84 +no_defs", zone), nil
	case code/100 == 327 && zone >= 1 && zone <= 60:
		return fmt.Sprintf("+proj=utm +zone=%d +south +ellps=WGS84 +datum=WGS84 +no_defs", zone), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCRS, definition)
}
