package roadnet

import (
	"maps"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// DefaultSpeedKPH is the fallback speed applied when a variant's speed
// field is missing or non-positive, before travel time is derived. This is
// a documented fallback, not silent data loss: adapters count how many
// records it touched in [Result.DefaultedSpeeds].
const DefaultSpeedKPH = 20.0

// Adapter maps one schema vintage's raw records into canonical records.
// Implementations are stateless and safe for concurrent use.
type Adapter interface {
	// Vintage returns the tag this adapter is registered under.
	Vintage() string

	// Normalize converts raw features into canonical records. It fails with
	// a SCHEMA_ERROR on records violating the vintage's required shape and
	// with EMPTY_INPUT when the input or the post-filter set is empty.
	Normalize(features []*geojson.Feature) (*Result, error)
}

// Result holds the outcome of a normalization pass.
type Result struct {
	Records []Record

	// DefaultedSpeeds counts records whose missing or non-positive speed
	// fields were replaced with DefaultSpeedKPH.
	DefaultedSpeeds int

	// Filtered counts records dropped by the vintage's routability filter
	// before normalization.
	Filtered int
}

// adapters is the registry of supported schema vintages. Selection is by
// explicit tag only.
var adapters = map[string]Adapter{
	VintageTomTom2017: tomtom2017{},
	VintageTomTom2021: tomtom2021{},
	VintageOSM:        osm{},
}

// Vintages returns the registered vintage tags in sorted order.
func Vintages() []string {
	return slices.Sorted(maps.Keys(adapters))
}

// ByVintage returns the adapter registered for the tag, or an
// UNSUPPORTED_VINTAGE error listing the supported tags.
func ByVintage(tag string) (Adapter, error) {
	a, ok := adapters[tag]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedVintage,
			"vintage %q not supported; must be one of %v", tag, Vintages())
	}
	return a, nil
}

// Normalize converts raw features using the adapter registered for the
// vintage tag. Fails with UNSUPPORTED_VINTAGE for unknown tags and
// EMPTY_INPUT for an empty input sequence.
func Normalize(features []*geojson.Feature, vintage string) (*Result, error) {
	a, err := ByVintage(vintage)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"road network has no links; check geofence boundaries")
	}
	return a.Normalize(features)
}

// =============================================================================
// Property Access Helpers
// =============================================================================

// lineString extracts the feature geometry as a LineString with at least
// two points.
func lineString(f *geojson.Feature) (orb.LineString, error) {
	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		return nil, errors.New(errors.ErrCodeSchema, "geometry must be a LineString, got %T", f.Geometry)
	}
	if len(ls) < 2 {
		return nil, errors.New(errors.ErrCodeSchema, "geometry must have at least 2 points, got %d", len(ls))
	}
	return ls, nil
}

// propInt64 coerces a required identifier property to int64.
func propInt64(f *geojson.Feature, name string) (int64, error) {
	v, ok := f.Properties[name]
	if !ok || v == nil {
		return 0, errors.New(errors.ErrCodeSchema, "missing required field: %s", name)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeSchema, "field %s is not numeric: %q", name, n)
		}
		return int64(parsed), nil
	}
	return 0, errors.New(errors.ErrCodeSchema, "field %s is not numeric: %v", name, v)
}

// propFloat coerces an optional numeric property to float64.
// Returns ok=false when the property is absent or nil.
func propFloat(f *geojson.Feature, name string) (value float64, ok bool, err error) {
	v, present := f.Properties[name]
	if !present || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case float64:
		return n, true, nil
	case string:
		parsed, perr := strconv.ParseFloat(n, 64)
		if perr != nil {
			return 0, false, errors.New(errors.ErrCodeSchema, "field %s is not numeric: %q", name, n)
		}
		return parsed, true, nil
	}
	return 0, false, errors.New(errors.ErrCodeSchema, "field %s is not numeric: %v", name, v)
}

// propFloatRequired coerces a required numeric property to float64.
func propFloatRequired(f *geojson.Feature, name string) (float64, error) {
	v, ok, err := propFloat(f, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New(errors.ErrCodeSchema, "missing required field: %s", name)
	}
	return v, nil
}

// propFloatDefault coerces an optional numeric property, falling back to
// def when absent.
func propFloatDefault(f *geojson.Feature, name string, def float64) (float64, error) {
	v, ok, err := propFloat(f, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// propString returns an optional string property, with "" when absent.
func propString(f *geojson.Feature, name string) string {
	if v, ok := f.Properties[name].(string); ok {
		return v
	}
	return ""
}
