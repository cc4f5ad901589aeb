package pipeline

import (
	"os"

	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/cache"
	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// ReadInput reads a GeoJSON FeatureCollection from disk and returns the
// features plus the content hash of the raw bytes, which keys the build
// cache.
func ReadInput(path string) ([]*geojson.Feature, string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read input file: %s", path)
	}

	features, err := ParseFeatures(data)
	if err != nil {
		return nil, "", err
	}
	return features, cache.Hash(data), nil
}

// ParseFeatures parses raw GeoJSON bytes into features. Accepts a
// FeatureCollection; fails with INVALID_FORMAT on anything else.
func ParseFeatures(data []byte) ([]*geojson.Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "input is not a GeoJSON FeatureCollection")
	}
	return fc.Features, nil
}
