package roadnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// VintageOSM tags OpenStreetMap-derived records: lengths in meters, an
// optional speed_kph field with highway-class fallbacks, and a boolean
// oneway flag.
const VintageOSM = "osm"

// highwaySpeedsKPH maps OSM highway classes to assumed speeds for segments
// without an explicit speed_kph value.
var highwaySpeedsKPH = map[string]float64{
	"motorway":    100,
	"trunk":       100,
	"residential": 60,
	"tertiary":    60,
}

// osm normalizes OpenStreetMap way records. Missing geometries are rebuilt
// as a straight line between the endpoint coordinates when the record
// carries them.
type osm struct{}

func (osm) Vintage() string { return VintageOSM }

func (osm) Normalize(features []*geojson.Feature) (*Result, error) {
	res := &Result{Records: make([]Record, 0, len(features))}

	for _, f := range features {
		rec, defaulted, err := normalizeOSM(f)
		if err != nil {
			return nil, err
		}
		if defaulted {
			res.DefaultedSpeeds++
		}
		res.Records = append(res.Records, rec)
	}

	if len(res.Records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"road network has no links; check geofence boundaries")
	}
	return res, nil
}

func normalizeOSM(f *geojson.Feature) (rec Record, defaulted bool, err error) {
	roadID, err := propInt64(f, "osmid")
	if err != nil {
		return Record{}, false, err
	}
	from, err := propInt64(f, "u")
	if err != nil {
		return Record{}, false, err
	}
	to, err := propInt64(f, "v")
	if err != nil {
		return Record{}, false, err
	}
	meters, err := propFloatRequired(f, "length")
	if err != nil {
		return Record{}, false, err
	}

	geom, err := osmGeometry(f)
	if err != nil {
		return Record{}, false, err
	}

	speed, ok, err := propFloat(f, "speed_kph")
	if err != nil {
		return Record{}, false, err
	}
	if !ok || speed <= 0 {
		speed, defaulted = fallbackSpeed(propString(f, "highway"))
	}

	dir := DirectionBoth
	if oneway, _ := f.Properties["oneway"].(bool); oneway {
		dir = DirectionForward
	}

	km := meters / metersPerKilometer
	minutes := km / speed * 60

	return Record{
		FromNode:        from,
		ToNode:          to,
		RoadID:          roadID,
		Geometry:        geom,
		Kilometers:      km,
		ForwardMinutes:  minutes,
		BackwardMinutes: minutes,
		Direction:       dir,
	}, defaulted, nil
}

// fallbackSpeed resolves a speed for segments without speed_kph: the
// highway-class table if the class is known, otherwise DefaultSpeedKPH.
// The defaulted flag is set only for the generic fallback, matching how
// speed defaulting is surfaced for the other vintages.
func fallbackSpeed(highway string) (float64, bool) {
	if v, ok := highwaySpeedsKPH[highway]; ok {
		return v, false
	}
	return DefaultSpeedKPH, true
}

// osmGeometry returns the way geometry, rebuilding a pseudo-geometry from
// the endpoint coordinates for ways that ship without one.
func osmGeometry(f *geojson.Feature) (orb.LineString, error) {
	if f.Geometry != nil {
		return lineString(f)
	}

	coords := [4]float64{}
	for i, name := range []string{"from_x", "from_y", "to_x", "to_y"} {
		v, err := propFloatRequired(f, name)
		if err != nil {
			return nil, errors.New(errors.ErrCodeSchema,
				"record has no geometry and no endpoint coordinates (%s)", name)
		}
		coords[i] = v
	}
	return orb.LineString{{coords[0], coords[1]}, {coords[2], coords[3]}}, nil
}
