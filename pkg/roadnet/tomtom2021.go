package roadnet

import (
	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// VintageTomTom2021 tags the TomTom 2021 Multinet schema: lengths in
// centimeters, per-direction average speeds, and integer traffic direction
// codes.
const VintageTomTom2021 = "tomtom-2021"

const kilometersPerCentimeter = 0.00001

// Traffic direction codes in the 2021 schema.
const (
	trafficDirBothOpen   = 1 // open in both directions
	trafficDirForward    = 2 // open in positive direction only
	trafficDirBackward   = 3 // open in negative direction only
	trafficDirBothClosed = 9 // no through traffic, still traversable both ways
)

// tomtom2021 normalizes TomTom 2021 Multinet records. Missing per-direction
// speeds default to DefaultSpeedKPH before travel minutes are derived.
type tomtom2021 struct{}

func (tomtom2021) Vintage() string { return VintageTomTom2021 }

func (tomtom2021) Normalize(features []*geojson.Feature) (*Result, error) {
	res := &Result{Records: make([]Record, 0, len(features))}

	for _, f := range features {
		rec, defaulted, err := normalize2021(f)
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

func normalize2021(f *geojson.Feature) (rec Record, defaulted bool, err error) {
	roadID, err := propInt64(f, "netw_id")
	if err != nil {
		return Record{}, false, err
	}
	from, err := propInt64(f, "junction_id_from")
	if err != nil {
		return Record{}, false, err
	}
	to, err := propInt64(f, "junction_id_to")
	if err != nil {
		return Record{}, false, err
	}
	geom, err := lineString(f)
	if err != nil {
		return Record{}, false, err
	}
	centimeters, err := propFloatRequired(f, "centimeters")
	if err != nil {
		return Record{}, false, err
	}

	dir, err := direction2021(f)
	if err != nil {
		return Record{}, false, err
	}

	speedPos, okPos, err := propFloat(f, "speed_average_pos")
	if err != nil {
		return Record{}, false, err
	}
	speedNeg, okNeg, err := propFloat(f, "speed_average_neg")
	if err != nil {
		return Record{}, false, err
	}
	if !okPos || speedPos <= 0 {
		speedPos = DefaultSpeedKPH
		defaulted = true
	}
	if !okNeg || speedNeg <= 0 {
		speedNeg = DefaultSpeedKPH
		defaulted = true
	}

	km := centimeters * kilometersPerCentimeter

	return Record{
		FromNode:        from,
		ToNode:          to,
		RoadID:          roadID,
		Geometry:        geom,
		Kilometers:      km,
		ForwardMinutes:  km / speedPos * 60,
		BackwardMinutes: km / speedNeg * 60,
		Direction:       dir,
	}, defaulted, nil
}

// direction2021 maps the simple_traffic_direction code. The 2021 schema
// enumerates its codes, so anything unrecognized is a schema violation
// rather than an implied two-way segment.
func direction2021(f *geojson.Feature) (Direction, error) {
	code, err := propInt64(f, "simple_traffic_direction")
	if err != nil {
		return 0, err
	}
	switch code {
	case trafficDirForward:
		return DirectionForward, nil
	case trafficDirBackward:
		return DirectionBackward, nil
	case trafficDirBothOpen, trafficDirBothClosed:
		return DirectionBoth, nil
	}
	return 0, errors.New(errors.ErrCodeSchema, "unrecognized simple_traffic_direction code: %d", code)
}
