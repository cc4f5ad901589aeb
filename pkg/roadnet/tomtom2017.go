package roadnet

import (
	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// VintageTomTom2017 tags the TomTom 2017 Multinet schema: lengths in meters,
// precomputed travel minutes, and FT/TF oneway strings.
const VintageTomTom2017 = "tomtom-2017"

const metersPerKilometer = 1000.0

// tomtom2017 normalizes TomTom 2017 Multinet records.
//
// Records flagged as non-routable are filtered out before normalization:
// only segments with rdcond < 2 (road condition) and frc < 8 (functional
// road class) are kept, and a record missing either flag is dropped.
// Remaining missing numeric fields default to zero rather than dropping
// the record.
type tomtom2017 struct{}

func (tomtom2017) Vintage() string { return VintageTomTom2017 }

func (tomtom2017) Normalize(features []*geojson.Feature) (*Result, error) {
	res := &Result{Records: make([]Record, 0, len(features))}

	for _, f := range features {
		keep, err := routable2017(f)
		if err != nil {
			return nil, err
		}
		if !keep {
			res.Filtered++
			continue
		}

		rec, err := normalize2017(f)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, rec)
	}

	if len(res.Records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"road network has no links after filtering; check geofence boundaries")
	}
	return res, nil
}

// routable2017 applies the rdcond/frc routability filter.
func routable2017(f *geojson.Feature) (bool, error) {
	rdcond, ok, err := propFloat(f, "rdcond")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	frc, ok, err := propFloat(f, "frc")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return rdcond < 2 && frc < 8, nil
}

func normalize2017(f *geojson.Feature) (Record, error) {
	roadID, err := propInt64(f, "id")
	if err != nil {
		return Record{}, err
	}
	from, err := propInt64(f, "f_jnctid")
	if err != nil {
		return Record{}, err
	}
	to, err := propInt64(f, "t_jnctid")
	if err != nil {
		return Record{}, err
	}
	geom, err := lineString(f)
	if err != nil {
		return Record{}, err
	}

	meters, err := propFloatDefault(f, "meters", 0)
	if err != nil {
		return Record{}, err
	}
	minutes, err := propFloatDefault(f, "minutes", 0)
	if err != nil {
		return Record{}, err
	}

	return Record{
		FromNode:        from,
		ToNode:          to,
		RoadID:          roadID,
		Geometry:        geom,
		Kilometers:      meters / metersPerKilometer,
		ForwardMinutes:  minutes,
		BackwardMinutes: minutes,
		Direction:       direction2017(propString(f, "oneway")),
	}, nil
}

// direction2017 maps the 2017 oneway string. The schema documents anything
// other than FT/TF (including blank) as two-way.
func direction2017(oneway string) Direction {
	switch oneway {
	case "FT":
		return DirectionForward
	case "TF":
		return DirectionBackward
	default:
		return DirectionBoth
	}
}
