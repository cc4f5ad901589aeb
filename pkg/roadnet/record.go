package roadnet

import "github.com/paulmach/orb"

// Direction classifies the travel directions a segment permits, in terms of
// the canonical (digitized) orientation of its geometry.
type Direction int

const (
	// DirectionForward permits travel only from the segment's from-node to
	// its to-node.
	DirectionForward Direction = iota
	// DirectionBackward permits travel only against the canonical
	// orientation.
	DirectionBackward
	// DirectionBoth permits travel in both directions.
	DirectionBoth
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	case DirectionBoth:
		return "both"
	}
	return "unknown"
}

// Record is the vintage-independent representation of one road segment
// before directional expansion. The geometry's first point corresponds to
// FromNode and its last point to ToNode, in the canonical orientation.
type Record struct {
	FromNode        int64
	ToNode          int64
	RoadID          int64
	Geometry        orb.LineString
	Kilometers      float64
	ForwardMinutes  float64
	BackwardMinutes float64
	Direction       Direction
}
