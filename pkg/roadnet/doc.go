// Package roadnet normalizes vintage-specific road segment records into
// canonical edge records and expands them into directed edges.
//
// # Overview
//
// Road network sources ship in several schema vintages with different field
// names, units, and direction encodings. Each supported vintage has its own
// [Adapter] that maps raw records (GeoJSON features) into the canonical
// [Record]: integer endpoint and road ids, geometry, distance in kilometers,
// and per-direction travel minutes. Adapter selection is by explicit vintage
// tag, never by field sniffing.
//
// [Expand] then turns each canonical record into zero, one, or two directed
// edges depending on its travel direction: a two-way segment becomes two
// independent directed edges with mutually reversed geometry, the backward
// copy keyed by the reversed form of the road id.
//
// # Supported vintages
//
//   - tomtom-2017: length in meters, precomputed travel minutes, FT/TF
//     oneway strings, rdcond/frc routability filter
//   - tomtom-2021: length in centimeters, per-direction average speeds with
//     a 20 km/h default for missing values, integer traffic direction codes
//   - osm: length in meters, optional speed_kph with highway-class
//     fallbacks, boolean oneway flag
//
// Raw records are consumed once and never mutated; normalization and
// expansion are pure per-record transforms with no shared state.
package roadnet
