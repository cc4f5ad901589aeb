package roadnet

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// feat builds a raw record feature with a two-point geometry.
func feat(props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func TestVintages(t *testing.T) {
	want := []string{VintageOSM, VintageTomTom2017, VintageTomTom2021}
	got := Vintages()
	if len(got) != len(want) {
		t.Fatalf("Vintages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vintages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeUnsupportedVintage(t *testing.T) {
	_, err := Normalize([]*geojson.Feature{feat(nil)}, "tomtom-1999")
	if err == nil {
		t.Fatal("unknown vintage should fail")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedVintage) {
		t.Errorf("error code = %v, want UNSUPPORTED_VINTAGE", errors.GetCode(err))
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	for _, vintage := range Vintages() {
		t.Run(vintage, func(t *testing.T) {
			_, err := Normalize(nil, vintage)
			if err == nil {
				t.Fatal("empty input should fail")
			}
			if !errors.Is(err, errors.ErrCodeEmptyInput) {
				t.Errorf("error code = %v, want EMPTY_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestPropInt64(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{"float64", float64(42), 42, false},
		{"int", 42, 42, false},
		{"int64", int64(42), 42, false},
		{"numeric string", "42", 42, false},
		{"float string", "42.0", 42, false},
		{"non-numeric string", "abc", 0, true},
		{"nil", nil, 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := feat(map[string]any{"id": tt.value})
			got, err := propInt64(f, "id")
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeSchema) {
					t.Errorf("error code = %v, want SCHEMA_ERROR", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("propInt64: %v", err)
			}
			if got != tt.want {
				t.Errorf("propInt64 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPropInt64Missing(t *testing.T) {
	_, err := propInt64(feat(nil), "id")
	if !errors.Is(err, errors.ErrCodeSchema) {
		t.Errorf("missing required field: code = %v, want SCHEMA_ERROR", errors.GetCode(err))
	}
}

func TestLineString(t *testing.T) {
	f := geojson.NewFeature(orb.Point{1, 2})
	if _, err := lineString(f); !errors.Is(err, errors.ErrCodeSchema) {
		t.Error("non-LineString geometry should be a SCHEMA_ERROR")
	}

	short := geojson.NewFeature(orb.LineString{{0, 0}})
	if _, err := lineString(short); !errors.Is(err, errors.ErrCodeSchema) {
		t.Error("single-point geometry should be a SCHEMA_ERROR")
	}
}
