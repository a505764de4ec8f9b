package phrasecluster

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring"
)

func sets(ids ...[]uint32) []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, len(ids))
	for i, s := range ids {
		out[i] = NewDocumentSet(s...)
	}
	return out
}

func TestDiagnose(t *testing.T) {
	truth := sets([]uint32{0, 1}, []uint32{2, 3})

	tests := []struct {
		name     string
		computed []*roaring.Bitmap
		want     Diagnostics
	}{
		{
			name:     "perfect",
			computed: sets([]uint32{2, 3}, []uint32{0, 1}),
			want:     Diagnostics{FMeasure: 1, Purity: 1, Entropy: 0},
		},
		{
			name:     "singletons",
			computed: sets([]uint32{0}, []uint32{1}, []uint32{2}, []uint32{3}),
			want:     Diagnostics{FMeasure: 2.0 / 3, Purity: 1, Entropy: 0},
		},
		{
			name:     "one cluster",
			computed: sets([]uint32{0, 1, 2, 3}),
			want:     Diagnostics{FMeasure: 2.0 / 3, Purity: 0.5, Entropy: math.NaN()},
		},
		{
			name:     "mixed halves",
			computed: sets([]uint32{0, 2}, []uint32{1, 3}),
			want:     Diagnostics{FMeasure: 0.5, Purity: 0.5, Entropy: 1},
		},
	}

	same := func(a, b float64) bool {
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.IsNaN(a) && math.IsNaN(b)
		}
		return math.Abs(a-b) < 1e-9
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagnose(tt.computed, truth)
			if !same(got.FMeasure, tt.want.FMeasure) || !same(got.Purity, tt.want.Purity) || !same(got.Entropy, tt.want.Entropy) {
				t.Errorf("Diagnose() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiagnosticsString(t *testing.T) {
	d := Diagnostics{FMeasure: 2.0 / 3, Purity: 0.5, Entropy: math.NaN()}
	want := "[Fmeasure = 0.6667, Purity = 0.5000, Entropy = NaN]"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
