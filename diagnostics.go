package phrasecluster

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// Diagnostics compares a computed clustering against a reference one.
type Diagnostics struct {
	// FMeasure: per reference class, the best F1 over computed clusters,
	// weighted by class size.
	FMeasure float64
	// Purity: per computed cluster, the best precision over reference classes,
	// weighted by cluster size.
	Purity float64
	// Entropy: size-weighted class entropy of the computed clusters, normalised
	// by ln(number of computed clusters). NaN for a single computed cluster.
	Entropy float64
}

// Diagnose scores computed against truth. The total document count is the sum
// of the reference class sizes.
func Diagnose(computed, truth []*roaring.Bitmap) Diagnostics {
	var total float64
	for _, c := range truth {
		total += float64(c.GetCardinality())
	}
	if total == 0 {
		return Diagnostics{FMeasure: math.NaN(), Purity: math.NaN(), Entropy: math.NaN()}
	}

	// overlap[j][i] = |computed_j ∩ truth_i|
	overlap := make([][]float64, len(computed))
	for j, c := range computed {
		overlap[j] = make([]float64, len(truth))
		for i, t := range truth {
			overlap[j][i] = float64(c.AndCardinality(t))
		}
	}

	return Diagnostics{
		FMeasure: fMeasure(computed, truth, overlap, total),
		Purity:   purity(computed, truth, overlap, total),
		Entropy:  entropy(computed, truth, overlap, total),
	}
}

func fMeasure(computed, truth []*roaring.Bitmap, overlap [][]float64, total float64) float64 {
	var f float64
	for i, t := range truth {
		classSize := float64(t.GetCardinality())
		best := 0.0
		for j, c := range computed {
			inter := overlap[j][i]
			if inter == 0 {
				continue
			}
			recall := inter / classSize
			precision := inter / float64(c.GetCardinality())
			if f1 := 2 * recall * precision / (recall + precision); f1 > best {
				best = f1
			}
		}
		f += classSize / total * best
	}
	return f
}

func purity(computed, truth []*roaring.Bitmap, overlap [][]float64, total float64) float64 {
	var p float64
	for j, c := range computed {
		size := float64(c.GetCardinality())
		if size == 0 {
			continue
		}
		best := 0.0
		for i := range truth {
			if prec := overlap[j][i] / size; prec > best {
				best = prec
			}
		}
		p += size / total * best
	}
	return p
}

func entropy(computed, truth []*roaring.Bitmap, overlap [][]float64, total float64) float64 {
	if len(computed) <= 1 {
		return math.NaN()
	}
	var e float64
	for j, c := range computed {
		size := float64(c.GetCardinality())
		if size == 0 {
			continue
		}
		var plogp float64
		for i := range truth {
			if p := overlap[j][i] / size; p > 0 {
				plogp += p * math.Log(p)
			}
		}
		e += size / total * plogp
	}
	return -e / math.Log(float64(len(computed)))
}

// String formats the measures with four decimals.
func (d Diagnostics) String() string {
	return fmt.Sprintf("[Fmeasure = %.4f, Purity = %.4f, Entropy = %.4f]",
		math.Abs(d.FMeasure), math.Abs(d.Purity), math.Abs(d.Entropy))
}
