package analytics

import (
	"math"
	"sort"

	"github.com/riwisport/sales-dashboard/internal/models"
)

// HistogramOf bins values into the given number of equal-width bins spanning
// [min, max]. The last bin's upper edge is inclusive so the maximum is
// counted. Empty input or a non-positive bin count yields nil.
func HistogramOf(values []float64, bins int) []models.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		// Degenerate distribution: everything lands in a single bin.
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// BoxplotByCategory computes a five-number summary of subtotals per category,
// with whiskers at 1.5×IQR and points beyond them reported as outliers.
// Categories are emitted in ascending name order.
func BoxplotByCategory(rows []models.OrderItemRow) []models.BoxplotSummary {
	grouped := SubtotalsByCategory(rows)

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.BoxplotSummary, 0, len(names))
	for _, name := range names {
		out = append(out, boxplotSummary(name, grouped[name]))
	}
	return out
}

func boxplotSummary(category string, values []float64) models.BoxplotSummary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	median := quantile(sorted, 0.5)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	loFence := q1 - 1.5*iqr
	hiFence := q3 + 1.5*iqr

	// Whiskers reach the furthest observations inside the fences.
	lo, hi := sorted[0], sorted[len(sorted)-1]
	var outliers []float64
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			outliers = append(outliers, v)
		}
	}
	for _, v := range sorted {
		if v >= loFence {
			lo = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hiFence {
			hi = sorted[i]
			break
		}
	}

	return models.BoxplotSummary{
		Category: category,
		Min:      lo,
		Q1:       q1,
		Median:   median,
		Q3:       q3,
		Max:      hi,
		Outliers: outliers,
		Count:    len(sorted),
	}
}

// quantile computes the p-quantile of a sorted slice using linear
// interpolation between closest ranks.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
