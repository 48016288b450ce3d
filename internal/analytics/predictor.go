package analytics

import (
	"math"

	"streampulse/pkg/contracts/domain"
)

// PredictRevenue fits an ordinary least-squares model of live GMV on viewer
// count and engagement rate over the current filtered batch, on demand. It
// is diagnostic only: the result reports fit quality and the paired actual
// and predicted values, and feeds nothing back into the pipeline.
//
// Batches smaller than minRows produce an Insufficient result instead of a
// fit, and a degenerate design matrix falls back the same way rather than
// failing the batch.
func PredictRevenue(sessions []domain.Session, minRows int) domain.PredictionResult {
	n := len(sessions)
	if n < minRows {
		return domain.PredictionResult{Insufficient: true, Rows: n}
	}

	// Design matrix columns: intercept, viewer count, engagement rate.
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := range sessions {
		x1[i] = float64(sessions[i].ViewerCount)
		x2[i] = sessions[i].EngagementRate
		y[i] = sessions[i].GMVLive
	}

	coef, ok := solveOLS(x1, x2, y)
	if !ok {
		return domain.PredictionResult{Insufficient: true, Rows: n}
	}

	points := make([]domain.PredictionPoint, n)
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		p := coef[0] + coef[1]*x1[i] + coef[2]*x2[i]
		predicted[i] = p
		points[i] = domain.PredictionPoint{Actual: y[i], Predicted: p}
	}

	return domain.PredictionResult{
		Rows:   n,
		R2:     rSquared(y, predicted),
		Points: points,
	}
}

// solveOLS solves the 3x3 normal equations for y = b0 + b1*x1 + b2*x2 by
// Gaussian elimination with partial pivoting. ok is false for a singular
// system (e.g. a constant regressor duplicating the intercept).
func solveOLS(x1, x2, y []float64) (coef [3]float64, ok bool) {
	n := float64(len(y))

	var sx1, sx2, sy, sx1x1, sx2x2, sx1x2, sx1y, sx2y float64
	for i := range y {
		sx1 += x1[i]
		sx2 += x2[i]
		sy += y[i]
		sx1x1 += x1[i] * x1[i]
		sx2x2 += x2[i] * x2[i]
		sx1x2 += x1[i] * x2[i]
		sx1y += x1[i] * y[i]
		sx2y += x2[i] * y[i]
	}

	a := [3][4]float64{
		{n, sx1, sx2, sy},
		{sx1, sx1x1, sx1x2, sx1y},
		{sx2, sx1x2, sx2x2, sx2y},
	}

	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return coef, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		for row := 0; row < 3; row++ {
			if row == col {
				continue
			}
			factor := a[row][col] / a[col][col]
			for k := col; k < 4; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	for i := 0; i < 3; i++ {
		coef[i] = a[i][3] / a[i][i]
		if math.IsNaN(coef[i]) || math.IsInf(coef[i], 0) {
			return coef, false
		}
	}
	return coef, true
}

// rSquared is the coefficient of determination. A constant response yields 0
// rather than a division by zero.
func rSquared(actual, predicted []float64) float64 {
	m := mean(actual)
	var ssRes, ssTot float64
	for i := range actual {
		dr := actual[i] - predicted[i]
		dt := actual[i] - m
		ssRes += dr * dr
		ssTot += dt * dt
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
