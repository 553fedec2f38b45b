package annotation

import "math"

// CommitRatios records position and size as fractions of canvas and marks
// the box committed. It is a no-op for an invalid canvas.
func CommitRatios(b *Box, canvas Size) {
	if b == nil || !canvas.Valid() {
		return
	}
	CommitPosition(b, canvas)
	b.SizeRatio = Ratio{
		X: clamp01(float64(b.W) / float64(canvas.W)),
		Y: clamp01(float64(b.H) / float64(canvas.H)),
	}
	b.Committed = true
}

// CommitPosition refreshes only the position ratio, as after a move.
func CommitPosition(b *Box, canvas Size) {
	if b == nil || !canvas.Valid() {
		return
	}
	b.PosRatio = Ratio{
		X: clamp01(float64(b.X) / float64(canvas.W)),
		Y: clamp01(float64(b.Y) / float64(canvas.H)),
	}
}

// Reapply rebuilds pixel geometry from the committed ratios against canvas.
// Uncommitted boxes are left untouched and false is returned.
func Reapply(b *Box, canvas Size) bool {
	if b == nil || !b.Committed || !canvas.Valid() {
		return false
	}
	b.X = scale(b.PosRatio.X, canvas.W)
	b.Y = scale(b.PosRatio.Y, canvas.H)
	b.W = scale(b.SizeRatio.X, canvas.W)
	b.H = scale(b.SizeRatio.Y, canvas.H)
	return true
}

// scale rounds to the nearest pixel so a commit/reapply round trip at the
// same canvas size is exact.
func scale(f float64, n int) int {
	return int(math.Round(f * float64(n)))
}
