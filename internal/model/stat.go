package model

// StatKind discriminates the shape of a statistic result.
type StatKind string

const (
	StatValue StatKind = "VALUE" // single overlay line (mean, median)
	StatBand  StatKind = "BAND"  // upper/lower overlay band (std)
	StatError StatKind = "ERROR" // user-visible message, nothing to draw
	StatEmpty StatKind = "EMPTY" // silently nothing to draw
)

// StatResult is the outcome of one statistic computation. Exactly one shape
// is populated per result: Value for StatValue, Upper/Lower for StatBand,
// Message for StatError, nothing for StatEmpty.
type StatResult struct {
	Kind    StatKind
	Value   float64
	Upper   float64
	Lower   float64
	Message string
}
