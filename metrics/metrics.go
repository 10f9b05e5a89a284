package metrics

// Metrics holds the per-node measurements shown in the heatmap.
type Metrics struct {
	LineCount  int     // Newline-delimited lines (files) or descendant sum (directories)
	ChangeRate float64 // Commit touches per day over the analysis window
}

// Bucket describes one heat level: the lower bound that opens it and a legend label.
type Bucket struct {
	Min   float64
	Label string
}

// LineBuckets lists the line-count heat levels in ascending order.
// A value equal to a lower bound belongs to that bucket.
var LineBuckets = []Bucket{
	{0, "<50"},
	{50, "50-100"},
	{100, "100-200"},
	{200, "200-500"},
	{500, "500-1K"},
	{1000, "1K+"},
}

// ChangeBuckets lists the change-rate heat levels (touches per day) in ascending order.
var ChangeBuckets = []Bucket{
	{0, "<1.7"},
	{1.7, "1.7-3.4"},
	{3.4, "3.4-5.2"},
	{5.2, "5.2-6.9"},
	{6.9, "6.9+"},
}

// LineBucket maps a line count to its heat level in [0, 5].
func LineBucket(lines int) int {
	switch {
	case lines < 50:
		return 0
	case lines < 100:
		return 1
	case lines < 200:
		return 2
	case lines < 500:
		return 3
	case lines < 1000:
		return 4
	default:
		return 5
	}
}

// ChangeBucket maps a change rate to its heat level in [0, 4].
func ChangeBucket(rate float64) int {
	switch {
	case rate < 1.7:
		return 0
	case rate < 3.4:
		return 1
	case rate < 5.2:
		return 2
	case rate < 6.9:
		return 3
	default:
		return 4
	}
}

// LineBucket returns the heat level of m.LineCount.
func (m Metrics) LineBucket() int {
	return LineBucket(m.LineCount)
}

// ChangeBucket returns the heat level of m.ChangeRate.
func (m Metrics) ChangeBucket() int {
	return ChangeBucket(m.ChangeRate)
}
