package stats

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single line of block characters, at
// most width runes wide. Longer traces are downsampled by taking the
// maximum of each bucket, so a brief fitness spike stays visible.
func Sparkline(values []int, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width <= 0 || width > len(values) {
		width = len(values)
	}

	buckets := downsampleMax(values, width)
	lo, hi := buckets[0], buckets[0]
	for _, v := range buckets {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]rune, len(buckets))
	span := hi - lo
	for i, v := range buckets {
		level := 0
		if span > 0 {
			level = (v - lo) * (len(sparkLevels) - 1) / span
		}
		out[i] = sparkLevels[level]
	}
	return string(out)
}

func downsampleMax(values []int, width int) []int {
	if width >= len(values) {
		return append([]int(nil), values...)
	}
	out := make([]int, 0, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		best := values[start]
		for _, v := range values[start+1 : end] {
			if v > best {
				best = v
			}
		}
		out = append(out, best)
	}
	return out
}
