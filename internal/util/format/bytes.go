package format

import "strconv"

var units = [...]string{"KB", "MB", "GB", "TB", "PB"}

// HumanizeBytes renders a file size in binary units, e.g. "1.5 MB".
// Negative sizes render as "0 B".
func HumanizeBytes(b int64) string {
	if b < 0 {
		b = 0
	}
	return HumanizeUint(uint64(b))
}

// HumanizeUint is HumanizeBytes for unsigned counters such as memory totals.
func HumanizeUint(b uint64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatUint(b, 10) + " B"
	}
	v := float64(b) / unit
	i := 0
	for v >= unit && i < len(units)-1 {
		v /= unit
		i++
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + units[i]
}
