// Package format renders values for display.
package format

import (
	"fmt"
	"strconv"
)

var units = []string{"B", "KB", "MB", "GB"}

const step = 1024

// Bytes renders a byte count using the largest unit whose scaled value is at
// least one. B has no decimals, every other unit has one. GB is the ceiling.
func Bytes(n int64) string {
	if n == 0 {
		return "0 B"
	}

	sign := ""
	mag := uint64(n)
	if n < 0 {
		sign = "-"
		// -n overflows for math.MinInt64
		mag = uint64(-(n + 1)) + 1
	}

	i := 0
	div := uint64(1)
	for i < len(units)-1 && mag/div >= step {
		div *= step
		i++
	}

	if i == 0 {
		return sign + strconv.FormatUint(mag, 10) + " B"
	}
	return sign + fmt.Sprintf("%.1f %s", float64(mag)/float64(div), units[i])
}
