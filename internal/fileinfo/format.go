package fileinfo

import (
	"fmt"
	"time"

	"sfm/internal/constants"
)

// ScaleSize walks the binary unit ladder: divide by 1024 while the value is
// at least 1024 and a larger unit exists. It returns the scaled value and the
// index into constants.FileSizeUnits.
func ScaleSize(size uint64) (float64, int) {
	value := float64(size)
	unit := 0
	for value >= constants.FileSizeUnit && unit < len(constants.FileSizeUnits)-1 {
		value /= constants.FileSizeUnit
		unit++
	}
	return value, unit
}

// FormatSize formats a byte count as "<value to two decimals> <unit>".
func FormatSize(size uint64) string {
	value, unit := ScaleSize(size)
	return fmt.Sprintf("%.2f %s", value, constants.FileSizeUnits[unit])
}

// FormatTimestamp renders t as DD-MM-YYYY HH:MM:SS in t's own location.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampLayout)
}

// FormatFlag renders a boolean attribute for display.
func FormatFlag(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
