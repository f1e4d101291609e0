//go:build linux

package ui

import (
	"golang.org/x/sys/unix"
)

func totalRAMGB() float64 {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return 0
	}
	unit := uint64(si.Unit)
	if unit == 0 {
		unit = 1
	}
	return float64(uint64(si.Totalram)*unit) / (1 << 30)
}
