//go:build !linux

package ui

func totalRAMGB() float64 { return 0 }
