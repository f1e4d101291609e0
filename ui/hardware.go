package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// DeviceInfo is what the startup check knows about the host
type DeviceInfo struct {
	OS         string
	Arch       string
	CPUThreads int
	RAMGB      float64 // 0 when unknown
	HeapMB     float64
	Touch      bool
	LowPower   bool
}

// Platform returns os/arch
func (d DeviceInfo) Platform() string {
	return d.OS + "/" + d.Arch
}

// Thresholds below which the check warns
type Thresholds struct {
	MinThreads int
	MinRAMGB   float64
	MaxHeapMB  float64
}

// DefaultThresholds returns the stock limits
func DefaultThresholds() Thresholds {
	return Thresholds{MinThreads: 2, MinRAMGB: 2, MaxHeapMB: 1024}
}

// Evaluate returns the alerts for info, in a fixed order
func Evaluate(info DeviceInfo, th Thresholds) []string {
	var alerts []string
	if info.CPUThreads > 0 && info.CPUThreads < th.MinThreads {
		alerts = append(alerts, fmt.Sprintf("Device has fewer than %d CPU threads. Performance might be limited.", th.MinThreads))
	}
	if info.OS == "linux" && info.Arch == "arm64" {
		alerts = append(alerts, "Linux/ARM64 device detected. Performance may vary.")
	}
	if info.RAMGB > 0 && info.RAMGB < th.MinRAMGB {
		alerts = append(alerts, fmt.Sprintf("Device has limited RAM (%.1f GB).", info.RAMGB))
	}
	if info.LowPower {
		alerts = append(alerts, "Device is in low power mode. Performance may be reduced.")
	}
	if info.HeapMB > th.MaxHeapMB {
		alerts = append(alerts, fmt.Sprintf("Memory usage is high: %.2f MB.", info.HeapMB))
	}
	return alerts
}

// HardwareCheck probes the host once per session and raises toasts
type HardwareCheck struct {
	Probe      func() DeviceInfo
	Thresholds Thresholds
}

// NewHardwareCheck creates a check using the live probe
func NewHardwareCheck() *HardwareCheck {
	return &HardwareCheck{Probe: ProbeDevice, Thresholds: DefaultThresholds()}
}

// Run evaluates the device and pushes alerts; a repeat in the same session does nothing
func (h *HardwareCheck) Run(s *Session, toasts *Toasts) []string {
	if !s.Once(KeyHardwareAlert) {
		return nil
	}
	info := h.Probe()
	alerts := Evaluate(info, h.Thresholds)
	for _, a := range alerts {
		toasts.Push(a)
	}
	if info.Touch {
		log.Println("Touchscreen device detected.")
	}
	log.Printf("Device Info: Platform: %s, CPU Threads: %d, RAM: %s, Touch Supported: %t, Low Power Mode: %t",
		info.Platform(), info.CPUThreads, formatRAM(info.RAMGB), info.Touch, info.LowPower)
	return alerts
}

func formatRAM(gb float64) string {
	if gb <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%.1f GB", gb)
}

// ProbeDevice reads the live host
func ProbeDevice() DeviceInfo {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return DeviceInfo{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUThreads: runtime.NumCPU(),
		RAMGB:      totalRAMGB(),
		HeapMB:     float64(ms.HeapAlloc) / 1024 / 1024,
		Touch:      touchInput(inputDevicesPath),
		LowPower:   lowPower(powerSupplyRoot),
	}
}

const (
	powerSupplyRoot  = "/sys/class/power_supply"
	inputDevicesPath = "/proc/bus/input/devices"
	lowBatteryPct    = 20
)

// touchInput reports whether any listed input device names itself a touch device
func touchInput(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(raw), "\n") {
		name, ok := strings.CutPrefix(line, "N: Name=")
		if ok && strings.Contains(strings.ToLower(name), "touch") {
			return true
		}
	}
	return false
}

// lowPower reports a discharging battery at or under lowBatteryPct
func lowPower(root string) bool {
	dirs, err := filepath.Glob(filepath.Join(root, "BAT*"))
	if err != nil {
		return false
	}
	for _, dir := range dirs {
		status, err := os.ReadFile(filepath.Join(dir, "status"))
		if err != nil || strings.TrimSpace(string(status)) != "Discharging" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, "capacity"))
		if err != nil {
			continue
		}
		if pct, err := strconv.Atoi(strings.TrimSpace(string(raw))); err == nil && pct <= lowBatteryPct {
			return true
		}
	}
	return false
}
