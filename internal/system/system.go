package system

import (
	"fmt"
	"log"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit (macOS/Linux). Directory
// scans probe every frame header, which can brush against a conservative
// default on large sequences.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not raise the open-file limit: %v", err)
	}
}

// CheckCanvasMemory compares the planned canvas allocation against available
// memory and warns when the pack is likely to swap. Never fatal: the canvas
// is expected to dominate peak RSS by design of the pipeline.
func CheckCanvasMemory(canvasBytes uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[!] Could not probe system memory: %v", err)
		return
	}
	if canvasBytes > vm.Available {
		fmt.Printf("[!] Canvas needs %.1f MiB but only %.1f MiB is available, expect heavy swapping\n",
			float64(canvasBytes)/(1024*1024), float64(vm.Available)/(1024*1024))
	}
}
