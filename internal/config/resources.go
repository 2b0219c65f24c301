package config

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
)

// VolumeBytes returns the size of the dense voxel volume these settings allocate
func (s Settings) VolumeBytes() uint64 {
	size := uint64(s.World.Size())
	return size * size * uint64(s.World.Height())
}

// CheckMemory refuses settings whose voxel volume does not fit in available memory.
func (s Settings) CheckMemory() error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("query memory: %w", err)
	}
	return checkMemory(s.VolumeBytes(), vm.Available)
}

func checkMemory(need, available uint64) error {
	if need > available {
		return fmt.Errorf("%w: voxel volume needs %s but only %s is available",
			ErrInvalidSettings, humanize.IBytes(need), humanize.IBytes(available))
	}
	return nil
}
