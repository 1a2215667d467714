package system_healthcheck

import (
	"errors"
	"fmt"

	"pmtrack/internal/storage"

	"github.com/shirou/gopsutil/v4/disk"
)

const maxDiskUsedPercent = 95.0

type DiskUsage struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"totalBytes"`
	UsedBytes   uint64  `json:"usedBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type HealthStatus struct {
	Database bool       `json:"database"`
	Disk     *DiskUsage `json:"disk,omitempty"`
}

type HealthcheckService struct {
	// directory whose filesystem holds the database
	dataPath string
}

// Check returns the collected status together with the first failure found
func (s *HealthcheckService) Check() (*HealthStatus, error) {
	status := &HealthStatus{}

	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return status, fmt.Errorf("database is unavailable: %w", err)
	}
	status.Database = true

	usage, err := s.GetDiskUsage()
	if err != nil {
		return status, err
	}
	status.Disk = usage

	if usage.UsedPercent >= maxDiskUsedPercent {
		return status, errors.New("disk is almost full")
	}

	return status, nil
}

func (s *HealthcheckService) GetDiskUsage() (*DiskUsage, error) {
	stat, err := disk.Usage(s.dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	return &DiskUsage{
		Path:        stat.Path,
		TotalBytes:  stat.Total,
		UsedBytes:   stat.Used,
		FreeBytes:   stat.Free,
		UsedPercent: stat.UsedPercent,
	}, nil
}
