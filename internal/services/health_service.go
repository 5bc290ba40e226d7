package services

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	startTime time.Time
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string) *HealthService {
	return &HealthService{
		version:   version,
		startTime: time.Now(),
	}
}

// HealthCheck reports overall service health
func (s *HealthService) HealthCheck(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"go_version": runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version reports version information
func (s *HealthService) Version() map[string]string {
	return map[string]string{
		"version": s.version,
		"build":   fmt.Sprintf("go %s", runtime.Version()),
	}
}
