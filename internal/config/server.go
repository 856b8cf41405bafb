// Package config provides configuration helpers for yogalign commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default service configuration.
const (
	DefaultServerPort    = "5000"
	DefaultServerURL     = "http://127.0.0.1:" + DefaultServerPort
	DefaultDashboardPort = "8080"
)

// ServerURL returns the pose service URL from the POSE_SERVER_URL env
// var. Falls back to the provided default if not set.
func ServerURL(defaultURL string) string {
	if url := os.Getenv("POSE_SERVER_URL"); url != "" {
		return url
	}
	return defaultURL
}

// ServerURLRequired returns the pose service URL from POSE_SERVER_URL.
// Exits if not set.
func ServerURLRequired() string {
	url := os.Getenv("POSE_SERVER_URL")
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: POSE_SERVER_URL environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: POSE_SERVER_URL=http://192.168.1.20:5000 go run ./cmd/...")
		os.Exit(1)
	}
	return url
}

// DashboardPort returns the dashboard port from DASHBOARD_PORT or the
// default.
func DashboardPort() string {
	if port := os.Getenv("DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// CameraDevice returns the capture device ID from CAMERA_DEVICE or the
// provided default. Non-numeric values fall back to the default.
func CameraDevice(defaultID int) int {
	if dev := os.Getenv("CAMERA_DEVICE"); dev != "" {
		if id, err := strconv.Atoi(dev); err == nil {
			return id
		}
	}
	return defaultID
}
