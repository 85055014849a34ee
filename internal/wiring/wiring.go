// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/phased/internal/adapters/checkpoint"
	_ "go.trai.ch/phased/internal/adapters/config"
	_ "go.trai.ch/phased/internal/adapters/logger"
	_ "go.trai.ch/phased/internal/adapters/telemetry"
	// Register app and experiment nodes.
	_ "go.trai.ch/phased/internal/app"
	_ "go.trai.ch/phased/internal/experiment"
)
