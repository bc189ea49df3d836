// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cpinfer/internal/adapters/cache"
	_ "go.trai.ch/cpinfer/internal/adapters/cas"
	_ "go.trai.ch/cpinfer/internal/adapters/classfile"
	_ "go.trai.ch/cpinfer/internal/adapters/config"
	_ "go.trai.ch/cpinfer/internal/adapters/fs"
	_ "go.trai.ch/cpinfer/internal/adapters/locator"
	_ "go.trai.ch/cpinfer/internal/adapters/logger"
	_ "go.trai.ch/cpinfer/internal/adapters/metrics"
	_ "go.trai.ch/cpinfer/internal/adapters/realm"
	_ "go.trai.ch/cpinfer/internal/adapters/shell"
	// Register app and engine nodes.
	_ "go.trai.ch/cpinfer/internal/app"
	_ "go.trai.ch/cpinfer/internal/engine/inferer"
)
