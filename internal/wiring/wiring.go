// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cjsguard/internal/adapters/cas"
	_ "go.trai.ch/cjsguard/internal/adapters/config"
	_ "go.trai.ch/cjsguard/internal/adapters/fs"
	_ "go.trai.ch/cjsguard/internal/adapters/logger"
	_ "go.trai.ch/cjsguard/internal/adapters/parser"
	_ "go.trai.ch/cjsguard/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/cjsguard/internal/app"
)
