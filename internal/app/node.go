package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cjsguard/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/cjsguard/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cjsguard/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/cjsguard/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cjsguard/internal/adapters/parser"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cjsguard/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/cjsguard/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.FileSystemNodeID,
			fs.WalkerNodeID,
			fs.HasherNodeID,
			parser.NodeID,
			cas.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    app,
				Logger: log,
			}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[ports.Walker](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	sourceParser, err := graft.Dep[ports.SourceParser](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, fsys, walker, hasher, sourceParser, store, newWatcher), nil
}
