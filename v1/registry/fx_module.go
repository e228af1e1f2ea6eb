package registry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the schema
// registry client.
//
// The module:
//  1. Provides the registry client factory function
//  2. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:      "http://localhost:8081",
//	                Username: "user",
//	                Password: "pass",
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("registry",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRegistryLifecycle),
)

// RegistryParams groups the dependencies needed to create a registry client.
type RegistryParams struct {
	fx.In

	Config Config

	// Registerer is optional; when present the client reports request
	// metrics to it.
	Registerer prometheus.Registerer `optional:"true"`
}

// NewClientWithDI creates a new registry client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// RegistryParams struct.
func NewClientWithDI(params RegistryParams) (Registry, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Registerer != nil {
		client.WithObserver(NewObserver(params.Registerer))
	}
	return client, nil
}

// RegistryLifecycleParams groups the dependencies needed for registry
// lifecycle management.
type RegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  Registry
}

// RegisterRegistryLifecycle registers the registry client with the fx
// lifecycle system. The client holds no connections of its own, so the
// hooks only mark availability; cleanup logic can be added here later
// without touching call sites.
func RegisterRegistryLifecycle(params RegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
