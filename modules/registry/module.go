package registry

import (
	"context"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module owns the connection registry store.
type Module struct {
	store  *Store
	logger types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new registry module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "registry"
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Registry module started")
	return nil
}

// Stop shuts down the module. All registry state is volatile and
// simply discarded.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Registry module stopped", "joinedProfiles", m.store.Len())
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"joined_profiles": m.store.Len(),
		},
	}
}

// Store returns the registry store.
func (m *Module) Store() *Store {
	return m.store
}
