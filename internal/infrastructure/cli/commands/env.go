package commands

import (
	"context"
	"fmt"

	"github.com/doeshing/textpolish/internal/app"
	"github.com/doeshing/textpolish/internal/ports"
)

// Env carries the global flags and the lazily built container shared by all commands.
// Commands that do not touch configuration (version, actions) never build it.
type Env struct {
	Options   app.Options
	Clipboard ports.Clipboard

	container *app.Container
}

// Container builds the container on first use.
func (e *Env) Container(ctx context.Context) (*app.Container, error) {
	if e.container != nil {
		return e.container, nil
	}
	container, err := app.BuildContainer(ctx, e.Options)
	if err != nil {
		return nil, err
	}
	e.container = container
	return container, nil
}

// CredentialedContainer builds the container and fails when a tier model lacks its API key.
func (e *Env) CredentialedContainer(ctx context.Context) (*app.Container, error) {
	container, err := e.Container(ctx)
	if err != nil {
		return nil, err
	}
	if err := container.RequireCredentials(); err != nil {
		return nil, err
	}
	return container, nil
}

// Close releases the container if it was built.
func (e *Env) Close() error {
	if e.container == nil {
		return nil
	}
	err := e.container.Close()
	e.container = nil
	if err != nil {
		return fmt.Errorf("close resources: %w", err)
	}
	return nil
}
