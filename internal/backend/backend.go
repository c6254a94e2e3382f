// Package backend selects the remote task service named in the config.
package backend

import (
	"context"
	"errors"
	"fmt"

	"gtodo/internal/backend/googletasks"
	"gtodo/internal/backend/memory"
	"gtodo/internal/backend/restapi"
	"gtodo/internal/config"
	"gtodo/internal/service"
)

// ErrAuth marks failures caused by missing or unusable credentials.
var ErrAuth = errors.New("auth error")

// New creates the service for cfg.Backend.
func New(ctx context.Context, cfg *config.Config) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: oauth_client.json not found in %s", ErrAuth, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("%w: not logged in (run: gtodo login)", ErrAuth)
		}
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return client, nil
	case config.BackendREST:
		client, err := restapi.New(cfg.REST.BaseURL, nil)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
