package porttest

import (
	"context"
	"sync"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Permissions is an in-memory ports.PermissionGateway. Remote checks answer
// from a fixed table of (userID, module, action) grants.
type Permissions struct {
	mu        sync.Mutex
	overrides map[string]domain.Matrix
	grants    map[string]bool
	checks    int
	err       error
}

// NewPermissions creates an empty permission gateway
func NewPermissions() *Permissions {
	return &Permissions{
		overrides: make(map[string]domain.Matrix),
		grants:    make(map[string]bool),
	}
}

// Grant makes the remote check allow (userID, module, action)
func (p *Permissions) Grant(userID, module, action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants[userID+"/"+module+"/"+action] = true
}

// FailWith makes every call return err. nil clears it.
func (p *Permissions) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Checks returns the number of remote HasPermission calls
func (p *Permissions) Checks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checks
}

// Override returns the stored override of a user
func (p *Permissions) Override(userID string) (domain.Matrix, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.overrides[userID]
	return m, ok
}

func (p *Permissions) HasPermission(ctx context.Context, userID, module, action string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks++
	if p.err != nil {
		return false, p.err
	}
	return p.grants[userID+"/"+module+"/"+action], nil
}

func (p *Permissions) ListOverrides(ctx context.Context) (map[string]domain.Matrix, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	out := make(map[string]domain.Matrix, len(p.overrides))
	for id, m := range p.overrides {
		out[id] = m.Clone()
	}
	return out, nil
}

func (p *Permissions) ReplaceOverride(ctx context.Context, userID string, matrix domain.Matrix) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.overrides[userID] = matrix.Clone()
	return nil
}

func (p *Permissions) DeleteOverride(ctx context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	delete(p.overrides, userID)
	return nil
}
