// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"

	"github.com/taibuivan/rollbook/internal/platform/sec"
)

// Resolver adapts a [Repository] for the authentication middleware: a token
// subject is re-checked against the store on every request, so a deleted
// account stops authenticating even while its tokens are still unexpired.
type Resolver struct {
	repository Repository
}

// NewResolver creates a principal resolver backed by the given repository.
func NewResolver(repository Repository) *Resolver {
	return &Resolver{repository: repository}
}

// ResolveByID loads the identity behind a token subject.
func (resolver *Resolver) ResolveByID(ctx context.Context, id string) (*sec.Principal, error) {
	identity, err := resolver.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	principal := identity.Principal()
	return &principal, nil
}
