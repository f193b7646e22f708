// Package metadata maps token identifiers to URIs. Resolution branches on
// the collection's revealed flag: before reveal every token resolves to the
// fixed hidden-metadata URI. The resolver only produces URI strings; it does
// not serve content.
package metadata

import (
	"strconv"
	"sync"

	"github.com/pflow-xyz/go-mintgate/gate"
	"github.com/pflow-xyz/go-mintgate/identity"
)

// Resolver holds the URI configuration for one collection.
type Resolver struct {
	mu        sync.RWMutex
	roles     *identity.Registry
	phase     *gate.Gate
	hiddenURI string
	uriPrefix string
	uriSuffix string
}

// Config sets the initial URI strings for a resolver.
type Config struct {
	HiddenURI string
	URIPrefix string
	URISuffix string
}

// New creates a resolver that consults phase for the revealed flag.
func New(roles *identity.Registry, phase *gate.Gate, cfg Config) *Resolver {
	return &Resolver{
		roles:     roles,
		phase:     phase,
		hiddenURI: cfg.HiddenURI,
		uriPrefix: cfg.URIPrefix,
		uriSuffix: cfg.URISuffix,
	}
}

// URI resolves an existing token id. Existence is the owning ledger's
// concern; the ledger checks it before calling here.
func (r *Resolver) URI(id uint64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.phase.Revealed() {
		return r.hiddenURI
	}
	return r.uriPrefix + strconv.FormatUint(id, 10) + r.uriSuffix
}

// HiddenURI returns the pre-reveal URI.
func (r *Resolver) HiddenURI() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hiddenURI
}

// URIPrefix returns the post-reveal prefix.
func (r *Resolver) URIPrefix() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.uriPrefix
}

// URISuffix returns the post-reveal suffix.
func (r *Resolver) URISuffix() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.uriSuffix
}

// SetHiddenURI replaces the pre-reveal URI. Admin-only.
func (r *Resolver) SetHiddenURI(caller identity.Address, uri string) error {
	if err := r.roles.RequireAdmin(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hiddenURI = uri
	return nil
}

// SetURIPrefix replaces the post-reveal prefix. Admin-only.
func (r *Resolver) SetURIPrefix(caller identity.Address, prefix string) error {
	if err := r.roles.RequireAdmin(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uriPrefix = prefix
	return nil
}

// SetURISuffix replaces the post-reveal suffix. Admin-only.
func (r *Resolver) SetURISuffix(caller identity.Address, suffix string) error {
	if err := r.roles.RequireAdmin(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uriSuffix = suffix
	return nil
}
