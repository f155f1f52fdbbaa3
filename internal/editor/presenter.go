// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package editor implements the editable-content presenter: a small state
// machine that tracks what a content block displays, whether it is being
// edited, and an in-flight save. It backs the admin editing UI.
package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/davidmendez/portfolio/internal/content"
)

// State is the presenter lifecycle state.
type State int

const (
	// StateViewing displays content read-only.
	StateViewing State = iota
	// StateEditing holds an uncommitted buffer.
	StateEditing
	// StateSaving has a write in flight.
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// Source names where the displayed content came from.
type Source int

const (
	// SourceStatic means the build-time snapshot value is displayed.
	SourceStatic Source = iota
	// SourceOverride means a runtime override is displayed.
	SourceOverride
)

// Transition errors.
var (
	ErrNotAdmin     = errors.New("editing requires an admin session")
	ErrBadState     = errors.New("operation not valid in current state")
	ErrSaveInFlight = errors.New("a save is already in flight")
)

// Presenter drives one editable content block. All methods are safe for
// concurrent use. The zero value is not usable; construct with New.
type Presenter struct {
	overrides *content.OverrideService
	family    content.Family
	slug      string
	isAdmin   bool

	mu         sync.Mutex
	state      State
	source     Source
	displayed  string
	buffer     string
	lastErr    error
	attachStop context.CancelFunc
}

// New creates a Presenter showing the static fallback until Attach
// resolves the override.
func New(overrides *content.OverrideService, family content.Family, slug, static string, isAdmin bool) *Presenter {
	return &Presenter{
		overrides: overrides,
		family:    family,
		slug:      slug,
		isAdmin:   isAdmin,
		state:     StateViewing,
		source:    SourceStatic,
		displayed: static,
	}
}

// Attach starts resolving the override in the background. The static
// content stays displayed until the fetch lands; a fetch that resolves
// after Detach (or a second Attach) is discarded. Fetch errors keep the
// static fallback and are not surfaced as presenter errors.
//
// Non-admin presenters never issue the read: they stay on the static
// content for their whole lifetime, so Attach is a no-op for them.
func (p *Presenter) Attach(ctx context.Context) {
	if !p.isAdmin {
		return
	}

	p.mu.Lock()
	if p.attachStop != nil {
		p.attachStop()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	p.attachStop = cancel
	p.mu.Unlock()

	go func() {
		ov, err := p.overrides.Read(fetchCtx, p.family, p.slug)
		if err != nil || ov == nil {
			return
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		// The fetch lost a race with Detach or a newer Attach.
		if fetchCtx.Err() != nil {
			return
		}
		// Never clobber an edit in progress.
		if p.state != StateViewing {
			return
		}
		p.displayed = ov.Content
		p.source = SourceOverride
	}()
}

// Detach cancels any in-flight fetch. Results arriving afterwards are
// discarded.
func (p *Presenter) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.attachStop != nil {
		p.attachStop()
		p.attachStop = nil
	}
}

// Edit moves viewing -> editing with the displayed content as the initial
// buffer. Non-admins cannot edit.
func (p *Presenter) Edit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isAdmin {
		return ErrNotAdmin
	}
	if p.state != StateViewing {
		return ErrBadState
	}

	p.state = StateEditing
	p.buffer = p.displayed
	return nil
}

// SetBuffer replaces the edit buffer. Only valid while editing.
func (p *Presenter) SetBuffer(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateEditing {
		return ErrBadState
	}
	p.buffer = s
	return nil
}

// Save commits the buffer. On success the presenter returns to viewing
// with the saved content displayed as an override. On failure it returns
// to editing with the buffer intact and the error retained.
func (p *Presenter) Save(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case StateSaving:
		p.mu.Unlock()
		return ErrSaveInFlight
	case StateEditing:
	default:
		p.mu.Unlock()
		return ErrBadState
	}
	p.state = StateSaving
	buffer := p.buffer
	p.mu.Unlock()

	_, err := p.overrides.Write(ctx, p.family, p.slug, buffer, "")

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.state = StateEditing
		p.lastErr = err
		return err
	}

	p.state = StateViewing
	p.source = SourceOverride
	p.displayed = buffer
	p.buffer = ""
	p.lastErr = nil
	return nil
}

// Cancel abandons the edit unconditionally and returns to viewing. The
// displayed content is untouched. Cancelling while viewing is a no-op.
func (p *Presenter) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateViewing {
		return
	}
	p.state = StateViewing
	p.buffer = ""
	p.lastErr = nil
}

// State returns the current lifecycle state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Displayed returns the content currently shown and its source.
func (p *Presenter) Displayed() (string, Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayed, p.source
}

// Buffer returns the current edit buffer.
func (p *Presenter) Buffer() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffer
}

// Err returns the retained error from the last failed save, cleared by a
// successful save or a cancel.
func (p *Presenter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
