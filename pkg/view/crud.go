package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Composing
	Submitting
)

func (s State) String() string {
	switch s {
	case Composing:
		return "composing"
	case Submitting:
		return "submitting"
	}
	return "idle"
}

var (
	ErrInvalidTransition = errors.New("view: action not allowed in current state")
	ErrSubmitInProgress  = errors.New("view: submit already in progress")
	ErrNotConfirmed      = errors.New("view: delete needs confirmation")
	ErrReadOnly          = errors.New("view: resource cannot be edited")
	ErrUnknownRecord     = errors.New("view: record is not in the current list")
)

// Resource is the slice of the API a CRUD view needs.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, body any) error
	Update(ctx context.Context, id string, body any) error
	Delete(ctx context.Context, id string) error
}

// CRUDView runs fetch → display → edit → submit → refetch for one resource
// kind. The list is always the last complete server response.
type CRUDView[T any] struct {
	desc Descriptor[T]
	api  Resource[T]
	log  *zap.Logger

	mu        sync.Mutex
	gen       uint64 // bumped on activate/release, stale fetches are dropped
	state     State
	items     []T
	loaded    bool
	draft     Draft
	editID    string
	formError string
	notice    string
}

func NewCRUDView[T any](desc Descriptor[T], api Resource[T], log *zap.Logger) *CRUDView[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &CRUDView[T]{desc: desc, api: api, log: log.With(zap.String("view", desc.Kind))}
}

func (v *CRUDView[T]) Descriptor() Descriptor[T] { return v.desc }

// Activate mounts the view with an empty list and fetches. The returned func
// discards the list.
func (v *CRUDView[T]) Activate(ctx context.Context) (release func()) {
	v.mu.Lock()
	v.gen++
	v.reset()
	v.mu.Unlock()

	_ = v.Refresh(ctx)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			v.gen++
			v.reset()
			v.mu.Unlock()
		})
	}
}

func (v *CRUDView[T]) reset() {
	v.state = Idle
	v.items = nil
	v.loaded = false
	v.draft = nil
	v.editID = ""
	v.formError = ""
	v.notice = ""
}

// Refresh re-lists. A failure keeps the previous list and raises a notice.
func (v *CRUDView[T]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	gen := v.gen
	v.mu.Unlock()

	items, err := v.api.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return nil
	}
	if err != nil {
		v.notice = fmt.Sprintf("Could not load %s: %v", v.desc.Kind, err)
		v.log.Warn("list failed, keeping previous data", zap.Error(err))
		return err
	}
	v.items = items
	v.loaded = true
	v.notice = ""
	return nil
}

// Add opens a blank form.
func (v *CRUDView[T]) Add() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Idle {
		return ErrInvalidTransition
	}
	v.state = Composing
	v.draft = Blank(v.desc.Fields)
	v.editID = ""
	v.formError = ""
	return nil
}

// Edit opens the form pre-filled from the listed record id.
func (v *CRUDView[T]) Edit(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.desc.Updatable {
		return ErrReadOnly
	}
	if v.state != Idle {
		return ErrInvalidTransition
	}
	rec, ok := v.find(id)
	if !ok {
		return ErrUnknownRecord
	}
	d, err := DraftFrom(v.desc.Fields, rec)
	if err != nil {
		return fmt.Errorf("copy %s %s: %w", v.desc.Kind, id, err)
	}
	v.state = Composing
	v.draft = d
	v.editID = id
	v.formError = ""
	return nil
}

// Cancel drops the draft without touching the API.
func (v *CRUDView[T]) Cancel() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Composing {
		return ErrInvalidTransition
	}
	v.state = Idle
	v.draft = nil
	v.editID = ""
	v.formError = ""
	return nil
}

// Restore reopens the form with d when the view was remounted while the
// operator was typing. Nothing is sent; id re-targets an edit and must still
// be listed.
func (v *CRUDView[T]) Restore(d Draft, id string, msg string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Idle {
		return ErrInvalidTransition
	}
	if id != "" {
		if !v.desc.Updatable {
			return ErrReadOnly
		}
		if _, ok := v.find(id); !ok {
			return ErrUnknownRecord
		}
	}
	v.state = Composing
	v.draft = d.Only(v.desc.Fields)
	v.editID = id
	v.formError = msg
	return nil
}

// Submit creates or updates from d. On failure the form stays open with the
// entered values; either way the list is fetched again afterwards.
func (v *CRUDView[T]) Submit(ctx context.Context, d Draft) error {
	v.mu.Lock()
	switch v.state {
	case Submitting:
		v.mu.Unlock()
		return ErrSubmitInProgress
	case Idle:
		v.mu.Unlock()
		return ErrInvalidTransition
	}
	v.draft = d.Only(v.desc.Fields)
	body, err := v.draft.Payload(v.desc.Fields)
	if err != nil {
		v.formError = err.Error()
		v.mu.Unlock()
		return err
	}
	v.state = Submitting
	v.formError = ""
	id := v.editID
	v.mu.Unlock()

	if id != "" {
		err = v.api.Update(ctx, id, body)
	} else {
		err = v.api.Create(ctx, body)
	}

	v.mu.Lock()
	if v.state == Submitting {
		if err != nil {
			v.state = Composing
			v.formError = fmt.Sprintf("Failed to save %s: %v", v.desc.Singular, err)
		} else {
			v.state = Idle
			v.draft = nil
			v.editID = ""
		}
	}
	v.mu.Unlock()

	if err != nil {
		v.log.Warn("save failed", zap.String("id", id), zap.Error(err))
	} else {
		v.log.Info("saved", zap.String("id", id))
	}
	_ = v.Refresh(ctx)
	return err
}

// Delete removes id once the operator confirmed, then re-lists whatever the outcome.
func (v *CRUDView[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	err := v.api.Delete(ctx, id)
	if err != nil {
		v.log.Warn("delete failed", zap.String("id", id), zap.Error(err))
	}
	refreshErr := v.Refresh(ctx)
	if err != nil && refreshErr == nil {
		v.mu.Lock()
		v.notice = fmt.Sprintf("Could not delete %s: %v", v.desc.Singular, err)
		v.mu.Unlock()
	}
	return err
}

// Items returns a copy of the displayed list.
func (v *CRUDView[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.items...)
}

func (v *CRUDView[T]) Find(id string) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.find(id)
}

func (v *CRUDView[T]) find(id string) (T, bool) {
	for _, it := range v.items {
		if v.desc.ID(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// SetNotice raises a non-blocking message on the view.
func (v *CRUDView[T]) SetNotice(msg string) {
	v.mu.Lock()
	v.notice = msg
	v.mu.Unlock()
}

func (v *CRUDView[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
