package civi

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// API is one configured connection to a remote CiviCRM API generation over
// one transport. It owns a memoized entity registry; no network or process
// I/O happens before an action is invoked.
type API struct {
	version   Version
	adapter   adapter
	transport Transport
	logger    zerolog.Logger

	mu       sync.Mutex
	entities map[string]*Entity
}

// NewAPI creates an API over the given transport. The logger may be nil.
func NewAPI(version Version, transport Transport, logger *zerolog.Logger) (*API, error) {
	adapter, err := adapterFor(version)
	if err != nil {
		return nil, err
	}

	if transport == nil {
		return nil, ErrTransportRequired
	}

	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	return &API{
		version:   version,
		adapter:   adapter,
		transport: transport,
		logger:    log,
		entities:  make(map[string]*Entity),
	}, nil
}

// Version returns the API generation this client targets.
func (a *API) Version() Version {
	return a.version
}

// Entity returns the entity with the given name, creating and memoizing it
// on first access. Repeated access returns the identical instance. No
// local existence check is performed: invalid names surface as a remote
// error when an action is invoked.
func (a *API) Entity(name string) *Entity {
	a.mu.Lock()
	defer a.mu.Unlock()

	if entity, ok := a.entities[name]; ok {
		return entity
	}

	entity := &Entity{
		name:    name,
		api:     a,
		actions: make(map[string]*Action),
	}
	a.entities[name] = entity

	return entity
}

// Call is the direct-call form for programmatic entity and action names.
func (a *API) Call(ctx context.Context, entity, action string, params Params) (*Result, error) {
	if entity == "" {
		return nil, ErrEntityRequired
	}

	if action == "" {
		return nil, ErrActionRequired
	}

	if params == nil {
		params = Params{}
	}

	wire, err := a.adapter.Prepare(action, params)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("version", string(a.version)).
		Str("entity", entity).
		Str("action", action).
		Msg("performing API call")

	raw, err := a.transport.Execute(ctx, &Request{
		Version: a.version,
		Entity:  entity,
		Action:  action,
		Params:  wire,
	})
	if err != nil {
		return nil, err
	}

	result, err := a.adapter.Parse(entity, action, raw)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("entity", entity).
		Str("action", action).
		Int("records", result.Len()).
		Int("count", result.Count()).
		Msg("API call done")

	return result, nil
}

// Entity is one remote resource type, e.g. "Contact". The name is used
// verbatim in wire calls. An entity never exists independently of its API.
type Entity struct {
	name string
	api  *API

	mu      sync.Mutex
	actions map[string]*Action
}

// Name returns the entity name.
func (e *Entity) Name() string {
	return e.name
}

// Action returns the action with the given name, creating and memoizing it
// on first access.
func (e *Entity) Action(name string) *Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	if action, ok := e.actions[name]; ok {
		return action
	}

	action := &Action{
		name:   name,
		entity: e.name,
		api:    e.api,
	}
	e.actions[name] = action

	return action
}

// Call is the direct-call form on an entity.
func (e *Entity) Call(ctx context.Context, action string, params Params) (*Result, error) {
	return e.api.Call(ctx, e.name, action, params)
}

// Get performs the get action.
func (e *Entity) Get(ctx context.Context, params Params) (*Result, error) {
	return e.api.Call(ctx, e.name, "get", params)
}

// GetSingle performs the get action with exactly-one-result semantics. It
// fails with UnexpectedResultCountError for zero or multiple matches.
func (e *Entity) GetSingle(ctx context.Context, params Params) (Record, error) {
	result, err := e.api.Call(ctx, e.name, "get", params)
	if err != nil {
		return nil, err
	}

	return result.One()
}

// Create performs the create action.
func (e *Entity) Create(ctx context.Context, params Params) (*Result, error) {
	return e.api.Call(ctx, e.name, "create", params)
}

// Delete performs the delete action.
func (e *Entity) Delete(ctx context.Context, params Params) (*Result, error) {
	return e.api.Call(ctx, e.name, "delete", params)
}

// Action is one callable operation on an entity. It is stateless: every
// invocation is independent and client-side idempotent.
type Action struct {
	name   string
	entity string
	api    *API
}

// Name returns the action name.
func (ac *Action) Name() string {
	return ac.name
}

// Entity returns the owning entity name.
func (ac *Action) Entity() string {
	return ac.entity
}

// Call invokes the action with the given parameters. A nil params is
// treated as empty. The caller's map is copied, never mutated.
func (ac *Action) Call(ctx context.Context, params Params) (*Result, error) {
	return ac.api.Call(ctx, ac.entity, ac.name, params)
}
