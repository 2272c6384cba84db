package broadcast

import (
	"context"
	"slices"
)

// Endpoint is a viewer that packets can be delivered to.
type Endpoint interface {
	ID() string
	World() string
	Send(ctx context.Context, frame []byte) error
}

// Directory lists the currently known endpoints.
type Directory interface {
	Endpoints() []Endpoint
}

// Audience selects the endpoints a delivery goes to. It is evaluated on
// every delivery, so membership follows the directory.
type Audience func(dir Directory) []Endpoint

// Everyone selects every endpoint in the directory.
func Everyone() Audience {
	return func(dir Directory) []Endpoint {
		return dir.Endpoints()
	}
}

// Only selects the endpoints with the given ids.
func Only(ids ...string) Audience {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Where(func(e Endpoint) bool {
		_, ok := set[e.ID()]
		return ok
	})
}

// Single selects one endpoint by id.
func Single(id string) Audience {
	return Where(func(e Endpoint) bool {
		return e.ID() == id
	})
}

// InWorld selects the endpoints in a world.
func InWorld(world string) Audience {
	return Where(func(e Endpoint) bool {
		return e.World() == world
	})
}

// Where selects the endpoints matching pred.
func Where(pred func(Endpoint) bool) Audience {
	return func(dir Directory) []Endpoint {
		return slices.DeleteFunc(dir.Endpoints(), func(e Endpoint) bool {
			return !pred(e)
		})
	}
}

// Supplied ignores the directory and asks fn for the endpoints each time.
func Supplied(fn func() []Endpoint) Audience {
	return func(Directory) []Endpoint {
		return fn()
	}
}

// List is a fixed Directory.
type List []Endpoint

func (l List) Endpoints() []Endpoint {
	return slices.Clone(l)
}
