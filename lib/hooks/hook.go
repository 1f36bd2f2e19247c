package hooks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	uuid2 "github.com/google/uuid"
)

// HandlerFunc is a single implementation of a named hook.
type HandlerFunc func(ctx context.Context, event any) error

type registeredHook struct {
	id      string
	handler HandlerFunc
}

// Hook keeps the handlers of every hook name in registration order.
type Hook struct {
	mu    sync.RWMutex
	hooks map[string][]registeredHook
}

func NewHook() Hook {
	return Hook{
		hooks: make(map[string][]registeredHook),
	}
}

func (h *Hook) EnqueueHook(key string, handler HandlerFunc) string {
	var uuid = uuid2.New()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hooks == nil {
		h.hooks = make(map[string][]registeredHook)
	}
	h.hooks[key] = append(h.hooks[key], registeredHook{id: uuid.String(), handler: handler})

	return uuid.String()
}

func (h *Hook) DequeueHook(key, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hooks[key] = slices.DeleteFunc(h.hooks[key], func(r registeredHook) bool {
		return r.id == id
	})
	if len(h.hooks[key]) == 0 {
		delete(h.hooks, key)
	}
}

// Count returns the number of handlers enqueued for key.
func (h *Hook) Count(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.hooks[key])
}

// ExecuteHooks runs the handlers of key in registration order and stops at the first error.
func (h *Hook) ExecuteHooks(ctx context.Context, key string, event any) error {
	h.mu.RLock()
	registered := slices.Clone(h.hooks[key])
	h.mu.RUnlock()

	for _, r := range registered {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.handler(ctx, event); err != nil {
			return fmt.Errorf("hook %s: %w", key, err)
		}
	}
	return nil
}
