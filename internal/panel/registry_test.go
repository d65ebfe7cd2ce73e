package panel

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_OnePanelPerUser(t *testing.T) {
	stores := map[uuid.UUID]*memStore{}
	reg := NewRegistry(Deps{
		Stores: func(userID uuid.UUID) Store {
			s := newMemStore()
			stores[userID] = s
			return s
		},
		Notifiers: func(uuid.UUID) Notifier { return &toastRecorder{} },
		Session:   signedIn(),
		Logger:    zerolog.Nop(),
	})
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	p1 := reg.Get(ctx, alice)
	p2 := reg.Get(ctx, alice)
	p3 := reg.Get(ctx, bob)

	assert.Same(t, p1, p2)
	assert.NotSame(t, p1, p3)
	assert.Len(t, stores, 2)
	assert.Equal(t, 2, reg.Len())

	reg.Drop(alice)
	assert.Equal(t, 1, reg.Len())
	assert.NotSame(t, p1, reg.Get(ctx, alice))
}
