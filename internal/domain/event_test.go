package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fileicons.dev/pkg/fileicons/internal/domain"
)

func TestEmitter(t *testing.T) {
	t.Run("handlers run in registration order", func(t *testing.T) {
		var e domain.Emitter[int]
		var got []string

		e.On(func(v int) { got = append(got, "first") })
		e.On(func(v int) { got = append(got, "second") })
		e.Emit(1)

		assert.Equal(t, []string{"first", "second"}, got)
	})

	t.Run("dispose is idempotent", func(t *testing.T) {
		var e domain.Emitter[int]
		calls := 0

		sub := e.On(func(int) { calls++ })
		other := e.On(func(int) {})

		sub.Dispose()
		sub.Dispose()
		e.Emit(1)

		assert.Zero(t, calls)
		assert.Equal(t, 1, e.Len())

		other.Dispose()
		assert.Zero(t, e.Len())
	})

	t.Run("handler may dispose itself while emitting", func(t *testing.T) {
		var e domain.Emitter[int]
		calls := 0

		var sub domain.Subscription
		sub = e.On(func(int) {
			calls++
			sub.Dispose()
		})

		e.Emit(1)
		e.Emit(2)

		assert.Equal(t, 1, calls)
	})

	t.Run("clear drops every handler", func(t *testing.T) {
		var e domain.Emitter[string]

		e.On(func(string) { t.Fatal("handler called after Clear") })
		e.Clear()
		e.Emit("x")

		assert.Zero(t, e.Len())
	})
}

func TestSubscriptions(t *testing.T) {
	calls := 0
	subs := domain.Subscriptions{
		domain.NewSubscription(func() { calls++ }),
		nil,
		domain.NewSubscription(func() { calls++ }),
	}

	subs.Dispose()
	subs.Dispose()

	assert.Equal(t, 2, calls)
}
