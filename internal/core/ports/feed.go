package ports

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Collections carried on the change bus. Repositories publish one event
// per successful mutation; watchers re-run their query and deliver the
// full matching result set, matching the store's live-query contract.
const (
	CollectionTasks       = "tasks"
	CollectionCategories  = "categories"
	CollectionTeams       = "teams"
	CollectionTeamMembers = "team_members"
)

// ChangeBus is the push-based change notification primitive over the
// document store. Publish is best effort: a lost notification only delays
// a feed until the next event, durable state is never derived from it.
type ChangeBus interface {
	Publish(ctx context.Context, collection string) error
	// Changes returns a channel that receives a tick for every published
	// event on the collection, plus a stop function that releases the
	// underlying subscription.
	Changes(ctx context.Context, collection string) (<-chan struct{}, func(), error)
}

// Subscription is a cancellable live query handle. C yields full
// result-set snapshots; the consumer diffs against prior state if it
// wants incremental updates. Unsubscribe is always invoked when a view's
// scope changes and is safe to call more than once.
type Subscription[T any] struct {
	C           <-chan T
	once        sync.Once
	unsubscribe func()
}

func NewSubscription[T any](c <-chan T, unsubscribe func()) *Subscription[T] {
	return &Subscription[T]{C: c, unsubscribe: unsubscribe}
}

func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}

// Watch runs query once up front and again after every change event on
// the collection, delivering each full result set on the returned
// subscription. A consumer that lags only ever misses intermediate
// snapshots; the newest one replaces any undelivered predecessor.
func Watch[T any](ctx context.Context, bus ChangeBus, collection string, query func(context.Context) (T, error)) (*Subscription[T], error) {
	ticks, stop, err := bus.Changes(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make(chan T, 1)
	done := make(chan struct{})

	// The bus subscription is released exactly once, whether the
	// consumer unsubscribes or the context ends first.
	var once sync.Once
	release := func() { once.Do(stop) }

	deliver := func() {
		snapshot, err := query(ctx)
		if err != nil {
			zap.L().Warn("live query failed", zap.String("collection", collection), zap.Error(err))
			return
		}
		// Swap out an undelivered snapshot rather than block.
		select {
		case out <- snapshot:
		default:
			select {
			case <-out:
			default:
			}
			select {
			case out <- snapshot:
			default:
			}
		}
	}

	go func() {
		defer close(out)
		defer release()
		deliver()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				deliver()
			}
		}
	}()

	return NewSubscription(out, func() {
		close(done)
		release()
	}), nil
}
