package bridge

import "context"

// envelope tags a mailbox value with the sequence number of the call it
// belongs to. The actor copies the sequence from request to response. err is
// set on a response whose handler failed and ended the actor.
type envelope[T any] struct {
	seq uint64
	ctx context.Context
	msg T
	err error
}

// mailbox is a capacity-1 channel bound to the actor's lifetime. Sends and
// receives fail once the actor is done.
type mailbox[T any] struct {
	channel chan envelope[T]
	done    <-chan struct{}
}

func newMailbox[T any](done <-chan struct{}) *mailbox[T] {
	return &mailbox[T]{
		channel: make(chan envelope[T], 1),
		done:    done,
	}
}

func (m *mailbox[T]) send(ctx context.Context, e envelope[T]) error {
	select {
	case m.channel <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return errActorDone
	}
}

// receive prefers a value that is already queued over the done signal.
func (m *mailbox[T]) receive(ctx context.Context) (envelope[T], error) {
	select {
	case e := <-m.channel:
		return e, nil
	case <-ctx.Done():
		return envelope[T]{}, ctx.Err()
	case <-m.done:
		if e, ok := m.tryReceive(); ok {
			return e, nil
		}
		return envelope[T]{}, errActorDone
	}
}

func (m *mailbox[T]) tryReceive() (envelope[T], bool) {
	select {
	case e := <-m.channel:
		return e, true
	default:
		return envelope[T]{}, false
	}
}
