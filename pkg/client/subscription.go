package client

import (
	"context"
	"sync"

	"github.com/samwightt/gqlz/pkg/query"
	"github.com/samwightt/gqlz/pkg/schema"
	"github.com/samwightt/gqlz/pkg/selection"
	"github.com/samwightt/gqlz/pkg/transport"
	"go.uber.org/zap"
)

// SubscriptionThunder opens subscriptions through a subscribe transport.
type SubscriptionThunder struct {
	builder   *query.Builder
	subscribe transport.SubscribeFunc
	scalars   query.Scalars
	logger    *zap.Logger
}

// NewSubscriptionThunder returns a SubscriptionThunder over the given
// tables and transport.
func NewSubscriptionThunder(t *schema.Tables, subscribe transport.SubscribeFunc, opts ...Option) *SubscriptionThunder {
	o := newOptions(opts)
	return &SubscriptionThunder{
		builder:   query.NewBuilder(t, o.scalars),
		subscribe: subscribe,
		scalars:   o.scalars,
		logger:    o.logger,
	}
}

// Subscription returns a SubscriptionThunder using the WebSocket transport
// against host.
func Subscription(t *schema.Tables, host string, opts ...Option) *SubscriptionThunder {
	o := newOptions(opts)
	return NewSubscriptionThunder(t, transport.NewWebSocket(host, o.transport...), opts...)
}

// Subscribe builds the document for op and sel and opens a stream for it.
// With coders registered, every message is decoded using a scalar path map
// computed once for the subscription.
func (th *SubscriptionThunder) Subscribe(ctx context.Context, op string, sel selection.Node, opts ...CallOption) (transport.Stream, error) {
	c := newCall(opts)
	doc, err := th.builder.Build(op, sel, query.Options{OperationName: c.operationName})
	if err != nil {
		return nil, err
	}

	var paths query.ScalarPaths
	if len(th.scalars) > 0 {
		if paths, err = th.builder.ScalarPaths(op, sel); err != nil {
			return nil, err
		}
	}

	th.logger.Debug("opening subscription", zap.String("operation", op), zap.String("query", doc.Text))
	stream, err := th.subscribe(ctx, doc.Text)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return stream, nil
	}

	d := &decodedStream{
		inner:  stream,
		events: make(chan transport.Event),
		done:   make(chan struct{}),
	}
	go d.run(func(data any) (any, error) {
		return decode(th.builder, th.scalars, paths, op, data)
	})
	return d, nil
}

// decodedStream decodes each event of inner in arrival order.
type decodedStream struct {
	inner  transport.Stream
	events chan transport.Event
	done   chan struct{}
	once   sync.Once
}

func (d *decodedStream) Events() <-chan transport.Event {
	return d.events
}

func (d *decodedStream) Close() error {
	d.once.Do(func() { close(d.done) })
	return d.inner.Close()
}

func (d *decodedStream) run(decodeFn func(any) (any, error)) {
	defer close(d.events)
	for ev := range d.inner.Events() {
		if ev.Err == nil {
			ev.Data, ev.Err = decodeFn(ev.Data)
		}
		select {
		case d.events <- ev:
		case <-d.done:
			return
		}
	}
}
