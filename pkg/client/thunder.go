// Package client binds transports to the query builder: a Thunder runs
// queries and mutations, a SubscriptionThunder opens subscriptions, and
// both decode custom scalars in what comes back.
package client

import (
	"context"

	"github.com/samwightt/gqlz/pkg/query"
	"github.com/samwightt/gqlz/pkg/schema"
	"github.com/samwightt/gqlz/pkg/selection"
	"github.com/samwightt/gqlz/pkg/transport"
	"go.uber.org/zap"
)

type options struct {
	scalars   query.Scalars
	logger    *zap.Logger
	transport []transport.Option
}

// Option configures a Thunder or SubscriptionThunder.
type Option func(*options)

// WithScalars registers scalar coders used to encode arguments and decode
// responses.
func WithScalars(s query.Scalars) Option {
	return func(o *options) { o.scalars = s }
}

// WithLogger sets the logger, also handing it to transports built by Chain
// and Subscription.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
		o.transport = append(o.transport, transport.WithLogger(l))
	}
}

// WithTransport passes options to the transport built by Chain or
// Subscription.
func WithTransport(opts ...transport.Option) Option {
	return func(o *options) { o.transport = append(o.transport, opts...) }
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type call struct {
	operationName string
	variables     map[string]any
}

// CallOption configures one operation.
type CallOption func(*call)

// WithOperationName names the operation in the built document.
func WithOperationName(name string) CallOption {
	return func(c *call) { c.operationName = name }
}

// WithVariables sets the variables sent alongside the document.
func WithVariables(v map[string]any) CallOption {
	return func(c *call) { c.variables = v }
}

func newCall(opts []CallOption) *call {
	c := &call{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Thunder runs queries and mutations through a fetch transport.
type Thunder struct {
	builder *query.Builder
	fetch   transport.FetchFunc
	scalars query.Scalars
	logger  *zap.Logger
}

// NewThunder returns a Thunder over the given tables and transport.
func NewThunder(t *schema.Tables, fetch transport.FetchFunc, opts ...Option) *Thunder {
	o := newOptions(opts)
	return &Thunder{
		builder: query.NewBuilder(t, o.scalars),
		fetch:   fetch,
		scalars: o.scalars,
		logger:  o.logger,
	}
}

// Chain returns a Thunder using the HTTP transport against host.
func Chain(t *schema.Tables, host string, opts ...Option) *Thunder {
	o := newOptions(opts)
	return NewThunder(t, transport.NewHTTP(host, o.transport...), opts...)
}

// Run builds the document for op and sel, sends it and returns the
// response data, with custom scalars decoded when coders are registered.
// Build errors are returned before anything is sent; transport errors are
// returned unchanged.
func (th *Thunder) Run(ctx context.Context, op string, sel selection.Node, opts ...CallOption) (any, error) {
	c := newCall(opts)
	doc, err := th.builder.Build(op, sel, query.Options{OperationName: c.operationName})
	if err != nil {
		return nil, err
	}
	th.logger.Debug("running operation", zap.String("operation", op), zap.String("query", doc.Text))

	data, err := th.fetch(ctx, doc.Text, c.variables)
	if err != nil {
		return nil, err
	}
	if len(th.scalars) == 0 {
		return data, nil
	}

	paths, err := th.builder.ScalarPaths(op, sel)
	if err != nil {
		return nil, err
	}
	return decode(th.builder, th.scalars, paths, op, data)
}

func decode(b *query.Builder, scalars query.Scalars, paths query.ScalarPaths, op string, data any) (any, error) {
	if len(paths) == 0 {
		return data, nil
	}
	root, err := b.Tables().RootType(op)
	if err != nil {
		return nil, err
	}
	return query.Decode(paths, scalars, root, data)
}
