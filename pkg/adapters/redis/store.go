package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Definitions implements ports.DefinitionProvider on a Redis hash.
// Every scope (e.g. a queue id) is its own hash under the prefix.
//
// The provider interface has no error returns: Redis failures are reported to
// the diagnostic sink and read as "not bound".
type Definitions struct {
	client  *backend.Client
	prefix  string
	scope   string
	timeout time.Duration
	sink    diag.Sink
}

type Option func(*Definitions)

// WithPrefix sets the key prefix of the hashes.
func WithPrefix(prefix string) Option {
	return func(d *Definitions) {
		d.prefix = prefix
	}
}

// WithScope selects the hash that holds the bindings.
func WithScope(scope string) Option {
	return func(d *Definitions) {
		d.scope = scope
	}
}

// WithTimeout bounds every Redis round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Definitions) {
		d.timeout = timeout
	}
}

// WithSink sets where Redis failures are reported.
func WithSink(sink diag.Sink) Option {
	return func(d *Definitions) {
		d.sink = sink
	}
}

// New creates a provider with its own client.
func New(address, password string, db int, opts ...Option) *Definitions {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Definitions {
	d := &Definitions{
		client:  client,
		prefix:  "quill:def:",
		scope:   "global",
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Scoped returns a provider sharing the client but bound to another scope.
func (d *Definitions) Scoped(scope string) *Definitions {
	cp := *d
	cp.scope = scope
	return &cp
}

// Key returns the Redis hash key of this provider.
func (d *Definitions) Key() string {
	return d.prefix + d.scope
}

func (d *Definitions) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.timeout)
}

func (d *Definitions) report(op, name string, err error) {
	diag.Or(d.sink).Error(fmt.Sprintf("redis definitions %s %q in %s: %v", op, name, d.Key(), err))
}

// Get returns the value bound to name.
func (d *Definitions) Get(name string) (string, bool) {
	ctx, cancel := d.ctx()
	defer cancel()

	val, err := d.client.HGet(ctx, d.Key(), ports.NormalizeName(name)).Result()
	if err != nil {
		if err != backend.Nil {
			d.report("get", name, err)
		}
		return "", false
	}
	return val, true
}

// Set binds value to name.
func (d *Definitions) Set(name, value string) {
	ctx, cancel := d.ctx()
	defer cancel()

	if err := d.client.HSet(ctx, d.Key(), ports.NormalizeName(name), value).Err(); err != nil {
		d.report("set", name, err)
	}
}

// Has reports whether name is bound.
func (d *Definitions) Has(name string) bool {
	ctx, cancel := d.ctx()
	defer cancel()

	ok, err := d.client.HExists(ctx, d.Key(), ports.NormalizeName(name)).Result()
	if err != nil {
		d.report("has", name, err)
		return false
	}
	return ok
}

// Remove unbinds name.
func (d *Definitions) Remove(name string) {
	ctx, cancel := d.ctx()
	defer cancel()

	if err := d.client.HDel(ctx, d.Key(), ports.NormalizeName(name)).Err(); err != nil {
		d.report("remove", name, err)
	}
}

// All returns every binding of the scope.
func (d *Definitions) All() map[string]string {
	ctx, cancel := d.ctx()
	defer cancel()

	all, err := d.client.HGetAll(ctx, d.Key()).Result()
	if err != nil {
		d.report("list", "*", err)
		return map[string]string{}
	}
	return all
}

// Seed binds every entry of values in one round trip.
func (d *Definitions) Seed(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pipe := d.client.Pipeline()
	for k, v := range values {
		pipe.HSet(ctx, d.Key(), ports.NormalizeName(k), v)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed definitions: %w", err)
	}
	return nil
}

// Clear drops the scope's hash.
func (d *Definitions) Clear(ctx context.Context) error {
	return d.client.Del(ctx, d.Key()).Err()
}

// Ping checks connectivity.
func (d *Definitions) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (d *Definitions) Close() error {
	return d.client.Close()
}
