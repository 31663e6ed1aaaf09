package quill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/args"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/observability"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/record"
	"github.com/aretw0/quill/pkg/script"
	"github.com/aretw0/quill/pkg/traits"
)

// ErrNoLoader is returned by script operations when the engine has no loader.
var ErrNoLoader = errors.New("no script loader configured")

// Engine is the high-level entry point for the quill library.
// It bundles a trait registry, a definitions provider and an optional script
// loader behind the operations the CLI, HTTP and MCP adapters expose.
type Engine struct {
	registry    *traits.Registry
	manifest    *record.Manifest
	definitions ports.DefinitionProvider
	loader      ports.ScriptLoader
	sink        diag.Sink
	metrics     *observability.Metrics
	logger      *slog.Logger
	debug       bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry uses an existing registry instead of a private one.
func WithRegistry(r *traits.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithManifest registers m instead of the built-in record manifest.
func WithManifest(m *record.Manifest) Option {
	return func(e *Engine) {
		e.manifest = m
	}
}

// WithDefinitions sets the provider shared by script runs.
func WithDefinitions(p ports.DefinitionProvider) Option {
	return func(e *Engine) {
		e.definitions = p
	}
}

// WithLoader enables script operations.
func WithLoader(l ports.ScriptLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithSink sets the diagnostic sink. Defaults to the process sink.
func WithSink(s diag.Sink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithMetrics counts diagnostics, trait faults and tokenizer calls.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDebug forces debug reporting for every script run.
func WithDebug(debug bool) Option {
	return func(e *Engine) {
		e.debug = debug
	}
}

// New initializes an Engine.
// Without WithRegistry, the engine owns a registry holding the manifest traits
// (the built-in manifest unless WithManifest is given).
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.metrics != nil {
		eng.sink = eng.metrics.Sink(eng.sink)
	}
	if eng.definitions == nil {
		eng.definitions = memory.NewDefinitions()
	}

	if eng.registry == nil {
		regOpts := []traits.Option{traits.WithSink(eng.sink)}
		if eng.metrics != nil {
			regOpts = append(regOpts, traits.WithObserver(eng.metrics))
		}
		eng.registry = traits.NewRegistry(regOpts...)
		if eng.manifest == nil {
			eng.manifest = record.DefaultManifest()
		}
	}

	if eng.manifest != nil {
		if err := eng.manifest.Register(eng.registry); err != nil {
			return nil, fmt.Errorf("failed to register manifest: %w", err)
		}
		eng.logger.Debug("manifest registered", "kinds", eng.manifest.KindNames())
	}
	eng.registry.Freeze()

	return eng, nil
}

func (e *Engine) Registry() *traits.Registry { return e.registry }

func (e *Engine) Definitions() ports.DefinitionProvider { return e.definitions }

// Metrics returns the engine metrics, or nil.
func (e *Engine) Metrics() *observability.Metrics { return e.metrics }

// Diagnostics returns the engine sink (counting when metrics are enabled).
func (e *Engine) Diagnostics() diag.Sink { return diag.Or(e.sink) }

// Tokenize splits line into argument tokens.
func (e *Engine) Tokenize(line string) []string {
	start := time.Now()
	tokens := args.Tokenize(line)
	if e.metrics != nil {
		e.metrics.ObserveTokenize(len(tokens), time.Since(start))
	}
	return tokens
}

// Classification is the shape of one argument value.
type Classification struct {
	Raw       string `json:"raw"`
	Prefix    string `json:"prefix,omitempty"`
	HasPrefix bool   `json:"has_prefix"`
	Value     string `json:"value"`
	Decimal   bool   `json:"decimal"`
	Integer   bool   `json:"integer"`
	Boolean   bool   `json:"boolean"`
}

// Classify reports how raw would be interpreted as an argument.
func (e *Engine) Classify(raw string) Classification {
	a := args.New(raw)
	return Classification{
		Raw:       a.Raw(),
		Prefix:    a.Prefix(),
		HasPrefix: a.HasPrefix(),
		Value:     a.Value(),
		Decimal:   a.MatchesDecimal(),
		Integer:   a.MatchesInteger(),
		Boolean:   a.MatchesBoolean(),
	}
}

// Description is the result of describing a record.
type Description struct {
	Identity    string            `json:"identity"`
	Description string            `json:"description"`
	Properties  []traits.Property `json:"properties"`
}

// Describe describes r with the engine registry.
func (e *Engine) Describe(r *record.Record) Description {
	desc, props := e.registry.Explain(r)
	return Description{
		Identity:    r.Identity(),
		Description: desc,
		Properties:  props,
	}
}

// NewQueue creates a queue sharing the engine provider and sink.
func (e *Engine) NewQueue(opts ...script.QueueOption) *script.Queue {
	base := []script.QueueOption{
		script.WithDefinitions(e.definitions),
		script.WithSink(e.sink),
		script.WithDebug(e.debug),
	}
	return script.NewQueue(append(base, opts...)...)
}

// Interpret builds a detached entry for one command line on a fresh queue.
func (e *Engine) Interpret(line string) (*script.Entry, error) {
	return script.NewEntry(e.NewQueue(), line)
}

// Scripts lists the names known to the loader.
func (e *Engine) Scripts(ctx context.Context) ([]string, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}
	return e.loader.List(ctx)
}

// Run loads a script and interprets every line on a new queue.
// Script definitions are bound only where the engine provider has no value yet.
func (e *Engine) Run(ctx context.Context, name string) (*Report, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}
	doc, err := e.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	s := script.FromDocument(doc)

	for k, v := range s.Definitions() {
		if !e.definitions.Has(k) {
			e.definitions.Set(k, v)
		}
	}

	q := e.NewQueue(script.WithDebug(e.debug || s.Debug()))
	logger := e.logger.With("script", s.Name(), "queue", q.ID())
	logger.Debug("running script", "lines", len(s.Lines()))

	entries, err := s.Entries(q)
	if err != nil {
		return nil, err
	}

	report := &Report{Script: s.Name(), Queue: q.ID(), Debug: q.Debug()}
	for _, entry := range entries {
		report.Entries = append(report.Entries, newEntryReport(entry))
	}
	logger.Debug("script interpreted", "entries", len(report.Entries))
	return report, nil
}
