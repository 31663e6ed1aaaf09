package script

import (
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/google/uuid"
)

// Queue is the execution context shared by a group of entries.
type Queue struct {
	id          string
	debug       bool
	definitions ports.DefinitionProvider
	sink        diag.Sink
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithID overrides the generated queue id.
func WithID(id string) QueueOption {
	return func(q *Queue) {
		q.id = id
	}
}

// WithDebug enables debug reporting for the queue's entries.
func WithDebug(debug bool) QueueOption {
	return func(q *Queue) {
		q.debug = debug
	}
}

// WithDefinitions sets the definitions provider.
func WithDefinitions(p ports.DefinitionProvider) QueueOption {
	return func(q *Queue) {
		q.definitions = p
	}
}

// WithSink sets the diagnostic sink. Defaults to the process sink.
func WithSink(s diag.Sink) QueueOption {
	return func(q *Queue) {
		q.sink = s
	}
}

// NewQueue creates a queue with a random id and an empty in-memory provider.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		id: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.definitions == nil {
		q.definitions = memory.NewDefinitions()
	}
	return q
}

func (q *Queue) ID() string { return q.id }

func (q *Queue) Debug() bool { return q.debug }

func (q *Queue) Definitions() ports.DefinitionProvider { return q.definitions }

// Diagnostics returns the queue sink, or the process default.
func (q *Queue) Diagnostics() diag.Sink { return diag.Or(q.sink) }

func (q *Queue) String() string { return "Queue(" + q.id + ")" }
