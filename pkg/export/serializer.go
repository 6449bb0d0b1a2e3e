package export

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodeport/pkg/node"
)

// Export is the portable record of one node: its op code plus optional args
// and links. Args and Links are nil, never empty, when there is nothing to
// report.
type Export struct {
	Op    string
	Args  Args
	Links Links
}

// Serializer turns live nodes into [Export] records one level at a time.
// It holds only read-only configuration and is safe for concurrent use as
// long as overrides are.
type Serializer struct {
	registry  *Registry
	overrides Overrides
	logger    *log.Logger
}

// Option configures a [Serializer].
type Option func(*Serializer)

// WithRegistry sets the shared-node registry. A nil registry disables
// shared-name resolution.
func WithRegistry(r *Registry) Option {
	return func(s *Serializer) { s.registry = r }
}

// WithOverrides sets the per-type overrides.
func WithOverrides(o Overrides) Option {
	return func(s *Serializer) { s.overrides = o }
}

// WithLogger sets a logger for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Serializer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a serializer over [DefaultRegistry] with no overrides.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		registry: DefaultRegistry(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serialize exports n. A nil or typed-nil node exports as nil. The op code is the shared name when n is a registered
// singleton, otherwise n's type identifier. A nil export with a nil error
// means no op code could be resolved; callers decide whether to skip or
// flatten such nodes. Errors come only from dynamic overrides and are
// returned unchanged.
func (s *Serializer) Serialize(n node.Node) (*Export, error) {
	if isNil(n) {
		return nil, nil
	}

	if name, ok := s.registry.Lookup(n); ok {
		return &Export{Op: name}, nil
	}

	op := node.TypeOf(n)
	if op == "" {
		s.logger.Debug("unresolvable node type", "type", fmt.Sprintf("%T", n))
		return nil, nil
	}

	if o, ok := s.overrides[op]; ok && o != nil {
		rec, err := o.resolve(n)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return newExport(op, *rec), nil
		}
		s.logger.Debug("override deferred to built-in rule", "op", op)
	}

	return newExport(op, s.extract(op, n)), nil
}

// Op returns the op code n would export under, or false if none resolves.
func (s *Serializer) Op(n node.Node) (string, bool) {
	if isNil(n) {
		return "", false
	}
	if name, ok := s.registry.Lookup(n); ok {
		return name, true
	}
	op := node.TypeOf(n)
	return op, op != ""
}

func newExport(op string, rec Record) *Export {
	e := &Export{Op: op}
	if len(rec.Args) > 0 {
		e.Args = rec.Args
	}
	if len(rec.Links) > 0 {
		e.Links = rec.Links
	}
	return e
}

// Serialize exports n with a serializer over [DefaultRegistry] and no
// overrides.
func Serialize(n node.Node) (*Export, error) {
	return New().Serialize(n)
}
