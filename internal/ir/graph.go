package ir

import (
	"io"
	"log/slog"

	"github.com/cascade-ir/cascade/internal/store"
)

// Graph owns the canonical stores for one value graph: an interner for
// node payloads and one for regions. It is an explicit, injectable
// service rather than a process-global cache, so tests and independent
// pipelines can use isolated instances.
//
// All constructors hang off the Graph. Each computes its node's type,
// validates with typed errors, normalizes degenerate encodings, places
// the node at the join of its dependencies' regions, and only then
// consults the store.
type Graph struct {
	logger  *slog.Logger
	values  *store.Interner[Node]
	regions *store.Interner[*RegionData]
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for collection statistics. The core
// never logs on construction or evaluation paths; the default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.values = store.New(nodeHash, nodeEqual,
		store.WithRelease[Node](releaseNode),
		store.WithLogger[Node](g.logger))
	g.regions = store.New(regionHash, regionEqual,
		store.WithRelease[*RegionData](releaseRegion),
		store.WithLogger[*RegionData](g.logger))
	return g
}

// Intern returns the canonical handle for a node payload, bumping its
// holder count. Interning never fails: validation belongs to the typed
// constructors, which run before any payload reaches the store.
//
// Ownership protocol: a payload passed to Intern must carry one holder
// count on each of its dependencies, its type, and its region. If an
// equal payload is already resident those counts are released through
// the store's hook; if this payload is evicted later, likewise.
func (g *Graph) Intern(n Node) ValId {
	return ValId{g.values.Intern(n)}
}

// Collect evicts values and regions whose external holder count has
// dropped to zero, returning the total evicted. Entries held only by
// an evicted entry become collectable on the next call, so chains
// collect one level per call. Eviction never invalidates handles that
// are still held.
func (g *Graph) Collect() int {
	evicted := g.values.Collect() + g.regions.Collect()
	if evicted > 0 {
		g.logger.Debug("graph collection", "evicted", evicted)
	}
	return evicted
}

// NumValues returns the number of resident canonical values.
func (g *Graph) NumValues() int { return g.values.Len() }

// NumRegions returns the number of resident regions.
func (g *Graph) NumRegions() int { return g.regions.Len() }

// extraOwner is implemented by node kinds that own holder counts
// beyond their dependencies, type, and placement region (e.g. a pi
// type's defining region).
type extraOwner interface {
	releaseExtra()
}

// releaseNode drops the holder counts a node payload owns: one per
// dependency, one on its cached type, one on its region.
func releaseNode(n Node) {
	for i := 0; i < n.NumDeps(); i++ {
		n.Dep(i).Release()
	}
	if ty := n.Type(); !ty.IsNil() {
		ty.Release()
	}
	n.Region().Release()
	if eo, ok := n.(extraOwner); ok {
		eo.releaseExtra()
	}
}

// releaseRegion drops the holder counts a region owns: one on its
// parent and one per parameter type.
func releaseRegion(d *RegionData) {
	d.parent.Release()
	for _, ty := range d.paramTys {
		ty.Release()
	}
}
