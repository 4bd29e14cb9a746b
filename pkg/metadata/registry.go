package metadata

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry holds all registered platform definitions. It is populated
// once at startup (LoadEmbedded, LoadDir, or Add) and read-only after
// that, so concurrent readers need no coordination beyond the internal
// lock guarding the load phase.
type Registry struct {
	mu        sync.RWMutex
	platforms map[string]*Platform
}

// NewRegistry creates an empty platform registry.
func NewRegistry() *Registry {
	return &Registry{
		platforms: make(map[string]*Platform),
	}
}

// Add registers a platform definition. Registering the same id twice is
// an error.
func (r *Registry) Add(p *Platform) error {
	if err := validatePlatform(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.platforms[p.ID]; exists {
		return fmt.Errorf("platform %q already registered", p.ID)
	}
	r.platforms[p.ID] = p
	return nil
}

// Platform returns the definition for the given platform id.
func (r *Registry) Platform(id string) (*Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.platforms[id]
	if !ok {
		return nil, &UnknownPlatformError{ID: id, Available: r.idsLocked()}
	}
	return p, nil
}

// Metric resolves a metric id within a platform.
func (r *Registry) Metric(platformID, metricID string) (Metric, error) {
	p, err := r.Platform(platformID)
	if err != nil {
		return Metric{}, err
	}
	m, ok := p.Metric(metricID)
	if !ok {
		return Metric{}, &UnknownMetricError{Platform: platformID, ID: metricID}
	}
	return m, nil
}

// Dimension resolves a dimension id within a platform.
func (r *Registry) Dimension(platformID, dimensionID string) (Dimension, error) {
	p, err := r.Platform(platformID)
	if err != nil {
		return Dimension{}, err
	}
	d, ok := p.Dimension(dimensionID)
	if !ok {
		return Dimension{}, &UnknownDimensionError{Platform: platformID, ID: dimensionID}
	}
	return d, nil
}

// CanBlend reports whether platform a declares platform b as blend
// compatible. The lookup is directional: callers that need symmetry
// must check both directions.
func (r *Registry) CanBlend(a, b string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pa, ok := r.platforms[a]
	if !ok || pa.Blending == nil {
		return false
	}
	for _, id := range pa.Blending.CompatibleWith {
		if id == b {
			return true
		}
	}
	return false
}

// JoinKeys returns the join-key dimension ids declared on both platforms,
// in a's declaration order. The result is empty (never an error) when the
// platforms cannot blend or share no keys.
func (r *Registry) JoinKeys(a, b string) []string {
	if !r.CanBlend(a, b) {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pa, aok := r.platforms[a]
	pb, bok := r.platforms[b]
	if !aok || !bok {
		return nil
	}

	var shared []string
	for _, d := range pa.Dimensions {
		if !d.JoinKey {
			continue
		}
		if other, ok := pb.Dimension(d.ID); ok && other.JoinKey {
			shared = append(shared, d.ID)
		}
	}
	return shared
}

// IDs returns all registered platform ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.platforms))
	for id := range r.platforms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks cross-platform invariants after all definitions are
// loaded: every declared join key must exist as a join-key dimension on
// the declaring platform and on each compatible platform. Failures are
// accumulated rather than reported one at a time.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, id := range r.idsLocked() {
		p := r.platforms[id]
		if p.Blending == nil {
			continue
		}
		for _, key := range p.Blending.JoinKeys {
			if d, ok := p.Dimension(key); !ok || !d.JoinKey {
				errs = append(errs, fmt.Errorf("platform %q: blend join key %q is not a join-key dimension", id, key))
			}
			for _, other := range p.Blending.CompatibleWith {
				op, ok := r.platforms[other]
				if !ok {
					errs = append(errs, fmt.Errorf("platform %q: blend-compatible platform %q is not registered", id, other))
					continue
				}
				if d, ok := op.Dimension(key); !ok || !d.JoinKey {
					errs = append(errs, fmt.Errorf("platform %q: join key %q is not a join-key dimension on compatible platform %q", id, key, other))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// validatePlatform checks the intra-platform invariants: non-empty id and
// table, and metric/dimension ids unique within the platform.
func validatePlatform(p *Platform) error {
	if p == nil {
		return errors.New("platform definition is nil")
	}
	if p.ID == "" {
		return errors.New("platform id is required")
	}
	if p.Table == "" {
		return fmt.Errorf("platform %q: table reference is required", p.ID)
	}

	seenMetrics := make(map[string]struct{}, len(p.Metrics))
	for _, m := range p.Metrics {
		if m.ID == "" || m.SQL == "" {
			return fmt.Errorf("platform %q: metric id and sql are required", p.ID)
		}
		if _, dup := seenMetrics[m.ID]; dup {
			return fmt.Errorf("platform %q: duplicate metric id %q", p.ID, m.ID)
		}
		seenMetrics[m.ID] = struct{}{}
	}

	seenDims := make(map[string]struct{}, len(p.Dimensions))
	for _, d := range p.Dimensions {
		if d.ID == "" || d.SQL == "" {
			return fmt.Errorf("platform %q: dimension id and sql are required", p.ID)
		}
		if _, dup := seenDims[d.ID]; dup {
			return fmt.Errorf("platform %q: duplicate dimension id %q", p.ID, d.ID)
		}
		seenDims[d.ID] = struct{}{}
	}
	return nil
}
