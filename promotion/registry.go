package promotion

// Registry stores promotion definitions by code and tracks which codes are
// currently active. A cart owns exactly one Registry; there is no global
// registry. The compatibility rule enforced on activation is: for any single
// reference, at most one active promotion per kind.
type Registry struct {
	promos map[string]Promotion
	active map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		promos: make(map[string]Promotion),
		active: make(map[string]struct{}),
	}
}

// Register stores the promotion under its code. Registering a code that
// already exists overwrites the previous definition and removes the code from
// the active set: an overwritten promotion must be activated again, so the
// compatibility rule is re-checked against its new reference and kind.
// Registration alone never affects pricing; a promotion participates only
// once activated.
func (r *Registry) Register(p Promotion) {
	delete(r.active, p.Code)
	r.promos[p.Code] = p
}

// Get returns the promotion registered under code, if any.
func (r *Registry) Get(code string) (Promotion, bool) {
	p, ok := r.promos[code]
	return p, ok
}

// Activate adds code to the active set. It returns false, without activating,
// when the code is unregistered or when another promotion of the same kind is
// already active for the same reference. Activating an already-active code is
// idempotent and returns true.
func (r *Registry) Activate(code string) bool {
	p, ok := r.promos[code]
	if !ok {
		return false
	}
	if _, ok := r.active[code]; ok {
		return true
	}

	for other := range r.active {
		q := r.promos[other]
		if q.Reference == p.Reference && q.Kind == p.Kind {
			return false
		}
	}

	r.active[code] = struct{}{}
	return true
}

// Deactivate removes code from the active set. It returns false when the
// code was not active.
func (r *Registry) Deactivate(code string) bool {
	if _, ok := r.active[code]; !ok {
		return false
	}
	delete(r.active, code)
	return true
}

// IsActive reports whether code is currently in the active set.
func (r *Registry) IsActive(code string) bool {
	_, ok := r.active[code]
	return ok
}

// ActiveFor returns the active promotions targeting the given reference.
// The compatibility rule guarantees at most one promotion per kind, so the
// result holds zero, one, or two promotions.
func (r *Registry) ActiveFor(reference string) []Promotion {
	var out []Promotion
	for code := range r.active {
		if p := r.promos[code]; p.Reference == reference {
			out = append(out, p)
		}
	}
	return out
}
