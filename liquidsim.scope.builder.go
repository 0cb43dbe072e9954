package liquidsim

// ScopeBuilder creates the isolated scopes snippets render against.
// ExposedGlobals is the only way anything outside the explicit bindings
// becomes visible inside a snippet; it is nil unless the engine was
// configured with WithExposedGlobals.
type ScopeBuilder struct {
	ExposedGlobals map[string]any
}

// Build returns a new isolated scope holding exactly the given values.
// Values are applied in order, so a later name overwrites an earlier one.
func (b ScopeBuilder) Build(values []BoundValue) *Scope {
	vars := make(map[string]any, len(values))
	for _, v := range values {
		vars[v.Name] = v.Value
	}
	return NewIsolatedScope(vars, b.ExposedGlobals)
}
