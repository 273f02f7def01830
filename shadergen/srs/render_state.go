package srs

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
)

// RenderState is the user-facing unit of configuration: an ordered,
// type-unique collection of sub render states plus the scene-scalar inputs
// (light counts, fog mode) that get baked into generated code. Schemes carry a
// global render state as a template, passes may carry a custom one, and the
// builder composes both with fixed-function coverage modules before linking.
type RenderState struct {
	modules              []SubRenderState
	lightCounts          host.LightCounts
	lightCountAutoUpdate bool
	fogMode              host.FogMode
}

// NewRenderState creates an empty render state with light-count auto-update
// enabled.
//
// Returns:
//   - *RenderState: the new render state
func NewRenderState() *RenderState {
	return &RenderState{lightCountAutoUpdate: true}
}

// AddSubRenderState inserts a module. If a module with the same type tag is
// already present it is replaced in place, keeping the original insertion
// position so emission order stays stable.
//
// Parameters:
//   - s: the module to insert
func (rs *RenderState) AddSubRenderState(s SubRenderState) {
	for i, existing := range rs.modules {
		if existing.Type() == s.Type() {
			rs.modules[i] = s
			return
		}
	}
	rs.modules = append(rs.modules, s)
}

// RemoveSubRenderState removes the module with the given type tag, if present.
//
// Parameters:
//   - typeTag: the tag of the module to remove
func (rs *RenderState) RemoveSubRenderState(typeTag string) {
	rs.modules = slices.DeleteFunc(rs.modules, func(s SubRenderState) bool { return s.Type() == typeTag })
}

// SubRenderState retrieves the module with the given type tag, or nil.
//
// Parameters:
//   - typeTag: the tag to look up
//
// Returns:
//   - SubRenderState: the module, or nil when absent
func (rs *RenderState) SubRenderState(typeTag string) SubRenderState {
	for _, s := range rs.modules {
		if s.Type() == typeTag {
			return s
		}
	}
	return nil
}

// SubRenderStates retrieves the modules stable-sorted by execution bucket,
// preserving insertion order within a bucket.
//
// Returns:
//   - []SubRenderState: the ordered module list
func (rs *RenderState) SubRenderStates() []SubRenderState {
	out := slices.Clone(rs.modules)
	slices.SortStableFunc(out, func(a, b SubRenderState) int {
		return int(a.ExecutionOrder()) - int(b.ExecutionOrder())
	})
	return out
}

// Len retrieves the number of modules held.
//
// Returns:
//   - int: the module count
func (rs *RenderState) Len() int {
	return len(rs.modules)
}

// LightCounts retrieves the per-type light counts baked into generated code.
//
// Returns:
//   - host.LightCounts: (directional, point, spot)
func (rs *RenderState) LightCounts() host.LightCounts {
	return rs.lightCounts
}

// SetLightCounts overrides the light counts and disables auto-update, pinning
// the vector for every build using this render state.
//
// Parameters:
//   - counts: the pinned light counts
func (rs *RenderState) SetLightCounts(counts host.LightCounts) {
	rs.lightCounts = counts
	rs.lightCountAutoUpdate = false
}

// setDetectedLightCounts records auto-detected counts without touching the
// auto-update flag. Used by the builder when resolving counts from the scene.
func (rs *RenderState) setDetectedLightCounts(counts host.LightCounts) {
	rs.lightCounts = counts
}

// LightCountAutoUpdate reports whether light counts follow the scene.
//
// Returns:
//   - bool: true when counts are auto-detected each validation
func (rs *RenderState) LightCountAutoUpdate() bool {
	return rs.lightCountAutoUpdate
}

// FogMode retrieves the fog mode baked into generated code.
//
// Returns:
//   - host.FogMode: the fog mode
func (rs *RenderState) FogMode() host.FogMode {
	return rs.fogMode
}

// SetFogMode records the fog mode to bake into generated code.
//
// Parameters:
//   - mode: the fog mode
func (rs *RenderState) SetFogMode(mode host.FogMode) {
	rs.fogMode = mode
}

// Clone produces a deep copy of the render state: each module is re-created
// through its registered factory and configured via CopyFrom, and the scalar
// inputs are carried over.
//
// Parameters:
//   - registry: the factory registry able to create every held module type
//
// Returns:
//   - *RenderState: the cloned render state
//   - error: ErrUnknownType if a held module's factory is missing
func (rs *RenderState) Clone(registry *Registry) (*RenderState, error) {
	out := &RenderState{
		lightCounts:          rs.lightCounts,
		lightCountAutoUpdate: rs.lightCountAutoUpdate,
		fogMode:              rs.fogMode,
	}
	for _, s := range rs.modules {
		cloned, err := registry.Create(s.Type())
		if err != nil {
			return nil, fmt.Errorf("srs: cloning render state: %w", err)
		}
		cloned.CopyFrom(s)
		out.modules = append(out.modules, cloned)
	}
	return out, nil
}

// Resolve composes another render state into this one, skipping module types
// already present. Used to merge the scheme's global template under a pass's
// custom render state.
//
// Parameters:
//   - other: the render state to merge from
//   - registry: the factory registry used to clone the merged modules
//
// Returns:
//   - error: ErrUnknownType if a merged module's factory is missing
func (rs *RenderState) Resolve(other *RenderState, registry *Registry) error {
	for _, s := range other.modules {
		if rs.SubRenderState(s.Type()) != nil {
			continue
		}
		cloned, err := registry.Create(s.Type())
		if err != nil {
			return fmt.Errorf("srs: merging render state: %w", err)
		}
		cloned.CopyFrom(s)
		rs.modules = append(rs.modules, cloned)
	}
	if !rs.lightCountAutoUpdate {
		return nil
	}
	if !other.lightCountAutoUpdate {
		rs.lightCounts = other.lightCounts
		rs.lightCountAutoUpdate = false
	}
	return nil
}

// ResolveLightCounts settles the final light-count vector for a build:
// a custom or scheme override wins, otherwise the scene's auto-detected
// counts are used.
//
// Parameters:
//   - detected: the scene's current active light counts
func (rs *RenderState) ResolveLightCounts(detected host.LightCounts) {
	if rs.lightCountAutoUpdate {
		rs.setDetectedLightCounts(detected)
	}
}
