package shadergen

import (
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

// Scheme is one named bucket of shader-based technique registrations. It
// carries the global render state merged into every technique built under it,
// the out-of-date flag, and the scene scalars (fog mode, light counts) the
// generated code was last built against. Schemes are created on first use of
// a name and live until generator shutdown.
type Scheme struct {
	name        string
	renderState *srs.RenderState
	outOfDate   bool

	cachedFog    host.FogMode
	cachedLights host.LightCounts

	techniques []*sgTechnique
}

func newScheme(name string) *Scheme {
	return &Scheme{
		name:        name,
		renderState: srs.NewRenderState(),
		outOfDate:   true,
	}
}

// Name retrieves the scheme name.
//
// Returns:
//   - string: the name
func (s *Scheme) Name() string {
	return s.name
}

// RenderState retrieves the scheme's global render state. Modules added here
// are merged into every technique built under the scheme.
//
// Returns:
//   - *srs.RenderState: the global render state
func (s *Scheme) RenderState() *srs.RenderState {
	return s.renderState
}

// OutOfDate reports whether the scheme needs validation.
//
// Returns:
//   - bool: true when at least one technique is build-pending
func (s *Scheme) OutOfDate() bool {
	return s.outOfDate
}

// CachedLightCounts retrieves the light counts the scheme's techniques were
// last built against.
//
// Returns:
//   - host.LightCounts: the cached vector
func (s *Scheme) CachedLightCounts() host.LightCounts {
	return s.cachedLights
}

// Invalidate marks every technique on the scheme build-pending. The next
// validation rebuilds all of them.
func (s *Scheme) Invalidate() {
	s.outOfDate = true
	for _, t := range s.techniques {
		t.buildPending = true
	}
}

// InvalidateMaterial marks only the named material's technique build-pending.
// Other techniques are untouched; the scheme is validated as a whole at the
// next validation call.
//
// Parameters:
//   - name: the material name
//   - group: the material resource group; GroupAutoDetect matches any
func (s *Scheme) InvalidateMaterial(name, group string) {
	for _, t := range s.techniques {
		if t.parent.material.Name() != name {
			continue
		}
		if group != GroupAutoDetect && t.parent.material.Group() != group {
			continue
		}
		t.buildPending = true
		s.outOfDate = true
	}
}

// observeScene applies the scene-delta invalidation rules: any component-wise
// light count increase invalidates, decreases are tolerated; a fog mode
// change always invalidates.
func (s *Scheme) observeScene(scene host.SceneManager) {
	counts := scene.ActiveLightCounts()
	if counts.AnyGreaterThan(s.cachedLights) {
		s.Invalidate()
	}
	if scene.FogMode() != s.cachedFog {
		s.Invalidate()
	}
}

func (s *Scheme) addTechnique(t *sgTechnique) {
	s.techniques = append(s.techniques, t)
	t.buildPending = true
	s.outOfDate = true
}

func (s *Scheme) removeTechnique(t *sgTechnique) {
	for i, existing := range s.techniques {
		if existing == t {
			s.techniques = append(s.techniques[:i], s.techniques[i+1:]...)
			return
		}
	}
}
