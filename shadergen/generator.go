// Package shadergen synthesizes GPU shader programs on demand from the
// fixed-function state of host material passes. Given a source pass, it
// composes an ordered set of effect modules (sub render states), links them
// into a typed vertex/pixel program IR, emits target-language source through
// a pluggable writer registry, compiles and deduplicates the result through a
// fingerprinting program manager, and keeps everything coherent with scene
// deltas (light counts, fog mode) through named scheme invalidation.
//
// The Generator is the single entry point. Hosts adapt their material system
// to the interfaces in the host subpackage, feed scene-traversal
// notifications into PreFindVisibleObjects and NotifyRenderSingleObject, and
// receive fully programmable destination techniques alongside their original
// fixed-function ones. All registration, building, and invalidation is
// expected on the thread driving the host's render loop.
package shadergen

import (
	"log"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/program"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/script"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/srs"
)

// DefaultSchemeName is the destination scheme used when hosts do not name
// their own.
const DefaultSchemeName = "ShaderGeneratorDefaultScheme"

// GroupAutoDetect is the resource-group wildcard: material lookups with this
// group match the first material with the requested name in any group.
const GroupAutoDetect = ""

type materialKey struct {
	name  string
	group string
}

// Generator is the shader generation facade. Create one per process with New,
// register materials with CreateShaderBasedTechnique, and drive it from the
// host's render loop hooks.
type Generator struct {
	factories  *srs.Registry
	programs   program.Manager
	translator script.Translator

	schemes   map[string]*Scheme
	materials map[materialKey]*sgMaterial
	targets   map[host.Pass]*TargetRenderState

	activeScene host.SceneManager

	targetLanguage   string
	vertexProfile    string
	fragmentProfile  string
	cachePath        string
	compaction       ir.CompactionPolicy
	maxInterpolants  int
	overProgrammable bool
}

// New creates a generator over a host program compiler, installs the built-in
// effect module factories, and validates the configured target language
// against the writer registry.
//
// Parameters:
//   - compiler: the host's GPU program compiler; must not be nil
//   - options: optional configuration
//
// Returns:
//   - *Generator: the new generator
//   - error: an invalid target language or cache directory failure
func New(compiler host.ProgramCompiler, options ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		factories:       srs.NewRegistry(),
		schemes:         make(map[string]*Scheme),
		materials:       make(map[materialKey]*sgMaterial),
		targets:         make(map[host.Pass]*TargetRenderState),
		targetLanguage:  "glsl",
		compaction:      ir.CompactMedium,
		maxInterpolants: 64,
	}
	for _, option := range options {
		option(g)
	}

	managerOptions := []program.ManagerOption{}
	if g.cachePath != "" {
		cache, err := program.NewDiskCache(g.cachePath, 2)
		if err != nil {
			return nil, err
		}
		managerOptions = append(managerOptions, program.WithSourceCache(cache))
	}
	g.programs = program.NewManager(compiler, managerOptions...)

	if _, err := g.programs.Writers().ForLanguage(g.targetLanguage); err != nil {
		return nil, err
	}
	if err := srs.RegisterBuiltins(g.factories); err != nil {
		return nil, err
	}
	g.translator = script.NewTranslator(g.factories)
	return g, nil
}

// Factories retrieves the effect module factory registry so hosts can install
// custom modules.
//
// Returns:
//   - *srs.Registry: the registry
func (g *Generator) Factories() *srs.Registry {
	return g.factories
}

// Programs retrieves the program manager.
//
// Returns:
//   - program.Manager: the manager
func (g *Generator) Programs() program.Manager {
	return g.programs
}

// Translator retrieves the material-script block translator.
//
// Returns:
//   - script.Translator: the translator
func (g *Generator) Translator() script.Translator {
	return g.translator
}

// TargetLanguage retrieves the active target language tag.
//
// Returns:
//   - string: the tag
func (g *Generator) TargetLanguage() string {
	return g.targetLanguage
}

// SetTargetLanguage switches the emission language. An unknown tag fails and
// the previous tag is retained; a successful switch flushes the shader cache
// because every cached program is language-specific.
//
// Parameters:
//   - tag: the new language tag
//
// Returns:
//   - error: writer.ErrUnsupportedLanguage when no writer serves the tag
func (g *Generator) SetTargetLanguage(tag string) error {
	if tag == g.targetLanguage {
		return nil
	}
	if _, err := g.programs.Writers().ForLanguage(tag); err != nil {
		return err
	}
	g.targetLanguage = tag
	g.FlushShaderCache()
	return nil
}

// CreateScheme retrieves the scheme for a name, creating it on first use.
//
// Parameters:
//   - name: the scheme name
//
// Returns:
//   - *Scheme: the scheme
func (g *Generator) CreateScheme(name string) *Scheme {
	s, exists := g.schemes[name]
	if !exists {
		s = newScheme(name)
		g.schemes[name] = s
	}
	return s
}

// SchemeRenderState retrieves the global render state of a scheme, creating
// the scheme on first use.
//
// Parameters:
//   - name: the scheme name
//
// Returns:
//   - *srs.RenderState: the scheme's global render state
func (g *Generator) SchemeRenderState(name string) *srs.RenderState {
	return g.CreateScheme(name).RenderState()
}

// PassRenderState retrieves the persistent custom render state for one source
// pass of a material's shader-based technique, creating it on first use. The
// state survives technique rebuilds; invalidate the material for changes to
// take effect.
//
// Parameters:
//   - schemeName: the destination scheme the technique was registered under
//   - material: the host material
//   - passIndex: the source pass index
//
// Returns:
//   - *srs.RenderState: the custom render state
//   - error: ErrMaterialNotRegistered or ErrPassIndexOutOfRange
func (g *Generator) PassRenderState(schemeName string, material host.Material, passIndex int) (*srs.RenderState, error) {
	t := g.findTechnique(schemeName, material)
	if t == nil {
		return nil, ErrMaterialNotRegistered
	}
	if passIndex < 0 || passIndex >= len(t.srcTechnique.Passes()) {
		return nil, ErrPassIndexOutOfRange
	}
	return t.customRenderState(passIndex), nil
}

// CreateShaderBasedTechnique registers a material for shader generation: the
// material's technique under the source scheme becomes the template for a
// generated destination technique under the destination scheme. The actual
// build is deferred to the scheme's next validation.
//
// Parameters:
//   - material: the host material
//   - srcSchemeName: the scheme of the technique to reproduce
//   - dstSchemeName: the scheme the generated technique renders under
//
// Returns:
//   - bool: true when a new registration was created; false when the material
//     is already registered on the destination scheme
//   - error: ErrSourceTechniqueMissing when no technique has the source scheme
func (g *Generator) CreateShaderBasedTechnique(material host.Material, srcSchemeName, dstSchemeName string) (bool, error) {
	key := materialKey{material.Name(), material.Group()}
	sgm := g.materials[key]
	if sgm != nil {
		for _, t := range sgm.techniques {
			if t.dstSchemeName == dstSchemeName {
				return false, nil
			}
		}
	}

	var srcTech host.Technique
	for _, tech := range material.Techniques() {
		if tech.SchemeName() == srcSchemeName {
			srcTech = tech
			break
		}
	}
	if srcTech == nil {
		return false, ErrSourceTechniqueMissing
	}

	if sgm == nil {
		sgm = &sgMaterial{material: material}
		g.materials[key] = sgm
	}
	scheme := g.CreateScheme(dstSchemeName)
	t := &sgTechnique{
		parent:        sgm,
		scheme:        scheme,
		srcTechnique:  srcTech,
		dstSchemeName: dstSchemeName,
	}
	sgm.techniques = append(sgm.techniques, t)
	scheme.addTechnique(t)
	return true, nil
}

// RemoveShaderBasedTechnique tears down a material's generated technique on a
// destination scheme: the destination technique is removed from the material
// and all its target render states are released.
//
// Parameters:
//   - material: the host material
//   - dstSchemeName: the destination scheme
//
// Returns:
//   - bool: true when a registration was found and removed
func (g *Generator) RemoveShaderBasedTechnique(material host.Material, dstSchemeName string) bool {
	key := materialKey{material.Name(), material.Group()}
	sgm := g.materials[key]
	if sgm == nil {
		return false
	}
	for i, t := range sgm.techniques {
		if t.dstSchemeName != dstSchemeName {
			continue
		}
		g.destroyTechniqueArtifacts(t)
		t.scheme.removeTechnique(t)
		sgm.techniques = append(sgm.techniques[:i], sgm.techniques[i+1:]...)
		if len(sgm.techniques) == 0 {
			delete(g.materials, key)
		}
		return true
	}
	return false
}

// RemoveAllShaderBasedTechniques tears down every generated technique of a
// material across all schemes.
//
// Parameters:
//   - material: the host material
func (g *Generator) RemoveAllShaderBasedTechniques(material host.Material) {
	key := materialKey{material.Name(), material.Group()}
	sgm := g.materials[key]
	if sgm == nil {
		return
	}
	for _, t := range sgm.techniques {
		g.destroyTechniqueArtifacts(t)
		t.scheme.removeTechnique(t)
	}
	delete(g.materials, key)
}

// InvalidateScheme marks every technique on a scheme build-pending.
//
// Parameters:
//   - name: the scheme name
func (g *Generator) InvalidateScheme(name string) {
	if s, exists := g.schemes[name]; exists {
		s.Invalidate()
	}
}

// InvalidateMaterial marks only one material's technique on a scheme
// build-pending.
//
// Parameters:
//   - schemeName: the scheme name
//   - materialName: the material name
//   - group: the material resource group; GroupAutoDetect matches any
func (g *Generator) InvalidateMaterial(schemeName, materialName, group string) {
	if s, exists := g.schemes[schemeName]; exists {
		s.InvalidateMaterial(materialName, group)
	}
}

// ValidateScheme rebuilds every build-pending technique on a scheme. It is
// idempotent on a clean scheme. Per-pass failures are logged, leave the
// source pass rendering, and keep the scheme out of date.
//
// Parameters:
//   - name: the scheme name
//
// Returns:
//   - error: the first per-technique build failure, if any
func (g *Generator) ValidateScheme(name string) error {
	s, exists := g.schemes[name]
	if !exists {
		return nil
	}
	return g.validateScheme(s)
}

// FlushShaderCache drops every compiled program, releases every target render
// state, and invalidates all schemes so the next validation rebuilds from
// scratch. Must not be called mid-draw.
func (g *Generator) FlushShaderCache() {
	for _, sgm := range g.materials {
		for _, t := range sgm.techniques {
			g.destroyTechniqueArtifacts(t)
			t.buildPending = true
		}
	}
	g.programs.Flush()
	for _, s := range g.schemes {
		s.Invalidate()
	}
}

// PreFindVisibleObjects is the host's visible-object traversal hook. It
// records the active scene manager, polls the scene scalars against the
// viewport's scheme (light count increases and fog changes invalidate), and
// validates the scheme.
//
// Parameters:
//   - scene: the scene manager about to be traversed
//   - viewport: the viewport being rendered
//
// Returns:
//   - error: the first build failure from validation, if any
func (g *Generator) PreFindVisibleObjects(scene host.SceneManager, viewport host.Viewport) error {
	g.activeScene = scene
	s, exists := g.schemes[viewport.MaterialScheme()]
	if !exists {
		return nil
	}
	s.observeScene(scene)
	return g.validateScheme(s)
}

// NotifyRenderSingleObject is the host's per-draw hook. When the pass has a
// target render state and state changes are not suppressed, every per-draw
// parameter hook collected at build time fires.
//
// Parameters:
//   - renderable: the host's opaque per-object handle
//   - pass: the destination pass being drawn
//   - source: the host's auto-parameter source
//   - lights: the lights affecting this draw
//   - suppress: true to skip all parameter updates
func (g *Generator) NotifyRenderSingleObject(renderable host.Renderable, pass host.Pass, source host.AutoParamSource, lights []host.Light, suppress bool) {
	if suppress {
		return
	}
	if g.activeScene == nil {
		log.Printf("shadergen: per-draw hook fired with no active scene manager")
		return
	}
	if t, exists := g.targets[pass]; exists {
		t.UpdatePerDrawParameters(renderable, source, lights)
	}
}

// ActiveSceneManager retrieves the scene manager recorded by the last
// PreFindVisibleObjects call.
//
// Returns:
//   - host.SceneManager: the active scene, or nil
func (g *Generator) ActiveSceneManager() host.SceneManager {
	return g.activeScene
}

// TargetRenderStateFor retrieves the target render state bound to a
// destination pass, or nil.
//
// Parameters:
//   - pass: the destination pass
//
// Returns:
//   - *TargetRenderState: the bound target, or nil
func (g *Generator) TargetRenderStateFor(pass host.Pass) *TargetRenderState {
	return g.targets[pass]
}

// Shutdown tears the generator down: every generated technique is removed
// from its material, all programs are dropped, and the scheme index is
// cleared.
func (g *Generator) Shutdown() {
	for key, sgm := range g.materials {
		for _, t := range sgm.techniques {
			g.destroyTechniqueArtifacts(t)
		}
		delete(g.materials, key)
	}
	g.programs.Flush()
	g.schemes = make(map[string]*Scheme)
	g.activeScene = nil
}

// validateScheme rebuilds the scheme's build-pending techniques. The scheme
// turns clean, and the scene scalars are re-cached, only when every pending
// technique builds.
func (g *Generator) validateScheme(s *Scheme) error {
	if !s.outOfDate {
		return nil
	}
	var firstErr error
	for _, t := range s.techniques {
		if !t.buildPending {
			continue
		}
		if err := g.buildTechnique(s, t); err != nil {
			log.Printf("shadergen: scheme %q: material %q: %v", s.name, t.parent.material.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr == nil {
		s.outOfDate = false
		if g.activeScene != nil {
			s.cachedLights = g.activeScene.ActiveLightCounts()
			s.cachedFog = g.activeScene.FogMode()
		}
	}
	return firstErr
}

// buildTechnique destroys and fully rebuilds one destination technique,
// including its illumination-derived passes. Custom render states persist on
// the sgTechnique record across the rebuild.
func (g *Generator) buildTechnique(s *Scheme, t *sgTechnique) error {
	g.destroyTechniqueArtifacts(t)

	material := t.parent.material
	dst := material.CreateTechnique()
	dst.SetSchemeName(t.dstSchemeName)

	var firstErr error
	for i, srcPass := range t.srcTechnique.Passes() {
		sgp := &sgPass{
			parent:  t,
			srcPass: srcPass,
			dstPass: dst.CreatePass(),
			stage:   host.IlluminationUnknown,
			custom:  t.customRS[i],
		}
		t.passes = append(t.passes, sgp)
		if (srcPass.HasVertexProgram() || srcPass.HasFragmentProgram()) && !g.overProgrammable {
			continue
		}
		if err := g.buildPass(s, sgp, dst); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if provider, ok := t.srcTechnique.(host.IlluminationProvider); ok {
		for _, ip := range provider.IlluminationPasses() {
			original := t.findPassBySource(ip.Original)
			if original == nil {
				continue
			}
			sgp := &sgPass{
				parent:  t,
				srcPass: ip.Pass,
				dstPass: dst.CreatePass(),
				stage:   ip.Stage,
				custom:  original.custom,
			}
			t.passes = append(t.passes, sgp)
			if err := g.buildPass(s, sgp, dst); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	t.dstTechnique = dst
	if firstErr == nil {
		t.buildPending = false
	}
	return firstErr
}

// buildPass composes and builds the target render state for one destination
// pass. On failure the destination pass is removed and the error is local to
// this pass.
func (g *Generator) buildPass(s *Scheme, sgp *sgPass, dst host.Technique) error {
	rs, err := g.composeRenderState(sgp, s)
	if err == nil {
		sgp.target, err = g.buildTarget(sgp, rs)
	}
	if err != nil {
		dst.RemovePass(sgp.dstPass)
		return err
	}
	g.targets[sgp.dstPass] = sgp.target
	return nil
}

// destroyTechniqueArtifacts releases everything a previous build produced for
// the technique: target render states first, then the destination technique.
func (g *Generator) destroyTechniqueArtifacts(t *sgTechnique) {
	for _, sgp := range t.passes {
		g.releaseTarget(sgp.target)
	}
	t.passes = nil
	if t.dstTechnique != nil {
		t.parent.material.RemoveTechnique(t.dstTechnique)
		t.dstTechnique = nil
	}
}

// findTechnique locates a material's registration on a destination scheme,
// honouring the auto-detect resource group.
func (g *Generator) findTechnique(schemeName string, material host.Material) *sgTechnique {
	for key, sgm := range g.materials {
		if key.name != material.Name() {
			continue
		}
		if material.Group() != GroupAutoDetect && key.group != material.Group() {
			continue
		}
		for _, t := range sgm.techniques {
			if t.dstSchemeName == schemeName {
				return t
			}
		}
	}
	return nil
}

// findPassBySource locates the technique's record for a source pass.
func (t *sgTechnique) findPassBySource(src host.Pass) *sgPass {
	for _, sgp := range t.passes {
		if sgp.srcPass == src {
			return sgp
		}
	}
	return nil
}
