// memory.go provides a complete in-memory reference implementation of the host
// interfaces. It backs the examples and the test suite, and doubles as a
// template for adapting a real engine: every mutation the generator performs is
// recorded on plain structs that can be inspected afterwards.
package host

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// MemoryTextureUnit is the in-memory TextureUnit implementation.
type MemoryTextureUnit struct {
	// TexName is the texture unit's name.
	TexName string

	// TexKind is the texture dimensionality.
	TexKind TextureKind

	// CoordSet is the texture coordinate set index.
	CoordSet int
}

var _ TextureUnit = &MemoryTextureUnit{}

func (t *MemoryTextureUnit) Name() string {
	return t.TexName
}

func (t *MemoryTextureUnit) Kind() TextureKind {
	return t.TexKind
}

func (t *MemoryTextureUnit) TexCoordSet() int {
	return t.CoordSet
}

// AutoConstantEntry records one BindAutoConstant call against a pass.
type AutoConstantEntry struct {
	// ParamName is the bound uniform's name in the generated program.
	ParamName string

	// Tag is the auto-constant tag.
	Tag ir.AutoConstant

	// Data is the tag's integer payload.
	Data uint32
}

// MemoryPass is the in-memory Pass implementation.
type MemoryPass struct {
	// Lighting mirrors the fixed-function lighting-enabled flag.
	Lighting bool

	// ColourTracking mirrors the vertex colour tracking flag.
	ColourTracking bool

	// Fog is the fixed-function fog mode.
	Fog FogMode

	// AlphaReject mirrors the alpha rejection flag.
	AlphaReject bool

	// Units is the texture layer list in blend order.
	Units []TextureUnit

	// VertexProgram is the attached vertex program, or nil.
	VertexProgram GpuProgram

	// FragmentProgram is the attached fragment program, or nil.
	FragmentProgram GpuProgram

	// AutoConstants records every BindAutoConstant call in order.
	AutoConstants []AutoConstantEntry
}

var _ Pass = &MemoryPass{}

// MemoryPassOption is a functional option used to configure a MemoryPass during construction.
type MemoryPassOption func(*MemoryPass)

// WithLighting sets the fixed-function lighting-enabled flag.
//
// Parameters:
//   - enabled: the lighting flag
//
// Returns:
//   - MemoryPassOption: a function that sets the lighting flag
func WithLighting(enabled bool) MemoryPassOption {
	return func(p *MemoryPass) {
		p.Lighting = enabled
	}
}

// WithColourTracking sets the vertex colour tracking flag.
//
// Parameters:
//   - enabled: the colour tracking flag
//
// Returns:
//   - MemoryPassOption: a function that sets the colour tracking flag
func WithColourTracking(enabled bool) MemoryPassOption {
	return func(p *MemoryPass) {
		p.ColourTracking = enabled
	}
}

// WithFog sets the fixed-function fog mode.
//
// Parameters:
//   - mode: the fog mode
//
// Returns:
//   - MemoryPassOption: a function that sets the fog mode
func WithFog(mode FogMode) MemoryPassOption {
	return func(p *MemoryPass) {
		p.Fog = mode
	}
}

// WithAlphaReject sets the alpha rejection flag.
//
// Parameters:
//   - enabled: the alpha reject flag
//
// Returns:
//   - MemoryPassOption: a function that sets the alpha reject flag
func WithAlphaReject(enabled bool) MemoryPassOption {
	return func(p *MemoryPass) {
		p.AlphaReject = enabled
	}
}

// WithTextureUnit appends a 2D texture layer sampling coordinate set 0.
//
// Parameters:
//   - name: the texture unit name
//
// Returns:
//   - MemoryPassOption: a function that appends the texture unit
func WithTextureUnit(name string) MemoryPassOption {
	return func(p *MemoryPass) {
		p.Units = append(p.Units, &MemoryTextureUnit{TexName: name, TexKind: Texture2D})
	}
}

// WithTextureUnitKind appends a texture layer with an explicit kind and coordinate set.
//
// Parameters:
//   - name: the texture unit name
//   - kind: the texture dimensionality
//   - coordSet: the texture coordinate set index
//
// Returns:
//   - MemoryPassOption: a function that appends the texture unit
func WithTextureUnitKind(name string, kind TextureKind, coordSet int) MemoryPassOption {
	return func(p *MemoryPass) {
		p.Units = append(p.Units, &MemoryTextureUnit{TexName: name, TexKind: kind, CoordSet: coordSet})
	}
}

// NewMemoryPass creates a fixed-function pass with the given options applied.
//
// Parameters:
//   - options: functional options configuring the pass
//
// Returns:
//   - *MemoryPass: the new pass
func NewMemoryPass(options ...MemoryPassOption) *MemoryPass {
	p := &MemoryPass{}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *MemoryPass) HasVertexProgram() bool {
	return p.VertexProgram != nil
}

func (p *MemoryPass) HasFragmentProgram() bool {
	return p.FragmentProgram != nil
}

func (p *MemoryPass) LightingEnabled() bool {
	return p.Lighting
}

func (p *MemoryPass) VertexColourTracking() bool {
	return p.ColourTracking
}

func (p *MemoryPass) FogMode() FogMode {
	return p.Fog
}

func (p *MemoryPass) AlphaRejectEnabled() bool {
	return p.AlphaReject
}

func (p *MemoryPass) TextureUnits() []TextureUnit {
	return p.Units
}

func (p *MemoryPass) SetVertexProgram(gp GpuProgram) {
	p.VertexProgram = gp
}

func (p *MemoryPass) SetFragmentProgram(gp GpuProgram) {
	p.FragmentProgram = gp
}

func (p *MemoryPass) BindAutoConstant(paramName string, tag ir.AutoConstant, data uint32) {
	p.AutoConstants = append(p.AutoConstants, AutoConstantEntry{ParamName: paramName, Tag: tag, Data: data})
}

// BoundAutoConstant reports whether an auto-constant entry with the given tag
// and payload was registered on this pass.
//
// Parameters:
//   - tag: the auto-constant tag to look for
//   - data: the tag payload to look for
//
// Returns:
//   - bool: true when a matching entry exists
func (p *MemoryPass) BoundAutoConstant(tag ir.AutoConstant, data uint32) bool {
	return slices.ContainsFunc(p.AutoConstants, func(e AutoConstantEntry) bool {
		return e.Tag == tag && e.Data == data
	})
}

// MemoryTechnique is the in-memory Technique implementation.
type MemoryTechnique struct {
	// Scheme is the material scheme name this technique renders under.
	Scheme string

	// PassList is the technique's passes in render order.
	PassList []Pass
}

var _ Technique = &MemoryTechnique{}

func (t *MemoryTechnique) Passes() []Pass {
	return t.PassList
}

func (t *MemoryTechnique) SchemeName() string {
	return t.Scheme
}

func (t *MemoryTechnique) SetSchemeName(name string) {
	t.Scheme = name
}

func (t *MemoryTechnique) CreatePass() Pass {
	p := NewMemoryPass()
	t.PassList = append(t.PassList, p)
	return p
}

func (t *MemoryTechnique) RemovePass(p Pass) {
	t.PassList = slices.DeleteFunc(t.PassList, func(x Pass) bool { return x == p })
}

// AddPass appends an existing pass, used when building source techniques by hand.
//
// Parameters:
//   - p: the pass to append
func (t *MemoryTechnique) AddPass(p Pass) {
	t.PassList = append(t.PassList, p)
}

// MemoryMaterial is the in-memory Material implementation.
type MemoryMaterial struct {
	// MatName is the material name.
	MatName string

	// MatGroup is the resource group name.
	MatGroup string

	// TechList is the material's techniques in declaration order.
	TechList []Technique

	userData map[string]any
}

var _ Material = &MemoryMaterial{}

// NewMemoryMaterial creates an empty material identified by (name, group).
//
// Parameters:
//   - name: the material name
//   - group: the resource group name
//
// Returns:
//   - *MemoryMaterial: the new material
func NewMemoryMaterial(name, group string) *MemoryMaterial {
	return &MemoryMaterial{MatName: name, MatGroup: group, userData: make(map[string]any)}
}

func (m *MemoryMaterial) Name() string {
	return m.MatName
}

func (m *MemoryMaterial) Group() string {
	return m.MatGroup
}

func (m *MemoryMaterial) Techniques() []Technique {
	return m.TechList
}

func (m *MemoryMaterial) CreateTechnique() Technique {
	t := &MemoryTechnique{}
	m.TechList = append(m.TechList, t)
	return t
}

func (m *MemoryMaterial) RemoveTechnique(t Technique) {
	m.TechList = slices.DeleteFunc(m.TechList, func(x Technique) bool { return x == t })
}

func (m *MemoryMaterial) UserData(key string) any {
	return m.userData[key]
}

func (m *MemoryMaterial) SetUserData(key string, v any) {
	if v == nil {
		delete(m.userData, key)
		return
	}
	m.userData[key] = v
}

// MemorySceneManager is the in-memory SceneManager implementation.
type MemorySceneManager struct {
	mu     sync.RWMutex
	lights LightCounts
	fog    FogMode
}

var _ SceneManager = &MemorySceneManager{}

// NewMemorySceneManager creates a scene manager reporting the given state.
//
// Parameters:
//   - lights: the active light counts
//   - fog: the scene fog mode
//
// Returns:
//   - *MemorySceneManager: the new scene manager
func NewMemorySceneManager(lights LightCounts, fog FogMode) *MemorySceneManager {
	return &MemorySceneManager{lights: lights, fog: fog}
}

func (s *MemorySceneManager) ActiveLightCounts() LightCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights
}

func (s *MemorySceneManager) FogMode() FogMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

// SetActiveLightCounts updates the reported light counts.
//
// Parameters:
//   - lights: the new counts
func (s *MemorySceneManager) SetActiveLightCounts(lights LightCounts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = lights
}

// SetFogMode updates the reported fog mode.
//
// Parameters:
//   - fog: the new fog mode
func (s *MemorySceneManager) SetFogMode(fog FogMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = fog
}

// MemoryViewport is the in-memory Viewport implementation.
type MemoryViewport struct {
	// Scheme is the viewport's active material scheme name.
	Scheme string
}

var _ Viewport = &MemoryViewport{}

func (v *MemoryViewport) MaterialScheme() string {
	return v.Scheme
}

// MemoryProgram is the GpuProgram handle produced by MemoryCompiler.
type MemoryProgram struct {
	// ProgramName is the fingerprint-derived program name.
	ProgramName string

	// Language is the target language tag the source was written in.
	Language string

	// Source is the generated source text submitted for compilation.
	Source string

	// ProgramStage is the pipeline stage the program targets.
	ProgramStage ir.Stage
}

var _ GpuProgram = &MemoryProgram{}

func (p *MemoryProgram) Name() string {
	return p.ProgramName
}

// MemoryCompiler is a ProgramCompiler that records every submission and can be
// told to fail specific program names, used to exercise compile-failure paths.
type MemoryCompiler struct {
	// Compiled records every successful compilation in submission order.
	Compiled []*MemoryProgram

	// FailNames lists program names the compiler rejects.
	FailNames []string
}

var _ ProgramCompiler = &MemoryCompiler{}

// CompileError is the error returned by MemoryCompiler for rejected programs.
type CompileError struct {
	// ProgramName is the rejected program's name.
	ProgramName string
}

func (e *CompileError) Error() string {
	return "host: compile rejected for program " + e.ProgramName
}

func (c *MemoryCompiler) Compile(stage ir.Stage, language, profile, name, source string) (GpuProgram, error) {
	if slices.Contains(c.FailNames, name) {
		return nil, &CompileError{ProgramName: name}
	}
	p := &MemoryProgram{ProgramName: name, Language: language, Source: source, ProgramStage: stage}
	c.Compiled = append(c.Compiled, p)
	return p, nil
}
