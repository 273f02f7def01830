package srs

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// TypeHardwareSkinning is the type tag of the hardware skinning module.
const TypeHardwareSkinning = "hardware_skinning"

// SkinningDataKey is the material user-data slot the builder reads the
// skinning record from. Hosts store a SkinningData value there before the
// material's techniques are built.
const SkinningDataKey = "shadergen.hardware_skinning"

// SkinningData is the per-material skinning record carried through the host
// material's user-data channel.
type SkinningData struct {
	// BoneCount is the bone palette size baked into the vertex program.
	BoneCount int

	// SkinNormals selects whether normals are blended as well as positions.
	SkinNormals bool
}

// skinningSRS emits hardware skinning: position (and optionally normal)
// blending by an auto-bound bone matrix palette, followed by the clip-space
// transform. It owns the whole TRANSFORM bucket; the plain transform module
// withdraws when skinning is present.
type skinningSRS struct {
	// Config is the skinning record baked into the program.
	Config SkinningData

	bones    ir.Parameter
	wvp      ir.Parameter
	position ir.Parameter
	weights  ir.Parameter
	indices  ir.Parameter
	skinned  ir.Parameter
	outPos   ir.Parameter

	normal     ir.Parameter
	skinNormal ir.Parameter
}

var _ SubRenderState = &skinningSRS{}

// NewHardwareSkinning creates the hardware skinning module.
//
// Returns:
//   - SubRenderState: the new module
func NewHardwareSkinning() SubRenderState {
	return &skinningSRS{}
}

// SetConfig assigns the skinning record. The builder calls this with the
// material's stored SkinningData before linking.
//
// Parameters:
//   - cfg: the skinning record
func (s *skinningSRS) SetConfig(cfg SkinningData) {
	s.Config = cfg
}

// ConfigureSkinning installs a skinning record on a hardware skinning module.
// It is how the render state builder pushes the material's stored record into
// a freshly created module.
//
// Parameters:
//   - s: the module to configure
//   - cfg: the skinning record
//
// Returns:
//   - bool: false when s is not a hardware skinning module
func ConfigureSkinning(s SubRenderState, cfg SkinningData) bool {
	sk, ok := s.(*skinningSRS)
	if !ok {
		return false
	}
	sk.SetConfig(cfg)
	return true
}

func (s *skinningSRS) Type() string {
	return TypeHardwareSkinning
}

func (s *skinningSRS) ExecutionOrder() ExecutionOrder {
	return OrderTransform
}

func (s *skinningSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*skinningSRS); ok {
		s.Config = o.Config
	}
}

func (s *skinningSRS) PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool {
	return s.Config.BoneCount > 0
}

func (s *skinningSRS) ResolveParameters(ps *ir.ProgramSet) error {
	vs := ps.VertexMain()
	vp := ps.Vertex()
	var err error

	if s.position, err = vs.ResolveInput(ir.SemanticPosition, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if s.weights, err = vs.ResolveInput(ir.SemanticBlendWeights, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if s.indices, err = vs.ResolveInput(ir.SemanticBlendIndices, 0, ir.TypeInt4); err != nil {
		return err
	}
	if s.outPos, err = vs.ResolveOutput(ir.SemanticPosition, 0, ir.TypeFloat4); err != nil {
		return err
	}
	if s.skinned, err = vs.ResolveLocal("lSkinnedPos", ir.TypeFloat4); err != nil {
		return err
	}
	if s.bones, err = vp.ResolveAutoUniform(ir.AutoBoneMatrixArray, 0, ir.TypeMatrix3x4, s.Config.BoneCount); err != nil {
		return err
	}
	if s.wvp, err = vp.ResolveAutoUniform(ir.AutoWorldViewProjMatrix, 0, ir.TypeMatrix4, 0); err != nil {
		return err
	}

	if s.Config.SkinNormals {
		if s.normal, err = vs.ResolveInput(ir.SemanticNormal, 0, ir.TypeFloat3); err != nil {
			return err
		}
		if s.skinNormal, err = vs.ResolveLocal(localWorldNormal, ir.TypeFloat3); err != nil {
			return err
		}
	}
	return nil
}

func (s *skinningSRS) ResolveDependencies(ps *ir.ProgramSet) error {
	ps.Vertex().AddDependency(DepSkinning)
	return nil
}

func (s *skinningSRS) AddFunctionInvocations(ps *ir.ProgramSet) error {
	group := OrderTransform.Group()
	vs := ps.VertexMain()

	vs.AddAtom(ir.NewInvocation(FuncSkinPosition, group,
		ir.In(s.position), ir.In(s.weights), ir.In(s.indices), ir.In(s.bones), ir.Out(s.skinned)))
	if s.Config.SkinNormals {
		vs.AddAtom(ir.NewInvocation(FuncSkinNormal, group,
			ir.In(s.normal), ir.In(s.weights), ir.In(s.indices), ir.In(s.bones), ir.Out(s.skinNormal)))
	}
	vs.AddAtom(ir.NewBinaryOp(group, ir.OpMultiply,
		ir.Out(s.outPos), ir.In(s.wvp), ir.In(s.skinned)))
	return nil
}

// skinningFactory produces hardware skinning modules and claims the
// "hardware_skinning" script property: its values are the bone count followed
// by an optional "skin_normals" flag.
type skinningFactory struct{}

var _ Factory = &skinningFactory{}

// NewHardwareSkinningFactory creates the factory for the skinning module.
//
// Returns:
//   - Factory: the new factory
func NewHardwareSkinningFactory() Factory {
	return &skinningFactory{}
}

func (f *skinningFactory) Type() string {
	return TypeHardwareSkinning
}

func (f *skinningFactory) Create() SubRenderState {
	return NewHardwareSkinning()
}

func (f *skinningFactory) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	if name != TypeHardwareSkinning || len(values) == 0 {
		return nil, false
	}
	boneCount, err := strconv.Atoi(values[0])
	if err != nil || boneCount <= 0 {
		return nil, false
	}
	cfg := SkinningData{BoneCount: boneCount}
	if len(values) > 1 && values[1] == "skin_normals" {
		cfg.SkinNormals = true
	}
	s := &skinningSRS{Config: cfg}
	return s, true
}
