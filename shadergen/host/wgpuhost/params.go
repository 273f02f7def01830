package wgpuhost

import (
	"github.com/Carmen-Shannon/oxy-shadergen/common"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// vectorKey identifies one four-component auto-constant value.
type vectorKey struct {
	tag  ir.AutoConstant
	data uint32
}

// AutoParams is an AutoParamSource backed by explicit world/view/projection
// matrices plus a table of four-component values for light, surface, and fog
// constants. Derived matrices (world-view-projection, inverse-transpose world)
// and the world-space camera position are computed on demand, so callers only
// update the three source matrices per draw.
type AutoParams struct {
	world   [16]float32
	view    [16]float32
	proj    [16]float32
	vectors map[vectorKey][4]float32
}

var _ host.AutoParamSource = &AutoParams{}

// NewAutoParams creates an auto-parameter source with identity matrices.
//
// Returns:
//   - *AutoParams: the new source
func NewAutoParams() *AutoParams {
	p := &AutoParams{vectors: make(map[vectorKey][4]float32)}
	common.Identity(p.world[:])
	common.Identity(p.view[:])
	common.Identity(p.proj[:])
	return p
}

// SetWorld records the object's world matrix (16 elements, column-major).
//
// Parameters:
//   - m: the world matrix
func (p *AutoParams) SetWorld(m []float32) {
	copy(p.world[:], m)
}

// SetView records the camera's view matrix (16 elements, column-major).
//
// Parameters:
//   - m: the view matrix
func (p *AutoParams) SetView(m []float32) {
	copy(p.view[:], m)
}

// SetProjection records the projection matrix (16 elements, column-major).
//
// Parameters:
//   - m: the projection matrix
func (p *AutoParams) SetProjection(m []float32) {
	copy(p.proj[:], m)
}

// SetVector records a four-component value for an auto-constant tag. Used for
// light colours and positions, surface colours, fog parameters, and the alpha
// rejection threshold.
//
// Parameters:
//   - tag: the auto-constant tag
//   - data: the tag's integer payload (e.g. the light index)
//   - v: the four-component value
func (p *AutoParams) SetVector(tag ir.AutoConstant, data uint32, v [4]float32) {
	p.vectors[vectorKey{tag, data}] = v
}

func (p *AutoParams) AutoValue(tag ir.AutoConstant, data uint32) []float32 {
	switch tag {
	case ir.AutoWorldMatrix:
		out := make([]float32, 16)
		copy(out, p.world[:])
		return out
	case ir.AutoViewMatrix:
		out := make([]float32, 16)
		copy(out, p.view[:])
		return out
	case ir.AutoWorldViewProjMatrix:
		out := make([]float32, 16)
		var vw [16]float32
		common.Mul4(vw[:], p.view[:], p.world[:])
		common.Mul4(out, p.proj[:], vw[:])
		return out
	case ir.AutoInverseTransposeWorldMatrix:
		out := make([]float32, 16)
		if !common.Invert4(out, p.world[:]) {
			common.Identity(out)
		}
		common.Transpose4(out, out)
		return out
	case ir.AutoCameraPositionWorld:
		var inv [16]float32
		if !common.Invert4(inv[:], p.view[:]) {
			return []float32{0, 0, 0, 1}
		}
		// The camera position is the translation column of the inverted view.
		return []float32{inv[12], inv[13], inv[14], 1}
	default:
		if v, exists := p.vectors[vectorKey{tag, data}]; exists {
			return []float32{v[0], v[1], v[2], v[3]}
		}
		return nil
	}
}
