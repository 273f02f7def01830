// sub_render_state.go defines the effect-module contract of the generator. A
// sub render state (SRS) is one composable rendering effect — fixed-function
// transform, per-vertex lighting, layered texturing, fog, alpha testing,
// hardware skinning — that contributes parameters and atoms to a pass's shader
// programs. Modules are identified by a globally unique type tag, ordered by an
// execution bucket, and driven through three strictly separated phases so that
// cross-module parameter sharing never depends on module order within a phase.
package srs

import (
	"github.com/jinzhu/copier"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// ExecutionOrder is the bucket an effect module's atoms land in. Buckets are
// spaced so hosts can insert custom modules between the built-in stages.
type ExecutionOrder int

const (
	// OrderTransform covers clip-space position computation and skinning.
	OrderTransform ExecutionOrder = 100

	// OrderColour covers vertex colour propagation.
	OrderColour ExecutionOrder = 200

	// OrderLighting covers per-vertex and per-pixel lighting setup.
	OrderLighting ExecutionOrder = 300

	// OrderTexturing covers sampling and blending of texture layers.
	OrderTexturing ExecutionOrder = 400

	// OrderFog covers fog factor application.
	OrderFog ExecutionOrder = 500

	// OrderPostProcess covers alpha testing and output-buffer writes.
	OrderPostProcess ExecutionOrder = 600
)

// Group returns the bucket as the plain integer execution group carried by IR atoms.
//
// Returns:
//   - int: the bucket value
func (o ExecutionOrder) Group() int {
	return int(o)
}

// SubRenderState is the effect-module contract. Implementations declare a type
// tag and an execution bucket, then participate in the build through three
// ordered operations: resolve parameters, resolve dependencies, and add
// function invocations. The phases run globally — every module finishes one
// phase before any module starts the next — which makes parameter sharing
// between modules order-insensitive within a phase.
type SubRenderState interface {
	// Type retrieves the module's globally unique type tag. A render state
	// holds at most one module per tag.
	//
	// Returns:
	//   - string: the type tag
	Type() string

	// ExecutionOrder retrieves the bucket the module's atoms are emitted under.
	//
	// Returns:
	//   - ExecutionOrder: the bucket
	ExecutionOrder() ExecutionOrder

	// CopyFrom deep-copies configuration state from another instance of the
	// same type. Render states are cloned per pass, so modules must carry all
	// of their configuration through this call.
	//
	// Parameters:
	//   - other: the instance to copy from (guaranteed to share this type tag)
	CopyFrom(other SubRenderState)

	// PreAddToRenderState is the veto and early-configuration hook, invoked
	// once per pass before linking. Modules may inspect the source pass to
	// capture configuration (texture layers, fog mode) or modify the
	// destination pass. Returning false removes the module from the pending
	// render state.
	//
	// Parameters:
	//   - rs: the composed render state the module is about to join
	//   - srcPass: the source pass being reproduced
	//   - dstPass: the destination pass receiving generated programs
	//
	// Returns:
	//   - bool: false to withdraw from this pass's build
	PreAddToRenderState(rs *RenderState, srcPass, dstPass host.Pass) bool

	// ResolveParameters allocates or looks up the parameters the module needs
	// on the program set. Must be idempotent given identical inputs.
	//
	// Parameters:
	//   - ps: the pass's vertex/pixel program bundle
	//
	// Returns:
	//   - error: a resolve failure aborts the pass build
	ResolveParameters(ps *ir.ProgramSet) error

	// ResolveDependencies declares the helper-function libraries the emitted
	// source depends on.
	//
	// Parameters:
	//   - ps: the pass's vertex/pixel program bundle
	//
	// Returns:
	//   - error: a resolve failure aborts the pass build
	ResolveDependencies(ps *ir.ProgramSet) error

	// AddFunctionInvocations appends the atoms implementing the effect into
	// the stage entry functions at this module's execution bucket.
	//
	// Parameters:
	//   - ps: the pass's vertex/pixel program bundle
	//
	// Returns:
	//   - error: an emit failure aborts the pass build
	AddFunctionInvocations(ps *ir.ProgramSet) error
}

// PerDrawUpdater is the optional per-draw refresh hook for modules whose
// parameters cannot be expressed as static auto-constant bindings. The
// generator collects implementors during linking and invokes them from the
// notify-render-single-object host hook.
type PerDrawUpdater interface {
	// UpdateGpuProgramParameters refreshes per-draw parameter values.
	//
	// Parameters:
	//   - renderable: the host's opaque per-object handle
	//   - pass: the destination pass being drawn
	//   - source: the host's auto-parameter source
	//   - lights: the lights affecting this draw
	UpdateGpuProgramParameters(renderable host.Renderable, pass host.Pass, source host.AutoParamSource, lights []host.Light)
}

// CloneState deep-copies exported configuration fields from src into dst.
// It is the default engine behind CopyFrom for modules whose configuration
// includes slices or maps.
//
// Parameters:
//   - dst: pointer to the receiving module
//   - src: pointer to the module being copied
func CloneState(dst, src any) {
	// copier only fails on non-pointer/nil inputs, which would be a caller bug.
	_ = copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}
