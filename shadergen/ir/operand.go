package ir

// OperandUsage tags how an atom uses an operand.
type OperandUsage int

const (
	// UsageRead marks an operand whose value is read by the atom.
	UsageRead OperandUsage = iota

	// UsageWrite marks an operand the atom assigns to.
	UsageWrite

	// UsageReadWrite marks an operand the atom both reads and updates.
	UsageReadWrite
)

// Operand references a Parameter together with a channel mask and a usage tag.
// Atoms are composed of operands; the mask limits the atom to a channel subset
// of the underlying value and is rendered as a swizzle by the writers.
type Operand struct {
	// Param is the referenced parameter.
	Param Parameter

	// Mask selects the channels used. MaskNone means the whole value.
	Mask ChannelMask

	// Usage tags the operand as read, write, or read-write.
	Usage OperandUsage
}

// In creates a read operand covering the parameter's whole value.
//
// Parameters:
//   - p: the parameter to read
//
// Returns:
//   - Operand: a UsageRead operand with no channel mask
func In(p Parameter) Operand {
	return Operand{Param: p, Mask: MaskNone, Usage: UsageRead}
}

// InMask creates a read operand restricted to a channel subset.
//
// Parameters:
//   - p: the parameter to read
//   - mask: the channels to read
//
// Returns:
//   - Operand: a UsageRead operand with the given mask
func InMask(p Parameter, mask ChannelMask) Operand {
	return Operand{Param: p, Mask: mask, Usage: UsageRead}
}

// Out creates a write operand covering the parameter's whole value.
//
// Parameters:
//   - p: the parameter to assign
//
// Returns:
//   - Operand: a UsageWrite operand with no channel mask
func Out(p Parameter) Operand {
	return Operand{Param: p, Mask: MaskNone, Usage: UsageWrite}
}

// OutMask creates a write operand restricted to a channel subset.
//
// Parameters:
//   - p: the parameter to assign
//   - mask: the channels to write
//
// Returns:
//   - Operand: a UsageWrite operand with the given mask
func OutMask(p Parameter, mask ChannelMask) Operand {
	return Operand{Param: p, Mask: mask, Usage: UsageWrite}
}

// InOut creates a read-write operand covering the parameter's whole value.
//
// Parameters:
//   - p: the parameter to read and update
//
// Returns:
//   - Operand: a UsageReadWrite operand with no channel mask
func InOut(p Parameter) Operand {
	return Operand{Param: p, Mask: MaskNone, Usage: UsageReadWrite}
}
