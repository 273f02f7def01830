package ir

// Atom is one ordered, executable IR node inside a Function. Atoms carry an
// execution group (the bucket an effect module emitted them under); the
// Function orders atoms by (group ascending, insertion order within group).
type Atom interface {
	// ExecutionGroup retrieves the bucket this atom was emitted under.
	//
	// Returns:
	//   - int: the execution group
	ExecutionGroup() int

	// Operands retrieves the atom's operand list in evaluation order.
	//
	// Returns:
	//   - []Operand: the operands composing this atom
	Operands() []Operand
}

// Operator is the expression operator of an Assignment atom.
type Operator int

const (
	// OpAssign copies the source operand into the destination.
	OpAssign Operator = iota

	// OpAdd adds the two source operands.
	OpAdd

	// OpSubtract subtracts the second source operand from the first.
	OpSubtract

	// OpMultiply multiplies the two source operands.
	OpMultiply

	// OpDivide divides the first source operand by the second.
	OpDivide
)

// Token returns the target-language infix token for the operator. OpAssign has
// no infix token and returns an empty string.
func (o Operator) Token() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return ""
	}
}

// Assignment is an atom producing a single write operand from a unary copy or
// a binary expression over one or two read operands.
type Assignment struct {
	group int
	op    Operator
	dst   Operand
	args  []Operand
}

var _ Atom = &Assignment{}

// NewAssignment creates a unary copy atom: dst = src.
//
// Parameters:
//   - group: the execution group the atom belongs to
//   - dst: the destination operand (must be a write operand)
//   - src: the source operand
//
// Returns:
//   - *Assignment: the new atom
func NewAssignment(group int, dst, src Operand) *Assignment {
	dst.Usage = UsageWrite
	return &Assignment{group: group, op: OpAssign, dst: dst, args: []Operand{src}}
}

// NewBinaryOp creates a binary expression atom: dst = a <op> b.
//
// Parameters:
//   - group: the execution group the atom belongs to
//   - op: the infix operator
//   - dst: the destination operand (must be a write operand)
//   - a: the left-hand source operand
//   - b: the right-hand source operand
//
// Returns:
//   - *Assignment: the new atom
func NewBinaryOp(group int, op Operator, dst, a, b Operand) *Assignment {
	dst.Usage = UsageWrite
	return &Assignment{group: group, op: op, dst: dst, args: []Operand{a, b}}
}

func (a *Assignment) ExecutionGroup() int {
	return a.group
}

func (a *Assignment) Operands() []Operand {
	ops := make([]Operand, 0, 1+len(a.args))
	ops = append(ops, a.dst)
	return append(ops, a.args...)
}

// Op retrieves the assignment's operator.
//
// Returns:
//   - Operator: OpAssign for a unary copy, otherwise the binary operator
func (a *Assignment) Op() Operator {
	return a.op
}

// Dst retrieves the destination operand.
//
// Returns:
//   - Operand: the write operand
func (a *Assignment) Dst() Operand {
	return a.dst
}

// Args retrieves the source operands (one for OpAssign, two for binary operators).
//
// Returns:
//   - []Operand: the source operands in evaluation order
func (a *Assignment) Args() []Operand {
	return a.args
}

// Invocation is an atom calling a named intrinsic or helper function with an
// ordered operand list. Helper names must be declared as writer dependencies by
// the emitting effect module so the writer can pull in their source.
type Invocation struct {
	name     string
	group    int
	operands []Operand
}

var _ Atom = &Invocation{}

// NewInvocation creates a call atom.
//
// Parameters:
//   - name: the intrinsic or helper function name
//   - group: the execution group the atom belongs to
//   - operands: the call arguments in order
//
// Returns:
//   - *Invocation: the new atom
func NewInvocation(name string, group int, operands ...Operand) *Invocation {
	return &Invocation{name: name, group: group, operands: operands}
}

// Name retrieves the called function's name.
//
// Returns:
//   - string: the intrinsic or helper name
func (i *Invocation) Name() string {
	return i.name
}

func (i *Invocation) ExecutionGroup() int {
	return i.group
}

func (i *Invocation) Operands() []Operand {
	return i.operands
}
