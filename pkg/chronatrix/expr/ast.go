package expr

import "github.com/coality/chronatrix/pkg/chronatrix/value"

// Node is a syntax-tree node. The set of implementations below is
// closed: the parser can produce nothing else, and the evaluator
// handles nothing else.
type Node interface {
	node()
}

// Literal is a constant value: number, quoted string, true, false, null.
type Literal struct {
	Val value.Value
}

// Variable is a reference resolved against the context at evaluation
// time.
type Variable struct {
	Name string
}

// Unary is arithmetic negation.
type Unary struct {
	Op      byte // '-'
	Operand Node
}

// Binary is an arithmetic operation over two operands.
type Binary struct {
	Op    byte // '+', '-', '*', '/'
	Left  Node
	Right Node
}

// Comparison is an ordering or equality test.
type Comparison struct {
	Op    string // "==", "!=", "<", "<=", ">", ">="
	Left  Node
	Right Node
}

// IsNull is the 'x is null' / 'x is not null' form, the only way an
// expression may test for null.
type IsNull struct {
	Operand Node
	Negate  bool
}

// Logical is a short-circuiting 'and' or 'or'.
type Logical struct {
	Op    string // "and", "or"
	Left  Node
	Right Node
}

// Not negates a boolean operand.
type Not struct {
	Operand Node
}

// Call invokes one of the allow-listed functions. The parser has
// already verified the name and arity.
type Call struct {
	Name string
	Args []Node
}

func (*Literal) node()    {}
func (*Variable) node()   {}
func (*Unary) node()      {}
func (*Binary) node()     {}
func (*Comparison) node() {}
func (*IsNull) node()     {}
func (*Logical) node()    {}
func (*Not) node()        {}
func (*Call) node()       {}
