package graph

// Tag discriminates the logical shape of a Node. It decides whether Slot1
// holds a Ref or an integer payload, and which primitive reduction rule (if
// any) applies when a Node of this tag sits in application-head position.
type Tag uint8

const (
	// TagA is an unreduced application of Slot1 to Slot2.
	TagA Tag = iota
	// TagK is the K combinator leaf.
	TagK
	// TagK1 is the partial application (K x); x lives in Slot1.
	TagK1
	// TagS is the S combinator leaf.
	TagS
	// TagS1 is the partial application (S x); x lives in Slot1.
	TagS1
	// TagS2 is the partial application (S x y); x in Slot1, y in Slot2.
	TagS2
	// TagI is the I combinator leaf.
	TagI
	// TagI1 records "this subexpression was shown equal to x" while
	// preserving node identity for sharers; x lives in Slot1.
	TagI1
	// TagLazyRead is a thunk over the remaining input stream. Forcing it
	// consumes one byte and rewrites the node in place into a TagS2 cons
	// cell.
	TagLazyRead
	// TagInc is the successor primitive used only by church-to-integer
	// conversion.
	TagInc
	// TagNum is a fully reduced host integer; Slot1 carries the payload
	// and Slot2 is unused.
	TagNum
	// TagFree marks a node that should never be reachable from a root; it
	// exists only as a poison value for debugging use-after-free bugs.
	TagFree
)

func (t Tag) String() string {
	switch t {
	case TagA:
		return "A"
	case TagK:
		return "K"
	case TagK1:
		return "K1"
	case TagS:
		return "S"
	case TagS1:
		return "S1"
	case TagS2:
		return "S2"
	case TagI:
		return "I"
	case TagI1:
		return "I1"
	case TagLazyRead:
		return "LazyRead"
	case TagInc:
		return "Inc"
	case TagNum:
		return "Num"
	case TagFree:
		return "Free"
	default:
		return "Tag(?)"
	}
}

// Ref is an arena-relative node handle. NilRef means "no node" and is the
// zero value's complement, never a valid index.
type Ref int32

// NilRef is the null Ref.
const NilRef Ref = -1

// IsNil reports whether r is the null reference.
func (r Ref) IsNil() bool { return r == NilRef }

// Node is the uniform heap record. Slot1 is a union: a Ref for every tag
// except TagNum, where it is the integer payload. Slot2 is always a Ref
// (and unused by leaf/unary tags). Forward is transient GC-only state: a
// non-nil value means this node has already been evacuated to the
// location Forward names.
type Node struct {
	Tag     Tag
	Slot1   int64
	Slot2   Ref
	Forward Ref
}

// Child1 reads Slot1 as a Ref. It must not be called on a TagNum node.
func (n *Node) Child1() Ref { return Ref(n.Slot1) }

// SetChild1 writes Slot1 as a Ref.
func (n *Node) SetChild1(r Ref) { n.Slot1 = int64(r) }

// Num reads Slot1 as the integer payload. It must only be called on a
// TagNum node.
func (n *Node) Num() int64 { return n.Slot1 }
