package bytecode

// StackMax is the capacity of the operand stack.
const StackMax = 256

// Stack is the fixed-capacity operand stack. top is the index of the next
// free slot.
type Stack struct {
	slots [StackMax]Value
	top   int
}

// Push writes v into the next free slot.
func (s *Stack) Push(v Value) error {
	if s.top >= StackMax {
		return ErrStackOverflow
	}
	s.slots[s.top] = v
	s.top++
	return nil
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	if s.top == 0 {
		return 0, ErrStackUnderflow
	}
	s.top--
	return s.slots[s.top], nil
}

// Top returns a handle to the top slot so instructions can update it in
// place instead of popping and pushing.
func (s *Stack) Top() (*Value, error) {
	if s.top == 0 {
		return nil, ErrStackUnderflow
	}
	return &s.slots[s.top-1], nil
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return s.top
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.top = 0
}

// Slots returns the live values, bottom first. The slice aliases the stack.
func (s *Stack) Slots() []Value {
	return s.slots[:s.top]
}
