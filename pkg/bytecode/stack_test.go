package bytecode

import (
	"errors"
	"testing"
)

func TestStackPushPop(t *testing.T) {
	var s Stack

	for i := 0; i < 3; i++ {
		if err := s.Push(Value(i)); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	for want := 2; want >= 0; want-- {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop(): %v", err)
		}
		if got != Value(want) {
			t.Errorf("Pop() = %v, want %d", got, want)
		}
	}
}

func TestStackOverflow(t *testing.T) {
	var s Stack
	for i := 0; i < StackMax; i++ {
		if err := s.Push(1); err != nil {
			t.Fatalf("Push #%d: %v", i, err)
		}
	}
	if err := s.Push(1); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("Push past capacity error = %v, want ErrStackOverflow", err)
	}
	if s.Len() != StackMax {
		t.Errorf("Len() after overflow = %d, want %d", s.Len(), StackMax)
	}
}

func TestStackUnderflow(t *testing.T) {
	var s Stack
	if _, err := s.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Pop on empty stack error = %v, want ErrStackUnderflow", err)
	}
	if _, err := s.Top(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Top on empty stack error = %v, want ErrStackUnderflow", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStackTopInPlace(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)

	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	*top *= 10

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	slots := s.Slots()
	if slots[0] != 1 || slots[1] != 20 {
		t.Errorf("Slots() = %v, want [1 20]", slots)
	}
}

func TestStackReset(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)
	s.Reset()
	if s.Len() != 0 || len(s.Slots()) != 0 {
		t.Errorf("after Reset Len() = %d, Slots() = %v", s.Len(), s.Slots())
	}
}
