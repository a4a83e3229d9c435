package stack

import (
	"sync"
	"testing"
)

func TestPushPop(t *testing.T) {
	s := New[int]()
	s.Push(1, 2, 3)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for want := 3; want >= 1; want-- {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop() unexpectedly empty at %d", want)
		}
		if got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack should report false")
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := New[string]()
	s.Push("a", "b")

	top, ok := s.Peek()
	if !ok || top != "b" {
		t.Errorf("Peek() = %q/%v, want b/true", top, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Peek() must not remove, Len() = %d", s.Len())
	}
}

func TestClearAndEmpty(t *testing.T) {
	s := New[int]()
	if !s.Empty() {
		t.Error("new stack should be empty")
	}
	s.Push(1)
	s.Clear()
	if !s.Empty() {
		t.Error("cleared stack should be empty")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Push(n)
			s.Pop()
			s.Push(n)
		}(i)
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Errorf("Len() = %d, want 50", s.Len())
	}
}
