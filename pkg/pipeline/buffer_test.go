package pipeline

import "testing"

func TestBufferGrowth(t *testing.T) {
	b := NewBuffer[int]("test", 2)
	for i := range 9 {
		if idx := b.Append(i * 10); idx != i {
			t.Fatalf("Append returned %d, want %d", idx, i)
		}
	}
	if b.Len() != 9 {
		t.Errorf("Len = %d, want 9", b.Len())
	}
	if b.Cap() != 16 {
		t.Errorf("Cap = %d, want 16 after doubling from 2", b.Cap())
	}
	for i := range 9 {
		if got := *b.At(i); got != i*10 {
			t.Errorf("At(%d) = %d, want %d", i, got, i*10)
		}
	}

	b.Truncate(4)
	if b.Len() != 4 {
		t.Errorf("Len after Truncate = %d, want 4", b.Len())
	}
	b.Reset()
	if b.Len() != 0 || b.Cap() != 16 {
		t.Errorf("Reset: len %d cap %d, want 0 and 16", b.Len(), b.Cap())
	}
}

func TestBufferAtOutOfRange(t *testing.T) {
	b := NewBuffer[int]("test", 1)
	b.Append(1)
	defer func() {
		if recover() == nil {
			t.Error("At past Len did not panic")
		}
	}()
	b.At(1)
}
