package bytecode_test

import (
	"strings"
	"testing"

	"github.com/loxgo/loxgo/pkg/bytecode"
)

func TestChunk_WriteByteAndGetLine(t *testing.T) {
	c := bytecode.NewChunk()
	c.WriteOp(bytecode.OpNil, 1)
	c.WriteOp(bytecode.OpTrue, 1)
	c.WriteOp(bytecode.OpPop, 2)
	c.WriteOp(bytecode.OpReturn, 4)

	wantLines := []int{1, 1, 2, 4}
	for offset, want := range wantLines {
		if got := c.GetLine(offset); got != want {
			t.Fatalf("GetLine(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestChunk_AddConstant_Dedup(t *testing.T) {
	c := bytecode.NewChunk()

	i1, err := c.AddConstant(bytecode.Number(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i2, err := c.AddConstant(bytecode.Number(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i3, err := c.AddConstant(bytecode.Number(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if i1 != i3 {
		t.Fatalf("expected re-adding Number(1) to return the same index, got %v and %v", i1, i3)
	}
	if i1 == i2 {
		t.Fatalf("expected distinct values to get distinct indices")
	}
	if len(c.Constants) != 2 {
		t.Fatalf("expected 2 deduplicated constants, got %v", len(c.Constants))
	}
}

func TestChunk_AddConstant_TooMany(t *testing.T) {
	c := bytecode.NewChunk()
	for i := 0; i < bytecode.MaxConstants; i++ {
		if _, err := c.AddConstant(bytecode.Number(float64(i))); err != nil {
			t.Fatalf("unexpected error adding constant %d: %v", i, err)
		}
	}

	if _, err := c.AddConstant(bytecode.Number(float64(bytecode.MaxConstants))); err != bytecode.ErrTooManyConstants {
		t.Fatalf("expected ErrTooManyConstants for the %dth distinct constant, got %v", bytecode.MaxConstants+1, err)
	}
}

func TestChunk_AddConstant_ExactlyMaxConstantsAllowed(t *testing.T) {
	c := bytecode.NewChunk()
	for i := 0; i < bytecode.MaxConstants; i++ {
		if _, err := c.AddConstant(bytecode.Number(float64(i))); err != nil {
			t.Fatalf("expected exactly %d constants to be allowed: %v", bytecode.MaxConstants, err)
		}
	}
	if len(c.Constants) != bytecode.MaxConstants {
		t.Fatalf("expected %d constants, got %v", bytecode.MaxConstants, len(c.Constants))
	}
}

func TestDisassemble_Smoke(t *testing.T) {
	c := bytecode.NewChunk()
	idx, _ := c.AddConstant(bytecode.Number(1.5))
	c.WriteOp(bytecode.OpConstant, 1)
	c.WriteByte(byte(idx), 1)
	c.WriteOp(bytecode.OpReturn, 1)

	var out strings.Builder
	bytecode.Disassemble(c, "test chunk", &out)

	got := out.String()
	if !strings.Contains(got, "== test chunk ==") {
		t.Fatalf("expected disassembly header, got %q", got)
	}
	if !strings.Contains(got, "CONSTANT") || !strings.Contains(got, "1.5") {
		t.Fatalf("expected CONSTANT instruction with its operand rendered, got %q", got)
	}
	if !strings.Contains(got, "RETURN") {
		t.Fatalf("expected RETURN instruction, got %q", got)
	}
}
