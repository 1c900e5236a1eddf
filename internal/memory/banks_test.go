package memory

import "testing"

func TestIntBankViewConsistency(t *testing.T) {
	b := NewIntBank(10)

	if err := b.Set(0, ViewFull, 0x12345678); err != nil {
		t.Fatalf("Set ViewFull: %v", err)
	}
	short, err := b.Get(0, ViewShort)
	if err != nil {
		t.Fatalf("Get ViewShort: %v", err)
	}
	if want := int32(int16(0x5678)); short != want {
		t.Fatalf("ViewShort after full write: got %d, want %d", short, want)
	}
	byteVal, err := b.Get(0, ViewByte)
	if err != nil {
		t.Fatalf("Get ViewByte: %v", err)
	}
	if want := int32(int8(0x78)); byteVal != want {
		t.Fatalf("ViewByte after full write: got %d, want %d", byteVal, want)
	}

	// Writing through a narrower view must preserve the untouched bits.
	if err := b.Set(1, ViewFull, 0x7FFFFFFF); err != nil {
		t.Fatalf("Set ViewFull: %v", err)
	}
	if err := b.Set(1, ViewByte, 0x00); err != nil {
		t.Fatalf("Set ViewByte: %v", err)
	}
	full, err := b.Get(1, ViewFull)
	if err != nil {
		t.Fatalf("Get ViewFull: %v", err)
	}
	if want := int32(0x7FFFFF00); full != want {
		t.Fatalf("ViewFull after byte write: got 0x%X, want 0x%X", full, want)
	}
}

func TestIntBankOutOfRange(t *testing.T) {
	b := NewIntBank(4)
	if _, err := b.Get(4, ViewFull); err == nil {
		t.Fatal("expected out-of-range error, got nil")
	}
	if err := b.Set(-1, ViewFull, 1); err == nil {
		t.Fatal("expected out-of-range error, got nil")
	}
}

func TestStrBankGetSet(t *testing.T) {
	b := NewStrBank(3)
	if err := b.Set(1, "hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := b.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "hello" {
		t.Fatalf("Get: got %q, want %q", v, "hello")
	}
	if v, _ := b.Get(0); v != "" {
		t.Fatalf("uninitialized slot: got %q, want empty string", v)
	}
}

func TestBanksDisjoint(t *testing.T) {
	banks := NewBanks()
	if _, err := banks.Int(BankStrS); err == nil {
		t.Fatal("expected error looking up a string tag as an int bank")
	}
	if _, err := banks.Str(BankIntA); err == nil {
		t.Fatal("expected error looking up an int tag as a string bank")
	}
	if _, err := banks.Int(BankIntZ); err != nil {
		t.Fatalf("Int(BankIntZ): %v", err)
	}
	if _, err := banks.Str(BankStrK); err != nil {
		t.Fatalf("Str(BankStrK): %v", err)
	}
}

func TestBankTagEnumerationCompleteness(t *testing.T) {
	if got := len(IntBankTags()); got != 26 {
		t.Fatalf("IntBankTags: got %d tags, want 26 (intA..intZ)", got)
	}
	if got := len(StrBankTags()); got != 3 {
		t.Fatalf("StrBankTags: got %d tags, want 3 (strS, strM, strK)", got)
	}
}

func TestIntRefStrRef(t *testing.T) {
	banks := NewBanksSized(4, 4)
	intBank, _ := banks.Int(BankIntA)
	ref := IntRef{Bank: intBank, Index: 2, View: ViewFull}
	if err := ref.Set(42); err != nil {
		t.Fatalf("IntRef.Set: %v", err)
	}
	if v, _ := ref.Get(); v != 42 {
		t.Fatalf("IntRef.Get: got %d, want 42", v)
	}

	strBank, _ := banks.Str(BankStrS)
	sref := StrRef{Bank: strBank, Index: 1}
	if err := sref.Set("hi"); err != nil {
		t.Fatalf("StrRef.Set: %v", err)
	}
	if v, _ := sref.Get(); v != "hi" {
		t.Fatalf("StrRef.Get: got %q, want %q", v, "hi")
	}
}
