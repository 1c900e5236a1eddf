// Package memory implements the typed variable-bank set described in the
// engine's data model: fixed-size integer and string arrays addressed by a
// bank tag, with narrower bit-width views over the integer storage.
package memory

import "fmt"

// BankTag names one of the fixed variable banks (intA..intZ, intL, strS,
// strM, strK). Integer and string banks are disjoint by construction: each
// tag maps to exactly one of IntBank or StrBank, never both.
type BankTag string

const (
	BankIntA BankTag = "intA"
	BankIntB BankTag = "intB"
	BankIntC BankTag = "intC"
	BankIntD BankTag = "intD"
	BankIntE BankTag = "intE"
	BankIntF BankTag = "intF"
	BankIntG BankTag = "intG"
	BankIntH BankTag = "intH"
	BankIntI BankTag = "intI"
	BankIntJ BankTag = "intJ"
	BankIntK BankTag = "intK"
	BankIntL BankTag = "intL"
	BankIntM BankTag = "intM"
	BankIntN BankTag = "intN"
	BankIntO BankTag = "intO"
	BankIntP BankTag = "intP"
	BankIntQ BankTag = "intQ"
	BankIntR BankTag = "intR"
	BankIntS BankTag = "intS"
	BankIntT BankTag = "intT"
	BankIntU BankTag = "intU"
	BankIntV BankTag = "intV"
	BankIntW BankTag = "intW"
	BankIntX BankTag = "intX"
	BankIntY BankTag = "intY"
	BankIntZ BankTag = "intZ"

	BankStrS BankTag = "strS"
	BankStrM BankTag = "strM"
	BankStrK BankTag = "strK"
)

// defaultSize is the slot count for every bank. The original engine varies
// this per bank (strK is much larger than strS); callers that need a
// different capacity can construct a Banks with NewBanksSized.
const defaultSize = 2000

// View selects a bit-width projection of an IntBank slot.
type View uint8

const (
	ViewFull  View = iota // 32-bit signed read/write
	ViewByte              // lowest 8 bits
	ViewShort             // lowest 16 bits
)

// IntBank is a fixed-size array of 32-bit signed integers with byte/short
// sub-views. A narrower view is a pure function of the full-width storage:
// reading through ViewByte after writing through ViewFull returns the low
// byte of what was written, and vice versa.
type IntBank struct {
	slots []int32
}

// NewIntBank creates an integer bank with the given slot count.
func NewIntBank(size int) *IntBank {
	return &IntBank{slots: make([]int32, size)}
}

// Len returns the number of addressable slots.
func (b *IntBank) Len() int { return len(b.slots) }

// Get reads slot i through the given view. Uninitialized slots read as zero.
func (b *IntBank) Get(i int, view View) (int32, error) {
	if err := b.bounds(i); err != nil {
		return 0, err
	}
	switch view {
	case ViewFull:
		return b.slots[i], nil
	case ViewShort:
		return int32(int16(uint32(b.slots[i]) & 0xFFFF)), nil
	case ViewByte:
		return int32(int8(uint32(b.slots[i]) & 0xFF)), nil
	default:
		return 0, fmt.Errorf("memory: unknown view %d", view)
	}
}

// Set writes slot i through the given view, preserving the bits outside the
// view's width.
func (b *IntBank) Set(i int, view View, value int32) error {
	if err := b.bounds(i); err != nil {
		return err
	}
	switch view {
	case ViewFull:
		b.slots[i] = value
	case ViewShort:
		b.slots[i] = int32(uint32(b.slots[i])&0xFFFF0000 | (uint32(value) & 0xFFFF))
	case ViewByte:
		b.slots[i] = int32(uint32(b.slots[i])&0xFFFFFF00 | (uint32(value) & 0xFF))
	default:
		return fmt.Errorf("memory: unknown view %d", view)
	}
	return nil
}

func (b *IntBank) bounds(i int) error {
	if i < 0 || i >= len(b.slots) {
		return fmt.Errorf("memory: int bank index %d out of range [0,%d)", i, len(b.slots))
	}
	return nil
}

// StrBank is a fixed-size array of strings. Uninitialized slots read as "".
type StrBank struct {
	slots []string
}

// NewStrBank creates a string bank with the given slot count.
func NewStrBank(size int) *StrBank {
	return &StrBank{slots: make([]string, size)}
}

// Len returns the number of addressable slots.
func (b *StrBank) Len() int { return len(b.slots) }

func (b *StrBank) Get(i int) (string, error) {
	if i < 0 || i >= len(b.slots) {
		return "", fmt.Errorf("memory: str bank index %d out of range [0,%d)", i, len(b.slots))
	}
	return b.slots[i], nil
}

func (b *StrBank) Set(i int, value string) error {
	if i < 0 || i >= len(b.slots) {
		return fmt.Errorf("memory: str bank index %d out of range [0,%d)", i, len(b.slots))
	}
	b.slots[i] = value
	return nil
}

// Banks aggregates every variable bank the interpreter exposes to opcodes.
type Banks struct {
	ints map[BankTag]*IntBank
	strs map[BankTag]*StrBank
}

var intTags = []BankTag{
	BankIntA, BankIntB, BankIntC, BankIntD, BankIntE, BankIntF, BankIntG,
	BankIntH, BankIntI, BankIntJ, BankIntK, BankIntL, BankIntM, BankIntN,
	BankIntO, BankIntP, BankIntQ, BankIntR, BankIntS, BankIntT, BankIntU,
	BankIntV, BankIntW, BankIntX, BankIntY, BankIntZ,
}

var strTags = []BankTag{BankStrS, BankStrM, BankStrK}

// IntBankTags returns every integer bank tag, for callers (e.g. the
// save package) that need to enumerate banks generically.
func IntBankTags() []BankTag {
	out := make([]BankTag, len(intTags))
	copy(out, intTags)
	return out
}

// StrBankTags returns every string bank tag.
func StrBankTags() []BankTag {
	out := make([]BankTag, len(strTags))
	copy(out, strTags)
	return out
}

// NewBanks creates the default bank set (all banks sized at defaultSize).
func NewBanks() *Banks {
	return NewBanksSized(defaultSize, defaultSize)
}

// NewBanksSized creates the default bank set with explicit int/str slot
// counts, useful for tests that want small banks or for strK's larger
// capacity in a real deployment.
func NewBanksSized(intSize, strSize int) *Banks {
	b := &Banks{
		ints: make(map[BankTag]*IntBank, len(intTags)),
		strs: make(map[BankTag]*StrBank, len(strTags)),
	}
	for _, t := range intTags {
		b.ints[t] = NewIntBank(intSize)
	}
	for _, t := range strTags {
		b.strs[t] = NewStrBank(strSize)
	}
	return b
}

// Int returns the named integer bank, or an error if tag does not name one.
func (b *Banks) Int(tag BankTag) (*IntBank, error) {
	bank, ok := b.ints[tag]
	if !ok {
		return nil, fmt.Errorf("memory: %q is not an integer bank", tag)
	}
	return bank, nil
}

// Str returns the named string bank, or an error if tag does not name one.
func (b *Banks) Str(tag BankTag) (*StrBank, error) {
	bank, ok := b.strs[tag]
	if !ok {
		return nil, fmt.Errorf("memory: %q is not a string bank", tag)
	}
	return bank, nil
}

// IntRef is an (bank, index, view) triple that opcodes receive in place of
// the original engine's IntReferenceIterator: writing through a ref mutates
// the referenced bank slot directly, without exposing iterator invalidation.
type IntRef struct {
	Bank  *IntBank
	Index int
	View  View
}

func (r IntRef) Get() (int32, error)       { return r.Bank.Get(r.Index, r.View) }
func (r IntRef) Set(value int32) error     { return r.Bank.Set(r.Index, r.View, value) }

// StrRef is the string-bank analog of IntRef.
type StrRef struct {
	Bank  *StrBank
	Index int
}

func (r StrRef) Get() (string, error)   { return r.Bank.Get(r.Index) }
func (r StrRef) Set(value string) error { return r.Bank.Set(r.Index, value) }
