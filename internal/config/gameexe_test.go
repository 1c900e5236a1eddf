package config

import (
	"strings"
	"testing"
)

func TestParseIntListVsString(t *testing.T) {
	src := `
#WINDOW.003.MOJI_SIZE = 24
#WINDOW.003.POS = 10,20,30
#REGNAME = FancyGame
; a comment line
EMPTY_IGNORED

#BAD_MIX = 1,two,3
`
	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := g.Int("WINDOW.003.MOJI_SIZE", -1); got != 24 {
		t.Fatalf("Int: got %d, want 24", got)
	}
	if got := g.IntList("WINDOW.003.POS"); len(got) != 3 || got[2] != 30 {
		t.Fatalf("IntList: got %v, want [10 20 30]", got)
	}
	if got := g.Str("REGNAME", ""); got != "FancyGame" {
		t.Fatalf("Str: got %q, want FancyGame", got)
	}
	// A mixed list that fails to parse as all-integer falls back to a
	// raw string value.
	v, ok := g.Get("BAD_MIX")
	if !ok || !v.IsString() || v.Str != "1,two,3" {
		t.Fatalf("BAD_MIX: got %+v, want raw string fallback", v)
	}
}

func TestParseMissingEqualsIsError(t *testing.T) {
	if _, err := Parse(strings.NewReader("#NOEQUALS")); err == nil {
		t.Fatal("want error for a line missing '='")
	}
}

func TestIntAndStrDefaults(t *testing.T) {
	g, err := Parse(strings.NewReader("#A = 1\n#B = hi\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := g.Int("MISSING", 99); got != 99 {
		t.Fatalf("Int default: got %d, want 99", got)
	}
	if got := g.Int("B", 99); got != 99 {
		t.Fatalf("Int on a string-valued key should return default: got %d", got)
	}
	if got := g.Str("A", "def"); got != "def" {
		t.Fatalf("Str on an int-valued key should return default: got %q", got)
	}
}

func TestFilterPrefixPreservesDeclarationOrder(t *testing.T) {
	g, err := Parse(strings.NewReader("#WINDOW.005.X = 1\n#WINDOW.003.X = 2\n#WINDOW.003.Y = 3\n#OTHER = 4\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := g.FilterPrefix("WINDOW.003")
	want := []string{"WINDOW.003.X", "WINDOW.003.Y"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("FilterPrefix: got %v, want %v", got, want)
	}
}

func TestSelAndSelR(t *testing.T) {
	ints := "0,0,640,480,0,0,1000,1,2,3,640,480,0,0,255,0,0"
	g, err := Parse(strings.NewReader("#SEL.1 = " + ints + "\n#SELR.2 = " + ints + "\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s1, err := g.Sel(1)
	if err != nil {
		t.Fatalf("Sel(1): %v", err)
	}
	if s1.IsRect {
		t.Fatal("#SEL entry should not report IsRect")
	}
	s2, err := g.Sel(2)
	if err != nil {
		t.Fatalf("Sel(2): %v", err)
	}
	if !s2.IsRect {
		t.Fatal("#SELR entry should report IsRect")
	}
	if _, err := g.Sel(99); err == nil {
		t.Fatal("Sel on a missing number: want error")
	}
}

func TestSelRTakesPrecedenceOverSel(t *testing.T) {
	selInts := "0,0,1,1,0,0,1,0,0,0,1,1,0,0,0,0,0"
	selrInts := "0,0,2,2,0,0,2,0,0,0,2,2,0,0,0,0,0"
	src := "#SEL.1 = " + selInts + "\n#SELR.1 = " + selrInts + "\n"
	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := g.Sel(1)
	if err != nil {
		t.Fatalf("Sel(1): %v", err)
	}
	if !s.IsRect || s.DurationMs != 2 {
		t.Fatalf("expected the #SELR variant to win: got %+v", s)
	}
}

func TestDSTracksParsing(t *testing.T) {
	g, err := Parse(strings.NewReader("#DSTRACK.0 = 0,1000,500,bgm01.ogg,title\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tracks, err := g.DSTracks()
	if err != nil {
		t.Fatalf("DSTracks: %v", err)
	}
	tr, ok := tracks["title"]
	if !ok {
		t.Fatalf("DSTracks: want entry named \"title\", got %v", tracks)
	}
	if tr.FilePath != "bgm01.ogg" || tr.LoopSampleOffset != 500 {
		t.Fatalf("DSTrack fields: got %+v", tr)
	}
}

func TestCDTrackNames(t *testing.T) {
	g, err := Parse(strings.NewReader("#CDTRACK.2 = 2,trackname\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := g.CDTrackNames()
	if len(names) != 1 || names[0] != "trackname" {
		t.Fatalf("CDTrackNames: got %v, want [trackname]", names)
	}
}

func TestSETableParsing(t *testing.T) {
	g, err := Parse(strings.NewReader("#SE.10 = click,3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	table, err := g.SETable()
	if err != nil {
		t.Fatalf("SETable: %v", err)
	}
	e, ok := table[10]
	if !ok || e.FileStem != "click" || e.Channel != 3 {
		t.Fatalf("SETable[10]: got %+v, ok=%v", e, ok)
	}
}

func TestSETableRejectsNonStringValue(t *testing.T) {
	g, err := Parse(strings.NewReader("#SE.1 = 1,2,3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := g.SETable(); err == nil {
		t.Fatal("SETable: want error for a numeric value")
	}
}
