package config

import (
	"fmt"
	"strconv"
	"strings"
)

// SelEntry is a parsed #SEL/#SELR transition descriptor (§6.2).
type SelEntry struct {
	SrcX1, SrcY1, SrcX2, SrcY2 int
	DstX, DstY                 int
	DurationMs                 int
	Style                      int
	Direction                  int
	Interpolation              int
	XSize, YSize               int
	A, B                       int
	Opacity                    int
	C                          int
	IsRect                     bool // true for #SELR (x,y,w,h source rect)
}

// Sel looks up a numbered #SEL or #SELR entry. #SELR takes precedence when
// both exist for the same number, matching the "R" variant's more direct
// rectangle form.
func (g *Gameexe) Sel(n int) (SelEntry, error) {
	if v, ok := g.Get(fmt.Sprintf("SELR.%d", n)); ok {
		return decodeSel(v, true)
	}
	if v, ok := g.Get(fmt.Sprintf("SEL.%d", n)); ok {
		return decodeSel(v, false)
	}
	return SelEntry{}, fmt.Errorf("config: no #SEL/#SELR.%d entry", n)
}

func decodeSel(v Value, isRect bool) (SelEntry, error) {
	if v.IsString() || len(v.Ints) < 17 {
		return SelEntry{}, fmt.Errorf("config: #SEL entry malformed, want 17 ints, got %d", len(v.Ints))
	}
	i := v.Ints
	return SelEntry{
		SrcX1: i[0], SrcY1: i[1], SrcX2: i[2], SrcY2: i[3],
		DstX: i[4], DstY: i[5],
		DurationMs: i[6], Style: i[7], Direction: i[8], Interpolation: i[9],
		XSize: i[10], YSize: i[11], A: i[12], B: i[13], Opacity: i[14], C: i[15],
		IsRect: isRect,
	}, nil
}

// DSTrack is a parsed #DSTRACK music descriptor (§3.9, §6.2).
type DSTrack struct {
	Name             string
	FilePath         string
	LoopSampleOffset int64
	FromSample       int64
	ToSample         int64
}

// StopAtEnd marks a track with no loop point: playback stops when the
// decoder signals end-of-stream.
const StopAtEnd int64 = -1

// DSTracks parses every #DSTRACK.<n> entry into name-keyed descriptors.
// Each entry's value is a comma-separated string "from,to,loop,file,name".
func (g *Gameexe) DSTracks() (map[string]DSTrack, error) {
	out := make(map[string]DSTrack)
	for _, key := range g.FilterPrefix("DSTRACK") {
		v, _ := g.Get(key)
		track, err := parseDSTrackValue(v)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", key, err)
		}
		out[track.Name] = track
	}
	return out, nil
}

func parseDSTrackValue(v Value) (DSTrack, error) {
	if !v.IsString() {
		return DSTrack{}, fmt.Errorf("expected string value \"from,to,loop,file,name\"")
	}
	fields := strings.Split(v.Str, ",")
	if len(fields) != 5 {
		return DSTrack{}, fmt.Errorf("malformed #DSTRACK value %q: want 5 comma-separated fields, got %d", v.Str, len(fields))
	}
	from, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return DSTrack{}, fmt.Errorf("malformed #DSTRACK \"from\" field: %w", err)
	}
	to, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return DSTrack{}, fmt.Errorf("malformed #DSTRACK \"to\" field: %w", err)
	}
	loop, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return DSTrack{}, fmt.Errorf("malformed #DSTRACK \"loop\" field: %w", err)
	}
	file := strings.TrimSpace(fields[3])
	name := strings.TrimSpace(fields[4])
	return DSTrack{Name: name, FilePath: file, LoopSampleOffset: loop, FromSample: from, ToSample: to}, nil
}

// CDTrackNames returns the name of every #CDTRACK entry, whether or not a
// #DSTRACK entry shares it. BGMStreamer.Play consults this list only for
// names with no #DSTRACK entry, and fails those with a clear "CD audio
// unsupported" error (§4.6.4, Open Questions).
func (g *Gameexe) CDTrackNames() []string {
	var names []string
	for _, key := range g.FilterPrefix("CDTRACK") {
		v, _ := g.Get(key)
		if v.IsString() {
			fields := strings.Split(v.Str, ",")
			names = append(names, strings.TrimSpace(fields[len(fields)-1]))
		}
	}
	return names
}

// SEEntry is a parsed #SE.<n> sound-effect descriptor.
type SEEntry struct {
	FileStem string
	Channel  int
}

// SETable parses every #SE.<n> entry into a number-keyed table (§4.6.2).
// Each entry's value is a comma-separated string "filestem,channel".
func (g *Gameexe) SETable() (map[int]SEEntry, error) {
	out := make(map[int]SEEntry)
	for _, key := range g.FilterPrefix("SE") {
		var n int
		if _, err := fmt.Sscanf(key, "SE.%d", &n); err != nil {
			continue
		}
		v, _ := g.Get(key)
		if !v.IsString() {
			return nil, fmt.Errorf("config: #SE.%d must be a string \"filestem,channel\"", n)
		}
		fields := strings.Split(v.Str, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("config: #SE.%d malformed: want \"filestem,channel\", got %q", n, v.Str)
		}
		ch, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("config: #SE.%d channel not numeric: %w", n, err)
		}
		out[n] = SEEntry{FileStem: strings.TrimSpace(fields[0]), Channel: ch}
	}
	return out, nil
}
