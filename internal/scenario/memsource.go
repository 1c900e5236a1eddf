package scenario

import "fmt"

// MemSource is an in-memory Source backed by a slice of instructions per
// scene. It is the concrete Scenario a test or a demo ROM builds against —
// grounded on the teacher's ROMBuilder (internal/rom/builder.go) "append
// instructions, look them up by position" idiom, generalized from a flat
// 16-bit word stream to one scene map of variable-shaped Instructions.
type MemSource struct {
	scenes map[int][]Instruction
}

// NewMemSource creates an empty in-memory scenario source.
func NewMemSource() *MemSource {
	return &MemSource{scenes: make(map[int][]Instruction)}
}

// InstructionAt implements Source. Offsets are indices into the scene's
// instruction slice (not byte offsets — MemSource has no on-disk encoding).
func (m *MemSource) InstructionAt(pos Position) (Instruction, error) {
	scene, ok := m.scenes[pos.Scene]
	if !ok {
		return Instruction{}, fmt.Errorf("scenario: no such scene %d", pos.Scene)
	}
	if pos.Offset < 0 || pos.Offset >= len(scene) {
		return Instruction{}, fmt.Errorf("scenario: offset %d out of range in scene %d (len %d)", pos.Offset, pos.Scene, len(scene))
	}
	return scene[pos.Offset], nil
}

func (m *MemSource) NextOffset(pos Position) (int, error) {
	if _, err := m.InstructionAt(pos); err != nil {
		return 0, err
	}
	return pos.Offset + 1, nil
}

func (m *MemSource) SceneExists(scene int) bool {
	_, ok := m.scenes[scene]
	return ok
}

// Builder assembles a MemSource scene by scene. Mirrors the teacher's
// ROMBuilder.AddInstruction append style, adapted to the variable
// Instruction shape.
type Builder struct {
	src *MemSource
}

func NewBuilder() *Builder {
	return &Builder{src: NewMemSource()}
}

// Scene returns a SceneBuilder for appending instructions to scene id.
func (b *Builder) Scene(id int) *SceneBuilder {
	if _, ok := b.src.scenes[id]; !ok {
		b.src.scenes[id] = nil
	}
	return &SceneBuilder{b: b, id: id}
}

// Build returns the finished Source.
func (b *Builder) Build() *MemSource { return b.src }

type SceneBuilder struct {
	b  *Builder
	id int
}

// Add appends one instruction and returns its offset within the scene.
func (sb *SceneBuilder) Add(instr Instruction) int {
	sb.b.src.scenes[sb.id] = append(sb.b.src.scenes[sb.id], instr)
	return len(sb.b.src.scenes[sb.id]) - 1
}

// Len returns the current instruction count for this scene.
func (sb *SceneBuilder) Len() int { return len(sb.b.src.scenes[sb.id]) }
