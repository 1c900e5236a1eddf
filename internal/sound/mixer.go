package sound

import (
	"fmt"
	"sync"
)

// Mixer owns every playback channel plus the master/PCM/SE/BGM volume
// multipliers applied on top of each channel's own volume (§4.6). A
// mutex guards channel state since playback advances on a dedicated
// audio-thread tick while opcode handlers mutate channels from the
// main VM thread (§5 "audio-thread lock").
type Mixer struct {
	mu sync.Mutex

	channels [TotalChannels]Channel

	MasterVolume float64
	PCMVolume    float64
	SEVolume     float64
	BGMVolume    float64
}

// NewMixer creates a mixer with every volume multiplier at full scale.
func NewMixer() *Mixer {
	return &Mixer{
		MasterVolume: 1,
		PCMVolume:    1,
		SEVolume:     1,
		BGMVolume:    1,
	}
}

// channelAt returns the channel at id. It takes no lock itself: callers
// hold m.mu for as long as they use the returned pointer.
func (m *Mixer) channelAt(id ChannelID) (*Channel, error) {
	if id < 0 || int(id) >= TotalChannels {
		return nil, fmt.Errorf("sound: channel %d out of range [0,%d)", id, TotalChannels)
	}
	return &m.channels[id], nil
}

// Play starts playback of samples on the given channel.
func (m *Mixer) Play(id ChannelID, samples []int16, loop bool, loopStart int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, err := m.channelAt(id)
	if err != nil {
		return err
	}
	ch.Play(samples, loop, loopStart)
	return nil
}

// Stop halts the given channel.
func (m *Mixer) Stop(id ChannelID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, err := m.channelAt(id)
	if err != nil {
		return err
	}
	ch.Stop()
	return nil
}

// Fade starts a linear fade on the given channel.
func (m *Mixer) Fade(id ChannelID, nowMs int64, to float64, durationMs int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, err := m.channelAt(id)
	if err != nil {
		return err
	}
	ch.StartFade(nowMs, to, durationMs)
	return nil
}

// IsPlaying reports whether the given channel is currently playing.
func (m *Mixer) IsPlaying(id ChannelID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, err := m.channelAt(id)
	if err != nil {
		return false
	}
	return ch.Playing
}

// categoryVolume returns the category multiplier (SE vs BGM vs voice)
// layered under master; the BGM streamer's two channels use BGMVolume,
// the other base/extra channels are SE, and KOE channels are treated as
// the voice category (scaled by PCMVolume, matching the teacher's single
// master-multiply-down chain generalized to named categories instead of
// one flat knob).
func (m *Mixer) categoryVolume(id ChannelID) float64 {
	switch {
	case id >= KoeChannelStart:
		return m.PCMVolume
	case id == bgmChannel || id == bgmChannel+1:
		return m.BGMVolume
	default:
		return m.SEVolume
	}
}

// MixFrame advances every channel by len(out) samples (mono) and sums
// them into out, applying category and master volume. Called once per
// audio-thread tick (§5). nowMs drives active fades.
func (m *Mixer) MixFrame(out []int16, nowMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range out {
		out[i] = 0
	}
	for idx := range m.channels {
		ch := &m.channels[idx]
		ch.AdvanceFade(nowMs)
		if !ch.Playing {
			continue
		}
		cat := m.categoryVolume(ChannelID(idx))
		for i := range out {
			s := ch.NextSample()
			mixed := int32(out[i]) + int32(float64(s)*cat*m.MasterVolume)
			out[i] = clampSample(mixed)
			if !ch.Playing {
				break
			}
		}
	}
}

func clampSample(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
