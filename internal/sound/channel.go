// Package sound implements the mixer of §4.6: a fixed channel array
// (base/extra/KOE ranges), per-channel and master volume with linear
// fades, an SE table player, and a BGM streamer with loop-point and
// crossfade transitions.
//
// Grounded on the teacher's AudioChannel array (internal/apu/apu.go:
// per-channel Volume/Enabled/Duration state polled once per frame),
// generalized from 4 synthesized waveform channels to the spec's
// base/extra/KOE sample-playback channel ranges.
package sound

// ChannelID names one playback channel. Base channels (0..11) are the
// general-purpose SE/ambient pool, Extra channels (12..15) hold
// simultaneous overlapping effects, with 12 and 13 used by the BGM
// streamer, and KOE channels
// (16..31) are dedicated to character voice playback (§4.6.1).
type ChannelID int

const (
	BaseChannelStart  ChannelID = 0
	BaseChannelCount            = 12
	ExtraChannelStart ChannelID = 12
	ExtraChannelCount           = 4
	KoeChannelStart   ChannelID = 16
	KoeChannelCount             = 16
	TotalChannels               = 32
)

// Channel is one playback slot's live state: a decoded PCM buffer being
// consumed at a read cursor, with its own volume and fade state.
type Channel struct {
	Playing bool
	Samples []int16 // interleaved PCM at the mixer's output rate
	Cursor  int
	Loop    bool
	LoopStart int

	Volume     float64 // 0..1, this channel's own volume
	fadeFrom   float64
	fadeTo     float64
	fadeStartMs int64
	fadeDurMs   int64
	fading      bool
}

// Play loads samples into the channel and starts playback from the top.
func (c *Channel) Play(samples []int16, loop bool, loopStart int) {
	c.Playing = true
	c.Samples = samples
	c.Cursor = 0
	c.Loop = loop
	c.LoopStart = loopStart
	if c.Volume == 0 {
		c.Volume = 1
	}
}

// Stop halts playback and releases the buffer.
func (c *Channel) Stop() {
	c.Playing = false
	c.Samples = nil
	c.Cursor = 0
}

// StartFade begins a linear volume ramp from the channel's current
// volume to `to`, completing at nowMs+durationMs (§4.6.4 fade
// transitions).
func (c *Channel) StartFade(nowMs int64, to float64, durationMs int64) {
	c.fadeFrom = c.Volume
	c.fadeTo = to
	c.fadeStartMs = nowMs
	c.fadeDurMs = durationMs
	c.fading = true
}

// AdvanceFade updates Volume for the current time, returning whether a
// fade is still in progress. When a fade-to-zero completes, the
// channel is stopped — matching the teacher's "Duration reaches 0 ->
// channel auto-disables" behavior, generalized from note duration to
// fade completion.
func (c *Channel) AdvanceFade(nowMs int64) bool {
	if !c.fading {
		return false
	}
	if c.fadeDurMs <= 0 || nowMs >= c.fadeStartMs+c.fadeDurMs {
		c.Volume = c.fadeTo
		c.fading = false
		if c.fadeTo <= 0 {
			c.Stop()
		}
		return false
	}
	frac := float64(nowMs-c.fadeStartMs) / float64(c.fadeDurMs)
	c.Volume = c.fadeFrom + (c.fadeTo-c.fadeFrom)*frac
	return true
}

// NextSample returns the channel's next output sample (already scaled
// by its own Volume) and advances the cursor, looping or stopping at
// end of buffer.
func (c *Channel) NextSample() int16 {
	if !c.Playing || len(c.Samples) == 0 {
		return 0
	}
	s := c.Samples[c.Cursor]
	c.Cursor++
	if c.Cursor >= len(c.Samples) {
		if c.Loop {
			c.Cursor = c.LoopStart
		} else {
			c.Stop()
		}
	}
	return int16(float64(s) * c.Volume)
}
