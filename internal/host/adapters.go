package host

import "rlvm/internal/sound"

// SystemMenu opens the host's system menu (load/save/options) on a
// pause long operation's right-click (§4.5.4). The concrete menu UI is
// out of scope for this module (§1 non-goal list); this stub records
// that a menu was requested so a future host surface can act on it.
type SystemMenu struct {
	Requested bool
}

func (m *SystemMenu) OpenMenu() { m.Requested = true }

// VoiceStopper satisfies text.VoiceStopper by stopping the KOE channel
// range on the shared mixer when a pause completes (§4.5.4).
type VoiceStopper struct {
	Mixer *sound.Mixer
}

func (v *VoiceStopper) StopVoice() {
	for i := 0; i < sound.KoeChannelCount; i++ {
		_ = v.Mixer.Stop(sound.KoeChannelStart + sound.ChannelID(i))
	}
}
