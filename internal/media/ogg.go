package media

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// OggDecoder wraps github.com/jfreymuth/oggvorbis's streaming reader
// behind the Decoder contract, converting its float32 output to the
// int16 PCM the mixer consumes.
type OggDecoder struct {
	r        *oggvorbis.Reader
	closer   io.Closer
	channels int
	pending  []byte // leftover encoded bytes from a partial Read
}

// DecodeOgg opens an Ogg Vorbis stream for decoding.
func DecodeOgg(rc io.ReadCloser) (*OggDecoder, error) {
	r, err := oggvorbis.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("media: open ogg: %w", err)
	}
	return &OggDecoder{r: r, closer: rc, channels: r.Channels()}, nil
}

func (d *OggDecoder) Read(buf []byte) (int, error) {
	if len(d.pending) > 0 {
		n := copy(buf, d.pending)
		d.pending = d.pending[n:]
		return n, nil
	}
	frames := make([]float32, len(buf)/2)
	n, err := d.r.Read(frames)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	encoded := make([]byte, 0, n*2)
	for _, f := range frames[:n] {
		s := int16(f * 32767)
		encoded = append(encoded, byte(s), byte(s>>8))
	}
	copied := copy(buf, encoded)
	if copied < len(encoded) {
		d.pending = encoded[copied:]
	}
	return copied, nil
}

func (d *OggDecoder) SeekSample(sample int64) error {
	return d.r.SetPosition(sample)
}

func (d *OggDecoder) SampleRate() int { return d.r.SampleRate() }
func (d *OggDecoder) Channels() int   { return d.channels }
func (d *OggDecoder) Close() error    { return d.closer.Close() }

var _ Decoder = (*OggDecoder)(nil)
