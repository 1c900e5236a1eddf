package media

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder wraps github.com/hajimehoshi/go-mp3's stream decoder
// behind the Decoder contract. go-mp3 already produces interleaved
// 16-bit stereo PCM, matching this package's byte-stream contract
// directly.
type MP3Decoder struct {
	r      *mp3.Decoder
	closer io.Closer
}

// DecodeMP3 opens an MP3 stream for decoding.
func DecodeMP3(rc io.ReadCloser) (*MP3Decoder, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, fmt.Errorf("media: open mp3: %w", err)
	}
	return &MP3Decoder{r: dec, closer: rc}, nil
}

func (d *MP3Decoder) Read(buf []byte) (int, error) { return d.r.Read(buf) }

func (d *MP3Decoder) SeekSample(sample int64) error {
	// go-mp3 seeks by byte offset; 16-bit stereo is 4 bytes/sample.
	_, err := d.r.Seek(sample*4, io.SeekStart)
	return err
}

func (d *MP3Decoder) SampleRate() int { return d.r.SampleRate() }
func (d *MP3Decoder) Channels() int   { return 2 }
func (d *MP3Decoder) Close() error    { return d.closer.Close() }

var _ Decoder = (*MP3Decoder)(nil)
