package sound

import (
	"bytes"
	"encoding/binary"
	"io"

	"rlvm/internal/media"
)

// newByteReader wraps a byte slice for the media decoders, which take
// an io.Reader (WAV/NWA) or io.ReadCloser (Ogg/MP3).
func newByteReader(raw []byte) io.Reader { return bytes.NewReader(raw) }

type nopCloserReader struct{ io.Reader }

func (nopCloserReader) Close() error { return nil }

func newByteReadCloser(raw []byte) io.ReadCloser {
	return nopCloserReader{bytes.NewReader(raw)}
}

// decodeAll drains a media.Decoder into a full int16 sample slice.
func decodeAll(dec media.Decoder) ([]int16, error) {
	var out []int16
	buf := make([]byte, 4096)
	for {
		n, err := dec.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			out = append(out, int16(binary.LittleEndian.Uint16(buf[i:i+2])))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}
