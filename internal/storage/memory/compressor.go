package memory

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressorInterface is the snapshot file codec.
type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// errNotCompressed reports a snapshot file without a zstd frame header,
// such as a hand-written JSON seed.
var errNotCompressed = errors.New("snapshot is not zstd-compressed")

// SnapshotCompressor compresses whole snapshots with zstd.
type SnapshotCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewSnapshotCompressor accepts the zstd level names fastest, default, better
// and best. An empty level means default.
func NewSnapshotCompressor(level string) (*SnapshotCompressor, error) {
	encLevel := zstd.SpeedDefault
	if level != "" {
		ok, parsed := zstd.EncoderLevelFromString(level)
		if !ok {
			return nil, fmt.Errorf("unknown snapshot compression level %q", level)
		}
		encLevel = parsed
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encLevel))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &SnapshotCompressor{encoder: encoder, decoder: decoder}, nil
}

func (c *SnapshotCompressor) Compress(val []byte) ([]byte, error) {
	return c.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

// Decompress returns errNotCompressed for data that does not start with a zstd frame.
func (c *SnapshotCompressor) Decompress(val []byte) ([]byte, error) {
	if !bytes.HasPrefix(val, zstdMagic) {
		return nil, errNotCompressed
	}
	return c.decoder.DecodeAll(val, nil)
}

func (c *SnapshotCompressor) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
