package mutators

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Gzip compresses the payload with gzip.
var Gzip = m.Mutator{
	Kind:        m.KindCompress,
	Name:        "Gzip",
	LongName:    "gzip",
	Description: "Gzip compresses the command, base64 wraps it and decompresses with gzip -dc",
	Author:      "shellmorph authors",
	SizeRating:  1,
	TimeRating:  3,
	Binaries:    []string{"base64", "gzip"},
	Apply:       gzipCompress,
}

// Zstd compresses the payload with zstandard.
var Zstd = m.Mutator{
	Kind:        m.KindCompress,
	Name:        "Zstd",
	LongName:    "zstd",
	Description: "Zstandard compresses the command, base64 wraps it and decompresses with zstd -dcq",
	Author:      "shellmorph authors",
	SizeRating:  1,
	TimeRating:  3,
	Binaries:    []string{"base64", "zstd"},
	Apply:       zstdCompress,
}

// eval -- "$(base64 -d<<<'...'|gzip -dc)"
func gzipCompress(_ m.Env, text string) (m.Payload, error) {
	var buf bytes.Buffer

	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return m.Payload{}, fmt.Errorf("gzip writer: %w", err)
	}

	if _, err := zw.Write([]byte(text)); err != nil {
		return m.Payload{}, fmt.Errorf("gzip write: %w", err)
	}

	if err := zw.Close(); err != nil {
		return m.Payload{}, fmt.Errorf("gzip close: %w", err)
	}

	return decompressPipeline(buf.Bytes(), "gzip", "-dc"), nil
}

// eval -- "$(base64 -d<<<'...'|zstd -dcq)"
func zstdCompress(_ m.Env, text string) (m.Payload, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return m.Payload{}, fmt.Errorf("zstd encoder: %w", err)
	}
	defer enc.Close()

	return decompressPipeline(enc.EncodeAll([]byte(text), nil), "zstd", "-dcq"), nil
}

func decompressPipeline(data []byte, binary, flags string) m.Payload {
	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Bin("base64").Sp().Code("-d").hereString(base64.StdEncoding.EncodeToString(data)).
			Pad().Code("|").Pad().Bin(binary).Sp().Code(flags)
	})

	return s.Payload()
}
