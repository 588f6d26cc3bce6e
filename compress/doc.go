// Package compress provides the payload codecs of serialized circuit blobs.
//
// Gate payloads are varint-packed before compression, so they are small and repetitive:
// every syndrome round emits the same CX ladder. All codecs round-trip exactly.
//
//   - None: payload stored as is
//   - Zstd: best ratio, the default for archived circuits
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// The Zstd codec uses github.com/klauspost/compress/zstd. Building with the gozstd tag
// switches it to the cgo binding github.com/valyala/gozstd; both produce standard frames
// and decode each other's output.
//
// Codecs are stateless values and safe for concurrent use:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "payload")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
package compress
