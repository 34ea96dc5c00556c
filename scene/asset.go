package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrMissingPositions      = errors.New("scene: primitive has no position data")
	ErrMultiplePrimitives    = errors.New("scene: more than one primitive per node")
	ErrUnsupportedIndexWidth = errors.New("scene: unsupported index component width")
	ErrMisalignedBuffer      = errors.New("scene: buffer layout is misaligned")
	ErrShortBuffer           = errors.New("scene: buffer shorter than its declared element count")
	ErrIndexOutOfRange       = errors.New("scene: index references a missing vertex")
)

// AssetNode is one node as delivered by an asset source. It is only read
// during Build.
//
// A zero Rotation is taken as the identity and a zero Scale as (1, 1, 1).
type AssetNode struct {
	Name        string
	Translation [3]float32
	Rotation    [4]float32 // x, y, z, w
	Scale       [3]float32
	Primitives  []AssetPrimitive
	Children    []AssetNode
}

// AssetPrimitive is raw indexed triangle geometry. Indices may be nil for
// non-indexed geometry, in which case vertices are taken in order.
type AssetPrimitive struct {
	Positions RawPositions
	Indices   *RawIndices
}

// RawPositions is a little-endian float32 xyz attribute in a byte buffer.
//
// Stride 0 means tightly packed. Count 0 means derive the count from the
// buffer length, which must then be an exact multiple of 12 bytes.
type RawPositions struct {
	Data   []byte
	Stride int
	Count  int
}

// RawIndices is a little-endian unsigned index buffer whose element width in
// bytes (1, 2 or 4) is declared by the asset. Count 0 means derive the count
// from the buffer length.
type RawIndices struct {
	Width int
	Data  []byte
	Count int
}

const positionSize = 12

// DecodePositions validates the layout of p and copies it into typed vectors.
func DecodePositions(p RawPositions) ([]mgl32.Vec3, error) {
	stride := p.Stride
	if stride == 0 {
		stride = positionSize
	}
	if stride < positionSize || stride%4 != 0 || p.Count < 0 {
		return nil, fmt.Errorf("%w: position stride %d", ErrMisalignedBuffer, p.Stride)
	}

	count := p.Count
	if count == 0 {
		if len(p.Data)%stride != 0 {
			return nil, fmt.Errorf("%w: %d position bytes with stride %d", ErrMisalignedBuffer, len(p.Data), stride)
		}
		count = len(p.Data) / stride
	}
	if count == 0 {
		return nil, ErrMissingPositions
	}
	// Bound count by the buffer before multiplying so a huge declared
	// count cannot overflow the size check.
	if count > len(p.Data)/stride+1 {
		return nil, fmt.Errorf("%w: %d positions in %d bytes", ErrShortBuffer, count, len(p.Data))
	}
	if need := (count-1)*stride + positionSize; len(p.Data) < need {
		return nil, fmt.Errorf("%w: %d positions need %d bytes, have %d", ErrShortBuffer, count, need, len(p.Data))
	}

	out := make([]mgl32.Vec3, count)
	for i := range out {
		b := p.Data[i*stride:]
		out[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		}
	}
	return out, nil
}

// Indices is an index buffer in its source width. The set of widths is
// closed: Indices8, Indices16 and Indices32.
type Indices interface {
	Len() int
	// Widen converts the buffer to the uniform 32-bit representation.
	Widen() []uint32
	sealed()
}

type (
	Indices8  []uint8
	Indices16 []uint16
	Indices32 []uint32
)

func (ix Indices8) Len() int  { return len(ix) }
func (ix Indices16) Len() int { return len(ix) }
func (ix Indices32) Len() int { return len(ix) }

func (Indices8) sealed()  {}
func (Indices16) sealed() {}
func (Indices32) sealed() {}

func (ix Indices8) Widen() []uint32 {
	out := make([]uint32, len(ix))
	for i, v := range ix {
		out[i] = uint32(v)
	}
	return out
}

func (ix Indices16) Widen() []uint32 {
	out := make([]uint32, len(ix))
	for i, v := range ix {
		out[i] = uint32(v)
	}
	return out
}

func (ix Indices32) Widen() []uint32 {
	return append([]uint32(nil), ix...)
}

// DecodeIndices validates r and decodes it into the variant matching its width.
func DecodeIndices(r RawIndices) (Indices, error) {
	switch r.Width {
	case 1, 2, 4:
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrUnsupportedIndexWidth, r.Width)
	}
	if r.Count < 0 {
		return nil, fmt.Errorf("%w: negative index count %d", ErrMisalignedBuffer, r.Count)
	}

	count := r.Count
	if count == 0 {
		if len(r.Data)%r.Width != 0 {
			return nil, fmt.Errorf("%w: %d index bytes with width %d", ErrMisalignedBuffer, len(r.Data), r.Width)
		}
		count = len(r.Data) / r.Width
	}
	if count > len(r.Data)/r.Width {
		return nil, fmt.Errorf("%w: %d indices in %d bytes", ErrShortBuffer, count, len(r.Data))
	}
	if need := count * r.Width; len(r.Data) < need {
		return nil, fmt.Errorf("%w: %d indices need %d bytes, have %d", ErrShortBuffer, count, need, len(r.Data))
	}

	switch r.Width {
	case 1:
		return Indices8(append([]uint8(nil), r.Data[:count]...)), nil
	case 2:
		out := make(Indices16, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(r.Data[i*2:])
		}
		return out, nil
	default:
		out := make(Indices32, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(r.Data[i*4:])
		}
		return out, nil
	}
}

// EncodePositions is the inverse of DecodePositions for tightly packed data.
func EncodePositions(v []mgl32.Vec3) RawPositions {
	b := make([]byte, len(v)*positionSize)
	for i, p := range v {
		binary.LittleEndian.PutUint32(b[i*12:], math.Float32bits(p[0]))
		binary.LittleEndian.PutUint32(b[i*12+4:], math.Float32bits(p[1]))
		binary.LittleEndian.PutUint32(b[i*12+8:], math.Float32bits(p[2]))
	}
	return RawPositions{Data: b, Count: len(v)}
}

// EncodeIndices16 packs 16-bit indices into a RawIndices of width 2.
func EncodeIndices16(ix []uint16) *RawIndices {
	b := make([]byte, len(ix)*2)
	for i, v := range ix {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return &RawIndices{Width: 2, Data: b, Count: len(ix)}
}
