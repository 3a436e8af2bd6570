package hair

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// Signature is the magic at the start of every hair file.
const Signature = "HAIR"

const headerSize = 128

// Bits of the header presence field. Bits 7..30 are reserved for future
// extensions and always written as zero.
const (
	bitSegments uint32 = 1 << iota
	bitVertices
	bitThickness
	bitTransparency
	bitColor
	bitTangents
	bitIndices

	bitBoundingBox uint32 = 1 << 31
)

// fileHeader is the fixed 128-byte little-endian header.
type fileHeader struct {
	Signature           [4]byte
	StrandCount         uint32
	VertexCount         uint32
	Field               uint32
	DefaultSegmentCount uint32
	DefaultThickness    float32
	DefaultTransparency float32
	DefaultColor        [3]float32
	BoundingBoxMin      [3]float32
	BoundingBoxMax      [3]float32
	Information         [InformationSize]byte
}

func (h *fileHeader) has(bit uint32) bool {
	return h.Field&bit != 0
}

// header derives the file header from the current contents. It is computed
// at serialization time and never stored.
func (s *Style) header() fileHeader {
	h := fileHeader{
		StrandCount:         uint32(s.StrandCount()),
		VertexCount:         uint32(s.VertexCount()),
		Field:               s.bitfield(),
		DefaultSegmentCount: s.DefaultSegmentCount,
		DefaultThickness:    s.DefaultThickness,
		DefaultTransparency: s.DefaultTransparency,
		DefaultColor:        [3]float32{s.DefaultColor.X, s.DefaultColor.Y, s.DefaultColor.Z},
		BoundingBoxMin:      [3]float32{s.boundsMin.X, s.boundsMin.Y, s.boundsMin.Z},
		BoundingBoxMax:      [3]float32{s.boundsMax.X, s.boundsMax.Y, s.boundsMax.Z},
		Information:         s.information,
	}
	copy(h.Signature[:], Signature)
	return h
}

func (s *Style) bitfield() uint32 {
	var field uint32
	set := func(present bool, bit uint32) {
		if present {
			field |= bit
		}
	}
	set(s.HasSegments(), bitSegments)
	set(s.HasVertices(), bitVertices)
	set(s.HasThickness(), bitThickness)
	set(s.HasTransparency(), bitTransparency)
	set(s.HasColor(), bitColor)
	set(s.HasTangents(), bitTangents)
	set(s.HasIndices(), bitIndices)
	set(s.hasBoundingBox, bitBoundingBox)
	return field
}

// Load reads a hair style from disk.
func Load(path string) (*Style, error) {
	s := &Style{}
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the contents of s with the style stored at path. On failure
// the previous contents are left untouched and the error is recorded.
func (s *Style) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return s.setErr(wrap(ErrOpeningFile, err))
	}
	defer file.Close()

	return s.Decode(bufio.NewReader(file))
}

// Decode replaces the contents of s with a style read from r.
func (s *Style) Decode(r io.Reader) error {
	decoded, err := decode(r)
	if err != nil {
		return s.setErr(err)
	}
	*s = *decoded
	return s.setErr(nil)
}

// Decode reads a hair style from r.
func Decode(r io.Reader) (*Style, error) {
	return decode(r)
}

func decode(r io.Reader) (*Style, error) {
	var h fileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, wrap(ErrReadingFileHeader, err)
	}

	if string(h.Signature[:]) != Signature {
		return nil, ErrInvalidSignature
	}

	s := &Style{
		DefaultSegmentCount: h.DefaultSegmentCount,
		DefaultThickness:    h.DefaultThickness,
		DefaultTransparency: h.DefaultTransparency,
		DefaultColor:        vec3(h.DefaultColor),
		strandCount:         h.StrandCount,
		boundsMin:           vec3(h.BoundingBoxMin),
		boundsMax:           vec3(h.BoundingBoxMax),
		hasBoundingBox:      h.has(bitBoundingBox),
		information:         h.Information,
	}

	vertexCount := int(h.VertexCount)
	var err error

	if h.has(bitSegments) {
		if s.Segments, err = readSection[uint16](r, int(h.StrandCount)); err != nil {
			return nil, wrap(ErrReadingSegments, err)
		}
	}
	if h.has(bitVertices) {
		if s.Vertices, err = readSection[math.Vec3](r, vertexCount); err != nil {
			return nil, wrap(ErrReadingVertices, err)
		}
	}
	if h.has(bitThickness) {
		if s.Thickness, err = readSection[float32](r, vertexCount); err != nil {
			return nil, wrap(ErrReadingThickness, err)
		}
	}
	if h.has(bitTransparency) {
		if s.Transparency, err = readSection[float32](r, vertexCount); err != nil {
			return nil, wrap(ErrReadingTransparency, err)
		}
	}
	if h.has(bitColor) {
		if s.Color, err = readSection[math.Vec3](r, vertexCount); err != nil {
			return nil, wrap(ErrReadingColor, err)
		}
	}
	if h.has(bitTangents) {
		if s.Tangents, err = readSection[math.Vec3](r, vertexCount); err != nil {
			return nil, wrap(ErrReadingTangents, err)
		}
	}
	if h.has(bitIndices) {
		segmentCount := vertexCount - s.StrandCount()
		if segmentCount < 0 {
			return nil, wrap(ErrReadingIndices,
				fmt.Errorf("vertex count %d below strand count %d", vertexCount, s.StrandCount()))
		}
		if s.Indices, err = readSection[uint32](r, 2*segmentCount); err != nil {
			return nil, wrap(ErrReadingIndices, err)
		}
	}

	// Only validate once every section is in.
	if !s.formatIsValid() {
		return nil, ErrInvalidFormat
	}

	return s, nil
}

// sectionChunk is the number of values read per step of a section.
const sectionChunk = 1 << 16

// readSection reads count little-endian values. The result grows with the
// data actually read, so a count larger than the stream fails with the read
// error instead of allocating the whole section up front.
func readSection[T any](r io.Reader, count int) ([]T, error) {
	data := make([]T, 0, min(count, sectionChunk))
	chunk := make([]T, min(count, sectionChunk))

	for len(data) < count {
		n := min(count-len(data), sectionChunk)
		if err := binary.Read(r, binary.LittleEndian, chunk[:n]); err != nil {
			return nil, err
		}
		data = append(data, chunk[:n]...)
	}
	return data, nil
}

// Save writes the style to disk. The header is derived from the current
// arrays, so counts and the presence field always match the content.
func (s *Style) Save(path string) error {
	if !s.formatIsValid() {
		return s.setErr(ErrInvalidFormat)
	}

	file, err := os.Create(path)
	if err != nil {
		return s.setErr(wrap(ErrOpeningFile, err))
	}

	if err := s.encode(file); err != nil {
		file.Close()
		return s.setErr(err)
	}

	// Buffered data may only reach the disk on close.
	if err := file.Close(); err != nil {
		return s.setErr(wrap(s.lastWriteKind(), err))
	}
	return s.setErr(nil)
}

// Encode writes the style to w.
func (s *Style) Encode(w io.Writer) error {
	if !s.formatIsValid() {
		return s.setErr(ErrInvalidFormat)
	}
	return s.setErr(s.encode(w))
}

func (s *Style) encode(w io.Writer) error {
	h := s.header()
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return wrap(ErrWritingFileHeader, err)
	}

	for _, sec := range s.sections() {
		if err := binary.Write(w, binary.LittleEndian, sec.data); err != nil {
			return wrap(sec.kind, err)
		}
	}
	return nil
}

type section struct {
	data any
	kind Error
}

// sections lists the present sections in file order with the error kind
// reported when writing them fails.
func (s *Style) sections() []section {
	all := []struct {
		present bool
		section
	}{
		{s.HasSegments(), section{s.Segments, ErrWritingSegments}},
		{s.HasVertices(), section{s.Vertices, ErrWritingVertices}},
		{s.HasThickness(), section{s.Thickness, ErrWritingThickness}},
		{s.HasTransparency(), section{s.Transparency, ErrWritingTransparency}},
		{s.HasColor(), section{s.Color, ErrWritingColor}},
		{s.HasTangents(), section{s.Tangents, ErrWritingTangents}},
		{s.HasIndices(), section{s.Indices, ErrWritingIndices}},
	}

	present := make([]section, 0, len(all))
	for _, sec := range all {
		if sec.present {
			present = append(present, sec.section)
		}
	}
	return present
}

// lastWriteKind is the error kind of the final write Save performs.
func (s *Style) lastWriteKind() Error {
	sections := s.sections()
	if len(sections) == 0 {
		return ErrWritingFileHeader
	}
	return sections[len(sections)-1].kind
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
