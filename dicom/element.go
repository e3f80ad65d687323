package dicom

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/caio-sobreiro/dicomsend/types"
)

// UndefinedLength marks a sequence, item or pixel data value that is closed by a delimiter
const UndefinedLength uint32 = 0xFFFFFFFF

var (
	ItemTag                 = Tag{0xFFFE, 0xE000}
	ItemDelimitationTag     = Tag{0xFFFE, 0xE00D}
	SequenceDelimitationTag = Tag{0xFFFE, 0xE0DD}
	PixelDataTag            = Tag{0x7FE0, 0x0010}
	BitsAllocatedTag        = Tag{0x0028, 0x0100}
)

// errTruncated reports data that ends in the middle of an element
var errTruncated = errors.New("dicom: data ends inside an element")

// Encoding describes how data elements are laid out: VR explicit or
// implicit, little or big endian.
type Encoding struct {
	ImplicitVR bool
	BigEndian  bool
}

var (
	ExplicitVRLittle = Encoding{}
	ImplicitVRLittle = Encoding{ImplicitVR: true}
	ExplicitVRBig    = Encoding{BigEndian: true}
)

func (e Encoding) String() string {
	switch e {
	case ImplicitVRLittle:
		return "implicit VR little endian"
	case ExplicitVRBig:
		return "explicit VR big endian"
	case ExplicitVRLittle:
		return "explicit VR little endian"
	default:
		return "implicit VR big endian"
	}
}

// TransferSyntaxUID returns the uncompressed transfer syntax with this encoding
func (e Encoding) TransferSyntaxUID() string {
	switch {
	case e.ImplicitVR:
		return types.ImplicitVRLittleEndian
	case e.BigEndian:
		return types.ExplicitVRBigEndian
	default:
		return types.ExplicitVRLittleEndian
	}
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (e Encoding) byteOrder() byteOrder {
	if e.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// EncodingOf returns the element encoding of data sets stored in the given
// transfer syntax. Compressed syntaxes keep explicit VR little endian with
// encapsulated pixel data. Deflated syntaxes have no element encoding until
// the stream is inflated, so ok is false for them.
func EncodingOf(transferSyntaxUID string) (enc Encoding, ok bool) {
	switch transferSyntaxUID {
	case types.ImplicitVRLittleEndian:
		return ImplicitVRLittle, true
	case types.ExplicitVRBigEndian:
		return ExplicitVRBig, true
	case types.DeflatedExplicitVRLittleEndian, types.JPIPReferencedDeflate:
		return Encoding{}, false
	default:
		return ExplicitVRLittle, true
	}
}

// rawElement is a parsed element whose primitive value is left undecoded
type rawElement struct {
	Tag   Tag
	VR    string
	Value []byte

	// Items holds sequence items; Fragments holds encapsulated pixel data
	Items        [][]*rawElement
	Fragments    [][]byte
	Encapsulated bool

	// bigEndian records the byte order Value was read in
	bigEndian bool
}

func isLongVR(vr string) bool {
	switch vr {
	case VR_OB, VR_OD, VR_OF, VR_OL, VR_OV, VR_OW, VR_SQ, VR_UC, VR_UN, VR_UR, VR_UT, VR_SV, VR_UV:
		return true
	}
	return false
}

func isKnownVR(vr string) bool {
	switch vr {
	case VR_AE, VR_AS, VR_AT, VR_CS, VR_DA, VR_DS, VR_DT, VR_FL, VR_FD, VR_IS, VR_LO, VR_LT,
		VR_PN, VR_SH, VR_SL, VR_SS, VR_ST, VR_TM, VR_UI, VR_UL, VR_US:
		return true
	}
	return isLongVR(vr)
}

func isStringVR(vr string) bool {
	switch vr {
	case VR_AE, VR_AS, VR_CS, VR_DA, VR_DS, VR_DT, VR_IS, VR_LO, VR_LT, VR_PN, VR_SH, VR_ST,
		VR_TM, VR_UC, VR_UI, VR_UR, VR_UT:
		return true
	}
	return false
}

// valueWidth is the size of one binary value that must be byte swapped
// when the byte order changes, or 1 when the VR is a byte stream.
func valueWidth(vr string) int {
	switch vr {
	case VR_US, VR_SS, VR_OW, VR_AT:
		return 2
	case VR_UL, VR_SL, VR_FL, VR_OF, VR_OL:
		return 4
	case VR_FD, VR_OD, VR_SV, VR_UV, VR_OV:
		return 8
	}
	return 1
}

// swapBytes reverses every width-sized word of value into a new slice
func swapBytes(value []byte, width int) []byte {
	if width <= 1 {
		return value
	}
	out := make([]byte, len(value))
	copy(out, value)
	for i := 0; i+width <= len(out); i += width {
		for j := 0; j < width/2; j++ {
			out[i+j], out[i+width-1-j] = out[i+width-1-j], out[i+j]
		}
	}
	return out
}

func padByte(vr string) byte {
	if isStringVR(vr) && vr != VR_UI {
		return ' '
	}
	return 0x00
}

type elementReader struct {
	data []byte
	pos  int
	enc  Encoding
}

func newElementReader(data []byte, enc Encoding) *elementReader {
	return &elementReader{data: data, enc: enc}
}

func (r *elementReader) readUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, errTruncated
	}
	v := r.enc.byteOrder().Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *elementReader) readUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errTruncated
	}
	v := r.enc.byteOrder().Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *elementReader) readTag() (Tag, error) {
	if r.pos+4 > len(r.data) {
		return Tag{}, errTruncated
	}
	order := r.enc.byteOrder()
	tag := Tag{Group: order.Uint16(r.data[r.pos:]), Element: order.Uint16(r.data[r.pos+2:])}
	r.pos += 4
	return tag, nil
}

func (r *elementReader) take(length uint32) ([]byte, error) {
	if uint64(length) > uint64(len(r.data)-r.pos) {
		return nil, errTruncated
	}
	v := r.data[r.pos : r.pos+int(length)]
	r.pos += int(length)
	return v, nil
}

// end returns the offset where a value of the given length finishes
func (r *elementReader) end(length uint32) (int, error) {
	if length == UndefinedLength {
		return len(r.data), nil
	}
	if uint64(length) > uint64(len(r.data)-r.pos) {
		return 0, errTruncated
	}
	return r.pos + int(length), nil
}

// readDataSet reads elements until end. When delimited is set the data set
// is an item of undefined length and finishes at an item delimiter. A stop
// function ends the walk before the first tag it accepts, leaving that tag
// unread.
func (r *elementReader) readDataSet(end int, delimited bool, stop func(Tag) bool) ([]*rawElement, error) {
	var elems []*rawElement
	for r.pos < end {
		start := r.pos
		tag, err := r.readTag()
		if err != nil {
			return elems, err
		}
		if tag == ItemDelimitationTag && delimited {
			_, err := r.readUint32()
			return elems, err
		}
		if stop != nil && stop(tag) {
			r.pos = start
			return elems, nil
		}
		elem, err := r.readElement(tag)
		if err != nil {
			return elems, fmt.Errorf("element %s: %w", tag, err)
		}
		elems = append(elems, elem)
	}
	if delimited {
		return elems, errTruncated
	}
	return elems, nil
}

func (r *elementReader) readElement(tag Tag) (*rawElement, error) {
	elem := &rawElement{Tag: tag, bigEndian: r.enc.BigEndian}

	var length uint32
	if r.enc.ImplicitVR {
		l, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		length = l
		elem.VR = determineVR(tag)
	} else {
		if r.pos+2 > len(r.data) {
			return nil, errTruncated
		}
		elem.VR = string(r.data[r.pos : r.pos+2])
		r.pos += 2
		if isLongVR(elem.VR) {
			r.pos += 2
			l, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			length = l
		} else {
			l, err := r.readUint16()
			if err != nil {
				return nil, err
			}
			length = uint32(l)
		}
	}

	switch {
	case tag == PixelDataTag && length == UndefinedLength:
		elem.Encapsulated = true
		fragments, err := r.readFragments()
		elem.Fragments = fragments
		return elem, err

	case elem.VR == VR_SQ || length == UndefinedLength:
		// UN of undefined length is a sequence encoded implicit VR little endian
		saved := r.enc
		if elem.VR == VR_UN {
			r.enc = ImplicitVRLittle
		}
		elem.VR = VR_SQ
		items, err := r.readItems(length)
		r.enc = saved
		elem.Items = items
		return elem, err

	default:
		value, err := r.take(length)
		if err != nil {
			return nil, err
		}
		elem.Value = value
		return elem, nil
	}
}

func (r *elementReader) readItems(length uint32) ([][]*rawElement, error) {
	end, err := r.end(length)
	if err != nil {
		return nil, err
	}
	delimited := length == UndefinedLength

	var items [][]*rawElement
	for r.pos < end {
		tag, err := r.readTag()
		if err != nil {
			return items, err
		}
		itemLength, err := r.readUint32()
		if err != nil {
			return items, err
		}
		if tag == SequenceDelimitationTag {
			if delimited {
				return items, nil
			}
			continue
		}
		if tag != ItemTag {
			return items, fmt.Errorf("dicom: unexpected tag %s inside sequence", tag)
		}
		itemEnd, err := r.end(itemLength)
		if err != nil {
			return items, err
		}
		elems, err := r.readDataSet(itemEnd, itemLength == UndefinedLength, nil)
		items = append(items, elems)
		if err != nil {
			return items, err
		}
	}
	if delimited {
		return items, errTruncated
	}
	return items, nil
}

func (r *elementReader) readFragments() ([][]byte, error) {
	var fragments [][]byte
	for {
		tag, err := r.readTag()
		if err != nil {
			return fragments, err
		}
		length, err := r.readUint32()
		if err != nil {
			return fragments, err
		}
		switch tag {
		case SequenceDelimitationTag:
			return fragments, nil
		case ItemTag:
			value, err := r.take(length)
			if err != nil {
				return fragments, err
			}
			fragments = append(fragments, value)
		default:
			return fragments, fmt.Errorf("dicom: unexpected tag %s inside encapsulated pixel data", tag)
		}
	}
}

type elementWriter struct {
	buf []byte
	enc Encoding
}

func newElementWriter(enc Encoding) *elementWriter {
	return &elementWriter{enc: enc}
}

func (w *elementWriter) putUint16(v uint16) {
	w.buf = w.enc.byteOrder().AppendUint16(w.buf, v)
}

func (w *elementWriter) putUint32(v uint32) {
	w.buf = w.enc.byteOrder().AppendUint32(w.buf, v)
}

func (w *elementWriter) putTag(tag Tag) {
	w.putUint16(tag.Group)
	w.putUint16(tag.Element)
}

func (w *elementWriter) writeHeader(vr string, length uint32) {
	if w.enc.ImplicitVR {
		w.putUint32(length)
		return
	}
	w.buf = append(w.buf, vr[0], vr[1])
	if isLongVR(vr) {
		w.buf = append(w.buf, 0x00, 0x00)
		w.putUint32(length)
		return
	}
	w.putUint16(uint16(length))
}

func (w *elementWriter) writeDataSet(elems []*rawElement) {
	for _, elem := range elems {
		w.writeElement(elem)
	}
}

// writeElement encodes elem. Sequences and items are always written with
// undefined length so nested content never needs a second pass.
func (w *elementWriter) writeElement(elem *rawElement) {
	vr := elem.VR
	if !isKnownVR(vr) {
		vr = VR_UN
	}
	w.putTag(elem.Tag)

	switch {
	case vr == VR_SQ:
		w.writeHeader(VR_SQ, UndefinedLength)
		for _, item := range elem.Items {
			w.putTag(ItemTag)
			w.putUint32(UndefinedLength)
			w.writeDataSet(item)
			w.putTag(ItemDelimitationTag)
			w.putUint32(0)
		}
		w.putTag(SequenceDelimitationTag)
		w.putUint32(0)

	case elem.Encapsulated:
		w.writeHeader(vr, UndefinedLength)
		for _, fragment := range elem.Fragments {
			w.putTag(ItemTag)
			w.putUint32(uint32(len(fragment)))
			w.buf = append(w.buf, fragment...)
		}
		w.putTag(SequenceDelimitationTag)
		w.putUint32(0)

	default:
		value := elem.Value
		if elem.bigEndian != w.enc.BigEndian {
			value = swapBytes(value, valueWidth(vr))
		}
		if !w.enc.ImplicitVR && !isLongVR(vr) && len(value) > 0xFFFF {
			vr = VR_UN
		}
		length := len(value)
		if length%2 == 1 {
			length++
		}
		w.writeHeader(vr, uint32(length))
		w.buf = append(w.buf, value...)
		if length != len(value) {
			w.buf = append(w.buf, padByte(vr))
		}
	}
}
