package dicom

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/caio-sobreiro/dicomsend/types"
)

// VR (Value Representation) constants
const (
	VR_AE = "AE" // Application Entity
	VR_AS = "AS" // Age String
	VR_AT = "AT" // Attribute Tag
	VR_CS = "CS" // Code String
	VR_DA = "DA" // Date
	VR_DS = "DS" // Decimal String
	VR_DT = "DT" // Date Time
	VR_FL = "FL" // Floating Point Single
	VR_FD = "FD" // Floating Point Double
	VR_IS = "IS" // Integer String
	VR_LO = "LO" // Long String
	VR_LT = "LT" // Long Text
	VR_OB = "OB" // Other Byte
	VR_OD = "OD" // Other Double
	VR_OF = "OF" // Other Float
	VR_OL = "OL" // Other Long
	VR_OV = "OV" // Other Very Long
	VR_OW = "OW" // Other Word
	VR_PN = "PN" // Person Name
	VR_SH = "SH" // Short String
	VR_SL = "SL" // Signed Long
	VR_SQ = "SQ" // Sequence of Items
	VR_SS = "SS" // Signed Short
	VR_ST = "ST" // Short Text
	VR_SV = "SV" // Signed Very Long
	VR_TM = "TM" // Time
	VR_UC = "UC" // Unlimited Characters
	VR_UI = "UI" // Unique Identifier
	VR_UL = "UL" // Unsigned Long
	VR_UN = "UN" // Unknown
	VR_UR = "UR" // Universal Resource
	VR_US = "US" // Unsigned Short
	VR_UT = "UT" // Unlimited Text
	VR_UV = "UV" // Unsigned Very Long
)

// Common transfer syntax UIDs
const (
	TransferSyntaxImplicitVRLittleEndian = types.ImplicitVRLittleEndian
	TransferSyntaxExplicitVRLittleEndian = types.ExplicitVRLittleEndian
	TransferSyntaxExplicitVRBigEndian    = types.ExplicitVRBigEndian
)

var (
	SOPClassUIDTag    = Tag{0x0008, 0x0016}
	SOPInstanceUIDTag = Tag{0x0008, 0x0018}
)

// Tag represents a DICOM tag (group, element)
type Tag struct {
	Group   uint16
	Element uint16
}

// String returns the tag as a string in (GGGG,EEEE) format
func (t Tag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}

func (t Tag) less(o Tag) bool {
	if t.Group != o.Group {
		return t.Group < o.Group
	}
	return t.Element < o.Element
}

// Element represents a DICOM data element. Value holds a string or []string
// for text, uint16/uint32/int for numbers, []byte for binary data,
// []*Dataset for sequence items and [][]byte for encapsulated pixel data.
type Element struct {
	Tag    Tag
	VR     string
	Length uint32
	Value  interface{}
}

// Dataset is an in-memory data set. Encoded forms are cached per transfer
// syntax until the next mutation or Compact.
type Dataset struct {
	Elements map[Tag]*Element

	encoded map[string][]byte
}

// NewDataset creates a new empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Elements: make(map[Tag]*Element),
	}
}

// AddElement adds an element to the dataset
func (d *Dataset) AddElement(tag Tag, vr string, value interface{}) {
	if vr == "" {
		vr = determineVR(tag)
	}
	element := &Element{
		Tag:   tag,
		VR:    vr,
		Value: value,
	}
	d.Elements[tag] = element
	d.encoded = nil
}

// RemoveElement deletes the element with the given tag, if present
func (d *Dataset) RemoveElement(tag Tag) {
	delete(d.Elements, tag)
	d.encoded = nil
}

// Len returns the number of top-level elements
func (d *Dataset) Len() int {
	return len(d.Elements)
}

// GetElement returns an element by tag
func (d *Dataset) GetElement(tag Tag) (*Element, bool) {
	element, exists := d.Elements[tag]
	return element, exists
}

// GetString returns a string value for a tag
func (d *Dataset) GetString(tag Tag) string {
	if element, exists := d.Elements[tag]; exists {
		if str, ok := element.Value.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}

// GetStrings returns a slice of string values for a tag
func (d *Dataset) GetStrings(tag Tag) []string {
	if element, exists := d.Elements[tag]; exists {
		switch v := element.Value.(type) {
		case string:
			// Split by backslash for multiple values
			parts := strings.Split(v, "\\")
			result := make([]string, len(parts))
			for i, part := range parts {
				result[i] = strings.TrimSpace(part)
			}
			return result
		case []string:
			return v
		}
	}
	return nil
}

// Identity returns the SOP class and instance UIDs stored in the data set.
// The transfer syntax is left empty: an in-memory data set has none until
// it is encoded.
func (d *Dataset) Identity() ObjectIdentity {
	return ObjectIdentity{
		SOPClassUID:    d.GetString(SOPClassUIDTag),
		SOPInstanceUID: d.GetString(SOPInstanceUIDTag),
	}
}

// ParseDataset parses a DICOM dataset from raw bytes (Explicit VR Little Endian)
func ParseDataset(data []byte) (*Dataset, error) {
	return ParseDatasetWithTransferSyntax(data, TransferSyntaxExplicitVRLittleEndian)
}

// ParseDatasetWithTransferSyntax parses a dataset using the provided transfer syntax.
func ParseDatasetWithTransferSyntax(data []byte, transferSyntaxUID string) (*Dataset, error) {
	if transferSyntaxUID == "" {
		transferSyntaxUID = TransferSyntaxExplicitVRLittleEndian
	}
	enc, ok := EncodingOf(transferSyntaxUID)
	if !ok {
		return nil, fmt.Errorf("dicom: cannot parse data set encoded as %s", transferSyntaxUID)
	}

	r := newElementReader(data, enc)
	elems, err := r.readDataSet(len(data), false, nil)
	if err != nil {
		return nil, fmt.Errorf("parse data set: %w", err)
	}
	return datasetFromRaw(elems), nil
}

func datasetFromRaw(elems []*rawElement) *Dataset {
	dataset := NewDataset()
	for _, raw := range elems {
		element := &Element{Tag: raw.Tag, VR: raw.VR, Length: uint32(len(raw.Value))}
		switch {
		case raw.VR == VR_SQ:
			items := make([]*Dataset, 0, len(raw.Items))
			for _, item := range raw.Items {
				items = append(items, datasetFromRaw(item))
			}
			element.Value = items
			element.Length = UndefinedLength
		case raw.Encapsulated:
			element.Value = raw.Fragments
			element.Length = UndefinedLength
		default:
			value := raw.Value
			if raw.bigEndian {
				value = swapBytes(value, valueWidth(raw.VR))
			}
			element.Value = parseElementValue(raw.VR, value)
		}
		dataset.Elements[raw.Tag] = element
	}
	return dataset
}

// parseElementValue decodes a little endian value according to its VR
func parseElementValue(vr string, data []byte) interface{} {
	switch {
	case isStringVR(vr):
		value := string(data)
		if idx := strings.IndexByte(value, 0); idx != -1 {
			value = value[:idx]
		}
		return strings.TrimSpace(value)
	case vr == VR_US && len(data) == 2:
		return binary.LittleEndian.Uint16(data)
	case vr == VR_UL && len(data) == 4:
		return binary.LittleEndian.Uint32(data)
	default:
		value := make([]byte, len(data))
		copy(value, data)
		return value
	}
}

// Encode returns the data set encoded in transferSyntaxUID. Encapsulated
// syntaxes use the explicit VR little endian layout with the pixel data
// fragments written as held; deflated syntaxes are not supported. The result
// is cached until the data set changes.
func (d *Dataset) Encode(transferSyntaxUID string) ([]byte, error) {
	if transferSyntaxUID == "" {
		transferSyntaxUID = TransferSyntaxExplicitVRLittleEndian
	}
	if cached, ok := d.encoded[transferSyntaxUID]; ok {
		return cached, nil
	}
	enc, ok := EncodingOf(transferSyntaxUID)
	if !ok {
		return nil, fmt.Errorf("dicom: cannot encode in-memory data set as %s", transferSyntaxUID)
	}

	w := newElementWriter(enc)
	w.writeDataSet(d.toRaw())
	if d.encoded == nil {
		d.encoded = make(map[string][]byte)
	}
	d.encoded[transferSyntaxUID] = w.buf
	return w.buf, nil
}

// Compact drops cached encodings. The elements themselves are kept.
func (d *Dataset) Compact() {
	d.encoded = nil
}

// sortedTags returns the element tags in ascending order
func (d *Dataset) sortedTags() []Tag {
	tags := make([]Tag, 0, len(d.Elements))
	for tag := range d.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].less(tags[j]) })
	return tags
}

func (d *Dataset) toRaw() []*rawElement {
	tags := d.sortedTags()
	elems := make([]*rawElement, 0, len(tags))
	for _, tag := range tags {
		element := d.Elements[tag]
		raw := &rawElement{Tag: tag, VR: element.VR}
		switch v := element.Value.(type) {
		case []*Dataset:
			raw.VR = VR_SQ
			for _, item := range v {
				raw.Items = append(raw.Items, item.toRaw())
			}
		case [][]byte:
			raw.Encapsulated = true
			raw.Fragments = v
		default:
			raw.Value = encodeElementValue(element)
		}
		elems = append(elems, raw)
	}
	return elems
}

// encodeElementValue encodes an element value to little endian bytes
func encodeElementValue(element *Element) []byte {
	switch v := element.Value.(type) {
	case string:
		return []byte(strings.TrimRight(v, "\x00"))
	case []string:
		joined := strings.Join(v, "\\")
		return []byte(strings.TrimRight(joined, "\x00"))
	case []byte:
		return v
	case int:
		return []byte(fmt.Sprintf("%d", v))
	case uint16:
		return binary.LittleEndian.AppendUint16(nil, v)
	case uint32:
		return binary.LittleEndian.AppendUint32(nil, v)
	case nil:
		return nil
	default:
		return []byte(fmt.Sprintf("%v", v))
	}
}
