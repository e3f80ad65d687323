package dicom

import "encoding/binary"

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// explicitElement encodes one explicit VR little endian element
func explicitElement(tag Tag, vr string, value []byte) []byte {
	w := newElementWriter(ExplicitVRLittle)
	w.writeElement(&rawElement{Tag: tag, VR: vr, Value: value})
	return w.buf
}

// implicitElement encodes one implicit VR little endian element by hand
func implicitElement(tag Tag, value []byte) []byte {
	out := binary.LittleEndian.AppendUint16(nil, tag.Group)
	out = binary.LittleEndian.AppendUint16(out, tag.Element)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(value)))
	return append(out, value...)
}

// explicitSequence encodes a sequence of undefined length with one
// undefined length item per argument.
func explicitSequence(tag Tag, items ...[]byte) []byte {
	le := binary.LittleEndian
	out := le.AppendUint16(nil, tag.Group)
	out = le.AppendUint16(out, tag.Element)
	out = append(out, 'S', 'Q', 0x00, 0x00)
	out = le.AppendUint32(out, UndefinedLength)
	for _, item := range items {
		out = le.AppendUint16(out, 0xFFFE)
		out = le.AppendUint16(out, 0xE000)
		out = le.AppendUint32(out, UndefinedLength)
		out = append(out, item...)
		out = le.AppendUint16(out, 0xFFFE)
		out = le.AppendUint16(out, 0xE00D)
		out = le.AppendUint32(out, 0)
	}
	out = le.AppendUint16(out, 0xFFFE)
	out = le.AppendUint16(out, 0xE0DD)
	return le.AppendUint32(out, 0)
}

// uid returns a UI value padded to even length
func uid(s string) []byte {
	if len(s)%2 == 1 {
		return append([]byte(s), 0x00)
	}
	return []byte(s)
}
