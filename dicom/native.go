package dicom

import (
	"encoding/binary"
	"fmt"

	"github.com/caio-sobreiro/dicomsend/types"
)

// ConvertNative re-encodes a data set from one uncompressed transfer syntax
// to another. Group length elements are dropped because their values no
// longer hold after re-encoding, and sequences are written with undefined
// length.
func ConvertNative(data []byte, fromUID, toUID string) ([]byte, error) {
	if fromUID == toUID {
		return data, nil
	}
	if !types.IsUncompressed(fromUID) || !types.IsUncompressed(toUID) {
		return nil, fmt.Errorf("dicom: no native conversion from %s to %s", fromUID, toUID)
	}
	from, _ := EncodingOf(fromUID)
	to, _ := EncodingOf(toUID)

	r := newElementReader(data, from)
	elems, err := r.readDataSet(len(data), false, nil)
	if err != nil {
		return nil, fmt.Errorf("read %s data set: %w", from, err)
	}

	pixelVR := VR_OW
	if bits, ok := bitsAllocated(elems); ok && bits <= 8 {
		pixelVR = VR_OB
	}

	w := newElementWriter(to)
	w.writeDataSet(prepareElements(elems, from, pixelVR))
	return w.buf, nil
}

// prepareElements drops group lengths and, for data read without VRs,
// settles the pixel data VR from Bits Allocated.
func prepareElements(elems []*rawElement, from Encoding, pixelVR string) []*rawElement {
	out := make([]*rawElement, 0, len(elems))
	for _, elem := range elems {
		if elem.Tag.Element == 0x0000 {
			continue
		}
		if from.ImplicitVR && elem.Tag == PixelDataTag && !elem.Encapsulated {
			elem.VR = pixelVR
		}
		for i, item := range elem.Items {
			elem.Items[i] = prepareElements(item, from, pixelVR)
		}
		out = append(out, elem)
	}
	return out
}

func bitsAllocated(elems []*rawElement) (uint16, bool) {
	for _, elem := range elems {
		if elem.Tag != BitsAllocatedTag || len(elem.Value) != 2 {
			continue
		}
		if elem.bigEndian {
			return binary.BigEndian.Uint16(elem.Value), true
		}
		return binary.LittleEndian.Uint16(elem.Value), true
	}
	return 0, false
}
