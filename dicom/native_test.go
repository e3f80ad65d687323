package dicom

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/caio-sobreiro/dicomsend/types"
)

func nativeDataset() *Dataset {
	item := NewDataset()
	item.AddElement(Tag{0x0008, 0x1155}, VR_UI, "1.2.3.4")

	ds := NewDataset()
	ds.AddElement(SOPClassUIDTag, VR_UI, types.SecondaryCaptureImageStorage)
	ds.AddElement(SOPInstanceUIDTag, VR_UI, "1.2.3.4.5")
	ds.AddElement(Tag{0x0008, 0x1140}, VR_SQ, []*Dataset{item})
	ds.AddElement(Tag{0x0028, 0x0010}, VR_US, uint16(2))
	ds.AddElement(Tag{0x0028, 0x0011}, VR_US, uint16(1))
	ds.AddElement(BitsAllocatedTag, VR_US, uint16(16))
	ds.AddElement(PixelDataTag, VR_OW, []byte{0x01, 0x02, 0x03, 0x04})
	return ds
}

func TestConvertNative_AllPairs(t *testing.T) {
	source := nativeDataset()
	syntaxes := types.UncompressedTransferSyntaxes()

	for _, from := range syntaxes {
		for _, to := range syntaxes {
			t.Run(from+"->"+to, func(t *testing.T) {
				data, err := source.Encode(from)
				if err != nil {
					t.Fatal(err)
				}
				converted, err := ConvertNative(data, from, to)
				if err != nil {
					t.Fatalf("ConvertNative() error = %v", err)
				}

				want, _ := source.Encode(to)
				if !bytes.Equal(converted, want) {
					t.Errorf("ConvertNative() = % x\nwant % x", converted, want)
				}
			})
		}
	}
}

func TestConvertNative_DropsGroupLength(t *testing.T) {
	data := concat(
		explicitElement(Tag{0x0008, 0x0000}, VR_UL, []byte{0x10, 0x00, 0x00, 0x00}),
		explicitElement(SOPInstanceUIDTag, VR_UI, uid("1.2.3")),
	)

	converted, err := ConvertNative(data, types.ExplicitVRLittleEndian, types.ImplicitVRLittleEndian)
	if err != nil {
		t.Fatalf("ConvertNative() error = %v", err)
	}
	want := implicitElement(SOPInstanceUIDTag, uid("1.2.3"))
	if !bytes.Equal(converted, want) {
		t.Errorf("ConvertNative() = % x, want % x", converted, want)
	}
}

func TestConvertNative_ImplicitPixelDataVR(t *testing.T) {
	tests := []struct {
		name string
		bits uint16
		vr   string
	}{
		{"8 bit", 8, VR_OB},
		{"16 bit", 16, VR_OW},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := concat(
				implicitElement(BitsAllocatedTag, binary.LittleEndian.AppendUint16(nil, tt.bits)),
				implicitElement(PixelDataTag, []byte{0x00, 0x01}),
			)
			converted, err := ConvertNative(data, types.ImplicitVRLittleEndian, types.ExplicitVRLittleEndian)
			if err != nil {
				t.Fatalf("ConvertNative() error = %v", err)
			}
			ds, err := ParseDataset(converted)
			if err != nil {
				t.Fatal(err)
			}
			pixels, _ := ds.GetElement(PixelDataTag)
			if pixels.VR != tt.vr {
				t.Errorf("Pixel data VR = %s, want %s", pixels.VR, tt.vr)
			}
		})
	}
}

func TestConvertNative_UnknownPrivateBecomesUN(t *testing.T) {
	data := implicitElement(Tag{0x0009, 0x1001}, []byte{0xDE, 0xAD})

	converted, err := ConvertNative(data, types.ImplicitVRLittleEndian, types.ExplicitVRLittleEndian)
	if err != nil {
		t.Fatalf("ConvertNative() error = %v", err)
	}
	if vr := string(converted[4:6]); vr != VR_UN {
		t.Errorf("VR = %s, want UN", vr)
	}
}

func TestConvertNative_RejectsCompressed(t *testing.T) {
	if _, err := ConvertNative([]byte{}, types.JPEGLossless, types.ExplicitVRLittleEndian); err == nil {
		t.Error("Expected an error converting from a compressed syntax")
	}
}

func TestConvertNative_SameSyntaxIsIdentity(t *testing.T) {
	data := []byte{0x01, 0x02}
	out, err := ConvertNative(data, types.ExplicitVRLittleEndian, types.ExplicitVRLittleEndian)
	if err != nil || !bytes.Equal(out, data) {
		t.Errorf("ConvertNative() = %v, %v", out, err)
	}
}

func TestEncodingOf(t *testing.T) {
	tests := []struct {
		uid  string
		want Encoding
		ok   bool
	}{
		{types.ImplicitVRLittleEndian, ImplicitVRLittle, true},
		{types.ExplicitVRLittleEndian, ExplicitVRLittle, true},
		{types.ExplicitVRBigEndian, ExplicitVRBig, true},
		{types.JPEG2000Lossless, ExplicitVRLittle, true},
		{types.DeflatedExplicitVRLittleEndian, Encoding{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.uid, func(t *testing.T) {
			got, ok := EncodingOf(tt.uid)
			if got != tt.want || ok != tt.ok {
				t.Errorf("EncodingOf() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
