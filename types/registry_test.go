package types

import "testing"

func TestRegistryCategory(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		uid  string
		want TransferSyntaxCategory
	}{
		{ExplicitVRLittleEndian, CategoryUncompressed},
		{ExplicitVRBigEndian, CategoryUncompressed},
		{DeflatedExplicitVRLittleEndian, CategoryDeflated},
		{JPEGLosslessSV1, CategoryLossless},
		{JPEGBaseline8Bit, CategoryLossy},
		{"1.2.3.4", CategoryUnknown},
	}

	for _, tt := range tests {
		if got := r.Category(tt.uid); got != tt.want {
			t.Errorf("Category(%s) = %s, want %s", tt.uid, got, tt.want)
		}
	}
}

func TestEmptyRegistryStillKnowsNativeSyntaxes(t *testing.T) {
	r := NewEmptyRegistry()
	if got := r.Category(ImplicitVRLittleEndian); got != CategoryUncompressed {
		t.Errorf("Category(implicit) = %s, want uncompressed", got)
	}
	if _, ok := r.TransferSyntax(ImplicitVRLittleEndian); ok {
		t.Error("empty registry should have no transfer syntax entries")
	}
}

func TestRegistryRegisterPrivate(t *testing.T) {
	r := NewRegistry()
	private := "1.3.6.1.4.1.5962.1.2.99"
	if _, ok := r.SOPClass(private); ok {
		t.Fatal("private class unexpectedly present")
	}

	r.RegisterSOPClass(SOPClassInfo{UID: private, Name: "Private Storage", Category: CategoryStorage})
	if got := r.SOPClassName(private); got != "Private Storage" {
		t.Errorf("SOPClassName = %s, want Private Storage", got)
	}
	if _, ok := DefaultRegistry().SOPClass(private); ok {
		t.Error("registering on a copy leaked into the default registry")
	}
}

func TestRegistryNames(t *testing.T) {
	r := DefaultRegistry()
	if got := r.SOPClassName(CTImageStorage); got != "CT Image Storage" {
		t.Errorf("SOPClassName(CT) = %s", got)
	}
	if got := r.TransferSyntaxName("1.2.3"); got != "1.2.3" {
		t.Errorf("TransferSyntaxName(unknown) = %s, want the UID", got)
	}
}
