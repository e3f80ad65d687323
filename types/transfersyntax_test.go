package types

import "testing"

func TestGetTransferSyntaxInfo(t *testing.T) {
	tests := []struct {
		name         string
		uid          string
		wantName     string
		wantCategory TransferSyntaxCategory
		wantRetired  bool
	}{
		{"Implicit VR Little Endian", ImplicitVRLittleEndian, "Implicit VR Little Endian", CategoryUncompressed, false},
		{"Explicit VR Little Endian", ExplicitVRLittleEndian, "Explicit VR Little Endian", CategoryUncompressed, false},
		{"Explicit VR Big Endian (retired)", ExplicitVRBigEndian, "Explicit VR Big Endian", CategoryUncompressed, true},
		{"Deflated", DeflatedExplicitVRLittleEndian, "Deflated Explicit VR Little Endian", CategoryDeflated, false},
		{"JPEG 2000 Lossless", JPEG2000Lossless, "JPEG 2000 Lossless Only", CategoryLossless, false},
		{"JPEG 2000 Lossy", JPEG2000, "JPEG 2000", CategoryLossy, false},
		{"JPEG Baseline", JPEGBaseline8Bit, "JPEG Baseline (Process 1)", CategoryLossy, false},
		{"JPEG Lossless SV1", JPEGLosslessSV1, "JPEG Lossless, Non-Hierarchical, First-Order Prediction", CategoryLossless, false},
		{"RLE Lossless", RLELossless, "RLE Lossless", CategoryLossless, false},
		{"Unknown Transfer Syntax", "1.2.3.4.5.6.7.8.9", "Unknown", CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetTransferSyntaxInfo(tt.uid)

			if info.Name != tt.wantName {
				t.Errorf("GetTransferSyntaxInfo(%s).Name = %s, want %s", tt.uid, info.Name, tt.wantName)
			}
			if info.Category != tt.wantCategory {
				t.Errorf("GetTransferSyntaxInfo(%s).Category = %s, want %s", tt.uid, info.Category, tt.wantCategory)
			}
			if info.IsRetired != tt.wantRetired {
				t.Errorf("GetTransferSyntaxInfo(%s).IsRetired = %v, want %v", tt.uid, info.IsRetired, tt.wantRetired)
			}
			if info.UID != tt.uid {
				t.Errorf("GetTransferSyntaxInfo(%s).UID = %s, want %s", tt.uid, info.UID, tt.uid)
			}
		})
	}
}

func TestIsCompressed(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		want bool
	}{
		{"Implicit VR", ImplicitVRLittleEndian, false},
		{"Explicit VR", ExplicitVRLittleEndian, false},
		{"Explicit VR Big Endian", ExplicitVRBigEndian, false},
		{"Deflated", DeflatedExplicitVRLittleEndian, true},
		{"JPEG Baseline", JPEGBaseline8Bit, true},
		{"JPEG Lossless", JPEGLossless, true},
		{"JPEG 2000", JPEG2000, true},
		{"JPEG-LS Lossless", JPEGLSLossless, true},
		{"RLE", RLELossless, true},
		{"H.265", HEVCH265MainProfileLevel51, true},
		{"Unknown", "1.2.3.4.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompressed(tt.uid); got != tt.want {
				t.Errorf("IsCompressed(%s) = %v, want %v", tt.uid, got, tt.want)
			}
		})
	}
}

func TestIsLossless(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		want bool
	}{
		{"Implicit VR", ImplicitVRLittleEndian, true},
		{"Explicit VR Big Endian", ExplicitVRBigEndian, true},
		{"Deflated", DeflatedExplicitVRLittleEndian, true},
		{"JPEG Lossless SV1", JPEGLosslessSV1, true},
		{"HTJ2K Lossless", HTJ2KLossless, true},
		{"JPEG Baseline", JPEGBaseline8Bit, false},
		{"JPEG-LS Near-Lossless", JPEGLSNearLossless, false},
		{"HTJ2K", HTJ2K, false},
		{"Unknown", "1.2.3.4.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLossless(tt.uid); got != tt.want {
				t.Errorf("IsLossless(%s) = %v, want %v", tt.uid, got, tt.want)
			}
		})
	}
}

func TestIsUncompressed(t *testing.T) {
	for _, uid := range UncompressedTransferSyntaxes() {
		if !IsUncompressed(uid) {
			t.Errorf("IsUncompressed(%s) = false, want true", uid)
		}
	}
	for _, uid := range []string{DeflatedExplicitVRLittleEndian, JPEGLosslessSV1, "1.2.3"} {
		if IsUncompressed(uid) {
			t.Errorf("IsUncompressed(%s) = true, want false", uid)
		}
	}
}

func TestUncompressedTransferSyntaxesOrder(t *testing.T) {
	got := UncompressedTransferSyntaxes()
	want := []string{ExplicitVRLittleEndian, ExplicitVRBigEndian, ImplicitVRLittleEndian}
	if len(got) != len(want) {
		t.Fatalf("UncompressedTransferSyntaxes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UncompressedTransferSyntaxes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// callers may append to the result
	got[0] = "mutated"
	if UncompressedTransferSyntaxes()[0] != ExplicitVRLittleEndian {
		t.Error("UncompressedTransferSyntaxes() returned shared backing array")
	}
}

func TestBuiltinTransferSyntaxesCompleteness(t *testing.T) {
	seen := make(map[string]bool)
	for _, info := range builtinTransferSyntaxes {
		t.Run(info.UID, func(t *testing.T) {
			if seen[info.UID] {
				t.Errorf("duplicate entry for %s", info.UID)
			}
			seen[info.UID] = true
			if info.Name == "" {
				t.Error("Name is empty")
			}
			if info.Category == CategoryUnknown {
				t.Error("Category is unknown")
			}
			if !IsValidUID(info.UID) {
				t.Errorf("UID %s is not syntactically valid", info.UID)
			}
		})
	}
}

func BenchmarkGetTransferSyntaxInfo(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GetTransferSyntaxInfo(JPEG2000Lossless)
	}
}
