package types

// DICOM Transfer Syntax UIDs as defined in DICOM Part 5, Section 8 and Part 6, Annex A.4
// https://dicom.nema.org/medical/dicom/current/output/chtml/part05/chapter_8.html

// Uncompressed Transfer Syntaxes
const (
	// ImplicitVRLittleEndian - Default Transfer Syntax for DICOM
	// Uses implicit VR encoding with little endian byte ordering
	ImplicitVRLittleEndian = "1.2.840.10008.1.2"

	// ExplicitVRLittleEndian - Explicit VR with little endian byte ordering
	// Recommended for general use due to explicit data types
	ExplicitVRLittleEndian = "1.2.840.10008.1.2.1"

	// ExplicitVRBigEndian - Explicit VR with big endian byte ordering (retired)
	// Rarely used, included for completeness
	ExplicitVRBigEndian = "1.2.840.10008.1.2.2"

	// DeflatedExplicitVRLittleEndian - Deflate compression with explicit VR
	// Uses zlib/deflate compression on top of explicit VR encoding
	DeflatedExplicitVRLittleEndian = "1.2.840.10008.1.2.1.99"
)

// JPEG Lossy Compression Transfer Syntaxes
const (
	// JPEGBaseline8Bit - JPEG Baseline (Process 1)
	// Default lossy JPEG compression, 8-bit samples
	JPEGBaseline8Bit = "1.2.840.10008.1.2.4.50"

	// JPEGExtended12Bit - JPEG Extended (Process 2 & 4)
	// Lossy JPEG compression, 8-12 bit samples
	JPEGExtended12Bit = "1.2.840.10008.1.2.4.51"

	// JPEGSpectralSelectionNonHierarchical68 - JPEG Extended (Process 3 & 5)
	JPEGSpectralSelectionNonHierarchical68 = "1.2.840.10008.1.2.4.52"

	// JPEGSpectralSelectionNonHierarchical79 - JPEG Spectral Selection (Process 6 & 8)
	JPEGSpectralSelectionNonHierarchical79 = "1.2.840.10008.1.2.4.53"

	// JPEGFullProgressionNonHierarchical1012 - JPEG Full Progression (Process 10 & 12)
	JPEGFullProgressionNonHierarchical1012 = "1.2.840.10008.1.2.4.54"

	// JPEGFullProgressionNonHierarchical1113 - JPEG Full Progression (Process 11 & 13)
	JPEGFullProgressionNonHierarchical1113 = "1.2.840.10008.1.2.4.55"
)

// JPEG Lossless Compression Transfer Syntaxes
const (
	// JPEGLossless - JPEG Lossless (Process 14)
	JPEGLossless = "1.2.840.10008.1.2.4.57"

	// JPEGLosslessSV1 - JPEG Lossless (Process 14, Selection Value 1)
	// Most commonly used lossless JPEG variant
	JPEGLosslessSV1 = "1.2.840.10008.1.2.4.70"

	// JPEGLosslessNonHierarchical1517 - JPEG Lossless (Process 15)
	JPEGLosslessNonHierarchical1517 = "1.2.840.10008.1.2.4.58"

	// JPEGLosslessNonHierarchical1618 - JPEG Lossless (Process 16)
	JPEGLosslessNonHierarchical1618 = "1.2.840.10008.1.2.4.59"
)

// JPEG 2000 Transfer Syntaxes
const (
	// JPEG2000Lossless - JPEG 2000 Image Compression (Lossless Only)
	// Modern lossless compression, better compression than JPEG lossless
	JPEG2000Lossless = "1.2.840.10008.1.2.4.90"

	// JPEG2000 - JPEG 2000 Image Compression (lossy or lossless)
	// Supports both lossy and lossless compression
	JPEG2000 = "1.2.840.10008.1.2.4.91"

	// JPEG2000Part2MultiComponentLossless - JPEG 2000 Part 2 Multi-component (Lossless)
	JPEG2000Part2MultiComponentLossless = "1.2.840.10008.1.2.4.92"

	// JPEG2000Part2MultiComponent - JPEG 2000 Part 2 Multi-component
	JPEG2000Part2MultiComponent = "1.2.840.10008.1.2.4.93"
)

// JPEG-LS Transfer Syntaxes
const (
	// JPEGLSLossless - JPEG-LS Lossless Image Compression
	// Lossless compression with good performance
	JPEGLSLossless = "1.2.840.10008.1.2.4.80"

	// JPEGLSNearLossless - JPEG-LS Lossy (Near-Lossless) Image Compression
	// Near-lossless with controlled error bounds
	JPEGLSNearLossless = "1.2.840.10008.1.2.4.81"
)

// RLE Transfer Syntax
const (
	// RLELossless - RLE Lossless Compression
	// Simple run-length encoding, lossless compression
	RLELossless = "1.2.840.10008.1.2.5"
)

// MPEG Video Transfer Syntaxes
const (
	// MPEG2MainProfile - MPEG2 Main Profile @ Main Level
	MPEG2MainProfile = "1.2.840.10008.1.2.4.100"

	// MPEG2MainProfileHighLevel - MPEG2 Main Profile @ High Level
	MPEG2MainProfileHighLevel = "1.2.840.10008.1.2.4.101"

	// MPEG4AVCH264HighProfile - MPEG-4 AVC/H.264 High Profile / Level 4.1
	MPEG4AVCH264HighProfile = "1.2.840.10008.1.2.4.102"

	// MPEG4AVCH264BDCompatibleHighProfile - MPEG-4 AVC/H.264 BD-compatible High Profile / Level 4.1
	MPEG4AVCH264BDCompatibleHighProfile = "1.2.840.10008.1.2.4.103"

	// MPEG4AVCH264HighProfileLevel42 - MPEG-4 AVC/H.264 High Profile / Level 4.2 For 2D Video
	MPEG4AVCH264HighProfileLevel42 = "1.2.840.10008.1.2.4.104"

	// MPEG4AVCH264HighProfileLevel42Stereo - MPEG-4 AVC/H.264 High Profile / Level 4.2 For 3D Video
	MPEG4AVCH264HighProfileLevel42Stereo = "1.2.840.10008.1.2.4.105"

	// MPEG4AVCH264StereoHighProfile - MPEG-4 AVC/H.264 Stereo High Profile / Level 4.2
	MPEG4AVCH264StereoHighProfile = "1.2.840.10008.1.2.4.106"

	// HEVCH265MainProfileLevel51 - HEVC/H.265 Main Profile / Level 5.1
	HEVCH265MainProfileLevel51 = "1.2.840.10008.1.2.4.107"

	// HEVCH265Main10ProfileLevel51 - HEVC/H.265 Main 10 Profile / Level 5.1
	HEVCH265Main10ProfileLevel51 = "1.2.840.10008.1.2.4.108"
)

// JPIP Transfer Syntaxes (Referenced and Deflate)
const (
	// JPIPReferenced - JPIP Referenced
	JPIPReferenced = "1.2.840.10008.1.2.4.94"

	// JPIPReferencedDeflate - JPIP Referenced Deflate
	JPIPReferencedDeflate = "1.2.840.10008.1.2.4.95"
)

// High-Throughput JPEG 2000 Transfer Syntaxes
const (
	// HTJ2KLossless - High-Throughput JPEG 2000 Image Compression (Lossless Only)
	HTJ2KLossless = "1.2.840.10008.1.2.4.201"

	// HTJ2KLosslessRPCL - High-Throughput JPEG 2000 with RPCL Options (Lossless Only)
	HTJ2KLosslessRPCL = "1.2.840.10008.1.2.4.202"

	// HTJ2K - High-Throughput JPEG 2000
	HTJ2K = "1.2.840.10008.1.2.4.203"
)


// TransferSyntaxCategory groups transfer syntaxes by how their data can be
// offered on a presentation context.
type TransferSyntaxCategory int

const (
	// CategoryUnknown is used for UIDs that are not in the dictionary
	CategoryUnknown TransferSyntaxCategory = iota
	// CategoryUncompressed covers the three native encodings
	CategoryUncompressed
	// CategoryDeflated covers stream-level (zlib) compression of the whole dataset
	CategoryDeflated
	// CategoryLossless covers encapsulated pixel data compressed without loss
	CategoryLossless
	// CategoryLossy covers every other encapsulated or referenced encoding
	CategoryLossy
)

func (c TransferSyntaxCategory) String() string {
	switch c {
	case CategoryUncompressed:
		return "uncompressed"
	case CategoryDeflated:
		return "deflated"
	case CategoryLossless:
		return "lossless"
	case CategoryLossy:
		return "lossy"
	default:
		return "unknown"
	}
}

// TransferSyntaxInfo provides metadata about a transfer syntax
type TransferSyntaxInfo struct {
	UID                  string
	Name                 string
	Category             TransferSyntaxCategory
	IsRetired            bool
	SupportsEncapsulated bool
}

// IsCompressed reports whether the pixel data or the whole stream is compressed.
func (i TransferSyntaxInfo) IsCompressed() bool {
	return i.Category == CategoryDeflated || i.Category == CategoryLossless || i.Category == CategoryLossy
}

// IsLossless reports whether decoding restores the original values.
// Uncompressed and deflated syntaxes are lossless.
func (i TransferSyntaxInfo) IsLossless() bool {
	return i.Category != CategoryLossy && i.Category != CategoryUnknown
}

// UncompressedTransferSyntaxes returns the native encodings in the order they
// are proposed: explicit little endian, explicit big endian, implicit little endian.
func UncompressedTransferSyntaxes() []string {
	return []string{
		ExplicitVRLittleEndian,
		ExplicitVRBigEndian,
		ImplicitVRLittleEndian,
	}
}

// GetTransferSyntaxInfo returns information about a transfer syntax UID from
// the built-in dictionary.
func GetTransferSyntaxInfo(uid string) *TransferSyntaxInfo {
	info, ok := DefaultRegistry().TransferSyntax(uid)
	if !ok {
		return &TransferSyntaxInfo{
			UID:      uid,
			Name:     "Unknown",
			Category: CategoryUnknown,
		}
	}
	return &info
}

// IsUncompressed returns true for the three native encodings
func IsUncompressed(uid string) bool {
	switch uid {
	case ImplicitVRLittleEndian, ExplicitVRLittleEndian, ExplicitVRBigEndian:
		return true
	}
	return false
}

// IsCompressed returns true if the transfer syntax uses compression
func IsCompressed(uid string) bool {
	return GetTransferSyntaxInfo(uid).IsCompressed()
}

// IsLossless returns true if the transfer syntax is lossless.
// Uncompressed transfer syntaxes are considered lossless.
func IsLossless(uid string) bool {
	return GetTransferSyntaxInfo(uid).IsLossless()
}

// IsRetired returns true if the transfer syntax is retired
func IsRetired(uid string) bool {
	return GetTransferSyntaxInfo(uid).IsRetired
}

func ts(uid, name string, category TransferSyntaxCategory, retired bool) TransferSyntaxInfo {
	return TransferSyntaxInfo{
		UID:                  uid,
		Name:                 name,
		Category:             category,
		IsRetired:            retired,
		SupportsEncapsulated: category == CategoryLossless || category == CategoryLossy,
	}
}

// builtinTransferSyntaxes lists every transfer syntax the decoder layer knows about
var builtinTransferSyntaxes = []TransferSyntaxInfo{
	ts(ImplicitVRLittleEndian, "Implicit VR Little Endian", CategoryUncompressed, false),
	ts(ExplicitVRLittleEndian, "Explicit VR Little Endian", CategoryUncompressed, false),
	ts(ExplicitVRBigEndian, "Explicit VR Big Endian", CategoryUncompressed, true),
	ts(DeflatedExplicitVRLittleEndian, "Deflated Explicit VR Little Endian", CategoryDeflated, false),

	ts(JPEGBaseline8Bit, "JPEG Baseline (Process 1)", CategoryLossy, false),
	ts(JPEGExtended12Bit, "JPEG Extended (Process 2 & 4)", CategoryLossy, false),
	ts(JPEGSpectralSelectionNonHierarchical68, "JPEG Extended (Process 3 & 5)", CategoryLossy, true),
	ts(JPEGSpectralSelectionNonHierarchical79, "JPEG Spectral Selection, Non-Hierarchical (Process 6 & 8)", CategoryLossy, true),
	ts(JPEGFullProgressionNonHierarchical1012, "JPEG Full Progression, Non-Hierarchical (Process 10 & 12)", CategoryLossy, true),
	ts(JPEGFullProgressionNonHierarchical1113, "JPEG Full Progression, Non-Hierarchical (Process 11 & 13)", CategoryLossy, true),

	ts(JPEGLossless, "JPEG Lossless, Non-Hierarchical (Process 14)", CategoryLossless, false),
	ts(JPEGLosslessNonHierarchical1517, "JPEG Lossless, Non-Hierarchical (Process 15)", CategoryLossless, true),
	ts(JPEGLosslessNonHierarchical1618, "JPEG Lossless, Hierarchical (Process 16)", CategoryLossless, true),
	ts(JPEGLosslessSV1, "JPEG Lossless, Non-Hierarchical, First-Order Prediction", CategoryLossless, false),

	ts(JPEGLSLossless, "JPEG-LS Lossless", CategoryLossless, false),
	ts(JPEGLSNearLossless, "JPEG-LS Near-Lossless", CategoryLossy, false),

	ts(JPEG2000Lossless, "JPEG 2000 Lossless Only", CategoryLossless, false),
	ts(JPEG2000, "JPEG 2000", CategoryLossy, false),
	ts(JPEG2000Part2MultiComponentLossless, "JPEG 2000 Part 2 Multi-component Lossless Only", CategoryLossless, false),
	ts(JPEG2000Part2MultiComponent, "JPEG 2000 Part 2 Multi-component", CategoryLossy, false),

	ts(JPIPReferenced, "JPIP Referenced", CategoryLossy, false),
	ts(JPIPReferencedDeflate, "JPIP Referenced Deflate", CategoryDeflated, false),

	ts(RLELossless, "RLE Lossless", CategoryLossless, false),

	ts(MPEG2MainProfile, "MPEG2 Main Profile @ Main Level", CategoryLossy, false),
	ts(MPEG2MainProfileHighLevel, "MPEG2 Main Profile @ High Level", CategoryLossy, false),
	ts(MPEG4AVCH264HighProfile, "MPEG-4 AVC/H.264 High Profile / Level 4.1", CategoryLossy, false),
	ts(MPEG4AVCH264BDCompatibleHighProfile, "MPEG-4 AVC/H.264 BD-compatible High Profile / Level 4.1", CategoryLossy, false),
	ts(MPEG4AVCH264HighProfileLevel42, "MPEG-4 AVC/H.264 High Profile / Level 4.2 For 2D Video", CategoryLossy, false),
	ts(MPEG4AVCH264HighProfileLevel42Stereo, "MPEG-4 AVC/H.264 High Profile / Level 4.2 For 3D Video", CategoryLossy, false),
	ts(MPEG4AVCH264StereoHighProfile, "MPEG-4 AVC/H.264 Stereo High Profile / Level 4.2", CategoryLossy, false),
	ts(HEVCH265MainProfileLevel51, "HEVC/H.265 Main Profile / Level 5.1", CategoryLossy, false),
	ts(HEVCH265Main10ProfileLevel51, "HEVC/H.265 Main 10 Profile / Level 5.1", CategoryLossy, false),

	ts(HTJ2KLossless, "High-Throughput JPEG 2000 Lossless Only", CategoryLossless, false),
	ts(HTJ2KLosslessRPCL, "High-Throughput JPEG 2000 with RPCL Options Lossless Only", CategoryLossless, false),
	ts(HTJ2K, "High-Throughput JPEG 2000", CategoryLossy, false),
}
