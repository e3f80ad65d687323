package dicom

// vrDictionary maps the attributes this module reads or re-encodes to their
// value representation. Implicit VR data sets carry no VR on the wire, so
// anything missing here is treated as UN.
var vrDictionary = map[Tag]string{
	// File meta information
	{0x0002, 0x0001}: VR_OB,
	{0x0002, 0x0002}: VR_UI,
	{0x0002, 0x0003}: VR_UI,
	{0x0002, 0x0010}: VR_UI,
	{0x0002, 0x0012}: VR_UI,
	{0x0002, 0x0013}: VR_SH,
	{0x0002, 0x0016}: VR_AE,

	// Directory structure
	{0x0004, 0x1130}: VR_CS,
	{0x0004, 0x1141}: VR_CS,
	{0x0004, 0x1142}: VR_CS,
	{0x0004, 0x1200}: VR_UL,
	{0x0004, 0x1202}: VR_UL,
	{0x0004, 0x1212}: VR_US,
	{0x0004, 0x1220}: VR_SQ,
	{0x0004, 0x1400}: VR_UL,
	{0x0004, 0x1410}: VR_US,
	{0x0004, 0x1420}: VR_UL,
	{0x0004, 0x1430}: VR_CS,
	{0x0004, 0x1500}: VR_CS,
	{0x0004, 0x1510}: VR_UI,
	{0x0004, 0x1511}: VR_UI,
	{0x0004, 0x1512}: VR_UI,

	{0x0008, 0x0005}: VR_CS, // Specific Character Set
	{0x0008, 0x0006}: VR_SQ, // Language Code Sequence
	{0x0008, 0x0008}: VR_CS, // Image Type
	{0x0008, 0x0012}: VR_DA,
	{0x0008, 0x0013}: VR_TM,
	{0x0008, 0x0016}: VR_UI, // SOP Class UID
	{0x0008, 0x0018}: VR_UI, // SOP Instance UID
	{0x0008, 0x0020}: VR_DA, // Study Date
	{0x0008, 0x0021}: VR_DA,
	{0x0008, 0x0022}: VR_DA,
	{0x0008, 0x0023}: VR_DA,
	{0x0008, 0x0030}: VR_TM, // Study Time
	{0x0008, 0x0031}: VR_TM,
	{0x0008, 0x0032}: VR_TM,
	{0x0008, 0x0033}: VR_TM,
	{0x0008, 0x0050}: VR_SH, // Accession Number
	{0x0008, 0x0052}: VR_CS, // Query/Retrieve Level
	{0x0008, 0x0054}: VR_AE, // Retrieve AE Title
	{0x0008, 0x0056}: VR_CS,
	{0x0008, 0x0060}: VR_CS, // Modality
	{0x0008, 0x0064}: VR_CS,
	{0x0008, 0x0070}: VR_LO,
	{0x0008, 0x0080}: VR_LO, // Institution Name
	{0x0008, 0x0090}: VR_PN, // Referring Physician's Name
	{0x0008, 0x1010}: VR_SH,
	{0x0008, 0x1030}: VR_LO, // Study Description
	{0x0008, 0x103E}: VR_LO, // Series Description
	{0x0008, 0x1040}: VR_LO,
	{0x0008, 0x1050}: VR_PN,
	{0x0008, 0x1060}: VR_PN,
	{0x0008, 0x1070}: VR_PN,
	{0x0008, 0x1090}: VR_LO,
	{0x0008, 0x1110}: VR_SQ,
	{0x0008, 0x1111}: VR_SQ,
	{0x0008, 0x1115}: VR_SQ,
	{0x0008, 0x1140}: VR_SQ,
	{0x0008, 0x1150}: VR_UI,
	{0x0008, 0x1155}: VR_UI,
	{0x0008, 0x2112}: VR_SQ,

	{0x0010, 0x0010}: VR_PN, // Patient's Name
	{0x0010, 0x0020}: VR_LO, // Patient ID
	{0x0010, 0x0030}: VR_DA, // Patient's Birth Date
	{0x0010, 0x0040}: VR_CS, // Patient's Sex
	{0x0010, 0x1010}: VR_AS, // Patient's Age
	{0x0010, 0x1020}: VR_DS,
	{0x0010, 0x1030}: VR_DS,

	{0x0018, 0x0015}: VR_CS, // Body Part Examined
	{0x0018, 0x0050}: VR_DS,
	{0x0018, 0x0060}: VR_DS,
	{0x0018, 0x0088}: VR_DS,
	{0x0018, 0x1020}: VR_LO,
	{0x0018, 0x1030}: VR_LO,
	{0x0018, 0x1150}: VR_IS,
	{0x0018, 0x1151}: VR_IS,
	{0x0018, 0x1152}: VR_IS,
	{0x0018, 0x5100}: VR_CS,

	{0x0020, 0x000D}: VR_UI, // Study Instance UID
	{0x0020, 0x000E}: VR_UI, // Series Instance UID
	{0x0020, 0x0010}: VR_SH, // Study ID
	{0x0020, 0x0011}: VR_IS, // Series Number
	{0x0020, 0x0012}: VR_IS,
	{0x0020, 0x0013}: VR_IS, // Instance Number
	{0x0020, 0x0020}: VR_CS, // Patient Orientation
	{0x0020, 0x0032}: VR_DS,
	{0x0020, 0x0037}: VR_DS,
	{0x0020, 0x0052}: VR_UI,
	{0x0020, 0x1041}: VR_DS,

	{0x0028, 0x0002}: VR_US, // Samples per Pixel
	{0x0028, 0x0004}: VR_CS, // Photometric Interpretation
	{0x0028, 0x0006}: VR_US,
	{0x0028, 0x0008}: VR_IS,
	{0x0028, 0x0010}: VR_US, // Rows
	{0x0028, 0x0011}: VR_US, // Columns
	{0x0028, 0x0030}: VR_DS,
	{0x0028, 0x0100}: VR_US, // Bits Allocated
	{0x0028, 0x0101}: VR_US,
	{0x0028, 0x0102}: VR_US,
	{0x0028, 0x0103}: VR_US,
	{0x0028, 0x1050}: VR_DS,
	{0x0028, 0x1051}: VR_DS,
	{0x0028, 0x1052}: VR_DS,
	{0x0028, 0x1053}: VR_DS,
	{0x0028, 0x2110}: VR_CS,

	{0x0040, 0x0244}: VR_DA,
	{0x0040, 0x0245}: VR_TM,
	{0x0040, 0x0253}: VR_SH,
	{0x0040, 0xA730}: VR_SQ,

	{0x0088, 0x0200}: VR_SQ, // Icon Image Sequence

	{0x7FE0, 0x0010}: VR_OW, // Pixel Data
}

// determineVR returns the VR of tag for implicit VR data sets
func determineVR(tag Tag) string {
	if vr, ok := vrDictionary[tag]; ok {
		return vr
	}
	switch {
	case tag.Element == 0x0000:
		return VR_UL
	case tag.Group%2 == 1 && tag.Element >= 0x0010 && tag.Element <= 0x00FF:
		return VR_LO
	case tag.Group&0xFF00 == 0x6000 && tag.Element == 0x3000:
		return VR_OW
	}
	return VR_UN
}
