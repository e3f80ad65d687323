package types

// DICOM Application Context UID
// The Application Context defines the DICOM application-level message exchange rules.
const ApplicationContextUID = "1.2.840.10008.3.1.1.1"

// DICOM SOP Class UIDs as defined in DICOM Part 4, Annex B
// https://dicom.nema.org/medical/dicom/current/output/chtml/part04/sect_B.5.html

// Verification Service
const (
	VerificationSOPClass = "1.2.840.10008.1.1"
)

// Storage Service - Image Storage SOP Classes
const (
	// Computed Radiography
	ComputedRadiographyImageStorage = "1.2.840.10008.5.1.4.1.1.1"

	// Digital Radiography
	DigitalXRayImageStorageForPresentation            = "1.2.840.10008.5.1.4.1.1.1.1"
	DigitalXRayImageStorageForProcessing              = "1.2.840.10008.5.1.4.1.1.1.1.1"
	DigitalMammographyXRayImageStorageForPresentation = "1.2.840.10008.5.1.4.1.1.1.2"
	DigitalMammographyXRayImageStorageForProcessing   = "1.2.840.10008.5.1.4.1.1.1.2.1"
	DigitalIntraOralXRayImageStorageForPresentation   = "1.2.840.10008.5.1.4.1.1.1.3"
	DigitalIntraOralXRayImageStorageForProcessing     = "1.2.840.10008.5.1.4.1.1.1.3.1"

	// Computed Tomography
	CTImageStorage                        = "1.2.840.10008.5.1.4.1.1.2"
	EnhancedCTImageStorage                = "1.2.840.10008.5.1.4.1.1.2.1"
	LegacyConvertedEnhancedCTImageStorage = "1.2.840.10008.5.1.4.1.1.2.2"

	// Ultrasound
	UltrasoundMultiFrameImageStorage = "1.2.840.10008.5.1.4.1.1.3.1"
	UltrasoundImageStorage           = "1.2.840.10008.5.1.4.1.1.6.1"
	EnhancedUSVolumeStorage          = "1.2.840.10008.5.1.4.1.1.6.2"

	// Magnetic Resonance
	MRImageStorage                        = "1.2.840.10008.5.1.4.1.1.4"
	EnhancedMRImageStorage                = "1.2.840.10008.5.1.4.1.1.4.1"
	MRSpectroscopyStorage                 = "1.2.840.10008.5.1.4.1.1.4.2"
	EnhancedMRColorImageStorage           = "1.2.840.10008.5.1.4.1.1.4.3"
	LegacyConvertedEnhancedMRImageStorage = "1.2.840.10008.5.1.4.1.1.4.4"

	// Nuclear Medicine
	NuclearMedicineImageStorage = "1.2.840.10008.5.1.4.1.1.20"

	// Secondary Capture and Multi-frame
	SecondaryCaptureImageStorage                        = "1.2.840.10008.5.1.4.1.1.7"
	MultiFrameGrayscaleByteSecondaryCaptureImageStorage = "1.2.840.10008.5.1.4.1.1.7.1"
	MultiFrameGrayscaleWordSecondaryCaptureImageStorage = "1.2.840.10008.5.1.4.1.1.7.2"
	MultiFrameTrueColorSecondaryCaptureImageStorage     = "1.2.840.10008.5.1.4.1.1.7.3"
	MultiFrameSingleBitSecondaryCaptureImageStorage     = "1.2.840.10008.5.1.4.1.1.7.4"

	// X-Ray Angiographic
	XRayAngiographicImageStorage      = "1.2.840.10008.5.1.4.1.1.12.1"
	EnhancedXAImageStorage            = "1.2.840.10008.5.1.4.1.1.12.1.1"
	XRayRadiofluoroscopicImageStorage = "1.2.840.10008.5.1.4.1.1.12.2"
	EnhancedXRFImageStorage           = "1.2.840.10008.5.1.4.1.1.12.2.1"

	// X-Ray 3D
	XRay3DAngiographicImageStorage                  = "1.2.840.10008.5.1.4.1.1.13.1.1"
	XRay3DCraniofacialImageStorage                  = "1.2.840.10008.5.1.4.1.1.13.1.2"
	BreastTomosynthesisImageStorage                 = "1.2.840.10008.5.1.4.1.1.13.1.3"
	BreastProjectionXRayImageStorageForPresentation = "1.2.840.10008.5.1.4.1.1.13.1.4"
	BreastProjectionXRayImageStorageForProcessing   = "1.2.840.10008.5.1.4.1.1.13.1.5"

	// Intravascular Optical Coherence Tomography
	IntravascularOpticalCoherenceTomographyImageStorageForPresentation = "1.2.840.10008.5.1.4.1.1.14.1"
	IntravascularOpticalCoherenceTomographyImageStorageForProcessing   = "1.2.840.10008.5.1.4.1.1.14.2"

	// Positron Emission Tomography
	PETImageStorage                        = "1.2.840.10008.5.1.4.1.1.128"
	EnhancedPETImageStorage                = "1.2.840.10008.5.1.4.1.1.130"
	LegacyConvertedEnhancedPETImageStorage = "1.2.840.10008.5.1.4.1.1.128.1"

	// RT (Radiation Therapy)
	RTImageStorage                   = "1.2.840.10008.5.1.4.1.1.481.1"
	RTDoseStorage                    = "1.2.840.10008.5.1.4.1.1.481.2"
	RTStructureSetStorage            = "1.2.840.10008.5.1.4.1.1.481.3"
	RTBeamsTreatmentRecordStorage    = "1.2.840.10008.5.1.4.1.1.481.4"
	RTPlanStorage                    = "1.2.840.10008.5.1.4.1.1.481.5"
	RTBrachyTreatmentRecordStorage   = "1.2.840.10008.5.1.4.1.1.481.6"
	RTTreatmentSummaryRecordStorage  = "1.2.840.10008.5.1.4.1.1.481.7"
	RTIonPlanStorage                 = "1.2.840.10008.5.1.4.1.1.481.8"
	RTIonBeamsTreatmentRecordStorage = "1.2.840.10008.5.1.4.1.1.481.9"

	// Visible Light
	VLEndoscopicImageStorage                  = "1.2.840.10008.5.1.4.1.1.77.1.1"
	VLMicroscopicImageStorage                 = "1.2.840.10008.5.1.4.1.1.77.1.2"
	VLSlideCoordinatesMicroscopicImageStorage = "1.2.840.10008.5.1.4.1.1.77.1.3"
	VLPhotographicImageStorage                = "1.2.840.10008.5.1.4.1.1.77.1.4"
	VLWholeSlideMicroscopyImageStorage        = "1.2.840.10008.5.1.4.1.1.77.1.6"

	// Ophthalmic
	OphthalmicPhotography8BitImageStorage                             = "1.2.840.10008.5.1.4.1.1.77.1.5.1"
	OphthalmicPhotography16BitImageStorage                            = "1.2.840.10008.5.1.4.1.1.77.1.5.2"
	OphthalmicTomographyImageStorage                                  = "1.2.840.10008.5.1.4.1.1.77.1.5.4"
	WideFieldOphthalmicPhotographyStereographicProjectionImageStorage = "1.2.840.10008.5.1.4.1.1.77.1.5.6"
	WideFieldOphthalmicPhotography3DCoordinatesImageStorage           = "1.2.840.10008.5.1.4.1.1.77.1.5.7"
	OphthalmicOpticalCoherenceTomographyEnFaceImageStorage            = "1.2.840.10008.5.1.4.1.1.77.1.5.8"
	OphthalmicOpticalCoherenceTomographyBscanVolumeAnalysisStorage    = "1.2.840.10008.5.1.4.1.1.77.1.5.9"

	// Encapsulated Documents
	EncapsulatedPDFStorage = "1.2.840.10008.5.1.4.1.1.104.1"
	EncapsulatedCDAStorage = "1.2.840.10008.5.1.4.1.1.104.2"
	EncapsulatedSTLStorage = "1.2.840.10008.5.1.4.1.1.104.3"
	EncapsulatedOBJStorage = "1.2.840.10008.5.1.4.1.1.104.4"
	EncapsulatedMTLStorage = "1.2.840.10008.5.1.4.1.1.104.5"
)

// Query/Retrieve Service SOP Classes
const (
	// Study Root Query/Retrieve
	StudyRootQueryRetrieveInformationModelFind = "1.2.840.10008.5.1.4.1.2.2.1"
	StudyRootQueryRetrieveInformationModelMove = "1.2.840.10008.5.1.4.1.2.2.2"
	StudyRootQueryRetrieveInformationModelGet  = "1.2.840.10008.5.1.4.1.2.2.3"

	// Patient Root Query/Retrieve
	PatientRootQueryRetrieveInformationModelFind = "1.2.840.10008.5.1.4.1.2.1.1"
	PatientRootQueryRetrieveInformationModelMove = "1.2.840.10008.5.1.4.1.2.1.2"
	PatientRootQueryRetrieveInformationModelGet  = "1.2.840.10008.5.1.4.1.2.1.3"

	// Patient/Study Only Query/Retrieve
	PatientStudyOnlyQueryRetrieveInformationModelFind = "1.2.840.10008.5.1.4.1.2.3.1"
	PatientStudyOnlyQueryRetrieveInformationModelMove = "1.2.840.10008.5.1.4.1.2.3.2"
	PatientStudyOnlyQueryRetrieveInformationModelGet  = "1.2.840.10008.5.1.4.1.2.3.3"

	// Composite Instance Root Retrieve
	CompositeInstanceRootRetrieveMove = "1.2.840.10008.5.1.4.1.2.4.2"
	CompositeInstanceRootRetrieveGet  = "1.2.840.10008.5.1.4.1.2.4.3"

	// Composite Instance Retrieve Without Bulk Data
	CompositeInstanceRetrieveWithoutBulkDataGet = "1.2.840.10008.5.1.4.1.2.5.3"

	// Defined Procedure Protocol Query/Retrieve
	DefinedProcedureProtocolInformationModelFind = "1.2.840.10008.5.1.4.20.1"
	DefinedProcedureProtocolInformationModelMove = "1.2.840.10008.5.1.4.20.2"
	DefinedProcedureProtocolInformationModelGet  = "1.2.840.10008.5.1.4.20.3"
)

// Worklist Management Service SOP Classes
const (
	ModalityWorklistInformationModelFind         = "1.2.840.10008.5.1.4.31"
	GeneralPurposeWorklistInformationModelFind   = "1.2.840.10008.5.1.4.32.1"
	GeneralPurposeScheduledProcedureStepSOPClass = "1.2.840.10008.5.1.4.32.2"
	GeneralPurposePerformedProcedureStepSOPClass = "1.2.840.10008.5.1.4.32.3"
)

// Modality Performed Procedure Step
const (
	ModalityPerformedProcedureStepSOPClass             = "1.2.840.10008.3.1.2.3.3"
	ModalityPerformedProcedureStepRetrieveSOPClass     = "1.2.840.10008.3.1.2.3.4"
	ModalityPerformedProcedureStepNotificationSOPClass = "1.2.840.10008.3.1.2.3.5"
)

// Storage Commitment
const (
	StorageCommitmentPushModelSOPClass = "1.2.840.10008.1.20.1"
	StorageCommitmentPullModelSOPClass = "1.2.840.10008.1.20.2"
)

// Unified Procedure Step
const (
	UnifiedProcedureStepPushSOPClass  = "1.2.840.10008.5.1.4.34.6.1"
	UnifiedProcedureStepWatchSOPClass = "1.2.840.10008.5.1.4.34.6.2"
	UnifiedProcedureStepPullSOPClass  = "1.2.840.10008.5.1.4.34.6.3"
	UnifiedProcedureStepEventSOPClass = "1.2.840.10008.5.1.4.34.6.4"
	UnifiedProcedureStepQuerySOPClass = "1.2.840.10008.5.1.4.34.6.5"
)

// Hanging Protocol
const (
	HangingProtocolStorage              = "1.2.840.10008.5.1.4.38.1"
	HangingProtocolInformationModelFind = "1.2.840.10008.5.1.4.38.2"
	HangingProtocolInformationModelMove = "1.2.840.10008.5.1.4.38.3"
	HangingProtocolInformationModelGet  = "1.2.840.10008.5.1.4.38.4"
)

// Color Palette
const (
	ColorPaletteStorage              = "1.2.840.10008.5.1.4.39.1"
	ColorPaletteInformationModelFind = "1.2.840.10008.5.1.4.39.2"
	ColorPaletteInformationModelMove = "1.2.840.10008.5.1.4.39.3"
	ColorPaletteInformationModelGet  = "1.2.840.10008.5.1.4.39.4"
)

// Implant Template
const (
	GenericImplantTemplateStorage               = "1.2.840.10008.5.1.4.43.1"
	GenericImplantTemplateInformationModelFind  = "1.2.840.10008.5.1.4.43.2"
	GenericImplantTemplateInformationModelMove  = "1.2.840.10008.5.1.4.43.3"
	GenericImplantTemplateInformationModelGet   = "1.2.840.10008.5.1.4.43.4"
	ImplantAssemblyTemplateStorage              = "1.2.840.10008.5.1.4.44.1"
	ImplantAssemblyTemplateInformationModelFind = "1.2.840.10008.5.1.4.44.2"
	ImplantAssemblyTemplateInformationModelMove = "1.2.840.10008.5.1.4.44.3"
	ImplantAssemblyTemplateInformationModelGet  = "1.2.840.10008.5.1.4.44.4"
	ImplantTemplateGroupStorage                 = "1.2.840.10008.5.1.4.45.1"
	ImplantTemplateGroupInformationModelFind    = "1.2.840.10008.5.1.4.45.2"
	ImplantTemplateGroupInformationModelMove    = "1.2.840.10008.5.1.4.45.3"
	ImplantTemplateGroupInformationModelGet     = "1.2.840.10008.5.1.4.45.4"
)

// Media Storage
const (
	// MediaStorageDirectoryStorage identifies a DICOMDIR index file
	MediaStorageDirectoryStorage = "1.2.840.10008.1.3.10"
)

// Presentation State, Structured Report and Waveform Storage
const (
	GrayscaleSoftcopyPresentationStateStorage = "1.2.840.10008.5.1.4.1.1.11.1"
	ColorSoftcopyPresentationStateStorage     = "1.2.840.10008.5.1.4.1.1.11.2"
	BasicTextSRStorage                        = "1.2.840.10008.5.1.4.1.1.88.11"
	EnhancedSRStorage                         = "1.2.840.10008.5.1.4.1.1.88.22"
	ComprehensiveSRStorage                    = "1.2.840.10008.5.1.4.1.1.88.33"
	Comprehensive3DSRStorage                  = "1.2.840.10008.5.1.4.1.1.88.34"
	MammographyCADSRStorage                   = "1.2.840.10008.5.1.4.1.1.88.50"
	KeyObjectSelectionDocumentStorage         = "1.2.840.10008.5.1.4.1.1.88.59"
	XRayRadiationDoseSRStorage                = "1.2.840.10008.5.1.4.1.1.88.67"
	TwelveLeadECGWaveformStorage              = "1.2.840.10008.5.1.4.1.1.9.1.1"
	GeneralECGWaveformStorage                 = "1.2.840.10008.5.1.4.1.1.9.1.2"
	BasicVoiceAudioWaveformStorage            = "1.2.840.10008.5.1.4.1.1.9.4.1"
	RawDataStorage                            = "1.2.840.10008.5.1.4.1.1.66"
	SpatialRegistrationStorage                = "1.2.840.10008.5.1.4.1.1.66.1"
	SpatialFiducialsStorage                   = "1.2.840.10008.5.1.4.1.1.66.2"
	SegmentationStorage                       = "1.2.840.10008.5.1.4.1.1.66.4"
	SurfaceSegmentationStorage                = "1.2.840.10008.5.1.4.1.1.66.5"
)

// StandardUIDPrefix is the root under which every UID defined by the standard lives
const StandardUIDPrefix = "1.2.840.10008."

// SOP class categories
const (
	CategoryStorage           = "Storage"
	CategoryQueryRetrieve     = "Query/Retrieve"
	CategoryVerification      = "Verification"
	CategoryWorklist          = "Worklist"
	CategoryMPPS              = "MPPS"
	CategoryStorageCommitment = "Storage Commitment"
	CategoryMediaStorage      = "Media Storage"
	CategoryProcedureStep     = "Procedure Step"
	CategoryUnknownSOPClass   = "Unknown"
)

// SOPClassInfo provides human-readable information about a SOP Class UID
type SOPClassInfo struct {
	UID      string
	Name     string
	Category string
}

// GetSOPClassInfo returns information about a SOP Class UID from the built-in dictionary
func GetSOPClassInfo(uid string) *SOPClassInfo {
	info, ok := DefaultRegistry().SOPClass(uid)
	if !ok {
		return &SOPClassInfo{
			UID:      uid,
			Name:     "Unknown",
			Category: CategoryUnknownSOPClass,
		}
	}
	return &info
}

// IsStorageSOPClass returns true if the UID is a storage SOP class
func IsStorageSOPClass(uid string) bool {
	return GetSOPClassInfo(uid).Category == CategoryStorage
}

// IsQueryRetrieveSOPClass returns true if the UID is a query/retrieve SOP class
func IsQueryRetrieveSOPClass(uid string) bool {
	return GetSOPClassInfo(uid).Category == CategoryQueryRetrieve
}

// IsStandardUID reports whether uid lives under the standard root
func IsStandardUID(uid string) bool {
	return len(uid) > len(StandardUIDPrefix) && uid[:len(StandardUIDPrefix)] == StandardUIDPrefix
}

func storage(uid, name string) SOPClassInfo {
	return SOPClassInfo{UID: uid, Name: name, Category: CategoryStorage}
}

var builtinSOPClasses = []SOPClassInfo{
	{UID: VerificationSOPClass, Name: "Verification SOP Class", Category: CategoryVerification},
	{UID: MediaStorageDirectoryStorage, Name: "Media Storage Directory Storage", Category: CategoryMediaStorage},

	storage(ComputedRadiographyImageStorage, "Computed Radiography Image Storage"),
	storage(DigitalXRayImageStorageForPresentation, "Digital X-Ray Image Storage - For Presentation"),
	storage(DigitalXRayImageStorageForProcessing, "Digital X-Ray Image Storage - For Processing"),
	storage(DigitalMammographyXRayImageStorageForPresentation, "Digital Mammography X-Ray Image Storage - For Presentation"),
	storage(DigitalMammographyXRayImageStorageForProcessing, "Digital Mammography X-Ray Image Storage - For Processing"),
	storage(DigitalIntraOralXRayImageStorageForPresentation, "Digital Intra-Oral X-Ray Image Storage - For Presentation"),
	storage(DigitalIntraOralXRayImageStorageForProcessing, "Digital Intra-Oral X-Ray Image Storage - For Processing"),
	storage(CTImageStorage, "CT Image Storage"),
	storage(EnhancedCTImageStorage, "Enhanced CT Image Storage"),
	storage(LegacyConvertedEnhancedCTImageStorage, "Legacy Converted Enhanced CT Image Storage"),
	storage(UltrasoundMultiFrameImageStorage, "Ultrasound Multi-frame Image Storage"),
	storage(UltrasoundImageStorage, "Ultrasound Image Storage"),
	storage(EnhancedUSVolumeStorage, "Enhanced US Volume Storage"),
	storage(MRImageStorage, "MR Image Storage"),
	storage(EnhancedMRImageStorage, "Enhanced MR Image Storage"),
	storage(MRSpectroscopyStorage, "MR Spectroscopy Storage"),
	storage(EnhancedMRColorImageStorage, "Enhanced MR Color Image Storage"),
	storage(LegacyConvertedEnhancedMRImageStorage, "Legacy Converted Enhanced MR Image Storage"),
	storage(NuclearMedicineImageStorage, "Nuclear Medicine Image Storage"),
	storage(SecondaryCaptureImageStorage, "Secondary Capture Image Storage"),
	storage(MultiFrameGrayscaleByteSecondaryCaptureImageStorage, "Multi-frame Grayscale Byte Secondary Capture Image Storage"),
	storage(MultiFrameGrayscaleWordSecondaryCaptureImageStorage, "Multi-frame Grayscale Word Secondary Capture Image Storage"),
	storage(MultiFrameTrueColorSecondaryCaptureImageStorage, "Multi-frame True Color Secondary Capture Image Storage"),
	storage(MultiFrameSingleBitSecondaryCaptureImageStorage, "Multi-frame Single Bit Secondary Capture Image Storage"),
	storage(XRayAngiographicImageStorage, "X-Ray Angiographic Image Storage"),
	storage(EnhancedXAImageStorage, "Enhanced XA Image Storage"),
	storage(XRayRadiofluoroscopicImageStorage, "X-Ray Radiofluoroscopic Image Storage"),
	storage(EnhancedXRFImageStorage, "Enhanced XRF Image Storage"),
	storage(XRay3DAngiographicImageStorage, "X-Ray 3D Angiographic Image Storage"),
	storage(XRay3DCraniofacialImageStorage, "X-Ray 3D Craniofacial Image Storage"),
	storage(BreastTomosynthesisImageStorage, "Breast Tomosynthesis Image Storage"),
	storage(BreastProjectionXRayImageStorageForPresentation, "Breast Projection X-Ray Image Storage - For Presentation"),
	storage(BreastProjectionXRayImageStorageForProcessing, "Breast Projection X-Ray Image Storage - For Processing"),
	storage(IntravascularOpticalCoherenceTomographyImageStorageForPresentation, "Intravascular OCT Image Storage - For Presentation"),
	storage(IntravascularOpticalCoherenceTomographyImageStorageForProcessing, "Intravascular OCT Image Storage - For Processing"),
	storage(PETImageStorage, "PET Image Storage"),
	storage(EnhancedPETImageStorage, "Enhanced PET Image Storage"),
	storage(LegacyConvertedEnhancedPETImageStorage, "Legacy Converted Enhanced PET Image Storage"),
	storage(RTImageStorage, "RT Image Storage"),
	storage(RTDoseStorage, "RT Dose Storage"),
	storage(RTStructureSetStorage, "RT Structure Set Storage"),
	storage(RTBeamsTreatmentRecordStorage, "RT Beams Treatment Record Storage"),
	storage(RTPlanStorage, "RT Plan Storage"),
	storage(RTBrachyTreatmentRecordStorage, "RT Brachy Treatment Record Storage"),
	storage(RTTreatmentSummaryRecordStorage, "RT Treatment Summary Record Storage"),
	storage(RTIonPlanStorage, "RT Ion Plan Storage"),
	storage(RTIonBeamsTreatmentRecordStorage, "RT Ion Beams Treatment Record Storage"),
	storage(VLEndoscopicImageStorage, "VL Endoscopic Image Storage"),
	storage(VLMicroscopicImageStorage, "VL Microscopic Image Storage"),
	storage(VLSlideCoordinatesMicroscopicImageStorage, "VL Slide-Coordinates Microscopic Image Storage"),
	storage(VLPhotographicImageStorage, "VL Photographic Image Storage"),
	storage(VLWholeSlideMicroscopyImageStorage, "VL Whole Slide Microscopy Image Storage"),
	storage(OphthalmicPhotography8BitImageStorage, "Ophthalmic Photography 8 Bit Image Storage"),
	storage(OphthalmicPhotography16BitImageStorage, "Ophthalmic Photography 16 Bit Image Storage"),
	storage(OphthalmicTomographyImageStorage, "Ophthalmic Tomography Image Storage"),
	storage(WideFieldOphthalmicPhotographyStereographicProjectionImageStorage, "Wide Field Ophthalmic Photography Stereographic Projection Image Storage"),
	storage(WideFieldOphthalmicPhotography3DCoordinatesImageStorage, "Wide Field Ophthalmic Photography 3D Coordinates Image Storage"),
	storage(OphthalmicOpticalCoherenceTomographyEnFaceImageStorage, "Ophthalmic OCT En Face Image Storage"),
	storage(OphthalmicOpticalCoherenceTomographyBscanVolumeAnalysisStorage, "Ophthalmic OCT B-scan Volume Analysis Storage"),
	storage(EncapsulatedPDFStorage, "Encapsulated PDF Storage"),
	storage(EncapsulatedCDAStorage, "Encapsulated CDA Storage"),
	storage(EncapsulatedSTLStorage, "Encapsulated STL Storage"),
	storage(EncapsulatedOBJStorage, "Encapsulated OBJ Storage"),
	storage(EncapsulatedMTLStorage, "Encapsulated MTL Storage"),
	storage(GrayscaleSoftcopyPresentationStateStorage, "Grayscale Softcopy Presentation State Storage"),
	storage(ColorSoftcopyPresentationStateStorage, "Color Softcopy Presentation State Storage"),
	storage(BasicTextSRStorage, "Basic Text SR Storage"),
	storage(EnhancedSRStorage, "Enhanced SR Storage"),
	storage(ComprehensiveSRStorage, "Comprehensive SR Storage"),
	storage(Comprehensive3DSRStorage, "Comprehensive 3D SR Storage"),
	storage(MammographyCADSRStorage, "Mammography CAD SR Storage"),
	storage(KeyObjectSelectionDocumentStorage, "Key Object Selection Document Storage"),
	storage(XRayRadiationDoseSRStorage, "X-Ray Radiation Dose SR Storage"),
	storage(TwelveLeadECGWaveformStorage, "12-lead ECG Waveform Storage"),
	storage(GeneralECGWaveformStorage, "General ECG Waveform Storage"),
	storage(BasicVoiceAudioWaveformStorage, "Basic Voice Audio Waveform Storage"),
	storage(RawDataStorage, "Raw Data Storage"),
	storage(SpatialRegistrationStorage, "Spatial Registration Storage"),
	storage(SpatialFiducialsStorage, "Spatial Fiducials Storage"),
	storage(SegmentationStorage, "Segmentation Storage"),
	storage(SurfaceSegmentationStorage, "Surface Segmentation Storage"),
	storage(HangingProtocolStorage, "Hanging Protocol Storage"),
	storage(ColorPaletteStorage, "Color Palette Storage"),
	storage(GenericImplantTemplateStorage, "Generic Implant Template Storage"),
	storage(ImplantAssemblyTemplateStorage, "Implant Assembly Template Storage"),
	storage(ImplantTemplateGroupStorage, "Implant Template Group Storage"),

	{UID: StudyRootQueryRetrieveInformationModelFind, Name: "Study Root Query/Retrieve - FIND", Category: CategoryQueryRetrieve},
	{UID: StudyRootQueryRetrieveInformationModelMove, Name: "Study Root Query/Retrieve - MOVE", Category: CategoryQueryRetrieve},
	{UID: StudyRootQueryRetrieveInformationModelGet, Name: "Study Root Query/Retrieve - GET", Category: CategoryQueryRetrieve},
	{UID: PatientRootQueryRetrieveInformationModelFind, Name: "Patient Root Query/Retrieve - FIND", Category: CategoryQueryRetrieve},
	{UID: PatientRootQueryRetrieveInformationModelMove, Name: "Patient Root Query/Retrieve - MOVE", Category: CategoryQueryRetrieve},
	{UID: PatientRootQueryRetrieveInformationModelGet, Name: "Patient Root Query/Retrieve - GET", Category: CategoryQueryRetrieve},
	{UID: PatientStudyOnlyQueryRetrieveInformationModelFind, Name: "Patient/Study Only Query/Retrieve - FIND", Category: CategoryQueryRetrieve},
	{UID: PatientStudyOnlyQueryRetrieveInformationModelMove, Name: "Patient/Study Only Query/Retrieve - MOVE", Category: CategoryQueryRetrieve},
	{UID: PatientStudyOnlyQueryRetrieveInformationModelGet, Name: "Patient/Study Only Query/Retrieve - GET", Category: CategoryQueryRetrieve},
	{UID: CompositeInstanceRootRetrieveMove, Name: "Composite Instance Root Retrieve - MOVE", Category: CategoryQueryRetrieve},
	{UID: CompositeInstanceRootRetrieveGet, Name: "Composite Instance Root Retrieve - GET", Category: CategoryQueryRetrieve},
	{UID: CompositeInstanceRetrieveWithoutBulkDataGet, Name: "Composite Instance Retrieve Without Bulk Data - GET", Category: CategoryQueryRetrieve},
	{UID: DefinedProcedureProtocolInformationModelFind, Name: "Defined Procedure Protocol - FIND", Category: CategoryQueryRetrieve},
	{UID: DefinedProcedureProtocolInformationModelMove, Name: "Defined Procedure Protocol - MOVE", Category: CategoryQueryRetrieve},
	{UID: DefinedProcedureProtocolInformationModelGet, Name: "Defined Procedure Protocol - GET", Category: CategoryQueryRetrieve},
	{UID: HangingProtocolInformationModelFind, Name: "Hanging Protocol - FIND", Category: CategoryQueryRetrieve},
	{UID: HangingProtocolInformationModelMove, Name: "Hanging Protocol - MOVE", Category: CategoryQueryRetrieve},
	{UID: HangingProtocolInformationModelGet, Name: "Hanging Protocol - GET", Category: CategoryQueryRetrieve},
	{UID: ColorPaletteInformationModelFind, Name: "Color Palette - FIND", Category: CategoryQueryRetrieve},
	{UID: ColorPaletteInformationModelMove, Name: "Color Palette - MOVE", Category: CategoryQueryRetrieve},
	{UID: ColorPaletteInformationModelGet, Name: "Color Palette - GET", Category: CategoryQueryRetrieve},
	{UID: GenericImplantTemplateInformationModelFind, Name: "Generic Implant Template - FIND", Category: CategoryQueryRetrieve},
	{UID: GenericImplantTemplateInformationModelMove, Name: "Generic Implant Template - MOVE", Category: CategoryQueryRetrieve},
	{UID: GenericImplantTemplateInformationModelGet, Name: "Generic Implant Template - GET", Category: CategoryQueryRetrieve},
	{UID: ImplantAssemblyTemplateInformationModelFind, Name: "Implant Assembly Template - FIND", Category: CategoryQueryRetrieve},
	{UID: ImplantAssemblyTemplateInformationModelMove, Name: "Implant Assembly Template - MOVE", Category: CategoryQueryRetrieve},
	{UID: ImplantAssemblyTemplateInformationModelGet, Name: "Implant Assembly Template - GET", Category: CategoryQueryRetrieve},
	{UID: ImplantTemplateGroupInformationModelFind, Name: "Implant Template Group - FIND", Category: CategoryQueryRetrieve},
	{UID: ImplantTemplateGroupInformationModelMove, Name: "Implant Template Group - MOVE", Category: CategoryQueryRetrieve},
	{UID: ImplantTemplateGroupInformationModelGet, Name: "Implant Template Group - GET", Category: CategoryQueryRetrieve},

	{UID: ModalityWorklistInformationModelFind, Name: "Modality Worklist - FIND", Category: CategoryWorklist},
	{UID: GeneralPurposeWorklistInformationModelFind, Name: "General Purpose Worklist - FIND", Category: CategoryWorklist},
	{UID: GeneralPurposeScheduledProcedureStepSOPClass, Name: "General Purpose Scheduled Procedure Step", Category: CategoryWorklist},
	{UID: GeneralPurposePerformedProcedureStepSOPClass, Name: "General Purpose Performed Procedure Step", Category: CategoryWorklist},
	{UID: ModalityPerformedProcedureStepSOPClass, Name: "Modality Performed Procedure Step", Category: CategoryMPPS},
	{UID: ModalityPerformedProcedureStepRetrieveSOPClass, Name: "Modality Performed Procedure Step Retrieve", Category: CategoryMPPS},
	{UID: ModalityPerformedProcedureStepNotificationSOPClass, Name: "Modality Performed Procedure Step Notification", Category: CategoryMPPS},
	{UID: StorageCommitmentPushModelSOPClass, Name: "Storage Commitment Push Model", Category: CategoryStorageCommitment},
	{UID: StorageCommitmentPullModelSOPClass, Name: "Storage Commitment Pull Model", Category: CategoryStorageCommitment},
	{UID: UnifiedProcedureStepPushSOPClass, Name: "Unified Procedure Step - Push", Category: CategoryProcedureStep},
	{UID: UnifiedProcedureStepWatchSOPClass, Name: "Unified Procedure Step - Watch", Category: CategoryProcedureStep},
	{UID: UnifiedProcedureStepPullSOPClass, Name: "Unified Procedure Step - Pull", Category: CategoryProcedureStep},
	{UID: UnifiedProcedureStepEventSOPClass, Name: "Unified Procedure Step - Event", Category: CategoryProcedureStep},
	{UID: UnifiedProcedureStepQuerySOPClass, Name: "Unified Procedure Step - Query", Category: CategoryProcedureStep},
}
