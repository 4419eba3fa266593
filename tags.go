package tiffmeta

import "fmt"

// Context is the IFD context a tag's numeric code is interpreted within.
// The taxonomy is closed and non recursive: the three sub-IFD pointer tags
// are recognized in the TIFF context only, so a child IFD can never lead to
// another child IFD.
//
//go:generate stringer -type=Context -linecomment
type Context uint8

const (
	// ContextTIFF is the context of the top level IFD chain (IFD0, IFD1, ...).
	ContextTIFF Context = iota + 1 // TIFF
	// ContextExif is the context of the Exif sub-IFD.
	ContextExif // Exif
	// ContextGPS is the context of the GPS sub-IFD.
	ContextGPS // GPS
	// ContextInterop is the context of the Interoperability sub-IFD.
	ContextInterop // Interop
)

// Tag identifies a TIFF tag by its context and numeric code.
type Tag struct {
	Context Context
	ID      uint16
}

func (t Tag) String() string {
	if name, found := tagNames[t.Context][t.ID]; found {
		return name
	}
	return fmt.Sprintf("%s0x%x", UnknownPrefix, t.ID)
}

// The sub-IFD pointer tags, valid in the TIFF context only.
var (
	TagExifIFDPointer    = Tag{ContextTIFF, 0x8769}
	TagGPSInfoIFDPointer = Tag{ContextTIFF, 0x8825}
	TagInteropIFDPointer = Tag{ContextTIFF, 0xa005}
)

// Well known tags of the TIFF context.
var (
	TagImageWidth                  = Tag{ContextTIFF, 0x100}
	TagImageLength                 = Tag{ContextTIFF, 0x101}
	TagBitsPerSample               = Tag{ContextTIFF, 0x102}
	TagCompression                 = Tag{ContextTIFF, 0x103}
	TagImageDescription            = Tag{ContextTIFF, 0x10e}
	TagMake                        = Tag{ContextTIFF, 0x10f}
	TagModel                       = Tag{ContextTIFF, 0x110}
	TagOrientation                 = Tag{ContextTIFF, 0x112}
	TagXResolution                 = Tag{ContextTIFF, 0x11a}
	TagYResolution                 = Tag{ContextTIFF, 0x11b}
	TagResolutionUnit              = Tag{ContextTIFF, 0x128}
	TagSoftware                    = Tag{ContextTIFF, 0x131}
	TagDateTime                    = Tag{ContextTIFF, 0x132}
	TagArtist                      = Tag{ContextTIFF, 0x13b}
	TagJPEGInterchangeFormat       = Tag{ContextTIFF, 0x201}
	TagJPEGInterchangeFormatLength = Tag{ContextTIFF, 0x202}
	TagCopyright                   = Tag{ContextTIFF, 0x8298}
)

// Well known tags of the Exif context.
var (
	TagExposureTime          = Tag{ContextExif, 0x829a}
	TagFNumber               = Tag{ContextExif, 0x829d}
	TagISOSpeedRatings       = Tag{ContextExif, 0x8827}
	TagExifVersion           = Tag{ContextExif, 0x9000}
	TagDateTimeOriginal      = Tag{ContextExif, 0x9003}
	TagDateTimeDigitized     = Tag{ContextExif, 0x9004}
	TagOffsetTime            = Tag{ContextExif, 0x9010}
	TagOffsetTimeOriginal    = Tag{ContextExif, 0x9011}
	TagOffsetTimeDigitized   = Tag{ContextExif, 0x9012}
	TagShutterSpeedValue     = Tag{ContextExif, 0x9201}
	TagApertureValue         = Tag{ContextExif, 0x9202}
	TagFocalLength           = Tag{ContextExif, 0x920a}
	TagMakerNote             = Tag{ContextExif, 0x927c}
	TagUserComment           = Tag{ContextExif, 0x9286}
	TagSubSecTime            = Tag{ContextExif, 0x9290}
	TagSubSecTimeOriginal    = Tag{ContextExif, 0x9291}
	TagSubSecTimeDigitized   = Tag{ContextExif, 0x9292}
	TagColorSpace            = Tag{ContextExif, 0xa001}
	TagPixelXDimension       = Tag{ContextExif, 0xa002}
	TagPixelYDimension       = Tag{ContextExif, 0xa003}
	TagFocalLengthIn35mmFilm = Tag{ContextExif, 0xa405}
	TagLensMake              = Tag{ContextExif, 0xa433}
	TagLensModel             = Tag{ContextExif, 0xa434}
)

// Well known tags of the GPS context.
var (
	TagGPSVersionID    = Tag{ContextGPS, 0x0}
	TagGPSLatitudeRef  = Tag{ContextGPS, 0x1}
	TagGPSLatitude     = Tag{ContextGPS, 0x2}
	TagGPSLongitudeRef = Tag{ContextGPS, 0x3}
	TagGPSLongitude    = Tag{ContextGPS, 0x4}
	TagGPSAltitudeRef  = Tag{ContextGPS, 0x5}
	TagGPSAltitude     = Tag{ContextGPS, 0x6}
	TagGPSTimeStamp    = Tag{ContextGPS, 0x7}
	TagGPSMapDatum     = Tag{ContextGPS, 0x12}
	TagGPSDateStamp    = Tag{ContextGPS, 0x1d}
)

// Well known tags of the Interop context.
var (
	TagInteroperabilityIndex = Tag{ContextInterop, 0x1}
)

var (
	tiffTagNames    = map[uint16]string{0x100: "ImageWidth", 0x101: "ImageLength", 0x102: "BitsPerSample", 0x103: "Compression", 0x106: "PhotometricInterpretation", 0x10e: "ImageDescription", 0x10f: "Make", 0x110: "Model", 0x111: "StripOffsets", 0x112: "Orientation", 0x115: "SamplesPerPixel", 0x116: "RowsPerStrip", 0x117: "StripByteCounts", 0x11a: "XResolution", 0x11b: "YResolution", 0x11c: "PlanarConfiguration", 0x128: "ResolutionUnit", 0x12d: "TransferFunction", 0x131: "Software", 0x132: "DateTime", 0x13b: "Artist", 0x13e: "WhitePoint", 0x13f: "PrimaryChromaticities", 0x201: "JPEGInterchangeFormat", 0x202: "JPEGInterchangeFormatLength", 0x211: "YCbCrCoefficients", 0x212: "YCbCrSubSampling", 0x213: "YCbCrPositioning", 0x214: "ReferenceBlackWhite", 0x8298: "Copyright", 0x8769: "ExifIFDPointer", 0x8825: "GPSInfoIFDPointer", 0xa005: "InteropIFDPointer"}
	exifTagNames    = map[uint16]string{0x829a: "ExposureTime", 0x829d: "FNumber", 0x8822: "ExposureProgram", 0x8824: "SpectralSensitivity", 0x8827: "ISOSpeedRatings", 0x8828: "OECF", 0x9000: "ExifVersion", 0x9003: "DateTimeOriginal", 0x9004: "DateTimeDigitized", 0x9010: "OffsetTime", 0x9011: "OffsetTimeOriginal", 0x9012: "OffsetTimeDigitized", 0x9101: "ComponentsConfiguration", 0x9102: "CompressedBitsPerPixel", 0x9201: "ShutterSpeedValue", 0x9202: "ApertureValue", 0x9203: "BrightnessValue", 0x9204: "ExposureBiasValue", 0x9205: "MaxApertureValue", 0x9206: "SubjectDistance", 0x9207: "MeteringMode", 0x9208: "LightSource", 0x9209: "Flash", 0x920a: "FocalLength", 0x9214: "SubjectArea", 0x927c: "MakerNote", 0x9286: "UserComment", 0x9290: "SubSecTime", 0x9291: "SubSecTimeOriginal", 0x9292: "SubSecTimeDigitized", 0x9c9b: "XPTitle", 0x9c9c: "XPComment", 0x9c9d: "XPAuthor", 0x9c9e: "XPKeywords", 0x9c9f: "XPSubject", 0xa000: "FlashpixVersion", 0xa001: "ColorSpace", 0xa002: "PixelXDimension", 0xa003: "PixelYDimension", 0xa004: "RelatedSoundFile", 0xa005: "InteropIFDPointer", 0xa20b: "FlashEnergy", 0xa20c: "SpatialFrequencyResponse", 0xa20e: "FocalPlaneXResolution", 0xa20f: "FocalPlaneYResolution", 0xa210: "FocalPlaneResolutionUnit", 0xa214: "SubjectLocation", 0xa215: "ExposureIndex", 0xa217: "SensingMethod", 0xa300: "FileSource", 0xa301: "SceneType", 0xa302: "CFAPattern", 0xa401: "CustomRendered", 0xa402: "ExposureMode", 0xa403: "WhiteBalance", 0xa404: "DigitalZoomRatio", 0xa405: "FocalLengthIn35mmFilm", 0xa406: "SceneCaptureType", 0xa407: "GainControl", 0xa408: "Contrast", 0xa409: "Saturation", 0xa40a: "Sharpness", 0xa40b: "DeviceSettingDescription", 0xa40c: "SubjectDistanceRange", 0xa420: "ImageUniqueID", 0xa433: "LensMake", 0xa434: "LensModel"}
	gpsTagNames     = map[uint16]string{0x0: "GPSVersionID", 0x1: "GPSLatitudeRef", 0x2: "GPSLatitude", 0x3: "GPSLongitudeRef", 0x4: "GPSLongitude", 0x5: "GPSAltitudeRef", 0x6: "GPSAltitude", 0x7: "GPSTimeStamp", 0x8: "GPSSatellites", 0x9: "GPSStatus", 0xa: "GPSMeasureMode", 0xb: "GPSDOP", 0xc: "GPSSpeedRef", 0xd: "GPSSpeed", 0xe: "GPSTrackRef", 0xf: "GPSTrack", 0x10: "GPSImgDirectionRef", 0x11: "GPSImgDirection", 0x12: "GPSMapDatum", 0x13: "GPSDestLatitudeRef", 0x14: "GPSDestLatitude", 0x15: "GPSDestLongitudeRef", 0x16: "GPSDestLongitude", 0x17: "GPSDestBearingRef", 0x18: "GPSDestBearing", 0x19: "GPSDestDistanceRef", 0x1a: "GPSDestDistance", 0x1b: "GPSProcessingMethod", 0x1c: "GPSAreaInformation", 0x1d: "GPSDateStamp", 0x1e: "GPSDifferential", 0x1f: "GPSHPositioningError"}
	interopTagNames = map[uint16]string{0x1: "InteroperabilityIndex", 0x2: "InteroperabilityVersion", 0x1000: "RelatedImageFileFormat", 0x1001: "RelatedImageWidth", 0x1002: "RelatedImageLength"}

	tagNames = map[Context]map[uint16]string{
		ContextTIFF:    tiffTagNames,
		ContextExif:    exifTagNames,
		ContextGPS:     gpsTagNames,
		ContextInterop: interopTagNames,
	}
)

// childContext returns the context of the sub-IFD the given tag points to.
// The pointer tags are recognized in the TIFF context only, which keeps the
// walk depth bounded to one level below the top level chain.
func childContext(t Tag) (Context, bool) {
	switch t {
	case TagExifIFDPointer:
		return ContextExif, true
	case TagGPSInfoIFDPointer:
		return ContextGPS, true
	case TagInteropIFDPointer:
		return ContextInterop, true
	}
	return 0, false
}
