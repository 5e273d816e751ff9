package format

type (
	CompressionType uint8
	Direction       uint8
)

const (
	// CompressionDeflate represents the raw DEFLATE (RFC 1951) algorithm,
	// registered under the JOSE "zip" token "DEF". It is the only algorithm
	// this library supports; the type stays an enumeration so the surrounding
	// algorithm registry can key codecs by identifier.
	CompressionDeflate CompressionType = 0x1

	DirectionEncode Direction = 0x1 // DirectionEncode configures an engine to compress.
	DirectionDecode Direction = 0x2 // DirectionDecode configures an engine to decompress.
)

// String returns the JOSE compression algorithm token for the type.
func (c CompressionType) String() string {
	switch c {
	case CompressionDeflate:
		return "DEF"
	default:
		return "Unknown"
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionEncode:
		return "Encode"
	case DirectionDecode:
		return "Decode"
	default:
		return "Unknown"
	}
}
