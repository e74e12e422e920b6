package format

type (
	TransformType   uint8
	CompressionType uint8
)

const (
	TransformNone   TransformType = 0x1 // TransformNone stores values as given.
	TransformDelta1 TransformType = 0x2 // TransformDelta1 stores differences of consecutive values.
	TransformDelta4 TransformType = 0x3 // TransformDelta4 stores differences of values four apart.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (t TransformType) String() string {
	switch t {
	case TransformNone:
		return "None"
	case TransformDelta1:
		return "Delta1"
	case TransformDelta4:
		return "Delta4"
	default:
		return "Unknown"
	}
}

// Stride returns the delta stride of the transform, or 0 for TransformNone
// and unknown values.
func (t TransformType) Stride() int {
	switch t {
	case TransformDelta1:
		return 1
	case TransformDelta4:
		return 4
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
