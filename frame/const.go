package frame

const (
	// Bit masks of the Options field
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicFrameV1Opt is the version 1 magic number of packed integer frames.
	MagicFrameV1Opt = 0xC1A0

	// HeaderSize is the fixed frame header size in bytes.
	HeaderSize = 32

	// DefaultCodec is the codec used when WithCodec is not given.
	DefaultCodec = "simdfastpfor128"
)
