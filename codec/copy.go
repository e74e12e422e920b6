package codec

// copyBody stores values verbatim. It is the reference point for ratios and a
// last-resort codec for incompressible data.
type copyBody struct{}

var _ body = copyBody{}

// NewCopy returns the "copy" codec.
func NewCopy() Codec {
	return newStream("copy", idCopy, copyBody{})
}

func (copyBody) maxWords(n int) int {
	return n
}

func (copyBody) encode(in, out []uint32) (int, error) {
	if len(out) < len(in) {
		return 0, errCapacity(len(in), len(out))
	}

	return copy(out, in), nil
}

func (copyBody) decode(in, out []uint32) (int, error) {
	if len(in) < len(out) {
		return 0, errTruncated("payload", len(out), len(in))
	}

	return copy(out, in), nil
}
