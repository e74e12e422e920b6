package codec

// composite encodes the largest multiple of the block size with a block codec
// and the remaining values with a tail codec:
//
//	[block codec output][tail codec output]
//
// Both parts are decoded with the count from the stream header, so no extra
// length field is stored between them.
type composite struct {
	block blockBody
	tail  body
}

var _ body = composite{}

func newComposite(block blockBody, tail body) composite {
	return composite{block: block, tail: tail}
}

func (c composite) split(n int) int {
	bs := c.block.blockSize()
	return n / bs * bs
}

func (c composite) maxWords(n int) int {
	head := c.split(n)
	return c.block.maxWords(head) + c.tail.maxWords(n-head)
}

func (c composite) encode(in, out []uint32) (int, error) {
	head := c.split(len(in))

	pos, err := c.block.encode(in[:head], out)
	if err != nil {
		return 0, err
	}

	written, err := c.tail.encode(in[head:], out[pos:])
	if err != nil {
		return 0, err
	}

	return pos + written, nil
}

func (c composite) decode(in, out []uint32) (int, error) {
	head := c.split(len(out))

	pos, err := c.block.decode(in, out[:head])
	if err != nil {
		return 0, err
	}

	consumed, err := c.tail.decode(in[pos:], out[head:])
	if err != nil {
		return 0, err
	}

	return pos + consumed, nil
}
