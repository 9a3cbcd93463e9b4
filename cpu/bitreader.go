package cpu

// bitReader reads big-endian bit fields from a byte slice.
type bitReader struct {
	data []byte
	pos  int // bit position
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// Read returns the next n bits (n <= 32) as an unsigned value.
// Running past the end of the data is an addressing error.
func (br *bitReader) Read(n int) (value uint32, err error) {
	if br.pos+n > len(br.data)*8 {
		err = ErrInvalidAddress
		return
	}

	for range n {
		bit := (br.data[br.pos/8] >> (7 - br.pos%8)) & 1
		value = (value << 1) | uint32(bit)
		br.pos++
	}

	return
}

// Bytes returns the number of whole or partial bytes consumed.
func (br *bitReader) Bytes() int {
	return (br.pos + 7) / 8
}
