package h5w

var headerSignature = []byte("OHDR")

// minGroupChunkSize is the minimum message-chunk size used for group object
// headers. Matches the headroom h5py leaves, which keeps the HDF5 library
// happy when it re-opens these files.
const minGroupChunkSize = 120

// encodeObjectHeader encodes a complete V2 object header: the OHDR prefix,
// the framed messages, NIL padding up to minChunk, and the trailing Jenkins
// lookup3 checksum over everything before it.
//
// The chunk size field covers the messages (and padding) only, not the
// checksum.
func encodeObjectHeader(messages []msg, minChunk int) []byte {
	messagesSize := 0
	for _, m := range messages {
		messagesSize += 4 + len(m.body) // type(1) + size(2) + flags(1) + body
	}

	chunkSize := messagesSize
	if chunkSize < minChunk {
		chunkSize = minChunk
	}
	padding := chunkSize - messagesSize

	var b buffer
	b.bytes(headerSignature)
	b.u8(2) // version

	// Header flags: low two bits encode the width of the chunk size field.
	switch {
	case chunkSize <= 0xFF:
		b.u8(0x00)
		b.u8(uint8(chunkSize))
	case chunkSize <= 0xFFFF:
		b.u8(0x01)
		b.u16(uint16(chunkSize))
	default:
		b.u8(0x02)
		b.u32(uint32(chunkSize))
	}

	for _, m := range messages {
		b.u8(m.typ)
		b.u16(uint16(len(m.body)))
		b.u8(0) // message flags
		b.bytes(m.body)
	}

	switch {
	case padding >= 4:
		// A NIL message fills the remainder of the chunk.
		b.u8(0x00)
		b.u16(uint16(padding - 4))
		b.u8(0x00)
		b.zeros(padding - 4)
	case padding > 0:
		// Too small for a message header; the format allows a raw gap.
		b.zeros(padding)
	}

	b.u32(lookup3(b.b))
	return b.b
}

// groupHeader builds the object header for a group with the given attributes
// and hard links to its children.
func groupHeader(attrs []attribute, links []msg) ([]byte, error) {
	messages := []msg{linkInfoMsg(), groupInfoMsg()}
	for _, a := range attrs {
		m, err := attributeMsg(a.name, a.value)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	messages = append(messages, links...)
	return encodeObjectHeader(messages, minGroupChunkSize), nil
}

// datasetHeader builds the object header for a contiguous 1-D float64
// dataset whose raw data lives at dataAddr.
func datasetHeader(n uint64, dataAddr uint64, attrs []attribute) ([]byte, error) {
	messages := []msg{
		{msgDataspace, simpleDataspace1D(n)},
		{msgDatatype, float64Datatype()},
		contiguousLayoutMsg(dataAddr, n*8),
	}
	for _, a := range attrs {
		m, err := attributeMsg(a.name, a.value)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return encodeObjectHeader(messages, 0), nil
}
