package h5w

import "encoding/binary"

// buffer is an append-only little-endian byte buffer. All HDF5 metadata and
// raw data are little-endian; offsets and lengths are always 8 bytes in the
// files this package writes.
type buffer struct {
	b []byte
}

func (b *buffer) len() uint64 { return uint64(len(b.b)) }

func (b *buffer) bytes(p []byte) *buffer {
	b.b = append(b.b, p...)
	return b
}

func (b *buffer) u8(v uint8) *buffer {
	b.b = append(b.b, v)
	return b
}

func (b *buffer) u16(v uint16) *buffer {
	b.b = binary.LittleEndian.AppendUint16(b.b, v)
	return b
}

func (b *buffer) u32(v uint32) *buffer {
	b.b = binary.LittleEndian.AppendUint32(b.b, v)
	return b
}

func (b *buffer) u64(v uint64) *buffer {
	b.b = binary.LittleEndian.AppendUint64(b.b, v)
	return b
}

func (b *buffer) zeros(n int) *buffer {
	for i := 0; i < n; i++ {
		b.b = append(b.b, 0)
	}
	return b
}

// cstr appends a null-terminated string.
func (b *buffer) cstr(s string) *buffer {
	b.b = append(b.b, s...)
	b.b = append(b.b, 0)
	return b
}

// undefinedAddress is the HDF5 "undefined" sentinel for 8-byte offsets.
const undefinedAddress = ^uint64(0)
