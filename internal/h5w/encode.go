package h5w

import (
	"fmt"
	"math"
)

// HDF5 object header message types used by this writer.
const (
	msgDataspace  = 0x0001
	msgLinkInfo   = 0x0002
	msgDatatype   = 0x0003
	msgLink       = 0x0006
	msgDataLayout = 0x0008
	msgGroupInfo  = 0x000A
	msgAttribute  = 0x000C
)

// msg is a fully encoded object header message body.
type msg struct {
	typ  uint8
	body []byte
}

// linkInfoMsg encodes a minimal Link Info message: version 0, no creation
// order tracking, fractal heap and name-index B-tree addresses undefined.
// The HDF5 library expects both addresses to be present even when undefined.
func linkInfoMsg() msg {
	var b buffer
	b.u8(0).u8(0).u64(undefinedAddress).u64(undefinedAddress)
	return msg{msgLinkInfo, b.b}
}

// groupInfoMsg encodes a minimal Group Info message: version 0, no flags.
func groupInfoMsg() msg {
	var b buffer
	b.u8(0).u8(0)
	return msg{msgGroupInfo, b.b}
}

// hardLinkMsg encodes a version 1 Link message for a hard link. The flag
// byte carries only the name-length field width; hard links omit the link
// type byte.
func hardLinkMsg(name string, addr uint64) msg {
	var b buffer
	b.u8(1) // version

	n := len(name)
	switch {
	case n <= 0xFF:
		b.u8(0x00).u8(uint8(n))
	case n <= 0xFFFF:
		b.u8(0x01).u16(uint16(n))
	default:
		b.u8(0x02).u32(uint32(n))
	}

	b.bytes([]byte(name))
	b.u64(addr)
	return msg{msgLink, b.b}
}

// scalarDataspace encodes a version 2 Dataspace message for a scalar value.
func scalarDataspace() []byte {
	var b buffer
	b.u8(2).u8(0).u8(0).u8(0)
	return b.b
}

// simpleDataspace1D encodes a version 2 Dataspace message for a fixed-size
// one-dimensional array.
func simpleDataspace1D(n uint64) []byte {
	var b buffer
	b.u8(2).u8(1).u8(0).u8(1)
	b.u64(n)
	return b.b
}

// float64Datatype encodes a version 1 Datatype message for IEEE 754
// little-endian double precision, matching the encoding h5py produces.
func float64Datatype() []byte {
	var b buffer
	// Class 1 (float), version 1 in the upper nibble.
	b.u8(0x11)
	// Class bit field: little-endian, mantissa normalization "always set
	// MSB" (bit 5), sign bit location 63 in the second byte.
	b.u8(0x20).u8(63).u8(0)
	b.u32(8)
	// Properties: bit offset, bit precision, exponent location/size,
	// mantissa location/size, exponent bias.
	b.u16(0).u16(64)
	b.u8(52).u8(11).u8(0).u8(52)
	b.u32(1023)
	return b.b
}

// stringDatatype encodes a version 1 Datatype message for a fixed-length
// null-terminated ASCII string of the given size.
func stringDatatype(size uint32) []byte {
	var b buffer
	// Class 3 (string), version 1; padding null-terminated, charset ASCII.
	b.u8(0x13)
	b.u8(0).u8(0).u8(0)
	b.u32(size)
	return b.b
}

// contiguousLayoutMsg encodes a version 3 Data Layout message for contiguous
// storage at the given address.
func contiguousLayoutMsg(addr, size uint64) msg {
	var b buffer
	b.u8(3).u8(1)
	b.u64(addr)
	b.u64(size)
	return msg{msgDataLayout, b.b}
}

// attributeMsg encodes a version 3 Attribute message. Values may be string
// or float64; both are stored as scalars, matching what the Galacticus
// format expects for metadata attributes.
func attributeMsg(name string, value any) (msg, error) {
	var datatype, data []byte

	switch v := value.(type) {
	case string:
		// Fixed-length string including the null terminator.
		datatype = stringDatatype(uint32(len(v) + 1))
		var d buffer
		d.cstr(v)
		data = d.b
	case float64:
		datatype = float64Datatype()
		var d buffer
		d.u64(math.Float64bits(v))
		data = d.b
	default:
		return msg{}, fmt.Errorf("unsupported attribute type %T", value)
	}

	dataspace := scalarDataspace()

	var b buffer
	b.u8(3) // version
	b.u8(0) // flags
	b.u16(uint16(len(name) + 1))
	b.u16(uint16(len(datatype)))
	b.u16(uint16(len(dataspace)))
	b.u8(0) // name encoding: ASCII
	b.cstr(name)
	b.bytes(datatype)
	b.bytes(dataspace)
	b.bytes(data)
	return msg{msgAttribute, b.b}, nil
}

// float64Data encodes a slice of float64 values as raw little-endian bytes.
func float64Data(values []float64) []byte {
	var b buffer
	for _, v := range values {
		b.u64(math.Float64bits(v))
	}
	return b.b
}
