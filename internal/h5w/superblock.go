package h5w

// fileSignature is the HDF5 format signature: 0x89 H D F \r \n 0x1a \n.
var fileSignature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// superblockSize is the size of a V3 superblock with 8-byte offsets:
// signature(8) + version(1) + offset size(1) + length size(1) + flags(1) +
// four 8-byte addresses + checksum(4).
const superblockSize = 48

// encodeSuperblock encodes a V3 superblock. The superblock extension is
// never used, so its address is written as undefined.
func encodeSuperblock(rootAddr, eofAddr uint64) []byte {
	var b buffer
	b.bytes(fileSignature)
	b.u8(3) // superblock version
	b.u8(8) // offset size
	b.u8(8) // length size
	b.u8(0) // file consistency flags
	b.u64(0)
	b.u64(undefinedAddress)
	b.u64(eofAddr)
	b.u64(rootAddr)
	b.u32(lookup3(b.b))
	return b.b
}
