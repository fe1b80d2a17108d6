package bin

import (
	"encoding/binary"
)

// Integers are stored big endian so that encoded keys keep the numeric order

// Uint16Bytes returns a byte array of the uint16 number
func Uint16Bytes(v uint16) []byte {
	bs := make([]byte, 2)
	binary.BigEndian.PutUint16(bs, v)
	return bs
}

// Uint32Bytes returns a byte array of the uint32 number
func Uint32Bytes(v uint32) []byte {
	bs := make([]byte, 4)
	binary.BigEndian.PutUint32(bs, v)
	return bs
}

// Uint64Bytes returns a byte array of the uint64 number
func Uint64Bytes(v uint64) []byte {
	bs := make([]byte, 8)
	binary.BigEndian.PutUint64(bs, v)
	return bs
}

// Uint16 returns a uint16 number of the byte array
func Uint16(v []byte) uint16 {
	return binary.BigEndian.Uint16(v)
}

// Uint32 returns a uint32 number of the byte array
func Uint32(v []byte) uint32 {
	return binary.BigEndian.Uint32(v)
}

// Uint64 returns a uint64 number of the byte array
func Uint64(v []byte) uint64 {
	return binary.BigEndian.Uint64(v)
}
