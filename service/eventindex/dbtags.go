package eventindex

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
)

// tags
var (
	tagHeight   = byte(0x10)
	tagTransfer = byte(0x33)
	tagAddress  = byte(0x35)
)

// toAddressPrefix is tagAddress + addr
func toAddressPrefix(addr common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tagAddress
	copy(bs[1:], addr[:])
	return bs
}

// toAddressKey is tagAddress + addr + height + log index, the value is the transfer key
func toAddressKey(addr common.Address, height uint32, index uint32) []byte {
	bs := toAddressPrefix(addr)
	bs = append(bs, bin.Uint32Bytes(height)...)
	return append(bs, bin.Uint32Bytes(index)...)
}

// toTransferKey is tagTransfer + height + log index
func toTransferKey(height uint32, index uint32) []byte {
	bs := []byte{tagTransfer}
	bs = append(bs, bin.Uint32Bytes(height)...)
	return append(bs, bin.Uint32Bytes(index)...)
}
