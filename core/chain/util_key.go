package chain

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
)

// store key tags
var (
	tagHeight      = []byte{0x01}
	tagGenesisHash = []byte{0x02}
	tagAddressSeq  = []byte{0x03}
	tagContract    = []byte{0x04}
	tagData        = []byte{0x05}
	tagReceipt     = []byte{0x06}
	tagHeightHash  = []byte{0x07}
)

func toAddressSeqKey(addr common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	copy(bs, tagAddressSeq)
	copy(bs[1:], addr[:])
	return bs
}

func toContractKey(addr common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	copy(bs, tagContract)
	copy(bs[1:], addr[:])
	return bs
}

func toDataKey(key string) []byte {
	bs := make([]byte, 1+len(key))
	copy(bs, tagData)
	copy(bs[1:], []byte(key))
	return bs
}

func toReceiptKey(h hash.Hash256) []byte {
	bs := make([]byte, 1+hash.HashLength)
	copy(bs, tagReceipt)
	copy(bs[1:], h[:])
	return bs
}

func toHeightHashKey(height uint32) []byte {
	bs := make([]byte, 5)
	copy(bs, tagHeightHash)
	copy(bs[1:], bin.Uint32Bytes(height))
	return bs
}
