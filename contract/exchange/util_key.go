package exchange

import (
	"github.com/meverselabs/dmcexchange/common/hash"
)

var (
	tagDMC         = byte(0x01)
	tagGWT         = byte(0x02)
	tagInitialized = byte(0x03)
	tagMintSigner  = byte(0x04)
	tagSaltUsed    = byte(0x10)
)

func makeSaltKey(salt hash.Hash256) []byte {
	bs := make([]byte, 1+hash.HashLength)
	bs[0] = tagSaltUsed
	copy(bs[1:], salt[:])
	return bs
}
