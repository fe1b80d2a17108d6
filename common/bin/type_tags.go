package bin

// type tags of the self-describing argument encoding
const (
	tagUint8      = byte(0x01)
	tagUint16     = byte(0x02)
	tagUint32     = byte(0x03)
	tagUint64     = byte(0x04)
	tagBytes      = byte(0x05)
	tagString     = byte(0x06)
	tagBool       = byte(0x07)
	tagHash256    = byte(0x08)
	tagSignature  = byte(0x09)
	tagAddress    = byte(0x0A)
	tagAmount     = byte(0x0B)
	tagBigInt     = byte(0x0C)
	tagAddressArr = byte(0x0D)
	tagSlice      = byte(0x0E)
)
