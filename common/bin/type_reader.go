package bin

import (
	"bytes"
	"io"
	"math/big"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

// TypeReader decodes values written by TypeWriter
type TypeReader struct {
	SumReader
}

// TypeReadAll decodes every value of bs and checks that at least count values exist
// a negative count disables the check
func TypeReadAll(bs []byte, count int) ([]interface{}, error) {
	if len(bs) == 0 {
		if count > 0 {
			return nil, errors.Errorf("invalid output count less then, %v", count)
		}
		return []interface{}{}, nil
	}
	tr := &TypeReader{}
	r := bytes.NewReader(bs)
	data := []interface{}{}
	for r.Len() > 0 {
		v, err := tr.read(r)
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}
	if count >= 0 && len(data) < count {
		return nil, errors.Errorf("invalid output count less then, %v", count)
	}
	return data, nil
}

func (tr *TypeReader) read(r io.Reader) (interface{}, error) {
	var t uint8
	if _, err := tr.Uint8(r, &t); err != nil {
		return nil, err
	}
	switch t {
	case tagUint8:
		var v uint8
		_, err := tr.Uint8(r, &v)
		return v, err
	case tagUint16:
		v, n, err := ReadUint16(r)
		tr.sum += n
		return v, err
	case tagUint32:
		var v uint32
		_, err := tr.Uint32(r, &v)
		return v, err
	case tagUint64:
		var v uint64
		_, err := tr.Uint64(r, &v)
		return v, err
	case tagBytes:
		var v []byte
		_, err := tr.Bytes(r, &v)
		return v, err
	case tagString:
		var v string
		_, err := tr.String(r, &v)
		return v, err
	case tagBool:
		var v bool
		_, err := tr.Bool(r, &v)
		return v, err
	case tagHash256:
		var v hash.Hash256
		_, err := tr.Hash256(r, &v)
		return v, err
	case tagSignature:
		var v common.Signature
		_, err := tr.Signature(r, &v)
		return v, err
	case tagAddress:
		var v common.Address
		_, err := tr.Address(r, &v)
		return v, err
	case tagAmount:
		var v *amount.Amount
		_, err := tr.Amount(r, &v)
		return v, err
	case tagBigInt:
		var v *big.Int
		_, err := tr.BigInt(r, &v)
		return v, err
	case tagAddressArr:
		var l uint8
		if _, err := tr.Uint8(r, &l); err != nil {
			return nil, err
		}
		v := make([]common.Address, l)
		for i := range v {
			if _, err := tr.Address(r, &v[i]); err != nil {
				return nil, err
			}
		}
		return v, nil
	case tagSlice:
		var l uint8
		if _, err := tr.Uint8(r, &l); err != nil {
			return nil, err
		}
		v := make([]interface{}, 0, l)
		for i := 0; i < int(l); i++ {
			item, err := tr.read(r)
			if err != nil {
				return nil, err
			}
			v = append(v, item)
		}
		return v, nil
	default:
		return nil, errors.Wrapf(ErrUnknownTypeTag, "0x%02x", t)
	}
}
