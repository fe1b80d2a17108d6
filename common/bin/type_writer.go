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

// TypeWriter writes values with a leading type tag so they can be decoded without a schema
type TypeWriter struct {
	SumWriter
}

func NewTypeWriter() *TypeWriter {
	return &TypeWriter{}
}

// TypeWriteAll encodes the values in order
func TypeWriteAll(vs ...interface{}) ([]byte, error) {
	var buffer bytes.Buffer
	if _, err := NewTypeWriter().WriteAll(&buffer, vs...); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// MustTypeWriteAll panics when a value is not supported
func MustTypeWriteAll(vs ...interface{}) []byte {
	bs, err := TypeWriteAll(vs...)
	if err != nil {
		panic(err)
	}
	return bs
}

func (tw *TypeWriter) WriteAll(w io.Writer, vs ...interface{}) (int64, error) {
	for _, v := range vs {
		if _, err := tw.writeThing(w, v); err != nil {
			return tw.sum, err
		}
	}
	return tw.sum, nil
}

func (tw *TypeWriter) tag(w io.Writer, t byte) error {
	_, err := tw.Uint8(w, t)
	return err
}

func (tw *TypeWriter) writeThing(w io.Writer, v interface{}) (int64, error) {
	switch v := v.(type) {
	case uint8:
		if err := tw.tag(w, tagUint8); err != nil {
			return tw.sum, err
		}
		return tw.Uint8(w, v)
	case uint16:
		if err := tw.tag(w, tagUint16); err != nil {
			return tw.sum, err
		}
		return tw.add(WriteUint16(w, v))
	case uint32:
		if err := tw.tag(w, tagUint32); err != nil {
			return tw.sum, err
		}
		return tw.Uint32(w, v)
	case uint64:
		if err := tw.tag(w, tagUint64); err != nil {
			return tw.sum, err
		}
		return tw.Uint64(w, v)
	case int:
		if err := tw.tag(w, tagUint64); err != nil {
			return tw.sum, err
		}
		return tw.Uint64(w, uint64(v))
	case int64:
		if err := tw.tag(w, tagUint64); err != nil {
			return tw.sum, err
		}
		return tw.Uint64(w, uint64(v))
	case []byte:
		if err := tw.tag(w, tagBytes); err != nil {
			return tw.sum, err
		}
		return tw.Bytes(w, v)
	case string:
		if err := tw.tag(w, tagString); err != nil {
			return tw.sum, err
		}
		return tw.String(w, v)
	case bool:
		if err := tw.tag(w, tagBool); err != nil {
			return tw.sum, err
		}
		return tw.Bool(w, v)
	case hash.Hash256:
		if err := tw.tag(w, tagHash256); err != nil {
			return tw.sum, err
		}
		return tw.Hash256(w, v)
	case common.Signature:
		if err := tw.tag(w, tagSignature); err != nil {
			return tw.sum, err
		}
		return tw.Signature(w, v)
	case common.Address:
		if err := tw.tag(w, tagAddress); err != nil {
			return tw.sum, err
		}
		return tw.Address(w, v)
	case *amount.Amount:
		if err := tw.tag(w, tagAmount); err != nil {
			return tw.sum, err
		}
		return tw.Amount(w, v)
	case *big.Int:
		if err := tw.tag(w, tagBigInt); err != nil {
			return tw.sum, err
		}
		return tw.BigInt(w, v)
	case []common.Address:
		if len(v) > 255 {
			return tw.sum, errors.WithStack(ErrSliceTooBig)
		}
		if err := tw.tag(w, tagAddressArr); err != nil {
			return tw.sum, err
		}
		if _, err := tw.Uint8(w, uint8(len(v))); err != nil {
			return tw.sum, err
		}
		for _, addr := range v {
			if _, err := tw.Address(w, addr); err != nil {
				return tw.sum, err
			}
		}
		return tw.sum, nil
	case []interface{}:
		if len(v) > 255 {
			return tw.sum, errors.WithStack(ErrSliceTooBig)
		}
		if err := tw.tag(w, tagSlice); err != nil {
			return tw.sum, err
		}
		if _, err := tw.Uint8(w, uint8(len(v))); err != nil {
			return tw.sum, err
		}
		return tw.WriteAll(w, v...)
	default:
		return tw.sum, errors.Wrapf(ErrUnsupported, "%T", v)
	}
}
