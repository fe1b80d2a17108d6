package bin

import (
	"bytes"
	"io"

	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

func write(w io.Writer, bs []byte) (int64, error) {
	n, err := w.Write(bs)
	if err != nil {
		return int64(n), errors.WithStack(err)
	}
	if n != len(bs) {
		return int64(n), errors.WithStack(ErrInvalidLength)
	}
	return int64(n), nil
}

// WriteUint8 writes the uint8 number to the writer
func WriteUint8(w io.Writer, num uint8) (int64, error) {
	return write(w, []byte{num})
}

// WriteUint16 writes the uint16 number to the writer
func WriteUint16(w io.Writer, num uint16) (int64, error) {
	return write(w, Uint16Bytes(num))
}

// WriteUint32 writes the uint32 number to the writer
func WriteUint32(w io.Writer, num uint32) (int64, error) {
	return write(w, Uint32Bytes(num))
}

// WriteUint64 writes the uint64 number to the writer
func WriteUint64(w io.Writer, num uint64) (int64, error) {
	return write(w, Uint64Bytes(num))
}

// WriteBytes writes the byte array with the var-length header to the writer
// lengths under 254 use a single byte, 254 is followed by uint16 and 255 by uint32
func WriteBytes(w io.Writer, bs []byte) (int64, error) {
	var head []byte
	switch {
	case len(bs) < 254:
		head = []byte{uint8(len(bs))}
	case len(bs) < 65536:
		head = append([]byte{254}, Uint16Bytes(uint16(len(bs)))...)
	default:
		head = append([]byte{255}, Uint32Bytes(uint32(len(bs)))...)
	}
	wrote, err := write(w, head)
	if err != nil {
		return wrote, err
	}
	n, err := write(w, bs)
	return wrote + n, err
}

// WriteString writes the string with the var-length header to the writer
func WriteString(w io.Writer, str string) (int64, error) {
	return WriteBytes(w, []byte(str))
}

// WriteBool writes the bool using a uint8 to the writer
func WriteBool(w io.Writer, b bool) (int64, error) {
	if b {
		return WriteUint8(w, 1)
	}
	return WriteUint8(w, 0)
}

// WriterToBytes return bytes from writer to
func WriterToBytes(w io.WriterTo) ([]byte, int64, error) {
	var buffer bytes.Buffer
	n, err := w.WriteTo(&buffer)
	if err != nil {
		return nil, n, errors.WithStack(err)
	}
	return buffer.Bytes(), n, nil
}

// WriterToHash returns the keccak hash of the written bytes
func WriterToHash(w io.WriterTo) (hash.Hash256, int64, error) {
	bs, n, err := WriterToBytes(w)
	if err != nil {
		return hash.Hash256{}, n, err
	}
	return hash.Hash(bs), n, nil
}

// MustWriterToBytes panics when the writer fails
func MustWriterToBytes(w io.WriterTo) []byte {
	bs, _, err := WriterToBytes(w)
	if err != nil {
		panic(err)
	}
	return bs
}
