package apiserver

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

// Argument parses rpc arguments
type Argument struct {
	args []interface{}
}

// NewArgument returns a Argument
func NewArgument(args []interface{}) *Argument {
	arg := &Argument{
		args: args,
	}
	return arg
}

// Len returns length of arguments
func (arg *Argument) Len() int {
	return len(arg.args)
}

func (arg *Argument) value(index int) (interface{}, error) {
	if index < 0 || index >= len(arg.args) {
		return nil, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return nil, errors.WithStack(ErrInvalidArgumentType)
	}
	return a, nil
}

// Raw returns the decoded json value of the index
func (arg *Argument) Raw(index int) (interface{}, error) {
	return arg.value(index)
}

// String returns a string value of the index
func (arg *Argument) String(index int) (string, error) {
	a, err := arg.value(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", a), nil
}

// Int returns a int value of the index
func (arg *Argument) Int(index int) (int, error) {
	str, err := arg.String(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(n), nil
}

// Uint64 returns a uint64 value of the index
func (arg *Argument) Uint64(index int) (uint64, error) {
	str, err := arg.String(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

// Address returns a address value of the index
func (arg *Argument) Address(index int) (common.Address, error) {
	str, err := arg.String(index)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := common.ParseAddress(str)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return addr, nil
}

// Hash returns a hash value of the index
func (arg *Argument) Hash(index int) (hash.Hash256, error) {
	str, err := arg.String(index)
	if err != nil {
		return hash.Hash256{}, err
	}
	h, err := hash.ParseHash(str)
	if err != nil {
		return hash.Hash256{}, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return h, nil
}

// Bytes returns the bytes of the hex string of the index
func (arg *Argument) Bytes(index int) ([]byte, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	bs, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return bs, nil
}

// Amount returns a amount value of the index
// a decimal string is in token units and a 0x prefixed string is in base units
func (arg *Argument) Amount(index int) (*amount.Amount, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(str, "0x") {
		bi, ok := new(big.Int).SetString(str[2:], 16)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidArgument, "invalid amount %v", str)
		}
		return amount.NewAmountFromBig(bi), nil
	}
	am, err := amount.ParseAmount(str)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return am, nil
}

// Array returns a array value of the index
func (arg *Argument) Array(index int) ([]interface{}, error) {
	a, err := arg.value(index)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(a).Kind() != reflect.Slice {
		return nil, errors.WithStack(ErrInvalidArgumentType)
	}
	s := reflect.ValueOf(a)
	r := make([]interface{}, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		r = append(r, s.Index(i).Interface())
	}
	return r, nil
}
