package types

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"reflect"
	"strings"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

var (
	addressType   = reflect.TypeOf(common.Address{})
	addressesType = reflect.TypeOf([]common.Address{})
	hashType      = reflect.TypeOf(hash.Hash256{})
	amountType    = reflect.TypeOf(&amount.Amount{})
	bigIntType    = reflect.TypeOf(&big.Int{})
	bytesType     = reflect.TypeOf([]byte{})
	signatureType = reflect.TypeOf(common.Signature{})
)

// ContractInputsConv converts the call arguments to the parameter types of the method
// the first parameter of the method is the ContractContext and is not counted
func ContractInputsConv(Args []interface{}, rMethod reflect.Value) ([]reflect.Value, error) {
	mt := rMethod.Type()
	if mt.NumIn() != len(Args)+1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "invalid inputs count got %v want %v", len(Args), mt.NumIn()-1)
	}
	in := make([]reflect.Value, len(Args))
	for i, v := range Args {
		param, err := convertInput(v, mt.In(i+1))
		if err != nil {
			return nil, errors.Wrapf(err, "argument %v", i)
		}
		in[i] = param
	}
	return in, nil
}

func convertInput(v interface{}, mType reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(mType), nil
	}
	param := reflect.ValueOf(v)
	if param.Type() == mType {
		return param, nil
	}
	if param.Type().ConvertibleTo(mType) && param.Kind() == mType.Kind() {
		return param.Convert(mType), nil
	}
	switch pv := v.(type) {
	case string:
		return convertString(pv, mType)
	case json.Number:
		return convertString(pv.String(), mType)
	case float64:
		if pv < 0 || pv != float64(uint64(pv)) {
			break
		}
		return convertBig(new(big.Int).SetUint64(uint64(pv)), mType)
	case *big.Int:
		return convertBig(pv, mType)
	case *amount.Amount:
		return convertBig(pv.Int, mType)
	case uint8:
		return convertBig(new(big.Int).SetUint64(uint64(pv)), mType)
	case uint16:
		return convertBig(new(big.Int).SetUint64(uint64(pv)), mType)
	case uint32:
		return convertBig(new(big.Int).SetUint64(uint64(pv)), mType)
	case uint64:
		return convertBig(new(big.Int).SetUint64(pv), mType)
	case int:
		if pv >= 0 {
			return convertBig(big.NewInt(int64(pv)), mType)
		}
	case []byte:
		switch mType {
		case hashType:
			if len(pv) == hash.HashLength {
				return reflect.ValueOf(hash.BytesToHash(pv)), nil
			}
		case addressType:
			if len(pv) == common.AddressLength {
				return reflect.ValueOf(common.BytesToAddress(pv)), nil
			}
		case amountType:
			return reflect.ValueOf(amount.NewAmountFromBytes(pv)), nil
		case bigIntType:
			return reflect.ValueOf(new(big.Int).SetBytes(pv)), nil
		}
	case []interface{}:
		if mType == addressesType {
			as := make([]common.Address, 0, len(pv))
			for _, t := range pv {
				p, err := convertInput(t, addressType)
				if err != nil {
					return reflect.Value{}, err
				}
				as = append(as, p.Interface().(common.Address))
			}
			return reflect.ValueOf(as), nil
		}
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "get %v want %v", param.Type(), mType)
}

func convertString(pv string, mType reflect.Type) (reflect.Value, error) {
	switch mType {
	case addressType:
		addr, err := common.ParseAddress(pv)
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(addr), nil
	case hashType:
		h, err := hash.ParseHash(pv)
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(h), nil
	case amountType:
		if strings.HasPrefix(pv, "0x") {
			bi, ok := new(big.Int).SetString(pv[2:], 16)
			if !ok {
				return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "invalid amount %v", pv)
			}
			return reflect.ValueOf(amount.NewAmountFromBig(bi)), nil
		}
		am, err := amount.ParseAmount(pv)
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(am), nil
	case bytesType, signatureType:
		bs, err := hex.DecodeString(strings.TrimPrefix(pv, "0x"))
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(bs).Convert(mType), nil
	}
	switch mType.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(strings.ToLower(pv) == "true"), nil
	case reflect.Slice:
		if mType == addressesType {
			as := []common.Address{}
			for _, s := range strings.Split(pv, ",") {
				if s = strings.TrimSpace(s); len(s) == 0 {
					continue
				}
				addr, err := common.ParseAddress(s)
				if err != nil {
					return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
				}
				as = append(as, addr)
			}
			return reflect.ValueOf(as), nil
		}
	}
	bi, ok := new(big.Int).SetString(pv, 10)
	if !ok && strings.HasPrefix(pv, "0x") {
		bi, ok = new(big.Int).SetString(pv[2:], 16)
	}
	if !ok {
		return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "get %v want %v", pv, mType)
	}
	return convertBig(bi, mType)
}

func convertBig(bi *big.Int, mType reflect.Type) (reflect.Value, error) {
	switch mType {
	case amountType:
		return reflect.ValueOf(amount.NewAmountFromBig(bi)), nil
	case bigIntType:
		return reflect.ValueOf(new(big.Int).Set(bi)), nil
	case addressType:
		return reflect.ValueOf(common.BytesToAddress(bi.Bytes())), nil
	case hashType:
		return reflect.ValueOf(hash.BytesToHash(bi.Bytes())), nil
	}
	switch mType.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if bi.Sign() < 0 || bi.BitLen() > mType.Bits() {
			return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v overflows %v", bi, mType)
		}
		return reflect.ValueOf(bi.Uint64()).Convert(mType), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if bi.BitLen() >= mType.Bits() {
			return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v overflows %v", bi, mType)
		}
		return reflect.ValueOf(bi.Int64()).Convert(mType), nil
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "get %v want %v", bi, mType)
}
