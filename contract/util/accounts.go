package util

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/key"
)

// Accounts returns the fixed admin key and count user keys
func Accounts(count int) (key.Key, common.Address, []key.Key, []common.Address, error) {
	adminKey, err := key.NewMemoryKeyFromBytes(seed(0))
	if err != nil {
		return nil, ZeroAddress, nil, nil, err
	}
	userKeys := make([]key.Key, 0, count)
	users := make([]common.Address, 0, count)
	for i := 1; i <= count; i++ {
		pk, err := key.NewMemoryKeyFromBytes(seed(byte(i)))
		if err != nil {
			return nil, ZeroAddress, nil, nil, err
		}
		userKeys = append(userKeys, pk)
		users = append(users, pk.Address())
	}
	return adminKey, adminKey.Address(), userKeys, users, nil
}

func seed(i byte) []byte {
	bs := make([]byte, 32)
	bs[0] = 1
	bs[1] = i
	return bs
}
