package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/meverselabs/dmcexchange/service/apiserver"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRequest(t *testing.T) {
	api := apiserver.NewAPIServer(1)
	sub, err := api.JRPC("ledger")
	require.NoError(t, err)
	sub.Set("seq", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return uint64(3), nil
	})
	sub.Set("fail", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return nil, errors.New("mint not allowed")
	})
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	res, err := DoRequest(srv.URL, "ledger.seq", []interface{}{})
	require.NoError(t, err)
	assert.Equal(t, json.Number("3"), res)

	_, err = DoRequest(srv.URL, "ledger.fail", []interface{}{})
	require.Error(t, err)
	assert.Equal(t, "mint not allowed", err.Error())
}
