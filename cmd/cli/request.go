package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/meverselabs/dmcexchange/service/apiserver"
	"github.com/pkg/errors"
)

// DoRequest calls the json rpc method of the node
func DoRequest(hostURL string, Method string, Params []interface{}) (interface{}, error) {
	req := &apiserver.JRPCRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  Method,
		Params:  Params,
	}
	bs, err := json.Marshal(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	r, err := http.Post(hostURL+"/api/endpoints/http", "application/json", bytes.NewReader(bs))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer r.Body.Close()

	var res apiserver.JRPCResponse
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(res.Error) > 0 {
		return nil, errors.New(res.Error)
	}
	return res.Result, nil
}

func printResult(res interface{}, err error) {
	if err != nil {
		fmt.Println("error :", err)
		return
	}
	bs, err := json.MarshalIndent(res, "", "\t")
	if err != nil {
		fmt.Println("error :", err)
		return
	}
	fmt.Println(string(bs))
}
