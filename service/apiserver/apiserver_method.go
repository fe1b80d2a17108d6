package apiserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type reqData struct {
	req   *JRPCRequest
	resCh chan *JRPCResponse
}

func (s *APIServer) setup() {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.POST("/api/endpoints/http", func(c echo.Context) error {
		defer c.Request().Body.Close()

		req, err := decodeRequest(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusOK, &JRPCResponse{
				JSONRPC: "2.0",
				Error:   ErrInvalidRequest.Error(),
			})
		}
		res := s.dispatch(req)
		if res == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.JSON(http.StatusOK, res)
	})
	s.e.GET("/api/endpoints/websocket", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return nil
			}
			req, err := decodeRequest(bytes.NewReader(data))
			if err != nil {
				return err
			}
			res := s.dispatch(req)
			if res == nil {
				continue
			}
			if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				return err
			}
			if err := conn.WriteJSON(res); err != nil {
				return err
			}
		}
	})
	for i := 0; i < s.workers; i++ {
		go func() {
			for r := range s.reqCh {
				r.resCh <- s.handleJRPC(r.req)
			}
		}()
	}
}

func decodeRequest(r io.Reader) (*JRPCRequest, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var req JRPCRequest
	if err := dec.Decode(&req); err != nil {
		return nil, errors.WithStack(err)
	}
	return &req, nil
}

func (s *APIServer) dispatch(req *JRPCRequest) *JRPCResponse {
	resCh := make(chan *JRPCResponse, 1)
	s.reqCh <- &reqData{
		req:   req,
		resCh: resCh,
	}
	return <-resCh
}

// JRPC provides the json rpc feature as a SubName.FunctionName methods
func (s *APIServer) JRPC(SubName string) (*JRPCSub, error) {
	s.Lock()
	defer s.Unlock()

	if _, has := s.subMap[SubName]; has {
		return nil, errors.Wrap(ErrExistSubName, SubName)
	}
	js := NewJRPCSub()
	s.subMap[SubName] = js
	return js, nil
}

func (s *APIServer) handleJRPC(req *JRPCRequest) *JRPCResponse {
	fn, err := s.handler(req.Method)
	if err != nil {
		if req.ID == nil {
			return nil
		}
		return &JRPCResponse{
			JSONRPC: req.JSONRPC,
			ID:      req.ID,
			Error:   err.Error(),
		}
	}

	ret, err := fn(req.ID, NewArgument(req.Params))
	if req.ID == nil {
		return nil
	}
	res := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
	}
	if err != nil {
		res.Error = errors.Cause(err).Error()
	} else {
		res.Result = ret
	}
	return res
}

func (s *APIServer) handler(method string) (Handler, error) {
	ls := strings.SplitN(method, ".", 2)
	if len(ls) != 2 {
		return nil, ErrInvalidMethod
	}
	s.Lock()
	sub, has := s.subMap[ls[0]]
	s.Unlock()
	if !has {
		return nil, ErrInvalidMethod
	}
	fn, has := sub.get(ls[1])
	if !has {
		return nil, ErrInvalidMethod
	}
	return fn, nil
}
