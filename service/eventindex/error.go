package eventindex

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrCannotSetHeight struct {
	err error
	h   uint32
}

func (e *ErrCannotSetHeight) Error() string {
	return fmt.Sprintln("CannotSetHeight", e.h, "err:", e.err)
}

var (
	ErrIsNotNextHeight    = errors.New("is not next height")
	ErrNotExistTransfer   = errors.New("not exist transfer")
	ErrInvalidTransferLog = errors.New("invalid transfer log")
)
