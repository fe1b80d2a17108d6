package rlog

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	lediscfg "github.com/ledisdb/ledisdb/config"
	"github.com/ledisdb/ledisdb/ledis"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/pkg/errors"
)

var (
	logger     = log.New(os.Stderr, "", log.LstdFlags)
	loggerLock sync.Mutex
)

// errors
var (
	ErrNoLog        = errors.New("no log")
	ErrUploadFailed = errors.New("upload failed")
)

var logKey = []byte("log")

const (
	maxBufferedLogs = 5000000
	uploadBatch     = 100
)

// Println calls l.Output to print to the logger.
func Println(v ...interface{}) {
	loggerLock.Lock()
	l := logger
	loggerLock.Unlock()
	l.Println(v...)
}

// Printf calls l.Output to print to the logger.
func Printf(format string, v ...interface{}) {
	loggerLock.Lock()
	l := logger
	loggerLock.Unlock()
	l.Printf(format, v...)
}

// SetOutput replaces the destination of the logger
func SetOutput(w io.Writer) {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	logger = log.New(w, "", log.LstdFlags)
}

// Enablelogger buffers logs at path and uploads them to host/api/nodes/{name}/logs
func Enablelogger(path string, host string, name string) (*LogWriter, error) {
	lw, err := NewLogWriter(path, os.Stderr)
	if err != nil {
		return nil, err
	}
	SetOutput(lw)

	go func() {
		for !lw.isClosed() {
			if err := lw.Upload(host, name); err != nil {
				time.Sleep(3 * time.Second)
			}
		}
	}()
	return lw, nil
}

// LogWriter stores every log line into a ledis list until it is uploaded
type LogWriter struct {
	sync.Mutex
	l      *ledis.Ledis
	db     *ledis.DB
	echo   io.Writer
	closed bool
}

// NewLogWriter opens the ledis buffer at path, echo receives a copy of every line
func NewLogWriter(path string, echo io.Writer) (*LogWriter, error) {
	cfg := lediscfg.NewConfigDefault()
	cfg.DataDir = path
	l, err := ledis.Open(cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	db, err := l.Select(0)
	if err != nil {
		l.Close()
		return nil, errors.WithStack(err)
	}
	return &LogWriter{
		l:    l,
		db:   db,
		echo: echo,
	}, nil
}

func (lw *LogWriter) isClosed() bool {
	lw.Lock()
	defer lw.Unlock()
	return lw.closed
}

// Close stops the buffering
func (lw *LogWriter) Close() {
	lw.Lock()
	defer lw.Unlock()
	if !lw.closed {
		lw.closed = true
		lw.l.Close()
	}
}

func (lw *LogWriter) Write(bs []byte) (int, error) {
	if lw.echo != nil {
		lw.echo.Write(bs)
	}
	n := len(bs)
	if n > 0 && bs[n-1] == '\n' {
		bs = bs[:n-1]
	}
	if len(bs) > 65535 {
		bs = bs[:65535]
	}

	var buffer bytes.Buffer
	buffer.Write(bin.Uint64Bytes(uint64(time.Now().UnixNano())))
	buffer.Write(bin.Uint16Bytes(uint16(len(bs))))
	buffer.Write(bs)

	lw.Lock()
	defer lw.Unlock()
	if lw.closed {
		return n, nil
	}
	count, err := lw.db.LLen(logKey)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if count > maxBufferedLogs {
		lw.db.LPop(logKey)
	}
	if _, err := lw.db.RPush(logKey, buffer.Bytes()); err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

// Pending returns the number of buffered log lines
func (lw *LogWriter) Pending() (int64, error) {
	lw.Lock()
	defer lw.Unlock()
	if lw.closed {
		return 0, nil
	}
	count, err := lw.db.LLen(logKey)
	return count, errors.WithStack(err)
}

// Upload sends up to uploadBatch buffered lines and trims them on success
func (lw *LogWriter) Upload(host string, name string) error {
	lw.Lock()
	if lw.closed {
		lw.Unlock()
		return ErrNoLog
	}
	count, err := lw.db.LLen(logKey)
	if err != nil {
		lw.Unlock()
		return errors.WithStack(err)
	}
	var buffer bytes.Buffer
	appended := int64(0)
	for i := int64(0); i < count && i < uploadBatch; i++ {
		bs, err := lw.db.LIndex(logKey, int32(i))
		if err != nil {
			break
		}
		buffer.Write(bs)
		appended++
	}
	lw.Unlock()
	if buffer.Len() == 0 {
		return ErrNoLog
	}

	res, err := http.Post(host+"/api/nodes/"+name+"/logs", "application/octet-stream", &buffer)
	if err != nil {
		return errors.WithStack(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrUploadFailed, "status %v", res.StatusCode)
	}

	lw.Lock()
	defer lw.Unlock()
	if lw.closed {
		return nil
	}
	if err := lw.db.LTrim(logKey, appended, -1); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
