package closer

import (
	"sync"

	"github.com/meverselabs/dmcexchange/common/rlog"
)

// Closer is released by the Manager
type Closer interface {
	Close() error
}

// Func adapts a plain close function to the Closer
type Func func()

func (fn Func) Close() error {
	fn()
	return nil
}

// Manager closes the added closers in the reverse order of the addition
type Manager struct {
	sync.Mutex
	isClosed bool
	names    []string
	closers  []Closer
	done     chan struct{}
}

// NewManager returns a Manager
func NewManager() *Manager {
	return &Manager{
		done: make(chan struct{}),
	}
}

// IsClosed returns it is closed or not
func (cm *Manager) IsClosed() bool {
	cm.Lock()
	defer cm.Unlock()
	return cm.isClosed
}

// Add adds a closer with a name
func (cm *Manager) Add(name string, c Closer) {
	cm.Lock()
	defer cm.Unlock()
	cm.names = append(cm.names, name)
	cm.closers = append(cm.closers, c)
}

// Names returns the names of the closers in the closing order
func (cm *Manager) Names() []string {
	cm.Lock()
	defer cm.Unlock()
	names := make([]string, 0, len(cm.names))
	for i := len(cm.names) - 1; i >= 0; i-- {
		names = append(names, cm.names[i])
	}
	return names
}

// CloseAll closes all closers once
func (cm *Manager) CloseAll() {
	cm.Lock()
	defer cm.Unlock()
	if cm.isClosed {
		return
	}
	cm.isClosed = true
	for i := len(cm.closers) - 1; i >= 0; i-- {
		rlog.Println("Close", cm.names[i])
		if err := cm.closers[i].Close(); err != nil {
			rlog.Println("Close", cm.names[i], err)
		}
	}
	close(cm.done)
}

// Wait waits close all
func (cm *Manager) Wait() {
	<-cm.done
}
