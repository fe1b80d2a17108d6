package closer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type failCloser struct {
	order *[]string
}

func (c *failCloser) Close() error {
	*c.order = append(*c.order, "fail")
	return errors.New("close failed")
}

func TestCloseAll(t *testing.T) {
	order := []string{}
	cm := NewManager()
	cm.Add("chain", Func(func() { order = append(order, "chain") }))
	cm.Add("index", &failCloser{order: &order})
	cm.Add("api", Func(func() { order = append(order, "api") }))
	assert.Equal(t, []string{"api", "index", "chain"}, cm.Names())

	assert.False(t, cm.IsClosed())
	cm.CloseAll()
	cm.CloseAll()
	cm.Wait()

	assert.True(t, cm.IsClosed())
	assert.Equal(t, []string{"api", "fail", "chain"}, order)
}
