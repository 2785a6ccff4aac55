package pool

import (
	"bytes"
	"sync"
)

// maxRetained is the largest buffer capacity kept by the pool.
const maxRetained = 4 << 20

type bufp struct {
	sync.Pool
}

// Buffer is a utility variable that provides bytes.Buffer objects.
var Buffer bufp

// Get returns an empty bytes.Buffer pointer from the pool.
func (b *bufp) Get() *bytes.Buffer {
	buffer := b.Pool.Get().(*bytes.Buffer)
	buffer.Reset()

	return buffer
}

// Put returns the buffer to the pool.
func (b *bufp) Put(buffer *bytes.Buffer) {
	if buffer == nil || buffer.Cap() > maxRetained {
		return
	}

	b.Pool.Put(buffer)
}

func init() {
	Buffer = bufp{
		Pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}
