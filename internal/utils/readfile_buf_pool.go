// Read a file into a reusable buffer from a pool; this should be more efficient
// than allocating a buffer every time and relying on GC.

package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
)

const (
	// maxReadSize value for pools w/o a read limit:
	READ_FILE_BUF_POOL_MAX_READ_SIZE_UNBOUND = 0
)

// Returned by ReadFile when the read stopped at maxReadSize with file content
// potentially left over:
var ErrReadFileBufPotentialTruncation = errors.New("potential read truncation")

type ReadFileBufPool struct {
	m           *sync.Mutex
	bufs        []*bytes.Buffer
	poolSize    int
	maxPoolSize int
	maxReadSize int64
}

func NewReadFileBufPool(maxPoolSize int, maxReadSize int64) *ReadFileBufPool {
	return &ReadFileBufPool{
		m:           &sync.Mutex{},
		maxPoolSize: maxPoolSize,
		maxReadSize: maxReadSize,
	}
}

func (p *ReadFileBufPool) MaxPoolSize() int {
	return p.maxPoolSize
}

func (p *ReadFileBufPool) MaxReadSize() int64 {
	return p.maxReadSize
}

// Retrieve a buffer, most recently returned first, or allocate a new one if
// the pool is empty. The buffer is reset, i.e. Len() == 0:
func (p *ReadFileBufPool) GetBuf() *bytes.Buffer {
	p.m.Lock()
	defer p.m.Unlock()
	if p.poolSize == 0 {
		return &bytes.Buffer{}
	}
	p.poolSize--
	b := p.bufs[p.poolSize]
	p.bufs = p.bufs[:p.poolSize]
	b.Reset()
	return b
}

// Return a buffer to the pool; buffers in excess of maxPoolSize, if capped,
// are left to the GC. nil is a no-op such that ReturnBuf can be deferred
// right after a failed ReadFile:
func (p *ReadFileBufPool) ReturnBuf(b *bytes.Buffer) {
	if b == nil {
		return
	}
	p.m.Lock()
	defer p.m.Unlock()
	if p.maxPoolSize > 0 && p.poolSize >= p.maxPoolSize {
		return
	}
	p.bufs = append(p.bufs, b)
	p.poolSize++
}

// Read the entire file in one go into a pool buffer. The caller is expected
// to invoke ReturnBuf with the returned buffer when the content is no longer
// needed:
func (p *ReadFileBufPool) ReadFile(path string) (*bytes.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := p.GetBuf()
	var r io.Reader = f
	if p.maxReadSize > 0 {
		r = io.LimitReader(f, p.maxReadSize)
	}
	_, err = b.ReadFrom(r)
	if err == nil && p.maxReadSize > 0 && int64(b.Len()) >= p.maxReadSize {
		// The read stopped at the cap, there is no telling whether the
		// file had more content:
		err = ErrReadFileBufPotentialTruncation
	}
	if err != nil {
		p.ReturnBuf(b)
		return nil, err
	}
	return b, nil
}
