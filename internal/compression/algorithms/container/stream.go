package container

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

type compressionCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	inputBuffer         io.ReadWriter
	outputBuffer        io.ReadWriter
	name                string
	options             Options
	result              *Result
}

// CompressionWriter buffers the whole input; Close compresses it.
type CompressionWriter struct {
	core *compressionCore
}

// CompressionReader yields the container once the writer is closed.
type CompressionReader struct {
	core *compressionCore
}

// NewCompressionReaderAndWriter returns a connected pair: everything written
// to the writer is compressed under name when the writer is closed, and the
// container can then be read from the reader.
func NewCompressionReaderAndWriter(name string, opts Options) (io.ReadCloser, io.WriteCloser) {
	core := &compressionCore{
		inputBuffer:  new(bytes.Buffer),
		outputBuffer: new(bytes.Buffer),
		name:         name,
		options:      opts,
	}
	return &CompressionReader{core: core}, &CompressionWriter{core: core}
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	if cw.core.isInputBufferClosed {
		return 0, errors.New("write after close")
	}
	return cw.core.inputBuffer.Write(data)
}

func (cw *CompressionWriter) Close() error {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	if cw.core.isInputBufferClosed {
		return nil
	}
	cw.core.isInputBufferClosed = true
	originalData, err := io.ReadAll(cw.core.inputBuffer)
	if err != nil {
		return err
	}
	res, err := CompressTo(cw.core.outputBuffer, cw.core.name, originalData, cw.core.options)
	if err != nil {
		return err
	}
	cw.core.result = res
	return nil
}

func (cr *CompressionReader) Read(data []byte) (int, error) {
	cr.core.lock.Lock()
	defer cr.core.lock.Unlock()
	if !cr.core.isInputBufferClosed {
		return 0, errors.New("compression input has not been closed")
	}
	return cr.core.outputBuffer.Read(data)
}

func (cr *CompressionReader) Close() error {
	cr.core.lock.Lock()
	defer cr.core.lock.Unlock()
	if buf, ok := cr.core.inputBuffer.(*bytes.Buffer); ok {
		buf.Reset()
		return nil
	}
	return errors.New("underlying io.ReadWriter is not *bytes.Buffer")
}

// Header returns the header of the written container, or nil before the
// writer is closed.
func (cr *CompressionReader) Header() *Header {
	cr.core.lock.Lock()
	defer cr.core.lock.Unlock()
	if cr.core.result == nil {
		return nil
	}
	return &cr.core.result.Header
}

type decompressionCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	inputBuffer         io.ReadWriter
	outputBuffer        io.ReadWriter
	limit               int64
	header              *Header
}

// DecompressionWriter buffers a whole container; Close decodes it.
type DecompressionWriter struct {
	core *decompressionCore
}

// DecompressionReader yields the decoded data once the writer is closed.
type DecompressionReader struct {
	core *decompressionCore
}

// NewDecompressionReaderAndWriter returns a connected pair for decoding. A
// positive limit caps the declared data size.
func NewDecompressionReaderAndWriter(limit int64) (io.ReadCloser, io.WriteCloser) {
	core := &decompressionCore{
		inputBuffer:  new(bytes.Buffer),
		outputBuffer: new(bytes.Buffer),
		limit:        limit,
	}
	return &DecompressionReader{core: core}, &DecompressionWriter{core: core}
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return 0, errors.New("write after close")
	}
	return dw.core.inputBuffer.Write(data)
}

func (dw *DecompressionWriter) Close() error {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return nil
	}
	dw.core.isInputBufferClosed = true
	archive, err := DecompressFrom(dw.core.inputBuffer, dw.core.limit)
	if err != nil {
		return err
	}
	dw.core.header = &archive.Header
	_, err = dw.core.outputBuffer.Write(archive.Data)
	return err
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if !dr.core.isInputBufferClosed {
		return 0, errors.New("decompression input has not been closed")
	}
	return dr.core.outputBuffer.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if buf, ok := dr.core.inputBuffer.(*bytes.Buffer); ok {
		buf.Reset()
		return nil
	}
	return errors.New("underlying io.ReadWriter is not *bytes.Buffer")
}

// Header returns the decoded header, or nil before the writer is closed.
func (dr *DecompressionReader) Header() *Header {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	return dr.core.header
}
