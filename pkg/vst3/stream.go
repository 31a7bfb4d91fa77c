package vst3

import (
	"io"
)

// IBStream is the byte stream a host hands over for state save and restore
type IBStream interface {
	io.Reader
	io.Writer
	io.Seeker
}

// StreamWrapper wraps an IBStream for the state code
type StreamWrapper struct {
	stream IBStream
}

// NewStreamWrapper creates a wrapper for an IBStream
func NewStreamWrapper(stream IBStream) *StreamWrapper {
	if stream == nil {
		return nil
	}
	return &StreamWrapper{stream: stream}
}

// Write writes data to the stream
func (s *StreamWrapper) Write(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}
	return s.stream.Write(buffer)
}

// ReadAll reads all remaining data from the stream
func (s *StreamWrapper) ReadAll() ([]byte, error) {
	currentPos, err := s.stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return s.readAllChunked()
	}
	endPos, err := s.stream.Seek(0, io.SeekEnd)
	if err != nil {
		return s.readAllChunked()
	}
	if _, err := s.stream.Seek(currentPos, io.SeekStart); err != nil {
		return s.readAllChunked()
	}

	remaining := endPos - currentPos
	if remaining <= 0 {
		return []byte{}, nil
	}

	buffer := make([]byte, remaining)
	n, err := io.ReadFull(s.stream, buffer)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buffer[:n], nil
}

// readAllChunked reads data in chunks when seeking is not supported
func (s *StreamWrapper) readAllChunked() ([]byte, error) {
	var result []byte
	chunk := make([]byte, 4096)

	for {
		n, err := s.stream.Read(chunk)
		result = append(result, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}

	return result, nil
}

// MemoryStream is an in-memory IBStream, the equivalent of the SDK's MemoryStream
type MemoryStream struct {
	data []byte
	pos  int64
}

// NewMemoryStream creates a stream positioned at the start of data.
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{data: data}
}

// Bytes returns the full stream contents.
func (m *MemoryStream) Bytes() []byte {
	return m.data
}

func (m *MemoryStream) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemoryStream) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *MemoryStream) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = m.pos + offset
	case io.SeekEnd:
		pos = int64(len(m.data)) + offset
	default:
		return 0, ErrInvalidArgument
	}
	if pos < 0 {
		return 0, ErrInvalidArgument
	}
	m.pos = pos
	return pos, nil
}
