package state

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Magic marks a binary state block holding an XML tree
const Magic uint32 = 0x21324356

// maxXMLSize bounds what ReadBinary will allocate for a single state block
const maxXMLSize = 1 << 20

var (
	// ErrBadMagic is returned when a state block does not start with Magic
	ErrBadMagic = errors.New("state: bad magic")
	// ErrTooLarge is returned when the declared XML length exceeds the limit
	ErrTooLarge = errors.New("state: block too large")
)

// WriteBinary writes t as XML wrapped in the binary envelope:
// magic, little-endian length, UTF-8 XML, NUL.
func WriteBinary(w io.Writer, t *Tree) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(t); err != nil {
		return fmt.Errorf("encode state tree: %w", err)
	}

	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(buf.Len()))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	buf.WriteByte(0)
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadBinary reads a tree written by WriteBinary.
// The trailing NUL is optional.
func ReadBinary(r io.Reader) (*Tree, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read state header: %w", err)
	}
	if binary.LittleEndian.Uint32(header[0:4]) != Magic {
		return nil, ErrBadMagic
	}

	size := binary.LittleEndian.Uint32(header[4:8])
	if size > maxXMLSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read state body: %w", err)
	}
	// Writers that count the NUL terminator in the length leave it in data
	data = bytes.TrimRight(data, "\x00")

	t := &Tree{}
	if err := xml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("decode state tree: %w", err)
	}
	return t, nil
}
