package models

import (
	"encoding/binary"
	"io"
)

var byteOrder = binary.LittleEndian

// writeBytes writes a uint32 length-prefixed byte slice.
func writeBytes(w io.Writer, b []byte) error {
	if err := binary.Write(w, byteOrder, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// readBytes reads a uint32 length-prefixed byte slice.
func readBytes(r io.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
