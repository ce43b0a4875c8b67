// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"io"
)

// GLB header: magic, version and total length.
type glbHeader [3]uint32

// GLB chunk header: length and type.
type glbChunk [2]uint32

const (
	magic    = 0x46546c67
	typeJSON = 0x4e4f534a

	headerSize = 12
	chunkSize  = 8
)

// IsGLB reports whether b starts with a binary glTF
// (version 2) header.
func IsGLB(b []byte) bool {
	if len(b) < headerSize {
		return false
	}
	return binary.LittleEndian.Uint32(b) == magic && binary.LittleEndian.Uint32(b[4:]) == 2
}

// DecodeGLB decodes the JSON chunk of a GLB blob.
// The binary chunk, if any, is not read.
func DecodeGLB(r io.Reader) (*GLTF, error) {
	var h glbHeader
	if err := binary.Read(r, binary.LittleEndian, h[:]); err != nil {
		return nil, err
	}
	if h[0] != magic || h[1] != 2 || h[2] < headerSize+chunkSize {
		return nil, newErr("not a GLB blob")
	}
	var c glbChunk
	if err := binary.Read(r, binary.LittleEndian, c[:]); err != nil {
		return nil, err
	}
	if c[0] == 0 || c[1] != typeJSON || c[0] > h[2]-headerSize-chunkSize {
		return nil, newErr("invalid GLB chunk")
	}
	b := make([]byte, c[0])
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(b))
}

// EncodeGLB encodes gltf into w as a GLB blob with a
// single JSON chunk.
func EncodeGLB(w io.Writer, gltf *GLTF) error {
	var buf bytes.Buffer
	if err := Encode(&buf, gltf); err != nil {
		return err
	}
	// Chunks are padded with spaces to 4-byte alignment.
	for buf.Len()%4 != 0 {
		buf.WriteByte(' ')
	}
	n := uint32(buf.Len())
	h := glbHeader{magic, 2, headerSize + chunkSize + n}
	c := glbChunk{n, typeJSON}
	if err := binary.Write(w, binary.LittleEndian, h[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c[:]); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
