package reach

import "encoding/binary"

// Encode serializes block's instruction sequence to a byte stream for the
// DUMP_BYTECODE diagnostic (spec §6). Each instruction becomes a
// binary.LittleEndian-encoded header word (opcode in the low byte, the
// instruction's SizeInBytes in the high three bytes) — the same
// little-endian word-header shape the teacher's vm_encoder.go uses to
// encode its own Instruction stream, generalized from a byte-oriented
// encoding to this VM's coarser per-instruction header.
//
// This is a diagnostic serialization only: the interpreter executes
// block.Code directly as typed Go values and never decodes this stream,
// since a tree-walking interpreter over typed Instruction values needs no
// fetch/decode step.
func Encode(block *BytecodeBlock) []byte {
	out := make([]byte, 0, len(block.Code)*wordSize)
	var header [4]byte
	for _, instr := range block.Code {
		binary.LittleEndian.PutUint32(header[:], uint32(instr.Op())|uint32(instr.SizeInBytes())<<8)
		out = append(out, header[:]...)
	}
	return out
}

// DecodeHeader reads one instruction header word, returning the opcode and
// encoded size. Exposed mainly so tests can assert Encode's output shape
// without duplicating the bit layout.
func DecodeHeader(word []byte) (Opcode, int) {
	h := binary.LittleEndian.Uint32(word[:4])
	return Opcode(h & 0xff), int(h >> 8)
}
