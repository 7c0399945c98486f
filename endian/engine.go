// Package endian selects the byte order of the tsx blob and frame formats.
//
// EndianEngine joins binary.ByteOrder and binary.AppendByteOrder so encoders
// can both append and overwrite words through one value. Blobs record the
// engine in a one-byte header flag, see Flag and FromFlag.
//
//	engine := endian.GetLittleEndianEngine()
//	enc := encoding.NewKeyRawEncoder(engine)
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

const (
	// FlagLittleEndian marks little-endian payloads in a blob header.
	FlagLittleEndian byte = 0x1
	// FlagBigEndian marks big-endian payloads in a blob header.
	FlagBigEndian byte = 0x2
)

// CheckEndianness returns the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: a little-endian host stores the zero byte first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the tsx default.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Flag returns the header flag recording engine.
func Flag(engine EndianEngine) byte {
	if engine == GetBigEndianEngine() {
		return FlagBigEndian
	}

	return FlagLittleEndian
}

// FromFlag returns the engine recorded by a header flag.
// ok is false for an unknown flag.
func FromFlag(flag byte) (engine EndianEngine, ok bool) {
	switch flag {
	case FlagLittleEndian:
		return GetLittleEndianEngine(), true
	case FlagBigEndian:
		return GetBigEndianEngine(), true
	default:
		return nil, false
	}
}
