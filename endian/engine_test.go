package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.True(t, IsNativeBigEndian())
	case 0x02:
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.True(t, IsNativeLittleEndian())
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}
	require.NotEqual(t, IsNativeBigEndian(), IsNativeLittleEndian())
}

func TestCompareNativeEndian(t *testing.T) {
	native := CompareNativeEndian(GetLittleEndianEngine())
	require.Equal(t, IsNativeLittleEndian(), native)
	require.NotEqual(t, native, CompareNativeEndian(GetBigEndianEngine()))
}

func TestEngines(t *testing.T) {
	le, be := GetLittleEndianEngine(), GetBigEndianEngine()

	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, le.AppendUint32(nil, 0x01020304))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, be.AppendUint32(nil, 0x01020304))
	require.Equal(t, uint64(1), le.Uint64([]byte{1, 0, 0, 0, 0, 0, 0, 0}))
}

func TestFlag(t *testing.T) {
	tests := []struct {
		engine EndianEngine
		flag   byte
	}{
		{GetLittleEndianEngine(), FlagLittleEndian},
		{GetBigEndianEngine(), FlagBigEndian},
	}
	for _, tt := range tests {
		require.Equal(t, tt.flag, Flag(tt.engine))

		engine, ok := FromFlag(tt.flag)
		require.True(t, ok)
		require.Equal(t, tt.engine, engine)
	}

	_, ok := FromFlag(0)
	require.False(t, ok)
	_, ok = FromFlag(0xff)
	require.False(t, ok)
}
