package pad

import (
	"encoding/binary"
)

// client -> server
const (
	OpPress      byte = 0x01 // id
	OpRelease    byte = 0x02 // id
	OpCancel     byte = 0x03 // id
	OpSetChecked byte = 0x04 // id, 0|1
	OpStickyMode byte = 0x05 // 0|1
	OpReset      byte = 0x06
	OpQuery      byte = 0x07
)

// server -> client
const (
	OpStateChanged byte = 0x80 // id, 0|1
	OpSnapshot     byte = 0x81 // sticky, pressed mask
	OpError        byte = 0xff // length (uint16 big endian), message
)

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func EncodeStateChanged(id int, checked bool) []byte {
	return []byte{OpStateChanged, byte(id), boolByte(checked)}
}

func EncodeSnapshot(s Snapshot) []byte {
	var mask byte
	for _, id := range s.Pressed {
		mask |= 1 << id
	}
	return []byte{OpSnapshot, boolByte(s.Sticky), mask}
}

func EncodeError(message string) []byte {
	bs := make([]byte, 3, 3+len(message))
	bs[0] = OpError
	binary.BigEndian.PutUint16(bs[1:], uint16(len(message)))
	return append(bs, message...)
}
