// Package frame builds and patches the length-prefixed TCP envelopes the
// connection exchanges with the server: the one-time init handshake and the
// per-operation standard message, both grounded in spec §3's
// InitBytes/OutgoingMessage layout.
package frame

import "encoding/binary"

// Magic bytes identifying a frame's class on the wire.
const (
	MagicEnvelope     byte = 0xFB // 256-5: TCP envelope
	MagicPing         byte = 0xF0 // ping frame
	MagicOperation    byte = 0xF3 // 256-13: normal operation frame
	MagicOperationAlt byte = 0xF4 // 256-12: obsolete-variant operation frame
)

// initPrefix is InitBytes[0:9], fixed by the protocol.
var initPrefix = [9]byte{0xF3, 0x00, 0x01, 0x06, 0x01, 0x03, 0x00, 0x02, 0x07}

const (
	initBytesLen  = 41
	appIDOffset   = 9
	appIDLen      = 32
	stdHeaderLen  = 9
	initHeaderLen = 7
	// DefaultAppID is used when connect() is called with no app id, matching
	// the original client's "Lite" default.
	DefaultAppID = "Lite"
)

// stdHeaderTemplate is the 9-byte header prefixed to every standard (post-handshake)
// message: magic, 4 placeholder length bytes, channel id, reliable flag,
// then the fixed protocol-message header [0xF3, 0x02].
var stdHeaderTemplate = [stdHeaderLen]byte{MagicEnvelope, 0, 0, 0, 0, 0, 0, 0xF3, 0x02}

// initHeaderTemplate is the 7-byte header prefixed to the init handshake
// message: magic, 4 placeholder length bytes, channel id, reliable flag.
var initHeaderTemplate = [initHeaderLen]byte{MagicEnvelope, 0, 0, 0, 0, 0, 1}

// BuildInitBytes returns the 41-byte handshake payload: the fixed 9-byte
// prefix followed by appID UTF-8 encoded, right-zero-padded or truncated to
// 32 bytes.
func BuildInitBytes(appID string) []byte {
	if appID == "" {
		appID = DefaultAppID
	}
	out := make([]byte, initBytesLen)
	copy(out[:9], initPrefix[:])
	idBytes := []byte(appID)
	n := copy(out[appIDOffset:appIDOffset+appIDLen], idBytes)
	_ = n
	return out
}

// BuildInitMessage wraps InitBytes in the 7-byte init header, with its
// length field patched to cover header+payload, reliable=true and
// channel_id=0 as spec §4.3's handshake demands.
func BuildInitMessage(appID string) []byte {
	payload := BuildInitBytes(appID)
	msg := make([]byte, initHeaderLen+len(payload))
	copy(msg, initHeaderTemplate[:])
	copy(msg[initHeaderLen:], payload)
	binary.BigEndian.PutUint32(msg[1:5], uint32(len(msg)))
	msg[5] = 0 // channel id
	msg[6] = 1 // reliable
	return msg
}

// BuildOperationMessage wraps an already-serialized OperationRequest payload
// (op code + Parameters) in the 9-byte standard header, patches bytes 5/6
// with channelID/reliable and bytes 1..4 with the total length.
func BuildOperationMessage(payload []byte, channelID byte, reliable bool) []byte {
	msg := make([]byte, stdHeaderLen+len(payload))
	copy(msg, stdHeaderTemplate[:])
	copy(msg[stdHeaderLen:], payload)
	msg[5] = channelID
	if reliable {
		msg[6] = 1
	} else {
		msg[6] = 0
	}
	binary.BigEndian.PutUint32(msg[1:5], uint32(len(msg)))
	return msg
}

// BuildPingFrame returns the 5-byte ping frame [0xF0, t0_BE_i32...] for the
// given peer-local millisecond timestamp.
func BuildPingFrame(localMs int32) []byte {
	out := make([]byte, 5)
	out[0] = MagicPing
	binary.BigEndian.PutUint32(out[1:5], uint32(localMs))
	return out
}
