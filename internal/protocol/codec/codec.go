// Package codec builds protocol messages and moves them on and off the wire.
//
// A frame is a protobuf wire message with two fields: 1 holds the message
// type as a string and 2 holds the JSON payload as bytes. Unknown fields are
// skipped so either side can grow the frame.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

const (
	fieldType    protowire.Number = 1
	fieldPayload protowire.Number = 2
)

// ErrMissingType is returned for a frame without a message type.
var ErrMissingType = errors.New("codec: frame has no message type")

// NewMessage builds a message with a JSON encoded payload.
// Call PutMessage once the message is no longer used.
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := GetMessage()
	msg.Type = msgType

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage is NewMessage that panics on a marshal failure.
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode writes m as a binary frame.
func Encode(m *protocol.Message) ([]byte, error) {
	if m.Type == "" {
		return nil, ErrMissingType
	}

	buf := GetBuffer()
	defer PutBuffer(buf)

	b := buf.AvailableBuffer()
	b = protowire.AppendTag(b, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Type))
	if len(m.Payload) > 0 {
		b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload)
	}
	return append([]byte(nil), b...), nil
}

// Decode reads a binary frame.
// Call PutMessage once the message is no longer used.
func Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			PutMessage(msg)
			return nil, fmt.Errorf("codec: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldType && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(data)
			if m < 0 {
				PutMessage(msg)
				return nil, fmt.Errorf("codec: bad type field: %w", protowire.ParseError(m))
			}
			msg.Type = protocol.MessageType(v)
			n = m
		case num == fieldPayload && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				PutMessage(msg)
				return nil, fmt.Errorf("codec: bad payload field: %w", protowire.ParseError(m))
			}
			msg.Payload = append([]byte(nil), v...) // copy, data may be reused by the reader
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				PutMessage(msg)
				return nil, fmt.Errorf("codec: bad field %d: %w", num, protowire.ParseError(n))
			}
		}
		data = data[n:]
	}

	if msg.Type == "" {
		PutMessage(msg)
		return nil, ErrMissingType
	}
	return msg, nil
}

// EncodeJSON writes m as a JSON text frame.
func EncodeJSON(m *protocol.Message) ([]byte, error) {
	return json.Marshal(m)
}

// DecodeJSON reads a JSON text frame.
func DecodeJSON(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, ErrMissingType
	}
	return msg, nil
}

// ParsePayload decodes the payload of msg into a new T.
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage builds an error message with the default text of code.
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText builds an error message with a custom text.
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}
