package bridge

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dshills/evbridge/internal/html5"
)

// Frame errors.
var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrInvalidTarget = errors.New("invalid target")
)

// Frame is one DOM event sent by a remote page.
type Frame struct {
	Seq     uint64             `msgpack:"seq"`
	Target  string             `msgpack:"target"`
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// Ack answers a Frame.
type Ack struct {
	Seq     uint64 `msgpack:"seq"`
	Handled bool   `msgpack:"handled"`
	Error   string `msgpack:"error,omitempty"`
}

// EncodeFrame encodes an event for the bridge. payload must be the payload
// struct of eventType.
func EncodeFrame(seq uint64, target html5.TargetRef, eventType html5.EventType, payload any) ([]byte, error) {
	raw, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return msgpack.Marshal(&Frame{
		Seq:     seq,
		Target:  html5.TargetName(target),
		Type:    eventType.String(),
		Payload: raw,
	})
}

// DecodeAck decodes an acknowledgement.
func DecodeAck(data []byte) (Ack, error) {
	var ack Ack
	err := msgpack.Unmarshal(data, &ack)
	return ack, err
}

// parseTarget maps a wire target name to a target. The sentinel names take
// precedence over selectors.
func parseTarget(name string) (html5.TargetRef, error) {
	switch name {
	case "":
		return nil, ErrInvalidTarget
	case "window":
		return html5.TargetWindow, nil
	case "document":
		return html5.TargetDocument, nil
	case "screen":
		return html5.TargetScreen, nil
	default:
		return html5.Selector(name), nil
	}
}

// decode resolves a frame to a dispatchable event.
func (f *Frame) decode() (html5.TargetRef, html5.EventType, any, error) {
	target, err := parseTarget(f.Target)
	if err != nil {
		return nil, 0, nil, err
	}
	et, ok := html5.ParseEventType(f.Type)
	if !ok {
		return nil, 0, nil, fmt.Errorf("%w: %q", ErrUnknownEvent, f.Type)
	}
	payload, ok := html5.NewPayload(et)
	if !ok {
		return nil, 0, nil, fmt.Errorf("%w: %q", ErrUnknownEvent, f.Type)
	}
	if len(f.Payload) > 0 {
		if err := msgpack.Unmarshal(f.Payload, payload); err != nil {
			return nil, 0, nil, fmt.Errorf("decode %s payload: %w", f.Type, err)
		}
	}
	return target, et, payload, nil
}
