package message

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestRequestFrameRoundTrip(t *testing.T) {
	buf := bytes.Buffer{}
	want := &Request{Index: 1, Begin: 0, Length: 16384}
	if err := Write(&buf, MsgRequest, want); err != nil {
		t.Fatal(err)
	}

	// Wire layout: length=13, id=6, then index|begin|length.
	wire := buf.Bytes()
	if len(wire) != 17 || binary.BigEndian.Uint32(wire) != 13 || wire[4] != byte(MsgRequest) {
		t.Fatalf("bad frame: %x", wire)
	}

	id, msg, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if id != MsgRequest {
		t.Fatalf("id: got %v", id)
	}
	got := msg.(*Request)
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadSkipsKeepAlive(t *testing.T) {
	buf := bytes.Buffer{}
	if err := WriteKeepAlive(&buf); err != nil {
		t.Fatal(err)
	}
	if err := WriteKeepAlive(&buf); err != nil {
		t.Fatal(err)
	}
	if err := Write(&buf, MsgUnChoke, &UnChoke{}); err != nil {
		t.Fatal(err)
	}

	id, _, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if id != MsgUnChoke {
		t.Errorf("got %v, want unchoke", id)
	}
}

func TestReadRejectsOversizedFrame(t *testing.T) {
	// Declared length just over the cap; no payload follows, and none
	// should be read.
	wire := []byte{0, 0, 0, 0}
	binary.BigEndian.PutUint32(wire, MaxFrameSize+1)

	_, _, err := Read(bytes.NewReader(wire))
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("got %v, want ErrFrameTooLarge", err)
	}
}

func TestReadRejectsUnknownID(t *testing.T) {
	buf := bytes.Buffer{}
	buf.Write([]byte{0, 0, 0, 1, 42})

	_, _, err := Read(&buf)
	if !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("got %v, want ErrUnknownMessage", err)
	}
}

func TestReadPartialFrame(t *testing.T) {
	// A truncated stream is a transport error, not a message.
	wire := []byte{0, 0, 0, 13, byte(MsgRequest), 0, 0}
	_, _, err := Read(bytes.NewReader(wire))
	if err == nil {
		t.Fatal("expected error for truncated frame")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want unexpected EOF", err)
	}
}

func TestPiecePayloadLayout(t *testing.T) {
	p := &Piece{Index: 3, Begin: 16384, Data: []byte("block")}
	b, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if binary.BigEndian.Uint32(b) != 3 || binary.BigEndian.Uint32(b[4:]) != 16384 || string(b[8:]) != "block" {
		t.Errorf("bad layout: %x", b)
	}

	var back Piece
	if err := back.Unmarshal(b); err != nil {
		t.Fatal(err)
	}
	if back.Index != 3 || back.Begin != 16384 || string(back.Data) != "block" {
		t.Errorf("got %+v", back)
	}
}

func TestParseMsgID(t *testing.T) {
	for b := byte(0); b <= 8; b++ {
		if _, err := ParseMsgID(b); err != nil {
			t.Errorf("id %d: %v", b, err)
		}
	}
	if _, err := ParseMsgID(9); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("id 9: got %v", err)
	}
}
