package bencode

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	zeebo "github.com/zeebo/bencode"
)

func decodeOne(t *testing.T, input string) *Value {
	t.Helper()
	v, rest, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("decode %q: %v", input, err)
	}
	if len(rest) != 0 {
		t.Fatalf("decode %q: %d unconsumed bytes", input, len(rest))
	}
	return v
}

func TestDecodeInteger(t *testing.T) {
	for input, want := range map[string]int64{
		"i123e":  123,
		"i-123e": -123,
		"i0e":    0,
	} {
		v := decodeOne(t, input)
		if v.Kind != Integer || v.Int != want {
			t.Errorf("decode %q: got %v, want %d", input, v.Interface(), want)
		}
	}
}

func TestDecodeString(t *testing.T) {
	v := decodeOne(t, "5:hello")
	if v.Kind != String || string(v.Str) != "hello" {
		t.Errorf("got %v", v.Interface())
	}
	if v := decodeOne(t, "0:"); len(v.Str) != 0 {
		t.Errorf("empty string: got %q", v.Str)
	}
}

func TestDecodeList(t *testing.T) {
	v := decodeOne(t, "lli1eel9:test testelee")
	want := []interface{}{
		[]interface{}{int64(1)},
		[]interface{}{"test test"},
		[]interface{}{},
	}
	if !reflect.DeepEqual(v.Interface(), want) {
		t.Errorf("got %v, want %v", v.Interface(), want)
	}
}

func TestDecodeDict(t *testing.T) {
	v := decodeOne(t, "d4:dictd9:space keyi4eee")
	want := map[string]interface{}{
		"dict": map[string]interface{}{"space key": int64(4)},
	}
	if !reflect.DeepEqual(v.Interface(), want) {
		t.Errorf("got %v, want %v", v.Interface(), want)
	}
}

func TestDecodeRemainder(t *testing.T) {
	v, rest, err := Decode([]byte("i42e5:hello"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Int != 42 {
		t.Errorf("got %d", v.Int)
	}
	if string(rest) != "5:hello" {
		t.Errorf("remainder: got %q", rest)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"i125i",
		"ie",
		"i12-3e",
		"li13i2e",
		"10:short",
		"d3:keyi1e",
		"di1ei2ee", // non-string dict key
		"x",
		"-5:neg",
	} {
		_, _, err := Decode([]byte(input))
		if err == nil {
			t.Errorf("decode %q: expected error", input)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("decode %q: error %v is not ErrSyntax", input, err)
		}
	}
}

func TestEncodeCanonicalKeyOrder(t *testing.T) {
	v := NewDict(map[string]*Value{
		"zzz":    NewInteger(1),
		"a":      NewInteger(2),
		"pieces": NewString([]byte{0xff, 0x00, 0xab}),
	})
	got := Encode(v)
	want := "d1:ai2e6:pieces3:\xff\x00\xab3:zzzi1ee"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Decoding non-canonical input and re-encoding must come out ordered.
	reordered := "d3:zzzi1e1:ai2e6:pieces3:\xff\x00\xabe"
	dec, _, err := Decode([]byte(reordered))
	if err != nil {
		t.Fatal(err)
	}
	if string(Encode(dec)) != want {
		t.Errorf("re-encode of unordered input: got %q, want %q", Encode(dec), want)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"i-987654321e",
		"4:spam",
		"l4:spami42ee",
		"d8:announce20:http://t.example/ann4:infod6:lengthi5e12:piece lengthi3e6:pieces6:aabbccee",
	}
	for _, input := range inputs {
		v := decodeOne(t, input)
		if got := Encode(v); string(got) != input {
			t.Errorf("round trip %q: got %q", input, got)
		}
		again, _, err := Decode(Encode(v))
		if err != nil {
			t.Fatalf("re-decode %q: %v", input, err)
		}
		if !reflect.DeepEqual(again.Interface(), v.Interface()) {
			t.Errorf("decode(encode(v)) mismatch for %q", input)
		}
	}
}

// Our canonical encoder must agree byte-for-byte with zeebo/bencode,
// which the creator uses for struct marshalling.
func TestEncodeMatchesZeebo(t *testing.T) {
	v := NewDict(map[string]*Value{
		"name":         NewString([]byte("blob.bin")),
		"length":       NewInteger(1000),
		"piece length": NewInteger(400),
		"tags":         NewList(NewString([]byte("b")), NewString([]byte("a"))),
	})
	want := bytes.Buffer{}
	if err := zeebo.NewEncoder(&want).Encode(map[string]interface{}{
		"name":         "blob.bin",
		"length":       1000,
		"piece length": 400,
		"tags":         []interface{}{"b", "a"},
	}); err != nil {
		t.Fatal(err)
	}
	if got := Encode(v); !bytes.Equal(got, want.Bytes()) {
		t.Errorf("got %q, want %q", got, want.Bytes())
	}
}
