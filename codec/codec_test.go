package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

type item struct {
	Key   string    `json:"key" msgpack:"key" cbor:"1,keyasint"`
	Order int       `json:"order" msgpack:"order" cbor:"2,keyasint"`
	At    time.Time `json:"at" msgpack:"at" cbor:"3,keyasint"`
}

func TestForNameKnownCodecsPreserveOrder(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	in := []item{{"b", 2, at}, {"a", 1, at}, {"c", 3, at}}
	for _, name := range []string{"", "json", "MSGPACK", "cbor", "cbor-det"} {
		cd, err := ForName[[]item](name)
		if err != nil {
			t.Fatalf("ForName(%q): %v", name, err)
		}
		b, err := cd.Encode(in)
		if err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		out, err := cd.Decode(b)
		if err != nil {
			t.Fatalf("%s decode: %v", name, err)
		}
		if len(out) != len(in) {
			t.Fatalf("%s: len=%d want %d", name, len(out), len(in))
		}
		for i := range in {
			if out[i].Key != in[i].Key || out[i].Order != in[i].Order || !out[i].At.Equal(in[i].At) {
				t.Fatalf("%s: item %d = %+v want %+v", name, i, out[i], in[i])
			}
		}
	}
}

func TestForNameUnknown(t *testing.T) {
	if _, err := ForName[int]("yaml"); err == nil {
		t.Fatalf("expected error for unknown codec")
	}
}

func TestCBORDeterministicIsByteStable(t *testing.T) {
	cd := MustCBOR[map[string]int](true)
	m := map[string]int{"z": 1, "a": 2, "m": 3, "b": 4}
	first, err := cd.Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := cd.Encode(m)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic CBOR produced different bytes")
		}
	}
}

func TestLimitRejectsOversizedPayload(t *testing.T) {
	cd := Limit[string]{Inner: JSON[string]{}, MaxDecode: 8}
	b, err := cd.Encode(strings.Repeat("x", 32))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cd.Decode(b); err == nil {
		t.Fatalf("expected size error")
	}

	small, _ := cd.Encode("ok")
	if v, err := cd.Decode(small); err != nil || v != "ok" {
		t.Fatalf("small decode: v=%q err=%v", v, err)
	}

	off := Limit[string]{Inner: JSON[string]{}}
	if _, err := off.Decode(b); err != nil {
		t.Fatalf("MaxDecode=0 must not limit: %v", err)
	}
}

func TestMappedProtobuf(t *testing.T) {
	pb := NewProtobuf(func() *structpb.ListValue { return &structpb.ListValue{} })
	cd := Map[[]string, *structpb.ListValue](pb,
		func(in []string) (*structpb.ListValue, error) {
			vals := make([]any, len(in))
			for i, s := range in {
				vals[i] = s
			}
			return structpb.NewList(vals)
		},
		func(l *structpb.ListValue) ([]string, error) {
			out := make([]string, 0, len(l.GetValues()))
			for _, v := range l.GetValues() {
				out = append(out, v.GetStringValue())
			}
			return out, nil
		},
	)

	b, err := cd.Encode([]string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := cd.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("got=%v", got)
	}
}

func TestMappedPropagatesConversionError(t *testing.T) {
	boom := errors.New("boom")
	cd := Map[int, string](JSON[string]{},
		func(int) (string, error) { return "", boom },
		func(string) (int, error) { return 0, nil },
	)
	if _, err := cd.Encode(1); !errors.Is(err, boom) {
		t.Fatalf("err=%v want boom", err)
	}
}
