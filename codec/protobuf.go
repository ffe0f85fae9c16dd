package codec

import "google.golang.org/protobuf/proto"

// Protobuf encodes proto messages. Pair it with Map to cache plain Go values
// through a message type.
type Protobuf[T proto.Message] struct {
	new func() T // e.g. func() *structpb.ListValue { return &structpb.ListValue{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// Mapped adapts a Codec[W] to a Codec[V] through a pair of conversions.
type Mapped[V, W any] struct {
	Inner Codec[W]
	To    func(V) (W, error)
	From  func(W) (V, error)
}

func Map[V, W any](inner Codec[W], to func(V) (W, error), from func(W) (V, error)) Mapped[V, W] {
	return Mapped[V, W]{Inner: inner, To: to, From: from}
}

func (m Mapped[V, W]) Encode(v V) ([]byte, error) {
	w, err := m.To(v)
	if err != nil {
		return nil, err
	}
	return m.Inner.Encode(w)
}

func (m Mapped[V, W]) Decode(b []byte) (V, error) {
	w, err := m.Inner.Decode(b)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.From(w)
}
