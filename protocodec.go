package dictcache

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	c "github.com/unkn0wn-root/dictcache/codec"
)

// ProtoCodec encodes a group of entries as a protobuf ListValue of Structs,
// readable by any consumer that has the well-known types.
func ProtoCodec() c.Codec[[]Entry] {
	pb := c.NewProtobuf(func() *structpb.ListValue { return &structpb.ListValue{} })
	return c.Map[[]Entry, *structpb.ListValue](pb, entriesToList, listToEntries)
}

func entriesToList(in []Entry) (*structpb.ListValue, error) {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(in))}
	for _, e := range in {
		s, err := structpb.NewStruct(map[string]any{
			"id":        e.ID,
			"type":      e.Type,
			"code":      e.Code,
			"value":     e.Value,
			"label":     e.Label,
			"sortOrder": e.SortOrder,
			"status":    e.Status,
			"remark":    e.Remark,
			"createdAt": formatTime(e.CreatedAt),
			"updatedAt": formatTime(e.UpdatedAt),
		})
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, structpb.NewStructValue(s))
	}
	return out, nil
}

func listToEntries(l *structpb.ListValue) ([]Entry, error) {
	out := make([]Entry, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("dictcache: proto entry %d is not a struct", i)
		}
		f := s.GetFields()
		str := func(k string) string { return f[k].GetStringValue() }
		created, err := parseTime(str("createdAt"))
		if err != nil {
			return nil, err
		}
		updated, err := parseTime(str("updatedAt"))
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{
			ID:        str("id"),
			Type:      str("type"),
			Code:      str("code"),
			Value:     str("value"),
			Label:     str("label"),
			SortOrder: int(f["sortOrder"].GetNumberValue()),
			Status:    int(f["status"].GetNumberValue()),
			Remark:    str("remark"),
			CreatedAt: created,
			UpdatedAt: updated,
		})
	}
	return out, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
