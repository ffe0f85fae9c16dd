package dictcache

import "time"

const (
	StatusDisabled = 0
	StatusValid    = 1
)

// Entry is one dictionary record: a code/value option tagged with the
// dictionary type it belongs to. Field tags cover every codec in codec/.
type Entry struct {
	ID        string    `json:"id" msgpack:"id" cbor:"1,keyasint"`
	Type      string    `json:"type" msgpack:"type" cbor:"2,keyasint"`
	Code      string    `json:"code" msgpack:"code" cbor:"3,keyasint"`
	Value     string    `json:"value" msgpack:"value" cbor:"4,keyasint"`
	Label     string    `json:"label,omitempty" msgpack:"label,omitempty" cbor:"5,keyasint,omitempty"`
	SortOrder int       `json:"sortOrder" msgpack:"sortOrder" cbor:"6,keyasint"`
	Status    int       `json:"status" msgpack:"status" cbor:"7,keyasint"`
	Remark    string    `json:"remark,omitempty" msgpack:"remark,omitempty" cbor:"8,keyasint,omitempty"`
	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt" cbor:"9,keyasint"`
	UpdatedAt time.Time `json:"updatedAt" msgpack:"updatedAt" cbor:"10,keyasint"`
}

// GroupByType buckets entries by Type. Order inside a bucket follows the
// order of the input slice.
func GroupByType(entries []Entry) map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range entries {
		out[e.Type] = append(out[e.Type], e)
	}
	return out
}
