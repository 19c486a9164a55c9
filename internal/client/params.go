package client

import (
	"encoding/json"
	"strings"
)

// dataParam is the single query parameter the gateway expects. The whole
// filter is one JSON object under this key, not one query key per filter.
const dataParam = "data"

// Generalize asks the gateway to aggregate historical messages server-side:
// one record per interval, produced by the named function (e.g. "average").
type Generalize struct {
	Function string `json:"function"`
	Interval int64  `json:"interval"`
}

// Filter narrows a history query (messages, logs, packets). The zero value
// means "no filter": the gateway returns everything it has.
type Filter struct {
	// From and To bound the unix-timestamp range, inclusive. Zero means
	// unbounded on that side.
	From int64
	To   int64
	// Fields restricts the returned record fields.
	Fields []string
	// Generalize enables server-side aggregation.
	Generalize *Generalize
	// Reverse flips the default ascending time ordering.
	Reverse bool
	// Extra passes additional keys through unvalidated; the gateway is the
	// source of truth for their legality. Extra never overrides a
	// recognized key.
	Extra map[string]any
}

// Encode serializes the filter as the gateway's JSON-object convention.
// A nil filter encodes to "", meaning no parameter should be sent.
func (f *Filter) Encode() (string, error) {
	if f == nil {
		return "", nil
	}
	obj := make(map[string]any, 5+len(f.Extra))
	for k, v := range f.Extra {
		obj[k] = v
	}
	if f.From != 0 {
		obj["from"] = f.From
	}
	if f.To != 0 {
		obj["to"] = f.To
	}
	if len(f.Fields) > 0 {
		obj["fields"] = strings.Join(f.Fields, ",")
	}
	if f.Generalize != nil {
		obj["generalize"] = f.Generalize
	}
	if f.Reverse {
		obj["reverse"] = true
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
