package cim

import (
	"bytes"
	"encoding/json"
)

// Text is a string column that also accepts the object form PowerShell 5.1
// emits for DateTime values ({"value":"/Date(...)/","DateTime":"..."}) and
// bare numbers.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var obj struct {
		Value    any    `json:"value"`
		DateTime string `json:"DateTime"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if v, ok := obj.Value.(string); ok {
			*t = Text(v)
		} else {
			*t = Text(obj.DateTime)
		}
		return nil
	}
	*t = Text(data)
	return nil
}

func (t Text) String() string { return string(t) }
