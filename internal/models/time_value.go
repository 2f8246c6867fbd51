package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TimeValue is a time of day as it arrives from storage or from API clients.
// The concrete variants are StringTime, ClockTime and RawTime.
type TimeValue interface {
	isTimeValue()
}

// StringTime holds "H:mm", "HH:mm:ss" or a timestamp whose clock part follows 'T'.
type StringTime string

// ClockTime is the structured {hour, minute} form.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// RawTime wraps any other value; it is read through its string form.
type RawTime struct {
	Value any
}

func (StringTime) isTimeValue() {}
func (ClockTime) isTimeValue()  {}
func (RawTime) isTimeValue()    {}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (r RawTime) String() string {
	return fmt.Sprint(r.Value)
}

// decodeTimeValue picks the variant from the JSON shape.
func decodeTimeValue(data []byte) (TimeValue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return StringTime(s), nil
	case '{':
		var c ClockTime
		if err := json.Unmarshal(data, &c); err == nil {
			return c, nil
		}
		// e.g. {"hour":"9"}; kept raw so the block is rejected on its own
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return RawTime{Value: v}, nil
}

func encodeTimeValue(v TimeValue) any {
	switch t := v.(type) {
	case nil:
		return nil
	case StringTime:
		return string(t)
	case ClockTime:
		return t
	case RawTime:
		return t.Value
	}
	return fmt.Sprint(v)
}
