package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Optional marks a patch field as present or absent. A JSON key that is
// missing or null leaves the field absent; any other value, including
// false, 0, "" and [], makes it present.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsSet reports whether the field was provided.
func (o Optional[T]) IsSet() bool { return o.Set }

// Any returns the wrapped value as an interface.
func (o Optional[T]) Any() any { return o.Value }

// OptionalField is implemented by every Optional[T].
type OptionalField interface {
	IsSet() bool
	Any() any
}

// PatchField describes one field of a patch struct.
type PatchField struct {
	Name  string // document/JSON field name
	Tag   string // validate tag
	Field OptionalField
}

// PatchFields lists the Optional fields of a patch struct in declaration
// order, present or not.
func PatchFields(patch any) []PatchField {
	v := reflect.Indirect(reflect.ValueOf(patch))
	t := v.Type()
	fields := make([]PatchField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		of, ok := v.Field(i).Interface().(OptionalField)
		if !ok {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, PatchField{Name: name, Tag: sf.Tag.Get("validate"), Field: of})
	}
	return fields
}

func presentFields(patch any) map[string]any {
	out := make(map[string]any)
	for _, f := range PatchFields(patch) {
		if f.Field.IsSet() {
			out[f.Name] = f.Field.Any()
		}
	}
	return out
}
