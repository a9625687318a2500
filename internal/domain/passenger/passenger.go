// Package passenger contains the historical passenger record and the
// aggregate computed over a collection of them.
package passenger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Keys of the fields this package understands. Everything else in a record
// is carried through untouched.
const (
	KeyID       = "PassengerId"
	KeySurvived = "Survived"
	KeyClass    = "Pclass"
	KeyName     = "Name"
	KeySex      = "Sex"
)

// Sex values.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Passenger is one row of the historical dataset. It is immutable once loaded.
type Passenger struct {
	ID       int
	Class    int
	Survived int
	Name     string
	Sex      string

	// extra holds every other field in its original encoding.
	extra map[string]json.RawMessage
	// nulls lists known fields that were present as JSON null.
	nulls map[string]bool
}

// Extra returns the raw encoding of a pass-through field.
func (p Passenger) Extra(key string) (json.RawMessage, bool) {
	v, ok := p.extra[key]
	return v, ok
}

// ExtraKeys lists the pass-through field names in sorted order.
func (p Passenger) ExtraKeys() []string {
	keys := make([]string, 0, len(p.extra))
	for k := range p.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithExtra returns a copy of p carrying an additional pass-through field.
func (p Passenger) WithExtra(key string, raw json.RawMessage) Passenger {
	extra := make(map[string]json.RawMessage, len(p.extra)+1)
	for k, v := range p.extra {
		extra[k] = v
	}
	extra[key] = raw
	p.extra = extra
	return p
}

// SurvivedFlag reports the survival flag as a bool.
func (p Passenger) SurvivedFlag() bool { return p.Survived == 1 }

// UnmarshalJSON decodes the known fields and keeps the rest verbatim.
func (p *Passenger) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Passenger
	fields := []struct {
		key string
		dst any
	}{
		{KeyID, &out.ID},
		{KeyClass, &out.Class},
		{KeySurvived, &out.Survived},
		{KeyName, &out.Name},
		{KeySex, &out.Sex},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		delete(raw, f.key)
		if isNull(v) {
			if out.nulls == nil {
				out.nulls = make(map[string]bool)
			}
			out.nulls[f.key] = true
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("passenger: field %s: %w", f.key, err)
		}
	}
	if len(raw) > 0 {
		out.extra = raw
	}
	*p = out
	return nil
}

// MarshalJSON re-emits the known fields and every pass-through field. Known
// fields decoded from null are written back as null.
func (p Passenger) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.extra)+5)
	for k, v := range p.extra {
		m[k] = v
	}
	m[KeyID] = p.ID
	m[KeyClass] = p.Class
	m[KeySurvived] = p.Survived
	m[KeyName] = p.Name
	m[KeySex] = p.Sex
	for k := range p.nulls {
		m[k] = nil
	}
	return json.Marshal(m)
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
