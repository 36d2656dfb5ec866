package models

import "sort"

// Patch describes a partial update. Each field is in one of three states:
// absent (left untouched), set to a value, or cleared.
type Patch struct {
	set   map[string]string
	clear map[string]struct{}
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{
		set:   make(map[string]string),
		clear: make(map[string]struct{}),
	}
}

// PatchFromFields builds a patch from a plain field set. Empty values are
// treated as absent, so the stored value is kept.
func PatchFromFields(fields Fields) *Patch {
	p := NewPatch()
	for k, v := range fields {
		if v != "" {
			p.Set(k, v)
		}
	}
	return p
}

// Set records a new value for field. An empty value removes the field from
// the patch; use Clear to blank a stored value.
func (p *Patch) Set(field, value string) *Patch {
	delete(p.clear, field)
	if value == "" {
		delete(p.set, field)
		return p
	}
	p.set[field] = value
	return p
}

// Clear marks field to be reset to no value.
func (p *Patch) Clear(field string) *Patch {
	delete(p.set, field)
	p.clear[field] = struct{}{}
	return p
}

// Value returns the value set for field. cleared is true when the field is
// marked for clearing; ok is false when the field is absent.
func (p *Patch) Value(field string) (value string, cleared bool, ok bool) {
	if v, found := p.set[field]; found {
		return v, false, true
	}
	if _, found := p.clear[field]; found {
		return "", true, true
	}
	return "", false, false
}

// Fields returns the names of all fields in the patch, sorted.
func (p *Patch) Fields() []string {
	names := make([]string, 0, len(p.set)+len(p.clear))
	for k := range p.set {
		names = append(names, k)
	}
	for k := range p.clear {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the patch touches no field.
func (p *Patch) Empty() bool {
	return len(p.set) == 0 && len(p.clear) == 0
}
