package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchFromFieldsSkipsEmptyValues(t *testing.T) {
	p := PatchFromFields(Fields{
		FieldPlanName:  "Basic",
		FieldMinCost:   "",
		FieldTier1Term: "12mo",
	})

	assert.Equal(t, []string{FieldPlanName, FieldTier1Term}, p.Fields())

	_, _, ok := p.Value(FieldMinCost)
	assert.False(t, ok, "empty value must not be part of the patch")
}

func TestPatchTriState(t *testing.T) {
	p := NewPatch()
	assert.True(t, p.Empty())

	p.Set(FieldMaxCost, "50").Clear(FieldTier2Term)

	v, cleared, ok := p.Value(FieldMaxCost)
	assert.True(t, ok)
	assert.False(t, cleared)
	assert.Equal(t, "50", v)

	_, cleared, ok = p.Value(FieldTier2Term)
	assert.True(t, ok)
	assert.True(t, cleared)

	_, _, ok = p.Value(FieldPlanName)
	assert.False(t, ok)

	// Set after Clear wins and the other way round.
	p.Set(FieldTier2Term, "24mo")
	_, cleared, _ = p.Value(FieldTier2Term)
	assert.False(t, cleared)
	p.Clear(FieldMaxCost)
	_, cleared, _ = p.Value(FieldMaxCost)
	assert.True(t, cleared)

	p.Set(FieldMaxCost, "")
	p.Set(FieldTier2Term, "")
	assert.True(t, p.Empty())
}

func TestFieldsNilSafe(t *testing.T) {
	var f Fields
	assert.Equal(t, "", f.Get(FieldPlanName))
	assert.False(t, f.Has(FieldPlanName))
}
