package ir

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCode_MatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("binding argument: %w", NewError(ErrCodeUndefParam, "parameter 1 has no value"))
	assert.True(t, IsCode(err, ErrCodeUndefParam))
	assert.False(t, IsCode(err, ErrCodeTypeMismatch))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrCodeUndefParam))
}

func TestErrors_SubstructuralReports(t *testing.T) {
	// Constructed on behalf of the lifetime checker; this core only
	// carries the report.
	reused := NewError(ErrCodeAffineReused, "second use of an affine value")
	assert.True(t, IsCode(reused, ErrCodeAffineReused))
	assert.False(t, IsCode(reused, ErrCodeRelevantUnused))

	unused := Errorf(ErrCodeRelevantUnused, "parameter %d never used", 0)
	assert.True(t, IsCode(unused, ErrCodeRelevantUnused))
	assert.Contains(t, unused.Error(), "RELEVANT_UNUSED")
}

func TestTypeMismatch_CarriesBothSides(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	u0 := g.Universe(0)

	err := TypeMismatch(unitTy, u0)
	assert.True(t, IsTypeMismatch(err))
	assert.Equal(t, unitTy, err.Expected)
	assert.Equal(t, u0, err.Actual)
	assert.Contains(t, err.Error(), "expected")
}
