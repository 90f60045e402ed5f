package filter

import (
	"strings"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func TestNewRangeBounds_Valid(t *testing.T) {
	tests := []struct {
		name             string
		gt, gte, lt, lte *float64
	}{
		{"gt only", floatPtr(1), nil, nil, nil},
		{"gte only", nil, floatPtr(0), nil, nil},
		{"lt only", nil, nil, floatPtr(10), nil},
		{"lte only", nil, nil, nil, floatPtr(100)},
		{"gt+lt", floatPtr(0), nil, floatPtr(10), nil},
		{"gte+lte", nil, floatPtr(0), nil, floatPtr(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRangeBounds(tt.gt, tt.gte, tt.lt, tt.lte)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (r.GT() == nil) != (tt.gt == nil) || (r.GTE() == nil) != (tt.gte == nil) {
				t.Error("lower bound mismatch")
			}
			if (r.LT() == nil) != (tt.lt == nil) || (r.LTE() == nil) != (tt.lte == nil) {
				t.Error("upper bound mismatch")
			}
		})
	}
}

func TestNewRangeBounds_Invalid(t *testing.T) {
	if _, err := NewRangeBounds(nil, nil, nil, nil); err == nil {
		t.Error("expected error for no boundary")
	}
	if _, err := NewRangeBounds(floatPtr(1), floatPtr(1), nil, nil); err == nil {
		t.Error("expected error for both gt and gte")
	}
	if _, err := NewRangeBounds(nil, nil, floatPtr(1), floatPtr(1)); err == nil {
		t.Error("expected error for both lt and lte")
	}
}

func TestNewMatch(t *testing.T) {
	c, err := NewMatch("genre", "noir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsMatch() || c.IsRange() {
		t.Error("condition kind mismatch")
	}
	if c.Key() != "genre" || c.Match() != "noir" {
		t.Errorf("condition = %+v", c)
	}

	if _, err := NewMatch("", "x"); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewMatch("k", ""); err == nil {
		t.Error("expected error for empty match")
	}
}

func TestNewExpression_TooManyConditions(t *testing.T) {
	conds := make([]Condition, MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i], _ = NewMatch("k", "v")
	}
	_, err := NewExpression(conds, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "too many") {
		t.Fatalf("error = %v", err)
	}
}

func TestExpression_IsEmpty(t *testing.T) {
	var empty Expression
	if !empty.IsEmpty() {
		t.Error("zero expression should be empty")
	}

	c, _ := NewMatch("k", "v")
	e, err := NewExpression([]Condition{c}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.IsEmpty() {
		t.Error("expression with a condition should not be empty")
	}
}
