// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package transform

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/transportmap/internal/models"
)

func rec(company, role string) models.TransportRecord {
	return models.TransportRecord{CompanyName: company, Role: role}
}

func TestGroupByCompany_Empty(t *testing.T) {
	t.Parallel()

	for _, input := range [][]models.TransportRecord{nil, {}} {
		got := GroupByCompany(input)
		if got == nil {
			t.Fatal("GroupByCompany() = nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("len(GroupByCompany()) = %d, want 0", len(got))
		}
	}
}

func TestGroupByCompany_AlphaBeta(t *testing.T) {
	t.Parallel()

	records := []models.TransportRecord{
		rec("Alpha", "emitent"),
		rec("Alpha", "destinatar"),
		rec("Beta", "receptor"),
	}

	want := []models.CompanyAggregate{
		{Name: "Alpha", Count: 2, IsEmitent: true, IsDestinatar: true},
		{Name: "Beta", Count: 1, IsEmitent: false, IsDestinatar: true},
	}

	if got := GroupByCompany(records); !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByCompany() = %+v, want %+v", got, want)
	}
}

func TestGroupByCompany_UnknownCompany(t *testing.T) {
	t.Parallel()

	got := GroupByCompany([]models.TransportRecord{rec("", "emitent"), rec("", "other")})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Name != models.UnknownCompanyName || got[0].Count != 2 {
		t.Errorf("got %+v, want %s with count 2", got[0], models.UnknownCompanyName)
	}
	if !got[0].IsEmitent || got[0].IsDestinatar {
		t.Errorf("flags = (%v, %v), want (true, false)", got[0].IsEmitent, got[0].IsDestinatar)
	}
}

func TestGroupByCompany_CaseInsensitiveRole(t *testing.T) {
	t.Parallel()

	got := GroupByCompany([]models.TransportRecord{rec("X", "EMITENT")})
	if len(got) != 1 || !got[0].IsEmitent {
		t.Errorf("GroupByCompany(EMITENT) = %+v, want IsEmitent", got)
	}
}

func TestGroupByCompany_UnknownRoleCountsOnly(t *testing.T) {
	t.Parallel()

	got := GroupByCompany([]models.TransportRecord{rec("Gamma", "transportator"), rec("Gamma", "")})
	want := []models.CompanyAggregate{{Name: "Gamma", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByCompany() = %+v, want %+v", got, want)
	}
}

func TestGroupByCompany_SortStableDescending(t *testing.T) {
	t.Parallel()

	records := []models.TransportRecord{
		rec("C", "emitent"),
		rec("A", "emitent"),
		rec("B", "emitent"),
		rec("B", "emitent"),
		rec("D", "emitent"),
		rec("A", "emitent"),
		rec("E", "emitent"),
	}

	got := GroupByCompany(records)

	var names []string
	for _, g := range got {
		names = append(names, g.Name)
	}
	want := []string{"A", "B", "C", "D", "E"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}

	total := 0
	for i, g := range got {
		total += g.Count
		if i > 0 && got[i-1].Count < g.Count {
			t.Errorf("counts not descending at %d: %d < %d", i, got[i-1].Count, g.Count)
		}
	}
	if total != len(records) {
		t.Errorf("sum of counts = %d, want %d", total, len(records))
	}
}

func TestParseOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		want  int
		first string
	}{
		{name: "array", raw: `[{"name":"Alpha","count":3},{"operator_name":"Beta","point_count":5}]`, want: 2, first: "Alpha"},
		{name: "string holding array", raw: `"[{\"name\":\"Gamma\",\"count\":1}]"`, want: 1, first: "Gamma"},
		{name: "invalid string", raw: `"not json"`, want: 0},
		{name: "string holding object", raw: `"{\"name\":\"x\"}"`, want: 0},
		{name: "number", raw: `42`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "missing", raw: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseOperators(json.RawMessage(tt.raw))
			if got == nil {
				t.Fatal("ParseOperators() = nil, want non-nil slice")
			}
			if len(got) != tt.want {
				t.Fatalf("len(ParseOperators()) = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 && got[0].DisplayName() != tt.first {
				t.Errorf("first operator = %q, want %q", got[0].DisplayName(), tt.first)
			}
		})
	}
}

func TestTopOperators(t *testing.T) {
	t.Parallel()

	ops := []models.Operator{
		{Name: "Low", Count: 1},
		{Name: "ByPointCount", PointCount: 9},
		{Name: "TieFirst", Count: 4},
		{Name: "TieSecond", Count: 4},
		{OperatorName: "Fallback", Count: 2},
	}

	got := TopOperators(ops, PopupOperatorLimit)

	var names []string
	for i := range got {
		names = append(names, got[i].DisplayName())
	}
	want := []string{"ByPointCount", "TieFirst", "TieSecond"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("TopOperators() = %v, want %v", names, want)
	}
	if ops[0].Name != "Low" {
		t.Error("TopOperators() modified its input")
	}
}

func TestTopOperators_FewerThanLimit(t *testing.T) {
	t.Parallel()

	got := TopOperators([]models.Operator{{}}, PopupOperatorLimit)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].DisplayName() != models.UnknownOperatorName {
		t.Errorf("DisplayName() = %q, want %q", got[0].DisplayName(), models.UnknownOperatorName)
	}
}

func TestPointCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
	}{
		{`12`, 12},
		{`"7"`, 7},
		{`null`, 0},
		{``, 0},
		{`"many"`, 0},
	}
	for _, tt := range tests {
		if got := PointCount(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("PointCount(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
