package params

import (
	"reflect"
	"testing"
	"time"
)

func TestCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"only commas", ",,,", nil},
		{"simple", "a, b,,c", []string{"A", "B", "C"}},
		{"already upper", "BROOKLYN,QUEENS", []string{"BROOKLYN", "QUEENS"}},
		{"trims", "  f , m ", []string{"F", "M"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CSV(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CSV(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		in   string
		want Number
	}{
		{"", Number{Value: 1, Fallback: FallbackMissing}},
		{"3", Number{Value: 3}},
		{"2.9", Number{Value: 2}},
		{"abc", Number{Value: 1, Fallback: FallbackUnparsable}},
		{"0", Number{Value: 0}},
		{"-1", Number{Value: -1}},
	}

	for _, tt := range tests {
		if got := Page(tt.in); got != tt.want {
			t.Errorf("Page(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		in   string
		want Number
	}{
		{"", Number{Value: 1000, Fallback: FallbackMissing}},
		{"500", Number{Value: 500}},
		{"500.7", Number{Value: 500}},
		{"999999", Number{Value: 10000, Fallback: FallbackOverMax}},
		{"0", Number{Value: 1000, Fallback: FallbackNonPositive}},
		{"-5", Number{Value: 1000, Fallback: FallbackNonPositive}},
		{"junk", Number{Value: 1000, Fallback: FallbackUnparsable}},
	}

	for _, tt := range tests {
		if got := PageSize(tt.in, 1000, 10000); got != tt.want {
			t.Errorf("PageSize(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		in   string
		want Number
	}{
		{"", Number{Fallback: FallbackMissing}},
		{"0", Number{Fallback: FallbackNonPositive}},
		{"-5", Number{Fallback: FallbackNonPositive}},
		{"nope", Number{Fallback: FallbackUnparsable}},
		{"2000", Number{Value: 2000}},
	}

	for _, tt := range tests {
		if got := Sample(tt.in); got != tt.want {
			t.Errorf("Sample(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	from, to, ok := DateRange("2020-01-01", "2020-01-31")
	if !ok {
		t.Fatal("DateRange() not ok for valid pair")
	}
	if !from.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v", to)
	}

	if _, _, ok := DateRange("2020-01-01", ""); ok {
		t.Error("DateRange() ok with missing end")
	}
	if _, _, ok := DateRange("", "2020-01-31"); ok {
		t.Error("DateRange() ok with missing start")
	}
	if _, _, ok := DateRange("01/01/2020", "2020-01-31"); ok {
		t.Error("DateRange() ok with unparsable start")
	}
}
