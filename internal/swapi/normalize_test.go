package swapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeCollection_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape Shape
		wantItems []string
	}{
		{
			name:      "bare array",
			body:      `[{"name":"Luke"},{"name":"Leia"}]`,
			wantShape: ShapeArray,
			wantItems: []string{`{"name":"Luke"}`, `{"name":"Leia"}`},
		},
		{
			name:      "results envelope",
			body:      `{"count":2,"results":[{"name":"Luke"},{"name":"Leia"}]}`,
			wantShape: ShapeResults,
			wantItems: []string{`{"name":"Luke"}`, `{"name":"Leia"}`},
		},
		{
			name:      "data envelope",
			body:      `{"data":[{"name":"Luke"},{"name":"Leia"}]}`,
			wantShape: ShapeData,
			wantItems: []string{`{"name":"Luke"}`, `{"name":"Leia"}`},
		},
		{
			name:      "results wins over data",
			body:      `{"data":[{"name":"Leia"}],"results":[{"name":"Luke"}]}`,
			wantShape: ShapeResults,
			wantItems: []string{`{"name":"Luke"}`},
		},
		{
			name:      "results not a list falls through to data",
			body:      `{"results":"nope","data":[{"name":"Luke"}]}`,
			wantShape: ShapeData,
			wantItems: []string{`{"name":"Luke"}`},
		},
		{
			name:      "empty object",
			body:      `{}`,
			wantShape: ShapeUnknown,
		},
		{
			name:      "null results",
			body:      `{"results":null}`,
			wantShape: ShapeUnknown,
		},
		{
			name:      "scalar",
			body:      `42`,
			wantShape: ShapeUnknown,
		},
		{
			name:      "empty array",
			body:      ` [] `,
			wantShape: ShapeArray,
			wantItems: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCollection([]byte(tt.body))
			if err != nil {
				t.Fatalf("NormalizeCollection() error = %v", err)
			}
			if got.Shape != tt.wantShape {
				t.Errorf("shape = %v, want %v", got.Shape, tt.wantShape)
			}
			items := make([]string, 0, len(got.Items))
			for _, it := range got.Items {
				items = append(items, string(it))
			}
			want := tt.wantItems
			if want == nil {
				want = []string{}
			}
			if diff := cmp.Diff(want, items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeCollection_InvalidJSON(t *testing.T) {
	if _, err := NormalizeCollection([]byte(`{"results": [`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestShape_String(t *testing.T) {
	for shape, want := range map[Shape]string{
		ShapeArray:   "array",
		ShapeResults: "results",
		ShapeData:    "data",
		ShapeUnknown: "unknown",
	} {
		if got := shape.String(); got != want {
			t.Errorf("Shape(%d).String() = %q, want %q", shape, got, want)
		}
	}
}
