package inspector

import "testing"

func TestParseTag(t *testing.T) {
	w, opts := ParseTag("bar,max:200,labels:A|B")
	if w != WidgetBar {
		t.Errorf("expected bar widget, got %v", w)
	}
	if opts["max"] != "200" || opts["labels"] != "A|B" {
		t.Errorf("unexpected options %v", opts)
	}

	if w, _ := ParseTag(""); w != WidgetAuto {
		t.Errorf("expected auto for empty tag, got %v", w)
	}
	if w, _ := ParseTag("skip"); w != WidgetSkip {
		t.Errorf("expected skip, got %v", w)
	}
}

func TestExtractFieldsFromCellInfo(t *testing.T) {
	fields := ExtractFields(CellInfo{X: 1, Value: 2.5, Occupied: true})

	want := []struct {
		name   string
		widget Widget
	}{
		{"X", WidgetLabel},
		{"Y", WidgetLabel},
		{"Value", WidgetLabel},
		{"Relative", WidgetBar},
		{"Neighbours", WidgetBar},
		{"Agents", WidgetLabel},
		{"Headings", WidgetBar},
		{"MeanMemory", WidgetLabel},
		{"Occupied", WidgetBool},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d: got %s/%v, want %s/%v", i, fields[i].Name, fields[i].Widget, w.name, w.widget)
		}
	}
	if got := FormatValue(fields[2].Value, fields[2].Options["fmt"]); got != "2.500" {
		t.Errorf("expected formatted value 2.500, got %q", got)
	}
	if labels := Labels(fields[4].Options, 8); len(labels) != 8 || labels[0] != "N" || labels[7] != "NW" {
		t.Errorf("unexpected neighbour labels %v", labels)
	}
}

func TestExtractFieldsSkipsAndAutoDetects(t *testing.T) {
	type sample struct {
		Flag    bool
		Hidden  int `inspect:"skip"`
		Series  []float64
		private int
	}
	fields := ExtractFields(&sample{Flag: true, private: 1})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %+v", fields)
	}
	if fields[0].Widget != WidgetBool || fields[1].Widget != WidgetBar {
		t.Errorf("unexpected auto widgets %+v", fields)
	}

	if ExtractFields(42) != nil {
		t.Error("expected nil for non-struct")
	}
}

func TestValueHelpers(t *testing.T) {
	if GetMax(map[string]string{"max": "5"}) != 5 {
		t.Error("expected max option")
	}
	if GetMax(map[string]string{"max": "x"}) != 1 || GetMax(nil) != 1 {
		t.Error("expected default max 1")
	}
	if Labels(map[string]string{"labels": "a|b"}, 3) != nil {
		t.Error("expected nil labels on count mismatch")
	}
	if v, ok := GetFloatValue(3); !ok || v != 3 {
		t.Errorf("GetFloatValue(3) = %v, %v", v, ok)
	}
	if _, ok := GetFloatValue("x"); ok {
		t.Error("expected string to be rejected")
	}
	if s, ok := GetFloatSlice([2]float64{0.5, 1}); !ok || s[0] != 0.5 || s[1] != 1 {
		t.Errorf("GetFloatSlice = %v, %v", s, ok)
	}
	if _, ok := GetFloatSlice([]int{1}); ok {
		t.Error("expected int slice to be rejected")
	}
}
