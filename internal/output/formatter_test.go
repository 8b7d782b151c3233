package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"toon", FormatTOON},
		{"text", FormatText},
		{"bogus", FormatText},
		{"", FormatText},
	}
	for _, tc := range cases {
		if got := ParseFormat(tc.in); got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if f.Colored() {
		t.Error("file output must disable color")
	}

	if err := f.Output(map[string]int{"n": 1}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["n"] != 1 {
		t.Errorf("decoded = %v", decoded)
	}
}

func newTable() *Table {
	return NewTable(
		"Things",
		[]string{"Name", "Count"},
		[][]string{{"a", "1"}, {"b", "2"}},
		[]string{"TOTAL", "3"},
		nil,
	)
}

func TestTableRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := newTable().RenderCSV(&buf); err != nil {
		t.Fatalf("RenderCSV() error: %v", err)
	}

	want := "Name,Count\na,1\nb,2\nTOTAL,3\n"
	if buf.String() != want {
		t.Errorf("RenderCSV() = %q, want %q", buf.String(), want)
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := newTable().RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"## Things",
		"| Name | Count |",
		"| --- | --- |",
		"| a | 1 |",
		"| TOTAL | 3 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q in:\n%s", want, out)
		}
	}
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := newTable().RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Things") {
		t.Error("text output missing title")
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "2") {
		t.Errorf("text output missing rows:\n%s", out)
	}
}

func TestTableRenderDataFallsBackToRows(t *testing.T) {
	table := NewTable("", []string{"Name"}, [][]string{{"x"}}, nil, nil)
	data, ok := table.RenderData().([]map[string]string)
	if !ok {
		t.Fatalf("RenderData() type = %T", table.RenderData())
	}
	if len(data) != 1 || data[0]["Name"] != "x" {
		t.Errorf("RenderData() = %v", data)
	}
}

func TestTableRenderDataPrefersWrappedData(t *testing.T) {
	payload := []int{1, 2, 3}
	table := NewTable("", nil, nil, nil, payload)
	if got, ok := table.RenderData().([]int); !ok || len(got) != 3 {
		t.Errorf("RenderData() = %v", table.RenderData())
	}
}
