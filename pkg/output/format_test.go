package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/trid-reconcile/internal/document"
	"github.com/iwvelando/trid-reconcile/internal/reconcile"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
	"go.uber.org/zap"
)

func fixtureResult(t *testing.T) *reconcile.Result {
	t.Helper()
	dir := filepath.Join("..", "..", "internal", "document", "testdata")
	le, err := document.Load(filepath.Join(dir, "le.json"))
	if err != nil {
		t.Fatalf("load LE: %v", err)
	}
	cd, err := document.Load(filepath.Join(dir, "cd.json"))
	if err != nil {
		t.Fatalf("load CD: %v", err)
	}
	res, err := reconcile.New(zap.NewNop()).FromDocuments(le, cd, tolerance.DefaultRuleOptions(), nil)
	if err != nil {
		t.Fatalf("FromDocuments: %v", err)
	}
	return res
}

func TestPrettyFormat(t *testing.T) {
	res := fixtureResult(t)

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, res); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Zero tolerance (Section A) ---",
		"--- Ten percent aggregate (Sections C+E) ---",
		"--- Unlimited (Sections F, G, H) ---",
		"Ten percent test: base $1,950.00, allowed $2,145.00, CD total $2,210.00, overage $65.00",
		"Total borrower delta: $1,427.12",
		"Required cure: $164.00",
		"shortfall $64.00",
		"--- Exceptions (10) ---",
		"CD total $2,210.00 exceeds the allowed $2,145.00",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat missing %q", want)
		}
	}
}

func TestPrettyFormat_EmptySection(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, &reconcile.Result{}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if got := strings.Count(buf.String(), "(no fees)"); got != 4 {
		t.Errorf("expected 4 empty sections, got %d", got)
	}
}

func TestCsvFormat(t *testing.T) {
	res := fixtureResult(t)

	var buf bytes.Buffer
	if err := CsvFormat(&buf, res); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != len(res.Rows())+1 {
		t.Fatalf("expected %d records, got %d", len(res.Rows())+1, len(records))
	}
	if strings.Join(records[0], ",") != "id,section,label,le_amount,cd_amount,delta,status,flags" {
		t.Errorf("unexpected header %v", records[0])
	}

	var points []string
	for _, r := range records[1:] {
		if r[0] == "A-2" {
			points = r
		}
	}
	if points == nil {
		t.Fatalf("row A-2 missing from CSV")
	}
	if points[1] != "A" || points[5] != "100.00" || points[6] != "FAIL" {
		t.Errorf("unexpected A-2 record %v", points)
	}
	if points[7] != "ZERO_LINE_OVERAGE;CURED_BY_LENDER" {
		t.Errorf("unexpected A-2 flags %q", points[7])
	}
}

func TestJSONFormat(t *testing.T) {
	res := fixtureResult(t)

	var buf bytes.Buffer
	if err := JSONFormat(&buf, res); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"zero_a", "zero_b", "ten_percent", "unlimited", "exceptions", "total_delta", "cure", "diff"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON output missing %q", key)
		}
	}
}

func TestWrite(t *testing.T) {
	res := fixtureResult(t)

	tests := []struct {
		name      string
		format    string
		prefix    string
		expectErr bool
	}{
		{"pretty", "pretty", "--- Zero tolerance", false},
		{"default is pretty", "", "--- Zero tolerance", false},
		{"csv", "csv", "id,section", false},
		{"json", "json", "{", false},
		{"unknown", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, res)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Write(%q) expected error but got none", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("Write(%q) error = %v", tt.format, err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("Write(%q) output starts with %q, want prefix %q", tt.format, firstLine(buf.String()), tt.prefix)
			}
		})
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
