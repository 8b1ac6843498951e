package validate

import (
	"strings"
	"testing"

	"ced/internal/project"
)

func snapshot(name, content string, typ project.FileType) project.Snapshot {
	return project.Snapshot{name: project.File{Content: content, Type: typ}}
}

func TestValidate_WellFormedFiles(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		file    string
		content string
		typ     project.FileType
	}{
		{"script", "app.js", "const x = 1;\nfunction f() { return x; }", project.TypeScript},
		{"markup", "index.html", "<html><body><div><p>hi</p></div></body></html>", project.TypeMarkup},
		{"markup with voids", "page.html", "<div><br><img src=\"x.png\"><input></div>", project.TypeMarkup},
		{"style", "main.css", "body { color: red; }\n.a { margin: 0; }", project.TypeStyle},
		{"data is never checked", "data.json", "{not valid json", project.TypeData},
		{"other is never checked", "notes.bin", "\x01\x02", project.TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := v.Validate(snapshot(tt.file, tt.content, tt.typ))
			if !report.Valid {
				t.Errorf("Validate() = invalid, errors = %+v", report.Errors)
			}
			if len(report.Errors) != 0 {
				t.Errorf("len(Errors) = %d, want 0", len(report.Errors))
			}
		})
	}
}

func TestValidate_ScriptSyntaxError(t *testing.T) {
	v := New()
	report := v.Validate(snapshot("bad.js", "const x = ;\n", project.TypeScript))

	if report.Valid {
		t.Fatal("Validate() = valid, want invalid")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
	}
	e := report.Errors[0]
	if e.Category != CategorySyntax {
		t.Errorf("Category = %v, want syntax", e.Category)
	}
	if e.Line < 1 || e.Column < 1 {
		t.Errorf("position = %d:%d, want 1-based", e.Line, e.Column)
	}
	if e.File != "bad.js" {
		t.Errorf("File = %q, want bad.js", e.File)
	}
}

func TestValidate_MarkupErrors(t *testing.T) {
	v := New()

	t.Run("unexpected closing tag", func(t *testing.T) {
		report := v.Validate(snapshot("x.html", "<div>\n</span>\n</div>", project.TypeMarkup))
		if report.Valid {
			t.Fatal("Validate() = valid, want invalid")
		}
		found := false
		for _, e := range report.Errors {
			if strings.Contains(e.Message, "unexpected closing tag </span>") && e.Line == 2 {
				found = true
			}
		}
		if !found {
			t.Errorf("missing unexpected-closing-tag error at line 2, got %+v", report.Errors)
		}
	})

	t.Run("unclosed tag reported at opening line", func(t *testing.T) {
		report := v.Validate(snapshot("x.html", "<div>\n<p>text</p>", project.TypeMarkup))
		if report.Valid {
			t.Fatal("Validate() = valid, want invalid")
		}
		if len(report.Errors) != 1 {
			t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
		}
		e := report.Errors[0]
		if !strings.Contains(e.Message, "unclosed tag <div>") {
			t.Errorf("Message = %q, want unclosed tag <div>", e.Message)
		}
		if e.Line != 1 {
			t.Errorf("Line = %d, want 1 (opening line)", e.Line)
		}
	})
}

func TestValidate_StyleErrors(t *testing.T) {
	v := New()

	t.Run("one unmatched open brace at last line", func(t *testing.T) {
		content := "body { color: red; }\n.broken {\n  margin: 0;"
		report := v.Validate(snapshot("x.css", content, project.TypeStyle))
		if report.Valid {
			t.Fatal("Validate() = valid, want invalid")
		}
		if len(report.Errors) != 1 {
			t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
		}
		e := report.Errors[0]
		if !strings.Contains(e.Message, "1 unclosed brace(s)") {
			t.Errorf("Message = %q, want 1 unclosed brace(s)", e.Message)
		}
		if want := len(strings.Split(content, "\n")); e.Line != want {
			t.Errorf("Line = %d, want %d (last line)", e.Line, want)
		}
	})

	t.Run("unexpected closing brace resets", func(t *testing.T) {
		report := v.Validate(snapshot("x.css", "}\nbody { color: red; }", project.TypeStyle))
		if report.Valid {
			t.Fatal("Validate() = valid, want invalid")
		}
		if len(report.Errors) != 1 {
			t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
		}
		e := report.Errors[0]
		if !strings.Contains(e.Message, "unexpected closing brace") {
			t.Errorf("Message = %q, want unexpected closing brace", e.Message)
		}
		if e.Line != 1 {
			t.Errorf("Line = %d, want 1", e.Line)
		}
	})
}

func TestValidate_AggregatesAcrossFiles(t *testing.T) {
	v := New()
	snap := project.Snapshot{
		"a.css":  project.File{Content: ".x {", Type: project.TypeStyle},
		"b.html": project.File{Content: "<div>", Type: project.TypeMarkup},
		"c.js":   project.File{Content: "const ok = 1;", Type: project.TypeScript},
	}

	report := v.Validate(snap)
	if report.Valid {
		t.Fatal("Validate() = valid, want invalid")
	}
	if len(report.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(report.Errors))
	}
	// Findings come back in file-name order.
	if report.Errors[0].File != "a.css" || report.Errors[1].File != "b.html" {
		t.Errorf("error order = %s, %s; want a.css, b.html", report.Errors[0].File, report.Errors[1].File)
	}
}
