package resume

import "testing"

func TestNormalize_Defaults(t *testing.T) {
	doc, opts := Normalize(Document{}, Options{})

	if opts.Template != TemplateModern {
		t.Fatalf("template default: got %q", opts.Template)
	}
	if opts.PageSize != PageSizeA4 {
		t.Fatalf("page size default: got %q", opts.PageSize)
	}
	if opts.FileName != "resume" {
		t.Fatalf("file name default: got %q", opts.FileName)
	}
	if doc.Profile != nil {
		t.Fatalf("empty document must stay profile-less")
	}
}

func TestNormalize_FileNameFromProfile(t *testing.T) {
	doc := Document{Profile: &Profile{Name: "  Asha Kumar  "}}
	_, opts := Normalize(doc, Options{})

	if opts.FileName != "Asha Kumar" {
		t.Fatalf("expected file name from trimmed profile name, got %q", opts.FileName)
	}
}

func TestNormalize_RejectsUnknownEnumValues(t *testing.T) {
	_, opts := Normalize(Document{}, Options{Template: "neon", PageSize: "A5"})

	if opts.Template != TemplateModern {
		t.Fatalf("unknown template must fall back to modern, got %q", opts.Template)
	}
	if opts.PageSize != PageSizeA4 {
		t.Fatalf("unknown page size must fall back to A4, got %q", opts.PageSize)
	}
}

func TestNormalize_DropsEmptySkillGroups(t *testing.T) {
	doc := Document{
		Skills: []SkillGroup{
			{Category: "Empty"},
			{Category: "Blank Names", Skills: []SkillItem{{Name: "   "}}},
			{Category: "Kept", Skills: []SkillItem{{Name: "Go", Level: SkillExpert}}},
		},
	}

	doc, _ = Normalize(doc, Options{})

	if len(doc.Skills) != 1 || doc.Skills[0].Category != "Kept" {
		t.Fatalf("expected only non-empty skill group to survive, got %+v", doc.Skills)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane/Doe:Resume?.pdf", "Jane_Doe_Resume_"},
		{"plain", "plain"},
		{"  spaced out  ", "spaced_out"},
		{"", "resume"},
		{"///", "_"},
		{"résumé final", "r_sum_final"},
		{"double.pdf.pdf", "double.pdf"},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	if got := SanitizeFileName(string(long)); len(got) != 64 {
		t.Fatalf("long name must truncate to 64, got %d", len(got))
	}
}
