package registry

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		input     string
		wantSlug  string
		wantFound bool
	}{
		{"python", "python", true},
		{"PY", "python", true},
		{" python3 ", "python", true},
		{"nodejs", "javascript", true},
		{"c++", "cpp", true},
		{"cplusplus", "cpp", true},
		{"golang", "go", true},
		{"sol", "solidity", true},
		{"cobol", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Lookup(tt.input)
			if ok != tt.wantFound {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.input, ok, tt.wantFound)
			}
			if got.Slug != tt.wantSlug {
				t.Errorf("Lookup(%q).Slug = %q, want %q", tt.input, got.Slug, tt.wantSlug)
			}
		})
	}
}

func TestRuntimeID(t *testing.T) {
	if id, ok := RuntimeID("python"); !ok || id != 71 {
		t.Errorf("RuntimeID(python) = %d, %v, want 71, true", id, ok)
	}
	if id, ok := RuntimeID("ts"); !ok || id != 74 {
		t.Errorf("RuntimeID(ts) = %d, %v, want 74, true", id, ok)
	}
	if _, ok := RuntimeID("solidity"); ok {
		t.Error("RuntimeID(solidity) should not be executable")
	}
	if _, ok := RuntimeID("haskell"); ok {
		t.Error("RuntimeID(haskell) should not be found")
	}
}

func TestEditorID(t *testing.T) {
	if got := EditorID("rs"); got != "rust" {
		t.Errorf("EditorID(rs) = %q, want rust", got)
	}
	if got := EditorID("brainfuck"); got != DefaultEditorID {
		t.Errorf("EditorID(brainfuck) = %q, want %q", got, DefaultEditorID)
	}
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	if len(all) != 9 {
		t.Fatalf("len(All()) = %d, want 9", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Slug >= all[i].Slug {
			t.Errorf("All() not sorted at %d: %q >= %q", i, all[i-1].Slug, all[i].Slug)
		}
	}
}
