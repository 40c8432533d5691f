package api

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestImageUnmarshalHeterogeneous(t *testing.T) {
	var p Project
	doc := `{
		"id": "gallery",
		"title": "Gallery",
		"images": ["img/a.png", {"src": "img/b.png", "alt": "detail shot"}]
	}`
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Image{
		{Src: "img/a.png"},
		{Src: "img/b.png", Alt: "detail shot"},
	}
	if diff := cmp.Diff(want, p.Images); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
}

func TestImageMarshalCompactForm(t *testing.T) {
	imgs := []Image{
		{Src: "img/a.png"},
		{Src: "img/b.png", Alt: "detail shot"},
	}
	b, err := json.Marshal(imgs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["img/a.png",{"src":"img/b.png","alt":"detail shot"}]`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestImageUnmarshalRejectsMalformed(t *testing.T) {
	var im Image
	if err := json.Unmarshal([]byte(`42`), &im); err == nil {
		t.Fatalf("expected error for numeric image entry")
	}
}

func TestProjectHasTag(t *testing.T) {
	p := Project{Tags: []string{"Go", "cli"}}
	if !p.HasTag("go") {
		t.Fatalf("expected case-insensitive tag match")
	}
	if p.HasTag("rust") {
		t.Fatalf("unexpected tag match")
	}
}

func TestProjectHidden(t *testing.T) {
	if (Project{}).Hidden() {
		t.Fatalf("unflagged project should not be hidden")
	}
	for _, p := range []Project{{Draft: true}, {Archived: true}, {Private: true}} {
		if !p.Hidden() {
			t.Fatalf("flagged project should be hidden: %+v", p)
		}
	}
}
