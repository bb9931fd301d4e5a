package parser

import (
	"reflect"
	"testing"
)

func TestParse_FrontmatterTitle(t *testing.T) {
	data := []byte("---\ntitle: My Note\ntags: [go, zettel]\n---\n\nBody with [[other]] link.\n")
	res, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Title != "My Note" {
		t.Errorf("title = %q, want %q", res.Title, "My Note")
	}
	if !reflect.DeepEqual(res.Tags, []string{"go", "zettel"}) {
		t.Errorf("tags = %v", res.Tags)
	}
	if !reflect.DeepEqual(res.Links, []string{"other.md"}) {
		t.Errorf("links = %v", res.Links)
	}
}

func TestParse_H1Fallback(t *testing.T) {
	res, err := Parse([]byte("# Heading Title\n\ntext"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Title != "Heading Title" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestParse_NoTitle(t *testing.T) {
	res, _ := Parse([]byte("just text, no heading"))
	if res.Title != "" {
		t.Errorf("title = %q, want empty", res.Title)
	}
}

func TestParse_InlineTags(t *testing.T) {
	res, _ := Parse([]byte("Some text #alpha and #beta/gamma here"))
	if !reflect.DeepEqual(res.Tags, []string{"alpha", "beta/gamma"}) {
		t.Errorf("tags = %v", res.Tags)
	}
}

func TestParse_TagDedup(t *testing.T) {
	data := []byte("---\ntags: [dup]\n---\n\n#dup again #dup\n")
	res, _ := Parse(data)
	if !reflect.DeepEqual(res.Tags, []string{"dup"}) {
		t.Errorf("tags = %v, want single dup", res.Tags)
	}
}

func TestParse_LinkAliases(t *testing.T) {
	res, _ := Parse([]byte("[[target|Display Name]] and [[target]] and [[ spaced ]]"))
	if !reflect.DeepEqual(res.Links, []string{"target.md", "spaced.md"}) {
		t.Errorf("links = %v", res.Links)
	}
}

func TestParse_LinkTargetsResolveToPaths(t *testing.T) {
	cases := []struct {
		body string
		want []string
	}{
		{"see [[a]]", []string{"a.md"}},
		{"see [[a.md]]", []string{"a.md"}},
		{"see [[a]] and [[a.md]]", []string{"a.md"}},
		{"see [[topics/deep]]", []string{"topics/deep.md"}},
		{"embed [[diagram.png]]", []string{"diagram.png"}},
	}
	for _, c := range cases {
		res, _ := Parse([]byte(c.body))
		if !reflect.DeepEqual(res.Links, c.want) {
			t.Errorf("Parse(%q) links = %v, want %v", c.body, res.Links, c.want)
		}
	}
}

func TestParse_InvalidFrontmatter(t *testing.T) {
	data := []byte("---\n: not yaml [\n---\n\n# Fallback\n")
	res, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse should not fail on bad YAML: %v", err)
	}
	// The whole content is treated as body, so the H1 still resolves.
	if res.Title != "Fallback" {
		t.Errorf("title = %q, want %q", res.Title, "Fallback")
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	res, err := Parse([]byte("---\ntitle: Dangling\n\n# Body Heading\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Title != "Body Heading" {
		t.Errorf("title = %q, want fallback to H1", res.Title)
	}
}
