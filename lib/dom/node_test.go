package dom

import (
	"strings"
	"testing"
)

func mustFragment(t *testing.T, markup string) *Node {
	t.Helper()
	frag, err := ParseFragmentString(markup)
	if err != nil {
		t.Fatalf("ParseFragmentString() error = %v", err)
	}
	return frag
}

func TestParseFragment(t *testing.T) {
	frag := mustFragment(t, `<div id="a"><span>hi</span></div><p>x</p>`)

	if frag.Type != FragmentNode {
		t.Fatalf("Type = %v, want %v", frag.Type, FragmentNode)
	}
	kids := frag.Children()
	if len(kids) != 2 {
		t.Fatalf("len(Children()) = %d, want 2", len(kids))
	}
	if kids[0].Tag != "div" || kids[1].Tag != "p" {
		t.Errorf("tags = %q, %q, want div, p", kids[0].Tag, kids[1].Tag)
	}
	if kids[0].Parent() != frag {
		t.Error("child parent is not the fragment")
	}
}

func TestParseFragment_TableContent(t *testing.T) {
	// Template context keeps table parts that a body context would drop.
	frag := mustFragment(t, `<tr ref="row"><td>1</td></tr>`)

	kids := frag.Children()
	if len(kids) != 1 || kids[0].Tag != "tr" {
		t.Fatalf("Children() = %v, want a single tr", kids)
	}
}

func TestParseFragment_TemplateContent(t *testing.T) {
	frag := mustFragment(t, `<template><b ref="x"></b></template>`)

	tmpl := frag.FirstChild()
	if tmpl.Content() == nil {
		t.Fatal("template has no content fragment")
	}
	if tmpl.FirstChild() != nil {
		t.Error("template content leaked into children")
	}
	if got := len(frag.QueryAttr("ref")); got != 0 {
		t.Errorf("QueryAttr found %d nodes inside inert content, want 0", got)
	}
	if got := len(tmpl.Content().QueryAttr("ref")); got != 1 {
		t.Errorf("content QueryAttr = %d, want 1", got)
	}
}

func TestAttributes(t *testing.T) {
	n := NewElement("div", Attribute{Key: "ref", Val: "foo"})

	tests := []struct {
		name string
		key  string
		want string
		ok   bool
	}{
		{"present", "ref", "foo", true},
		{"case-insensitive", "REF", "foo", true},
		{"absent", "on", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.GetAttribute(tt.key)
			if got != tt.want || ok != tt.ok {
				t.Errorf("GetAttribute(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}

	n.SetAttribute("ref", "bar")
	if got := n.Attr("ref"); got != "bar" {
		t.Errorf("Attr after SetAttribute = %q, want bar", got)
	}
	if !n.RemoveAttribute("ref") {
		t.Error("RemoveAttribute() = false, want true")
	}
	if n.HasAttribute("ref") {
		t.Error("attribute still present after removal")
	}
	if n.RemoveAttribute("ref") {
		t.Error("second RemoveAttribute() = true, want false")
	}
}

func TestQueryAttr_InclusiveDocumentOrder(t *testing.T) {
	frag := mustFragment(t, `<div ref="a"><i ref="b"></i><i></i><i ref="c"></i></div>`)
	root := frag.FirstChild()

	got := root.QueryAttr("ref")
	var names []string
	for _, n := range got {
		names = append(names, n.Attr("ref"))
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("QueryAttr order = %v, want [a b c]", names)
	}
}

func TestQueryAttr_SnapshotSurvivesMutation(t *testing.T) {
	frag := mustFragment(t, `<p ref="1"></p><p ref="2"></p>`)

	matched := frag.QueryAttr("ref")
	for _, n := range matched {
		n.RemoveAttribute("ref")
	}
	if len(matched) != 2 {
		t.Errorf("len(matched) = %d, want 2", len(matched))
	}
	if left := frag.QueryAttr("ref"); len(left) != 0 {
		t.Errorf("remaining = %d, want 0", len(left))
	}
}

func TestClone(t *testing.T) {
	frag := mustFragment(t, `<div ref="a"><span ref="b">t</span></div>`)
	orig := frag.FirstChild()
	orig.AddEventListener("click", ListenerFunc(func(*Event) error { return nil }))

	shallow := orig.Clone(false)
	if shallow.FirstChild() != nil {
		t.Error("shallow clone copied children")
	}

	deep := orig.Clone(true)
	if deep.OuterHTML() != orig.OuterHTML() {
		t.Errorf("deep clone = %q, want %q", deep.OuterHTML(), orig.OuterHTML())
	}
	if len(deep.Listeners("click")) != 0 {
		t.Error("clone copied listeners")
	}

	deep.FirstChild().RemoveAttribute("ref")
	if !orig.FirstChild().HasAttribute("ref") {
		t.Error("mutating the clone changed the original")
	}
}

func TestAppendAndRemoveChild(t *testing.T) {
	parent := NewElement("ul")
	a, b := NewElement("li"), NewElement("li")
	parent.AppendChild(a)
	parent.AppendChild(b)

	if parent.FirstChild() != a || parent.LastChild() != b || a.NextSibling() != b || b.PrevSibling() != a {
		t.Fatal("sibling links are wrong after AppendChild")
	}

	other := NewElement("ol")
	other.AppendChild(a)
	if parent.FirstChild() != b || a.Parent() != other {
		t.Error("AppendChild did not detach from previous parent")
	}

	if parent.RemoveChild(a) {
		t.Error("RemoveChild of a foreign node = true, want false")
	}
}

func TestRender(t *testing.T) {
	frag := mustFragment(t, `<div class="x"><template><b>t</b></template></div>`)
	div := frag.FirstChild()

	if got, want := div.OuterHTML(), `<div class="x"><template><b>t</b></template></div>`; got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}
	if got, want := div.InnerHTML(), `<template><b>t</b></template>`; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
	if got := div.TextContent(); got != "" {
		t.Errorf("TextContent() = %q, want empty (template content is inert)", got)
	}
}

func TestDocument(t *testing.T) {
	doc, err := ParseString(`<!DOCTYPE html><html><body>
		<template id="tpl"><p ref="p"></p></template>
		<section id="live"><p ref="q"></p></section>
	</body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if doc.Body() == nil {
		t.Fatal("Body() = nil")
	}
	tpl := doc.GetElementByID("tpl")
	if tpl == nil || tpl.Content() == nil {
		t.Fatal("template not found or without content")
	}
	if doc.GetElementByID("missing") != nil {
		t.Error("GetElementByID(missing) != nil")
	}

	live := doc.GetElementByID("live")
	imported := doc.ImportNode(live, true)
	if imported == live || imported.Parent() != nil {
		t.Error("ImportNode did not return a detached copy")
	}
	if !strings.Contains(doc.String(), `id="live"`) {
		t.Errorf("String() missing live section: %s", doc.String())
	}
}

func TestAppendChild_FragmentMovesChildren(t *testing.T) {
	frag := mustFragment(t, `<li>a</li><li>b</li>`)
	list := NewElement("ul")

	list.AppendChild(frag)

	if got := list.OuterHTML(); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("OuterHTML() = %s", got)
	}
	if frag.FirstChild() != nil {
		t.Error("fragment still has children")
	}
	if list.FirstChild().Parent() != list {
		t.Error("moved child has the wrong parent")
	}
}
