package view

import (
	"bytes"
	"strings"
	"testing"

	"category-admin/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

func TestCategoryUpdate_TitleAndBreadcrumbs(t *testing.T) {
	model := domain.Category{ID: "0b7e", Name: "Books"}
	page := CategoryUpdate(Form{Model: model}, NewCatalog("en-US"))

	if page.Title != "Update Category:  Books" {
		t.Fatalf("unexpected title %q", page.Title)
	}
	want := []Breadcrumb{
		{Label: "Manage Category", URL: "/system/category/index"},
		{Label: "Books", URL: "/system/category/view?id=0b7e"},
		{Label: "Update"},
	}
	if len(page.Breadcrumbs) != len(want) {
		t.Fatalf("expected %d breadcrumbs, got %+v", len(want), page.Breadcrumbs)
	}
	for i := range want {
		if page.Breadcrumbs[i] != want[i] {
			t.Fatalf("breadcrumb %d: expected %+v, got %+v", i, want[i], page.Breadcrumbs[i])
		}
	}
	if page.Panel.EditButton || page.Panel.DeleteButton {
		t.Fatalf("expected edit and delete buttons disabled")
	}
	if len(page.Panel.Toolbar) != 2 ||
		page.Panel.Toolbar[0].URL != "/system/category/index" ||
		page.Panel.Toolbar[1].URL != "/system/category/create" {
		t.Fatalf("unexpected toolbar %+v", page.Panel.Toolbar)
	}
	form, ok := page.Data.(Form)
	if !ok || form.Action != "/system/category/update?id=0b7e" || form.Model != model {
		t.Fatalf("unexpected form data %+v", page.Data)
	}
}

func TestCategoryUpdate_Translated(t *testing.T) {
	page := CategoryUpdate(Form{Model: domain.Category{ID: "1", Name: "书籍"}}, NewCatalog("zh-CN"))
	if page.Title != "更新分类:  书籍" {
		t.Fatalf("unexpected title %q", page.Title)
	}
	if page.Breadcrumbs[0].Label != "分类管理" || page.Breadcrumbs[2].Label != "更新" {
		t.Fatalf("unexpected breadcrumbs %+v", page.Breadcrumbs)
	}
	if page.Lang != "zh-CN" {
		t.Fatalf("expected lang zh-CN, got %q", page.Lang)
	}
}

func TestCatalog_FallsBackToSource(t *testing.T) {
	c := NewCatalog("fr-FR")
	if got := c.T("system", "Manage Category"); got != "Manage Category" {
		t.Fatalf("expected source text, got %q", got)
	}
	var nilCatalog *Catalog
	if got := nilCatalog.T("app", "Update"); got != "Update" {
		t.Fatalf("expected source text from nil catalog, got %q", got)
	}
}

func TestRenderer_UpdatePage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := CategoryUpdate(Form{
		Model: domain.Category{ID: "c1", ParentID: "p1", Name: "<b>Toys</b>", Slug: "toys"},
		Parents: []ParentOption{
			{ID: "p1", Name: "Root", Depth: 0},
			{ID: "p2", Name: "Leaf", Depth: 1},
		},
		Errors: map[string]string{"slug": "slug is already in use"},
	}, NewCatalog("en-US"))

	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<b>Toys</b>") {
		t.Fatalf("expected category name to be escaped")
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if got := doc.Find("title").Text(); got != "Update Category:  <b>Toys</b>" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := doc.Find(".jarviswidget header h2").Text(); got != "Update Category:  <b>Toys</b>" {
		t.Fatalf("unexpected panel header %q", got)
	}
	crumbs := doc.Find("ol.breadcrumb li")
	if crumbs.Length() != 3 {
		t.Fatalf("expected 3 breadcrumbs, got %d", crumbs.Length())
	}
	if href, _ := crumbs.Eq(1).Find("a").Attr("href"); href != "/system/category/view?id=c1" {
		t.Fatalf("unexpected breadcrumb link %q", href)
	}
	if !crumbs.Eq(2).HasClass("active") || crumbs.Eq(2).Text() != "Update" {
		t.Fatalf("expected active Update breadcrumb")
	}
	if doc.Find(".jarviswidget-edit-btn, .jarviswidget-delete-btn").Length() != 0 {
		t.Fatalf("expected no edit/delete buttons")
	}
	if doc.Find(".widget-body-toolbar a").Length() != 2 {
		t.Fatalf("expected two toolbar actions")
	}
	form := doc.Find("form.category-form")
	if action, _ := form.Attr("action"); action != "/system/category/update?id=c1" {
		t.Fatalf("unexpected form action %q", action)
	}
	if v, _ := form.Find("input[name=slug]").Attr("value"); v != "toys" {
		t.Fatalf("unexpected slug value %q", v)
	}
	if sel, _ := form.Find("select[name=parent_id] option[selected]").Attr("value"); sel != "p1" {
		t.Fatalf("expected p1 selected, got %q", sel)
	}
	if got := form.Find(".has-error .help-block").Text(); got != "slug is already in use" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestRenderer_IndexAndView(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tr := NewCatalog("")

	var buf bytes.Buffer
	if err := r.Render(&buf, CategoryIndex(nil, tr)); err != nil {
		t.Fatalf("render index: %v", err)
	}
	doc, _ := goquery.NewDocumentFromReader(&buf)
	if doc.Find("p.empty").Length() != 1 {
		t.Fatalf("expected empty notice")
	}

	buf.Reset()
	items := []domain.Category{{ID: "a", Name: "A"}, {ID: "b", ParentID: "a", Name: "B"}}
	if err := r.Render(&buf, CategoryIndex(items, tr)); err != nil {
		t.Fatalf("render index: %v", err)
	}
	doc, _ = goquery.NewDocumentFromReader(&buf)
	rows := doc.Find("table.category-list tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", rows.Length())
	}
	if got := rows.Eq(1).Find("td").Eq(2).Text(); got != "A" {
		t.Fatalf("expected parent name A, got %q", got)
	}

	buf.Reset()
	detail := Detail{Model: domain.Category{ID: "b", Name: "B"}, ParentName: "A", ImageURL: "/uploads/category/x.png"}
	if err := r.Render(&buf, CategoryView(detail, tr)); err != nil {
		t.Fatalf("render view: %v", err)
	}
	doc, _ = goquery.NewDocumentFromReader(&buf)
	if got := doc.Find("td.category-name").Text(); got != "B" {
		t.Fatalf("unexpected name cell %q", got)
	}
	if src, _ := doc.Find("img.category-image").Attr("src"); src != "/uploads/category/x.png" {
		t.Fatalf("unexpected image src %q", src)
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, Page{Name: "nope"}); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}
