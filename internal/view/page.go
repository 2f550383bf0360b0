// Package view builds the admin pages: title, breadcrumbs and the panel
// widget around each page body.
package view

import (
	"net/url"

	"category-admin/internal/domain"
)

// Base path of the category admin routes.
const CategoryBase = "/system/category"

// Breadcrumb is one entry of the trail shown above the content. The last
// entry usually has no URL.
type Breadcrumb struct {
	Label string
	URL   string
}

// Action is a link in the panel toolbar.
type Action struct {
	Label string
	URL   string
}

// Panel is the widget box that wraps page content.
type Panel struct {
	Header       string
	EditButton   bool
	DeleteButton bool
	Toolbar      []Action
}

// Page is everything the layout needs to render one screen.
type Page struct {
	Name        string
	Lang        string
	Title       string
	Breadcrumbs []Breadcrumb
	Panel       Panel
	Data        any
	T           func(category, message string) string
}

// ParentOption is an entry of the parent selector.
type ParentOption struct {
	ID    string
	Name  string
	Depth int
}

// Form is the data handed to the category form partial.
type Form struct {
	Model    domain.Category
	Parents  []ParentOption
	Errors   map[string]string
	Action   string
	ImageURL string
	IsNew    bool
}

// Detail is the data of the category detail page.
type Detail struct {
	Model      domain.Category
	ParentName string
	ImageURL   string
}

// Listing is the data of the category index page.
type Listing struct {
	Items []domain.Category
	Names map[string]string
}

// CategoryURL builds the route of a category admin action.
func CategoryURL(action, id string) string {
	u := CategoryBase + "/" + action
	if id == "" {
		return u
	}
	return u + "?" + url.Values{"id": {id}}.Encode()
}

func categoryToolbar(tr Translator) []Action {
	return []Action{
		{Label: tr.T("system", "Manage Category"), URL: CategoryURL("index", "")},
		{Label: tr.T("system", "Create Category"), URL: CategoryURL("create", "")},
	}
}

func newPage(name, title string, crumbs []Breadcrumb, tr Translator, data any) Page {
	lang := ""
	if c, ok := tr.(*Catalog); ok {
		lang = c.Lang
	}
	return Page{
		Name:        name,
		Lang:        lang,
		Title:       title,
		Breadcrumbs: crumbs,
		Panel: Panel{
			Header:  title,
			Toolbar: categoryToolbar(tr),
		},
		Data: data,
		T:    tr.T,
	}
}

// CategoryUpdate builds the category edit page.
func CategoryUpdate(form Form, tr Translator) Page {
	model := form.Model
	title := tr.T("system", "Update Category") + ": " + " " + model.Name
	crumbs := []Breadcrumb{
		{Label: tr.T("system", "Manage Category"), URL: CategoryURL("index", "")},
		{Label: model.Name, URL: CategoryURL("view", model.ID)},
		{Label: tr.T("app", "Update")},
	}
	if form.Action == "" {
		form.Action = CategoryURL("update", model.ID)
	}
	return newPage("category/update", title, crumbs, tr, form)
}

// CategoryCreate builds the new-category page.
func CategoryCreate(form Form, tr Translator) Page {
	title := tr.T("system", "Create Category")
	crumbs := []Breadcrumb{
		{Label: tr.T("system", "Manage Category"), URL: CategoryURL("index", "")},
		{Label: title},
	}
	form.IsNew = true
	if form.Action == "" {
		form.Action = CategoryURL("create", "")
	}
	return newPage("category/create", title, crumbs, tr, form)
}

// CategoryView builds the detail page.
func CategoryView(detail Detail, tr Translator) Page {
	crumbs := []Breadcrumb{
		{Label: tr.T("system", "Manage Category"), URL: CategoryURL("index", "")},
		{Label: detail.Model.Name},
	}
	return newPage("category/view", detail.Model.Name, crumbs, tr, detail)
}

// CategoryIndex builds the list page.
func CategoryIndex(items []domain.Category, tr Translator) Page {
	title := tr.T("system", "Manage Category")
	names := make(map[string]string, len(items))
	for _, c := range items {
		names[c.ID] = c.Name
	}
	return newPage("category/index", title, []Breadcrumb{{Label: title}}, tr, Listing{Items: items, Names: names})
}
