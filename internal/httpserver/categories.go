package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"category-admin/internal/domain"
	categorysvc "category-admin/internal/service/category"
	"category-admin/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxImageBytes = 4 << 20

type categoryHandler struct {
	svc       CategoryService
	tr        view.Translator
	uploadURL string
	logger    *logrus.Logger
}

func (h *categoryHandler) index(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "category/index", view.CategoryIndex(list, h.tr))
}

func (h *categoryHandler) view(c *gin.Context) {
	model, ok := h.load(c)
	if !ok {
		return
	}
	detail := view.Detail{Model: *model, ImageURL: h.imageURL(model.Image)}
	if model.ParentID != "" {
		parent, err := h.svc.Get(c.Request.Context(), model.ParentID)
		switch {
		case err == nil:
			detail.ParentName = parent.Name
		case !errors.Is(err, domain.ErrNotFound):
			h.fail(c, err)
			return
		}
	}
	c.HTML(http.StatusOK, "category/view", view.CategoryView(detail, h.tr))
}

func (h *categoryHandler) createForm(c *gin.Context) {
	form, err := h.form(c, domain.Category{}, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "category/create", view.CategoryCreate(form, h.tr))
}

func (h *categoryHandler) create(c *gin.Context) {
	in, img, verr := bindInput(c)
	if verr == nil {
		created, err := h.svc.Create(c.Request.Context(), in, img)
		if err == nil {
			h.logger.WithField("id", created.ID).Info("category created")
			c.Redirect(http.StatusFound, view.CategoryURL("view", created.ID))
			return
		}
		if !errors.As(err, &verr) {
			h.fail(c, err)
			return
		}
	}

	form, err := h.form(c, inputModel(domain.Category{}, in), verr.Fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusUnprocessableEntity, "category/create", view.CategoryCreate(form, h.tr))
}

func (h *categoryHandler) updateForm(c *gin.Context) {
	model, ok := h.load(c)
	if !ok {
		return
	}
	form, err := h.form(c, *model, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "category/update", view.CategoryUpdate(form, h.tr))
}

func (h *categoryHandler) update(c *gin.Context) {
	model, ok := h.load(c)
	if !ok {
		return
	}

	in, img, verr := bindInput(c)
	if verr == nil {
		updated, err := h.svc.Update(c.Request.Context(), model.ID, in, img)
		if err == nil {
			h.logger.WithField("id", updated.ID).Info("category updated")
			c.Redirect(http.StatusFound, view.CategoryURL("view", updated.ID))
			return
		}
		if errors.Is(err, domain.ErrNotFound) || !errors.As(err, &verr) {
			h.fail(c, err)
			return
		}
	}

	// Breadcrumbs and title keep the stored name while the form shows the input.
	form, err := h.form(c, inputModel(*model, in), verr.Fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	page := view.CategoryUpdate(form, h.tr)
	stored := view.CategoryUpdate(view.Form{Model: *model}, h.tr)
	page.Title, page.Panel.Header, page.Breadcrumbs = stored.Title, stored.Panel.Header, stored.Breadcrumbs
	c.HTML(http.StatusUnprocessableEntity, "category/update", page)
}

func (h *categoryHandler) delete(c *gin.Context) {
	model, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), model.ID); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.WithField("id", model.ID).Info("category deleted")
	c.Redirect(http.StatusFound, view.CategoryURL("index", ""))
}

// load resolves the id query parameter. It writes the response and returns
// false when the category cannot be served.
func (h *categoryHandler) load(c *gin.Context) (*domain.Category, bool) {
	id := strings.TrimSpace(c.Query("id"))
	if _, err := uuid.Parse(id); err != nil {
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return nil, false
	}
	model, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return model, true
}

func (h *categoryHandler) form(c *gin.Context, model domain.Category, errs map[string]string) (view.Form, error) {
	opts, err := h.svc.Options(c.Request.Context(), model.ID)
	if err != nil {
		return view.Form{}, err
	}
	parents := make([]view.ParentOption, 0, len(opts))
	for _, o := range opts {
		parents = append(parents, view.ParentOption{ID: o.ID, Name: o.Name, Depth: o.Depth})
	}
	return view.Form{
		Model:    model,
		Parents:  parents,
		Errors:   errs,
		ImageURL: h.imageURL(model.Image),
	}, nil
}

func (h *categoryHandler) imageURL(rel string) string {
	if rel == "" {
		return ""
	}
	return path.Join(h.uploadURL, rel)
}

func (h *categoryHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// bindInput reads the category form. Malformed fields come back as a
// validation error.
func bindInput(c *gin.Context) (categorysvc.Input, *categorysvc.Upload, *domain.ValidationError) {
	verr := &domain.ValidationError{}
	in := categorysvc.Input{
		ParentID:    c.PostForm("parent_id"),
		Name:        c.PostForm("name"),
		Slug:        c.PostForm("slug"),
		Description: c.PostForm("description"),
		RemoveImage: c.PostForm("remove_image") == "1",
	}
	if raw := strings.TrimSpace(c.PostForm("sort")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("sort", "sort must be an integer")
		}
		in.Sort = n
	}

	img, err := readImage(c)
	if err != nil {
		verr.Add("image", err.Error())
	}

	if len(verr.Fields) > 0 {
		return in, nil, verr
	}
	return in, img, nil
}

func readImage(c *gin.Context) (*categorysvc.Upload, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size > maxImageBytes {
		return nil, fmt.Errorf("image must be at most %d bytes", maxImageBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image must be at most %d bytes", maxImageBytes)
	}
	return &categorysvc.Upload{Name: fh.Filename, Data: data}, nil
}

func inputModel(base domain.Category, in categorysvc.Input) domain.Category {
	base.ParentID = in.ParentID
	base.Name = in.Name
	base.Slug = in.Slug
	base.Description = in.Description
	base.Sort = in.Sort
	return base
}
