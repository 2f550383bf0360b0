package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"category-admin/internal/domain"
	"category-admin/internal/repository/category"
	"github.com/google/uuid"
)

const (
	maxNameLen        = 100
	maxSlugLen        = 100
	maxDescriptionLen = 500
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ImageStore persists category images.
type ImageStore interface {
	Save(name string, data []byte) (string, error)
	Remove(rel string) bool
}

// Upload is an image submitted with the category form.
type Upload struct {
	Name string
	Data []byte
}

// Input carries the editable category fields.
type Input struct {
	ParentID    string
	Name        string
	Slug        string
	Description string
	Sort        int
	RemoveImage bool
}

// Option is a category as listed in the parent selector.
type Option struct {
	ID    string
	Name  string
	Depth int
}

type Service struct {
	repo   category.Repository
	images ImageStore
}

func New(repo category.Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.Get(ctx, id)
}

// Upsert writes c by slug without image handling. Used for bulk loads.
func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if err := validateFields(c); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, c)
}

func (s *Service) Create(ctx context.Context, in Input, img *Upload) (*domain.Category, error) {
	c := in.apply(domain.Category{})
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}

	if img != nil {
		rel, err := s.saveImage(img)
		if err != nil {
			return nil, err
		}
		c.Image = rel
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		s.discardImage(c.Image)
		return nil, s.conflictAsValidation(err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input, img *Upload) (*domain.Category, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c := in.apply(*current)
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}

	oldImage := current.Image
	if in.RemoveImage {
		c.Image = ""
	}
	if img != nil {
		rel, err := s.saveImage(img)
		if err != nil {
			return nil, err
		}
		c.Image = rel
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		if c.Image != oldImage {
			s.discardImage(c.Image)
		}
		return nil, s.conflictAsValidation(err)
	}
	if oldImage != "" && updated.Image != oldImage {
		s.discardImage(oldImage)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.discardImage(current.Image)
	return nil
}

// Options lists categories depth-first for the parent selector, leaving out
// exclude and its descendants.
func (s *Service) Options(ctx context.Context, exclude string) ([]Option, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	children := make(map[string][]domain.Category)
	known := make(map[string]bool, len(list))
	for _, c := range list {
		known[c.ID] = true
	}
	for _, c := range list {
		parent := c.ParentID
		if !known[parent] {
			parent = ""
		}
		children[parent] = append(children[parent], c)
	}

	var out []Option
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		kids := children[parent]
		sort.SliceStable(kids, func(i, j int) bool {
			if kids[i].Sort != kids[j].Sort {
				return kids[i].Sort < kids[j].Sort
			}
			return kids[i].Name < kids[j].Name
		})
		for _, c := range kids {
			if c.ID == exclude {
				continue
			}
			out = append(out, Option{ID: c.ID, Name: c.Name, Depth: depth})
			walk(c.ID, depth+1)
		}
	}
	walk("", 0)
	return out, nil
}

func (s *Service) validate(ctx context.Context, c domain.Category) error {
	if err := validateFields(c); err != nil {
		return err
	}
	if c.ParentID == "" {
		return nil
	}

	verr := &domain.ValidationError{}
	if c.ParentID == c.ID {
		verr.Add("parentId", "category cannot be its own parent")
		return verr
	}
	if _, err := uuid.Parse(c.ParentID); err != nil {
		verr.Add("parentId", "parent category does not exist")
		return verr
	}

	// Walk up from the new parent; reaching c means a cycle.
	seen := map[string]bool{}
	for id := c.ParentID; id != ""; {
		if c.ID != "" && id == c.ID {
			verr.Add("parentId", "parent cannot be a descendant of the category")
			return verr
		}
		if seen[id] {
			break
		}
		seen[id] = true
		p, err := s.repo.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			if id == c.ParentID {
				verr.Add("parentId", "parent category does not exist")
				return verr
			}
			break
		}
		if err != nil {
			return fmt.Errorf("load parent %s: %w", id, err)
		}
		id = p.ParentID
	}
	return nil
}

func validateFields(c domain.Category) error {
	verr := &domain.ValidationError{}

	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		verr.Add("name", "name cannot be blank")
	case utf8.RuneCountInString(name) > maxNameLen:
		verr.Add("name", fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}

	switch {
	case c.Slug == "":
		verr.Add("slug", "slug cannot be blank")
	case utf8.RuneCountInString(c.Slug) > maxSlugLen:
		verr.Add("slug", fmt.Sprintf("slug must be at most %d characters", maxSlugLen))
	case !slugPattern.MatchString(c.Slug):
		verr.Add("slug", "slug may contain only lowercase letters, digits and hyphens")
	}

	if utf8.RuneCountInString(c.Description) > maxDescriptionLen {
		verr.Add("description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	return verr.OrNil()
}

func (s *Service) saveImage(img *Upload) (string, error) {
	if s.images == nil {
		return "", errors.New("image uploads are not configured")
	}
	rel, err := s.images.Save(img.Name, img.Data)
	if err != nil {
		verr := &domain.ValidationError{}
		verr.Add("image", err.Error())
		return "", verr
	}
	return rel, nil
}

func (s *Service) discardImage(rel string) {
	if s.images != nil && rel != "" {
		s.images.Remove(rel)
	}
}

func (s *Service) conflictAsValidation(err error) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		verr := &domain.ValidationError{}
		verr.Add("slug", "slug is already in use")
		return verr
	}
	return err
}

func (in Input) apply(c domain.Category) domain.Category {
	c.ParentID = strings.TrimSpace(in.ParentID)
	c.Name = strings.TrimSpace(in.Name)
	c.Slug = strings.TrimSpace(in.Slug)
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	c.Description = strings.TrimSpace(in.Description)
	c.Sort = in.Sort
	return c
}

// Slugify derives a slug from name: ASCII letters and digits are kept
// lower-cased, every other run becomes a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
