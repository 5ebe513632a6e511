package service

import (
	"context"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/template"
)

type templateService struct {
	catalog *template.Catalog
}

func NewTemplateService(catalog *template.Catalog) TemplateService {
	return &templateService{catalog: catalog}
}

func (s *templateService) List(context.Context) []template.Template {
	return s.catalog.List()
}

func (s *templateService) Get(_ context.Context, id string) (*template.Template, error) {
	t, ok := s.catalog.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("template", id)
	}
	return &t, nil
}
