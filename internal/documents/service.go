package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/pagination"
)

// Service attaches documents to products and exposes the document views.
type Service interface {
	Attach(ctx context.Context, kind enums.ProductKind, productID uuid.UUID, input AttachInput) (*DocumentDTO, error)
	List(ctx context.Context, kind enums.ProductKind, productID uuid.UUID, params ListParams) (*ListResult, error)
	Count(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*CountDTO, error)
	OpenDocumentsAction(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*ActionDTO, error)
}

// AttachInput describes a new document. URL is required for url documents.
type AttachInput struct {
	Name string
	Type enums.DocumentType
	URL  *string
}

// ListParams selects one page of documents. A zero limit uses the default page size.
type ListParams struct {
	Limit  int
	Cursor string
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("document repository required")
	}
	return &service{repo: repo}, nil
}

// owner identifies the product a document view is built for.
type owner struct {
	kind       enums.ProductKind
	id         uuid.UUID
	templateID uuid.UUID
}

func (s *service) resolveOwner(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*owner, error) {
	switch kind {
	case enums.ProductKindTemplate:
		ok, err := s.repo.TemplateExists(ctx, productID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product template")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product template not found")
		}
		return &owner{kind: kind, id: productID, templateID: productID}, nil
	case enums.ProductKindVariant:
		variant, err := s.repo.FindVariant(ctx, productID)
		if err != nil {
			return nil, err
		}
		return &owner{kind: kind, id: variant.ID, templateID: variant.TemplateID}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid product kind %q", kind))
	}
}

func (s *service) Attach(ctx context.Context, kind enums.ProductKind, productID uuid.UUID, input AttachInput) (*DocumentDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	docType := input.Type
	if docType == "" {
		docType = enums.DocumentTypeURL
	}
	if !docType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type is invalid")
	}
	if docType == enums.DocumentTypeURL && (input.URL == nil || strings.TrimSpace(*input.URL) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url is required for url documents")
	}

	o, err := s.resolveOwner(ctx, kind, productID)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.Create(ctx, &models.ProductDocument{
		Name:     name,
		Type:     docType,
		URL:      input.URL,
		ResModel: o.kind.ResModel(),
		ResID:    o.id,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product document")
	}
	dto := documentToDTO(doc)
	return &dto, nil
}

// List pages through the documents a product shows: its own and, for a
// variant, its template's.
func (s *service) List(ctx context.Context, kind enums.ProductKind, productID uuid.UUID, params ListParams) (*ListResult, error) {
	o, err := s.resolveOwner(ctx, kind, productID)
	if err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	docs, next, err := s.repo.List(ctx, countRefs(o), params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product documents")
	}

	result := &ListResult{Items: make([]DocumentDTO, 0, len(docs))}
	for i := range docs {
		result.Items = append(result.Items, documentToDTO(&docs[i]))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// Count is the template's own documents, or a variant's own plus its template's.
func (s *service) Count(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*CountDTO, error) {
	o, err := s.resolveOwner(ctx, kind, productID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx, countRefs(o))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count product documents")
	}
	return &CountDTO{Kind: kind.String(), ProductID: productID, Count: count}, nil
}

func (s *service) OpenDocumentsAction(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*ActionDTO, error) {
	o, err := s.resolveOwner(ctx, kind, productID)
	if err != nil {
		return nil, err
	}

	action := &ActionDTO{
		Type:     "ir.actions.act_window",
		Name:     "Documents",
		ResModel: enums.DocumentResModelDocument.String(),
		ViewMode: "kanban,list,form",
		Context: ActionContext{
			DefaultResModel: o.kind.ResModel().String(),
			DefaultResID:    o.id,
		},
	}

	if o.kind == enums.ProductKindVariant {
		parent := o.templateID
		action.Domain = countRefs(o)
		action.Context.DefaultParentResID = &parent
		action.Context.SearchDefaultContextVariantTemplate = true
		return action, nil
	}

	// the template window lists variant documents too; the default filter
	// narrows it to the template's own
	variantIDs, err := s.repo.VariantIDs(ctx, o.id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list template variants")
	}
	action.Domain = []Ref{{ResModel: enums.DocumentResModelTemplate, ResIDs: []uuid.UUID{o.id}}}
	if len(variantIDs) > 0 {
		action.Domain = append(action.Domain, Ref{ResModel: enums.DocumentResModelVariant, ResIDs: variantIDs})
	}
	action.Context.SearchDefaultContextTemplate = true
	return action, nil
}

func countRefs(o *owner) []Ref {
	refs := []Ref{{ResModel: enums.DocumentResModelTemplate, ResIDs: []uuid.UUID{o.templateID}}}
	if o.kind == enums.ProductKindVariant {
		refs = append([]Ref{{ResModel: enums.DocumentResModelVariant, ResIDs: []uuid.UUID{o.id}}}, refs...)
	}
	return refs
}
