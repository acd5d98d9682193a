package draftly

import (
	"context"
)

// TemplateStore provides read access to the seeded template catalog.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]*Template, error)
	// GetTemplate returns the template or a not-found error.
	GetTemplate(ctx context.Context, id int64) (*Template, error)
	CountTemplates(ctx context.Context) (int, error)
	// InsertTemplate persists a catalog entry and returns its assigned id.
	// Used only by the bootstrap seeding step.
	InsertTemplate(ctx context.Context, tpl *Template) (int64, error)
}

// ContractStore persists user-authored contracts. Each call is an
// independent, atomic unit of work; concurrent writers to the same id are
// resolved last-write-wins by the store.
type ContractStore interface {
	CreateContract(ctx context.Context, c *Contract) (int64, error)
	GetContract(ctx context.Context, id int64) (*Contract, error)
	ListContracts(ctx context.Context) ([]*Contract, error)
	UpdateContract(ctx context.Context, c *Contract) error
	// DeleteContract reports whether a record was actually removed.
	DeleteContract(ctx context.Context, id int64) (bool, error)
}

// Rasterizer is the external HTML-to-PDF collaborator. Implementations must
// honor context cancellation; a failure here never touches stored contract
// data.
type Rasterizer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Archiver stores a copy of an exported document. Archiving is best-effort
// and optional.
type Archiver interface {
	Store(ctx context.Context, filename string, data []byte) error
}

// ContractService is the boundary the HTTP layer consumes. It composes the
// template catalog, the validator builder, the renderer and the external
// rasterizer.
type ContractService interface {
	ListTemplates(ctx context.Context) ([]*Template, error)
	GetTemplate(ctx context.Context, id int64) (*Template, error)

	CreateContract(ctx context.Context, req *CreateContractRequest) (*Contract, error)
	GetContract(ctx context.Context, id int64) (*Contract, error)
	ListContracts(ctx context.Context) ([]*Contract, error)
	UpdateContract(ctx context.Context, id int64, req *UpdateContractRequest) (*Contract, error)
	DeleteContract(ctx context.Context, id int64) (bool, error)

	// PreviewContract renders the finished document body for in-place display.
	PreviewContract(ctx context.Context, id int64) (string, error)
	// ExportContract renders the document and hands it to the rasterizer.
	ExportContract(ctx context.Context, id int64) (*ExportResult, error)
}
