package internal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
)

// contractService implements draftly.ContractService on top of the stores,
// the validator builder and the renderer. Validation and rendering are pure;
// all state lives in the stores.
type contractService struct {
	templates  draftly.TemplateStore
	contracts  draftly.ContractStore
	rasterizer draftly.Rasterizer
	archiver   draftly.Archiver
	now        func() time.Time
}

// NewContractService wires the service. archiver may be nil, in which case
// exports are not archived.
func NewContractService(
	templates draftly.TemplateStore,
	contracts draftly.ContractStore,
	rasterizer draftly.Rasterizer,
	archiver draftly.Archiver,
) draftly.ContractService {
	return &contractService{
		templates:  templates,
		contracts:  contracts,
		rasterizer: rasterizer,
		archiver:   archiver,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *contractService) ListTemplates(ctx context.Context) ([]*draftly.Template, error) {
	return s.templates.ListTemplates(ctx)
}

func (s *contractService) GetTemplate(ctx context.Context, id int64) (*draftly.Template, error) {
	return s.templates.GetTemplate(ctx, id)
}

func (s *contractService) CreateContract(ctx context.Context, req *draftly.CreateContractRequest) (*draftly.Contract, error) {
	tpl, err := s.templates.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	data, err := draftly.BuildValidator(tpl.Fields).Validate(req.Data)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = draftly.StatusDraft
	}
	if !draftly.ValidStatus(status) {
		return nil, draftly.NewInvalidStatusError(string(status))
	}

	now := s.now()
	c := &draftly.Contract{
		TemplateID: req.TemplateID,
		Title:      req.Title,
		Data:       data,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := s.contracts.CreateContract(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	zap.S().Infow("contract created", "contract_id", id, "template_id", req.TemplateID, "status", status)
	return c, nil
}

func (s *contractService) GetContract(ctx context.Context, id int64) (*draftly.Contract, error) {
	return s.contracts.GetContract(ctx, id)
}

func (s *contractService) ListContracts(ctx context.Context) ([]*draftly.Contract, error) {
	return s.contracts.ListContracts(ctx)
}

// UpdateContract merges a partial update into the stored record: data keys
// are added or overwritten one by one, keys absent from the request stay
// untouched, and updatedAt is re-stamped on every successful mutation.
func (s *contractService) UpdateContract(ctx context.Context, id int64, req *draftly.UpdateContractRequest) (*draftly.Contract, error) {
	c, err := s.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Status != nil {
		if !draftly.ValidStatus(*req.Status) {
			return nil, draftly.NewInvalidStatusError(string(*req.Status))
		}
		c.Status = *req.Status
	}
	if req.Data != nil {
		if c.Data == nil {
			c.Data = make(map[string]any, len(req.Data))
		}
		for key, value := range req.Data {
			c.Data[key] = value
		}
	}
	c.UpdatedAt = s.now()

	if err := s.contracts.UpdateContract(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) DeleteContract(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.contracts.DeleteContract(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		zap.S().Infow("contract deleted", "contract_id", id)
	}
	return deleted, nil
}

// renderContract loads a contract and its template and produces the finished
// document. Recomputed fresh on every call; nothing is written back.
func (s *contractService) renderContract(ctx context.Context, id int64) (string, error) {
	c, err := s.contracts.GetContract(ctx, id)
	if err != nil {
		return "", err
	}
	tpl, err := s.templates.GetTemplate(ctx, c.TemplateID)
	if err != nil {
		return "", err
	}
	return draftly.RenderDocument(tpl, c), nil
}

func (s *contractService) PreviewContract(ctx context.Context, id int64) (string, error) {
	return s.renderContract(ctx, id)
}

func (s *contractService) ExportContract(ctx context.Context, id int64) (*draftly.ExportResult, error) {
	html, err := s.renderContract(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf, err := s.rasterizer.RenderPDF(ctx, html)
	if err != nil {
		return nil, draftly.NewRenderError("rasterize contract document", err).WithContract(id)
	}

	filename := fmt.Sprintf("contract-%d.pdf", id)

	if s.archiver != nil {
		// best-effort: a failed archive upload must not fail the export
		if err := s.archiver.Store(ctx, filename, pdf); err != nil {
			zap.S().Warnw("archive upload failed", "contract_id", id, "err", err)
		}
	}

	return &draftly.ExportResult{
		Data:        pdf,
		Filename:    filename,
		ContentType: "application/pdf",
	}, nil
}
