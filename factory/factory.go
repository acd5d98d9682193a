package factory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draftly-hq/draftly"
	"github.com/draftly-hq/draftly/internal"
	"github.com/draftly-hq/draftly/internal/archive"
	"github.com/draftly-hq/draftly/internal/pdf"
)

// NewContractServiceWithConfig wires a ContractService over an existing
// database pool. This is the primary way for external projects to embed the
// service without running the bundled HTTP server.
//
// The schema is created and the template catalog seeded on first use. An
// archiver is attached only when config.Archive names a bucket.
//
// Usage:
//
//	cfg := draftly.DefaultConfig()
//	svc, cleanup, err := factory.NewContractServiceWithConfig(ctx, cfg, pool)
//	if err != nil {
//	    // handle error
//	}
//	defer cleanup()
func NewContractServiceWithConfig(ctx context.Context, config *draftly.Config, pool *pgxpool.Pool) (draftly.ContractService, func() error, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	if err := internal.EnsureSchema(ctx, pool, config.Database.TableNames); err != nil {
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	templates := internal.NewPostgresTemplateStore(pool, config.Database.TableNames.Templates)
	contracts := internal.NewPostgresContractStore(pool, config.Database.TableNames.Contracts)

	if err := internal.SeedTemplates(ctx, templates); err != nil {
		return nil, nil, fmt.Errorf("seed templates: %w", err)
	}

	rasterizer := pdf.NewChromeRasterizer(config.Render)

	var archiver draftly.Archiver
	if config.Archive.Enabled() {
		uploader, err := archive.NewS3Uploader(ctx, config.Archive)
		if err != nil {
			rasterizer.Close()
			return nil, nil, fmt.Errorf("create archive uploader: %w", err)
		}
		archiver = uploader
	}

	svc := internal.NewContractService(templates, contracts, rasterizer, archiver)
	return svc, rasterizer.Close, nil
}
