package e2e_harness

import (
	"context"
	"strings"
	"testing"

	"github.com/draftly-hq/draftly"
	"github.com/draftly-hq/draftly/internal"
	"github.com/draftly-hq/draftly/internal/archive"
)

type stubRasterizer struct{}

func (stubRasterizer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.7\n" + html), nil
}

func TestContractLifecycleE2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E harness in -short mode")
	}
	ctx := context.Background()
	h := &TestHarness{}

	if _, err := h.StartPostgres(ctx); err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer h.StopPostgres(ctx)

	if _, err := h.StartS3(ctx); err != nil {
		t.Fatalf("start s3: %v", err)
	}
	defer h.StopS3(ctx)

	tables := draftly.TableNames{Templates: "templates", Contracts: "contracts"}
	if err := internal.EnsureSchema(ctx, h.Pool, tables); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	templates := internal.NewPostgresTemplateStore(h.Pool, tables.Templates)
	contracts := internal.NewPostgresContractStore(h.Pool, tables.Contracts)

	if err := internal.SeedTemplates(ctx, templates); err != nil {
		t.Fatalf("seed templates: %v", err)
	}
	// second run must be a no-op
	if err := internal.SeedTemplates(ctx, templates); err != nil {
		t.Fatalf("re-seed templates: %v", err)
	}
	catalog, err := templates.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(catalog) != len(draftly.BuiltinTemplates()) {
		t.Fatalf("expected %d seeded templates, got %d", len(draftly.BuiltinTemplates()), len(catalog))
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "minio")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "minio")
	uploader, err := archive.NewS3Uploader(ctx, draftly.ArchiveConfig{
		Bucket:    "draftly-exports",
		Region:    "us-east-1",
		Endpoint:  h.S3Endpoint,
		KeyPrefix: "exports",
	})
	if err != nil {
		t.Fatalf("new s3 uploader: %v", err)
	}
	if err := uploader.EnsureBucket(ctx); err != nil {
		t.Fatalf("ensure bucket: %v", err)
	}

	svc := internal.NewContractService(templates, contracts, stubRasterizer{}, uploader)

	var employment *draftly.Template
	for _, tpl := range catalog {
		if tpl.Name == "employment" {
			employment = tpl
		}
	}
	if employment == nil {
		t.Fatal("employment template not seeded")
	}

	c, err := svc.CreateContract(ctx, &draftly.CreateContractRequest{
		TemplateID: employment.ID,
		Title:      "Acme employment",
		Data: map[string]any{
			"employer.companyName":    "Acme Corporation",
			"employer.representative": "Jordan Reyes",
			"employee.name":           "Kim Min-ji",
			"employment.position":     "Backend Engineer",
			"employment.startDate":    "2026-09-01",
			"employment.salary":       300000,
			"contractDate":            "2026-08-15",
		},
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}

	html, err := svc.PreviewContract(ctx, c.ID)
	if err != nil {
		t.Fatalf("preview contract: %v", err)
	}
	if !strings.Contains(html, "Acme Corporation") || strings.Contains(html, "{{") {
		t.Fatalf("preview not fully rendered: %q", html)
	}

	result, err := svc.ExportContract(ctx, c.ID)
	if err != nil {
		t.Fatalf("export contract: %v", err)
	}
	if !strings.HasPrefix(string(result.Data), "%PDF") {
		t.Fatalf("export payload is not a pdf: %q", result.Data[:16])
	}
	if result.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}

	newName := "Lee Ji-hoon"
	updated, err := svc.UpdateContract(ctx, c.ID, &draftly.UpdateContractRequest{
		Data: map[string]any{"employee.name": newName},
	})
	if err != nil {
		t.Fatalf("update contract: %v", err)
	}
	if updated.Data["employee.name"] != newName {
		t.Fatalf("merge lost update: %v", updated.Data["employee.name"])
	}
	if updated.Data["employer.companyName"] != "Acme Corporation" {
		t.Fatalf("merge lost untouched key: %v", updated.Data["employer.companyName"])
	}

	deleted, err := svc.DeleteContract(ctx, c.ID)
	if err != nil || !deleted {
		t.Fatalf("delete contract: deleted=%v err=%v", deleted, err)
	}
	deleted, err = svc.DeleteContract(ctx, c.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Fatal("second delete reported a removed row")
	}
}
