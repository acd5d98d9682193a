package internal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
)

// EnsureSchema creates the two persisted tables when they do not exist.
func EnsureSchema(ctx context.Context, db DB, tables draftly.TableNames) error {
	templatesDDL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	estimated_time TEXT NOT NULL DEFAULT '',
	field_count INTEGER NOT NULL DEFAULT 0,
	body TEXT NOT NULL,
	fields JSONB NOT NULL DEFAULT '[]'
)`, tables.Templates)

	contractsDDL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	template_id BIGINT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	data JSONB NOT NULL DEFAULT '{}',
	status TEXT NOT NULL DEFAULT 'draft',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`, tables.Contracts)

	if _, err := db.Exec(ctx, templatesDDL); err != nil {
		return draftly.NewStorageError("create templates table", err)
	}
	if _, err := db.Exec(ctx, contractsDDL); err != nil {
		return draftly.NewStorageError("create contracts table", err)
	}
	return nil
}

// SeedTemplates inserts the built-in catalog once. Seeding is skipped
// whenever at least one template row already exists; it runs at process
// start under the single-writer assumption, not on every request.
func SeedTemplates(ctx context.Context, store draftly.TemplateStore) error {
	count, err := store.CountTemplates(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		zap.S().Debugw("template catalog already seeded", "count", count)
		return nil
	}

	for _, tpl := range draftly.BuiltinTemplates() {
		id, err := store.InsertTemplate(ctx, &tpl)
		if err != nil {
			return err
		}
		zap.S().Infow("seeded template", "id", id, "name", tpl.Name)
	}
	return nil
}
