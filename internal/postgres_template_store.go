package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
)

// PostgresTemplateStore reads the seeded template catalog from Postgres.
// The fields column is JSONB; a malformed payload degrades to a nil field
// list instead of failing the whole template, so the validator builder can
// fall back to its single-optional-placeholder rule.
type PostgresTemplateStore struct {
	db        DB
	tableName string
}

func NewPostgresTemplateStore(db DB, tableName string) *PostgresTemplateStore {
	return &PostgresTemplateStore{db: db, tableName: tableName}
}

const templateColumns = "id, name, title, description, icon, estimated_time, field_count, body, fields"

func (s *PostgresTemplateStore) ListTemplates(ctx context.Context) ([]*draftly.Template, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", templateColumns, s.tableName)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, draftly.NewStorageError("list templates", err)
	}
	defer rows.Close()

	templates := make([]*draftly.Template, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, draftly.NewStorageError("scan template row", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, draftly.NewStorageError("iterate template rows", err)
	}
	return templates, nil
}

func (s *PostgresTemplateStore) GetTemplate(ctx context.Context, id int64) (*draftly.Template, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", templateColumns, s.tableName)

	tpl, err := scanTemplate(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, draftly.NewTemplateNotFoundError(id)
		}
		return nil, draftly.NewStorageError("get template", err)
	}
	return tpl, nil
}

func (s *PostgresTemplateStore) CountTemplates(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)

	var count int
	if err := s.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, draftly.NewStorageError("count templates", err)
	}
	return count, nil
}

func (s *PostgresTemplateStore) InsertTemplate(ctx context.Context, tpl *draftly.Template) (int64, error) {
	fieldsJSON, err := json.Marshal(tpl.Fields)
	if err != nil {
		return 0, draftly.NewStorageError("encode template fields", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s
(name, title, description, icon, estimated_time, field_count, body, fields)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`, s.tableName)

	var id int64
	err = s.db.QueryRow(ctx, query,
		tpl.Name, tpl.Title, tpl.Description, tpl.Icon,
		tpl.EstimatedTime, tpl.FieldCount, tpl.Body, fieldsJSON,
	).Scan(&id)
	if err != nil {
		return 0, draftly.NewStorageError("insert template", err)
	}
	return id, nil
}

// scanTemplate decodes one template row. rowScanner covers both pgx.Row and
// pgx.Rows.
func scanTemplate(row interface{ Scan(dest ...any) error }) (*draftly.Template, error) {
	var (
		tpl        draftly.Template
		fieldsJSON []byte
	)
	err := row.Scan(
		&tpl.ID, &tpl.Name, &tpl.Title, &tpl.Description, &tpl.Icon,
		&tpl.EstimatedTime, &tpl.FieldCount, &tpl.Body, &fieldsJSON,
	)
	if err != nil {
		return nil, err
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &tpl.Fields); err != nil {
			// malformed field list: degrade to no fields rather than
			// rejecting the template
			zap.S().Warnw("template has malformed fields payload, degrading to empty field list",
				"template_id", tpl.ID, "template_name", tpl.Name, "err", err)
			tpl.Fields = nil
		}
	}
	return &tpl, nil
}
