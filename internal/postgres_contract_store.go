package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/draftly-hq/draftly"
)

// PostgresContractStore persists contracts. Data is stored as a JSONB
// mapping of field id to value; every mutation is a single statement, so
// concurrent writers to the same id resolve last-write-wins.
type PostgresContractStore struct {
	db        DB
	tableName string
}

func NewPostgresContractStore(db DB, tableName string) *PostgresContractStore {
	return &PostgresContractStore{db: db, tableName: tableName}
}

const contractColumns = "id, template_id, title, data, status, created_at, updated_at"

func (s *PostgresContractStore) CreateContract(ctx context.Context, c *draftly.Contract) (int64, error) {
	dataJSON, err := json.Marshal(c.Data)
	if err != nil {
		return 0, draftly.NewStorageError("encode contract data", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s
(template_id, title, data, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`, s.tableName)

	var id int64
	err = s.db.QueryRow(ctx, query,
		c.TemplateID, c.Title, dataJSON, string(c.Status), c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, draftly.NewStorageError("insert contract", err)
	}
	return id, nil
}

func (s *PostgresContractStore) GetContract(ctx context.Context, id int64) (*draftly.Contract, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", contractColumns, s.tableName)

	c, err := scanContract(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, draftly.NewContractNotFoundError(id)
		}
		return nil, draftly.NewStorageError("get contract", err)
	}
	return c, nil
}

func (s *PostgresContractStore) ListContracts(ctx context.Context) ([]*draftly.Contract, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY updated_at DESC", contractColumns, s.tableName)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, draftly.NewStorageError("list contracts", err)
	}
	defer rows.Close()

	contracts := make([]*draftly.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, draftly.NewStorageError("scan contract row", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, draftly.NewStorageError("iterate contract rows", err)
	}
	return contracts, nil
}

// UpdateContract overwrites the stored record wholesale. Field-id level
// merging happens in the service, which loads the record first.
func (s *PostgresContractStore) UpdateContract(ctx context.Context, c *draftly.Contract) error {
	dataJSON, err := json.Marshal(c.Data)
	if err != nil {
		return draftly.NewStorageError("encode contract data", err)
	}

	query := fmt.Sprintf(`UPDATE %s
SET title = $2, data = $3, status = $4, updated_at = $5
WHERE id = $1`, s.tableName)

	tag, err := s.db.Exec(ctx, query, c.ID, c.Title, dataJSON, string(c.Status), c.UpdatedAt)
	if err != nil {
		return draftly.NewStorageError("update contract", err)
	}
	if tag.RowsAffected() == 0 {
		return draftly.NewContractNotFoundError(c.ID)
	}
	return nil
}

func (s *PostgresContractStore) DeleteContract(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return false, draftly.NewStorageError("delete contract", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanContract(row interface{ Scan(dest ...any) error }) (*draftly.Contract, error) {
	var (
		c        draftly.Contract
		dataJSON []byte
		status   string
	)
	err := row.Scan(&c.ID, &c.TemplateID, &c.Title, &dataJSON, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Status = draftly.ContractStatus(status)
	c.Data = make(map[string]any)
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &c.Data); err != nil {
			return nil, fmt.Errorf("decode contract data: %w", err)
		}
	}
	return &c, nil
}
