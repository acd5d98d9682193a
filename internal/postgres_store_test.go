package internal

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftly-hq/draftly"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestPostgresTemplateStore_GetTemplate(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	fieldsJSON := []byte(`[{"id":"employer.companyName","label":"Company name","type":"text","required":true}]`)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, title, description, icon, estimated_time, field_count, body, fields FROM templates WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "title", "description", "icon", "estimated_time", "field_count", "body", "fields",
		}).AddRow(int64(1), "employment", "Employment Contract", "desc", "briefcase", "10 min", 1, "<p>{{employer.companyName}}</p>", fieldsJSON))

	tpl, err := store.GetTemplate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tpl.ID)
	assert.Equal(t, "employment", tpl.Name)
	require.Len(t, tpl.Fields, 1)
	assert.Equal(t, "employer.companyName", tpl.Fields[0].ID)
	assert.True(t, tpl.Fields[0].Required)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTemplateStore_GetTemplateNotFound(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	mock.ExpectQuery("SELECT .+ FROM templates WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "title", "description", "icon", "estimated_time", "field_count", "body", "fields",
		}))

	_, err := store.GetTemplate(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, draftly.IsNotFoundError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTemplateStore_MalformedFieldsDegrade(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	mock.ExpectQuery("SELECT .+ FROM templates WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "title", "description", "icon", "estimated_time", "field_count", "body", "fields",
		}).AddRow(int64(2), "broken", "Broken", "", "", "", 3, "<p>body</p>", []byte(`{"not":"an array"`)))

	tpl, err := store.GetTemplate(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, tpl.Fields)

	// the degraded field list still yields a permissive validator
	_, verr := draftly.BuildValidator(tpl.Fields).Validate(map[string]any{"anything": "goes"})
	assert.NoError(t, verr)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTemplateStore_ListTemplates(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	mock.ExpectQuery("SELECT .+ FROM templates ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "title", "description", "icon", "estimated_time", "field_count", "body", "fields",
		}).
			AddRow(int64(1), "employment", "Employment Contract", "", "", "", 0, "<p></p>", []byte(`[]`)).
			AddRow(int64(2), "service", "Service Agreement", "", "", "", 0, "<p></p>", []byte(`[]`)))

	templates, err := store.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "employment", templates[0].Name)
	assert.Equal(t, "service", templates[1].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTemplateStore_InsertTemplate(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	tpl := &draftly.Template{
		Name:  "employment",
		Title: "Employment Contract",
		Body:  "<p>{{contractDate}}</p>",
		Fields: []draftly.FieldSchema{
			{ID: "contractDate", Label: "Contract date", Type: draftly.FieldTypeDate, Required: true},
		},
	}

	mock.ExpectQuery("INSERT INTO templates").
		WithArgs(tpl.Name, tpl.Title, tpl.Description, tpl.Icon,
			tpl.EstimatedTime, tpl.FieldCount, tpl.Body, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.InsertTemplate(context.Background(), tpl)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_CreateContract(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	now := time.Now().UTC()
	c := &draftly.Contract{
		TemplateID: 1,
		Title:      "My contract",
		Data:       map[string]any{"employer.companyName": "Acme"},
		Status:     draftly.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectQuery("INSERT INTO contracts").
		WithArgs(c.TemplateID, c.Title, pgxmock.AnyArg(), "draft", now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := store.CreateContract(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_GetContract(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM contracts WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "template_id", "title", "data", "status", "created_at", "updated_at",
		}).AddRow(int64(42), int64(1), "My contract", []byte(`{"employment.salary":300000}`), "draft", now, now))

	c, err := store.GetContract(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, draftly.StatusDraft, c.Status)
	assert.Equal(t, float64(300000), c.Data["employment.salary"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_GetContractNotFound(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	mock.ExpectQuery("SELECT .+ FROM contracts WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "template_id", "title", "data", "status", "created_at", "updated_at",
		}))

	_, err := store.GetContract(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, draftly.IsNotFoundError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_UpdateContract(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	now := time.Now().UTC()
	c := &draftly.Contract{
		ID:        42,
		Title:     "Renamed",
		Data:      map[string]any{"a": "1"},
		Status:    draftly.StatusCompleted,
		UpdatedAt: now,
	}

	mock.ExpectExec("UPDATE contracts").
		WithArgs(c.ID, c.Title, pgxmock.AnyArg(), "completed", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.UpdateContract(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_UpdateContractNotFound(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	c := &draftly.Contract{ID: 404, Data: map[string]any{}}

	mock.ExpectExec("UPDATE contracts").
		WithArgs(c.ID, c.Title, pgxmock.AnyArg(), "", c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.UpdateContract(context.Background(), c)
	require.Error(t, err)
	assert.True(t, draftly.IsNotFoundError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_DeleteContract(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	mock.ExpectExec("DELETE FROM contracts").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM contracts").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := store.DeleteContract(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteContract(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresContractStore_StorageError(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresContractStore(mock, "contracts")

	mock.ExpectQuery("SELECT .+ FROM contracts ORDER BY updated_at DESC").
		WillReturnError(errors.New("connection reset"))

	_, err := store.ListContracts(context.Background())
	require.Error(t, err)
	assert.True(t, draftly.IsStorageError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS templates").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contracts").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	tables := draftly.TableNames{Templates: "templates", Contracts: "contracts"}
	require.NoError(t, EnsureSchema(context.Background(), mock, tables))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTemplates_SkipsWhenSeeded(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM templates")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	require.NoError(t, SeedTemplates(context.Background(), store))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTemplates_InsertsCatalogOnce(t *testing.T) {
	mock := newMockPool(t)
	store := NewPostgresTemplateStore(mock, "templates")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM templates")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	catalog := draftly.BuiltinTemplates()
	for i := range catalog {
		mock.ExpectQuery("INSERT INTO templates").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(i + 1)))
	}

	require.NoError(t, SeedTemplates(context.Background(), store))
	require.NoError(t, mock.ExpectationsWereMet())
}
