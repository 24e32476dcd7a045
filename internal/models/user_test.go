package models_test

import (
	"encoding/json"
	"testing"

	"github.com/arllen133/sqldemo"
	"github.com/arllen133/sqldemo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSchema_Registered(t *testing.T) {
	schema := sqldemo.LoadSchema[models.User]()
	assert.Equal(t, "users", schema.TableName())
	assert.True(t, schema.AutoIncrement())
	assert.Contains(t, schema.CreateTableSQL(), "id INTEGER PRIMARY KEY")
}

func TestUserSchema_InsertRow(t *testing.T) {
	u := &models.User{Name: "Jane Smith", Email: "jane@example.com", Age: 25}

	cols, vals := models.UserSchema.InsertRow(u)
	assert.Equal(t, []string{"name", "email", "age"}, cols)
	assert.Equal(t, []any{"Jane Smith", "jane@example.com", 25}, vals)

	models.UserSchema.SetPK(u, 2)
	cols, vals = models.UserSchema.InsertRow(u)
	assert.Equal(t, []string{"id", "name", "email", "age"}, cols)
	assert.Equal(t, int64(2), vals[0])
}

func TestUser_JSON(t *testing.T) {
	b, err := json.Marshal(models.User{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 30})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"John Doe","email":"john@example.com","age":30}`, string(b))
}
