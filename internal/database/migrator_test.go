package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	subtree, err := Migrations()
	require.NoError(t, err)

	body, err := fs.ReadFile(subtree, "001_create_tasks.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "CREATE TABLE tasks")
	assert.Contains(t, sql, "---- create above / drop below ----")

	// Column limits mirror validation.MaxFieldLength.
	assert.Equal(t, 3, strings.Count(sql, "VARCHAR(255)"))
}
