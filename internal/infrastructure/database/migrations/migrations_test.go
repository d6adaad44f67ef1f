package migrations

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := openSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	t.Run("customers table", func(t *testing.T) {
		r, _, err := src.ReadUp(first)
		require.NoError(t, err)
		defer r.Close()

		body, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS customers")
		assert.Contains(t, string(body), "customers_tax_id_key")
	})

	t.Run("search function", func(t *testing.T) {
		r, _, err := src.ReadUp(next)
		require.NoError(t, err)
		defer r.Close()

		body, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Contains(t, string(body), "search_customers_by_name")
	})

	t.Run("search matches the term literally in id order", func(t *testing.T) {
		r, _, err := src.ReadUp(next)
		require.NoError(t, err)
		defer r.Close()

		body, err := io.ReadAll(r)
		require.NoError(t, err)
		sql := string(body)
		assert.Contains(t, sql, `replace(replace(replace(term, '\', '\\'), '%', '\%'), '_', '\_')`)
		assert.Equal(t, 3, strings.Count(sql, `ILIKE p.pattern ESCAPE '\'`))
		assert.NotContains(t, sql, "|| term ||")
		assert.Contains(t, sql, "ORDER BY c.id;")
	})

	t.Run("every up has a down", func(t *testing.T) {
		for _, v := range []uint{first, next} {
			r, _, err := src.ReadDown(v)
			require.NoError(t, err)
			r.Close()
		}
	})
}
