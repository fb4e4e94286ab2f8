package migrate

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchema(t *testing.T) {
	all, err := Embedded()
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.Equal(t, "0001_init.sql", all[0].Name)
	assert.Len(t, all[0].Checksum, 64)
	for _, table := range []string{"sites", "events", "picks", "pick_sites", "api_tokens", "user_roles"} {
		assert.True(t, strings.Contains(all[0].SQL, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}

func TestLoadOrdersAndSkipsEmpty(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/0002_indexes.sql": {Data: []byte("CREATE INDEX a ON t(x);")},
		"sql/0001_init.sql":    {Data: []byte("CREATE TABLE t (x int);")},
		"sql/0003_empty.sql":   {Data: []byte("  \n")},
		"sql/README.md":        {Data: []byte("docs")},
	}
	all, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "0001_init.sql", all[0].Name)
	assert.Equal(t, "0002_indexes.sql", all[1].Name)
	assert.NotEqual(t, all[0].Checksum, all[1].Checksum)
}

func TestPending(t *testing.T) {
	all := []Migration{
		{Name: "0001_init.sql", Checksum: checksum("a")},
		{Name: "0002_more.sql", Checksum: checksum("b")},
	}

	pending, err := Pending(all, map[string]Applied{})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	pending, err = Pending(all, map[string]Applied{"0001_init.sql": {Name: "0001_init.sql", Checksum: checksum("a")}})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "0002_more.sql", pending[0].Name)

	_, err = Pending(all, map[string]Applied{"0001_init.sql": {Checksum: checksum("changed")}})
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Contains(t, err.Error(), "0001_init.sql")
}

func TestCompare(t *testing.T) {
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	all := []Migration{
		{Name: "0001_init.sql", Checksum: checksum("a")},
		{Name: "0002_more.sql", Checksum: checksum("b")},
		{Name: "0003_last.sql", Checksum: checksum("c")},
	}
	status := Compare(all, map[string]Applied{
		"0001_init.sql": {Checksum: checksum("a"), AppliedAt: at},
		"0002_more.sql": {Checksum: checksum("old"), AppliedAt: at},
	})

	require.Len(t, status, 3)
	assert.True(t, status[0].Applied)
	assert.False(t, status[0].Modified)
	assert.Equal(t, at, status[0].AppliedAt)
	assert.True(t, status[1].Modified)
	assert.False(t, status[2].Applied)
}
