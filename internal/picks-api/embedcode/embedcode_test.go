package embedcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const id = "3f2a9c1e-8b7d-4e6f-a5b4-c3d2e1f0a9b8"

func TestSite(t *testing.T) {
	code, u, err := Site("https://cdn.example.com/embed/", id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/embed/site?id="+id, u)
	assert.True(t, strings.HasPrefix(code, `<div id="site-picks-`+id+`"></div>`))
	assert.Contains(t, code, "fetch('"+u+"')")
	assert.Equal(t, 2, strings.Count(code, "site-picks-"+id))
}

func TestPick(t *testing.T) {
	code, u, err := Pick("http://localhost:8090/embed", id)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8090/embed/pick?id="+id, u)
	assert.Contains(t, code, `<iframe src="`+u+`" width="420" height="300" frameborder="0"`)
	assert.Contains(t, code, "border-radius:12px")
}

func TestInvalidID(t *testing.T) {
	_, _, err := Site("http://x", "');alert(1);//")
	assert.ErrorIs(t, err, ErrInvalidID)
	_, _, err = Pick("http://x", "")
	assert.ErrorIs(t, err, ErrInvalidID)
}
