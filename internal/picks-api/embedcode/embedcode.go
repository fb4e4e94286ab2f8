// Package embedcode monta os snippets que os sites colam pra exibir os widgets.
package embedcode

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const siteSnippet = `<div id="site-picks-%[1]s"></div>
<script>
(function() {
  fetch('%[2]s')
    .then(function(r) { return r.text(); })
    .then(function(html) { document.getElementById('site-picks-%[1]s').innerHTML = html; });
})();
</script>`

const pickSnippet = `<iframe src="%s" width="420" height="300" frameborder="0" style="border:none;border-radius:12px;overflow:hidden"></iframe>`

// ErrInvalidID: o id vai parar dentro de HTML/JS, então só aceitamos uuid
var ErrInvalidID = errors.New("invalid id")

// URL do widget no embed-service, ex.: https://cdn.exemplo.com/embed/site?id=...
func URL(base, kind, id string) string {
	return strings.TrimRight(base, "/") + "/" + kind + "?id=" + url.QueryEscape(id)
}

// Site devolve o snippet com fetch do fragmento e a URL usada
func Site(base, id string) (code, u string, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", "", ErrInvalidID
	}
	u = URL(base, "site", id)
	return fmt.Sprintf(siteSnippet, id, u), u, nil
}

// Pick devolve o iframe do widget do pick
func Pick(base, id string) (code, u string, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", "", ErrInvalidID
	}
	u = URL(base, "pick", id)
	return fmt.Sprintf(pickSnippet, u), u, nil
}
