package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
)

const maxBody = 1 << 20

// decode lê o corpo JSON; em caso de erro já respondeu 400
func decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return v, false
	}
	return v, true
}

// language: default "en"; "all" desliga o filtro
func language(r *http.Request) string {
	switch l := r.URL.Query().Get("language"); l {
	case "":
		return "en"
	case "all":
		return ""
	default:
		return l
	}
}

func paging(w http.ResponseWriter, r *http.Request, defLimit int) (limit, offset int, ok bool) {
	q := r.URL.Query()
	limit, offset = defLimit, 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid limit")
			return 0, 0, false
		}
		limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid offset")
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

type field struct {
	name  string
	value *string
}

// required responde 400 listando os campos obrigatórios ausentes ou vazios
func required(w http.ResponseWriter, fields ...field) bool {
	var missing []string
	for _, f := range fields {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return false
	}
	return true
}

// fail traduz o erro do repositório para o status HTTP
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Not found")
		return
	case errors.Is(err, repo.ErrMarketTypeRequired):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	case db.IsUniqueViolation(err):
		httpx.WriteError(w, http.StatusConflict, db.Message(err))
		return
	case db.IsInvalidReference(err):
		httpx.WriteError(w, http.StatusBadRequest, db.Message(err))
		return
	}

	s.log.Error(op+" failed", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, err.Error())
}
