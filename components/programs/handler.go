package programs

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
)

type optionsResponse struct {
	Data []Option `json:"data"`
}

// newHandler serves GET and HEAD. A code parameter resolves one program
// exactly, reporting unrecognised codes as the unknown fallback with known
// set to false. Otherwise q and limit search the catalog.
func newHandler(source *catalog.Catalog, opts Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query()
		var results []Option
		if query.Has("code") {
			code := strings.TrimSpace(query.Get("code"))
			if code == "" {
				http.Error(w, "programs: code must not be empty", http.StatusBadRequest)
				return
			}
			results = []Option{NewOption(source.Resolve(code))}
		} else {
			limit, err := parseLimit(query.Get("limit"))
			if err != nil {
				http.Error(w, "programs: limit must be an integer", http.StatusBadRequest)
				return
			}
			results = Search(source.Programs(), query.Get("q"), clampLimit(limit, opts))
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(optionsResponse{Data: results})
	})
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
