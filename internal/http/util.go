package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"homecare-admin/internal/service"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// errBadBody 请求体无法解析
type errBadBody struct{ err error }

func (e errBadBody) Error() string { return fmt.Sprintf("invalid request body: %v", e.err) }

func (e errBadBody) Unwrap() error { return e.err }

// readInput decodes a JSON object or a urlencoded/multipart form. Repeated form keys
// (and keys ending in []) become arrays; nested objects are only supported in JSON.
func readInput(r *http.Request) (service.Input, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if ct == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return nil, errBadBody{err}
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, errBadBody{err}
		}
		in := service.Input{}
		for key, vals := range r.PostForm {
			if strings.HasSuffix(key, "[]") || len(vals) > 1 {
				items := make([]any, len(vals))
				for i, v := range vals {
					items[i] = v
				}
				in[strings.TrimSuffix(key, "[]")] = items
				continue
			}
			in[key] = vals[0]
		}
		return in, nil
	default:
		in := service.Input{}
		if err := readBodyJSON(r, maxBodyBytes, &in); err != nil {
			return nil, errBadBody{err}
		}
		return in, nil
	}
}
