package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs. Validate returns one message per
// failing field; an empty result means the request is acceptable.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads a single JSON object into dest and runs its Validator.
// On failure it writes a 400 ValidationError whose Fields lists each problem
// and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeValidation(w, []string{decodeMessage(err)})
		return false
	}
	if dec.More() {
		writeValidation(w, []string{"request body must hold a single JSON object"})
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			writeValidation(w, errs)
			return false
		}
	}
	return true
}

func writeValidation(w http.ResponseWriter, fields []string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{
		Name:    ErrNameValidation,
		Code:    http.StatusBadRequest,
		Message: strings.Join(fields, "; "),
		Fields:  fields,
	})
}

// decodeMessage names the offending field where encoding/json reports one.
func decodeMessage(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is truncated"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return fmt.Sprintf("request body must be a JSON object, got %s", typeErr.Value)
		}
		return fmt.Sprintf("%s must be %s, got %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String()), typeErr.Value)
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return strings.TrimPrefix(err.Error(), "json: ") + " is not allowed"
	default:
		return err.Error()
	}
}

func jsonKind(goKind string) string {
	switch {
	case strings.HasPrefix(goKind, "int"), strings.HasPrefix(goKind, "uint"), strings.HasPrefix(goKind, "float"):
		return "a number"
	case goKind == "bool":
		return "a boolean"
	case goKind == "string":
		return "a string"
	case goKind == "slice", goKind == "array":
		return "an array"
	default:
		return "an object"
	}
}
