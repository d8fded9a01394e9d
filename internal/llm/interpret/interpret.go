// Package interpret turns raw model output into text or a decoded JSON object.
package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"briefy/internal/models"
)

var (
	ErrNoJSON          = errors.New("Resposta da IA não contém JSON válido")
	ErrMalformedJSON   = errors.New("Erro na resposta da IA. Formato JSON inválido")
	ErrUnsupportedType = errors.New("Tipo de conteúdo não suportado")
)

// MalformedJSONError carries the candidate text that failed to decode.
type MalformedJSONError struct {
	Text string
	Err  error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedJSON.Error(), e.Err)
}

func (e *MalformedJSONError) Unwrap() []error {
	return []error{ErrMalformedJSON, e.Err}
}

// Result holds Text for pr and Object for the JSON content types.
type Result struct {
	Text   string
	Object map[string]any
}

// Value returns whichever side of the result is set.
func (r Result) Value() any {
	if r.Object != nil {
		return r.Object
	}
	return r.Text
}

// extractor pulls a JSON candidate out of free text.
type extractor func(string) (string, bool)

var fencePattern = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")

func fenced(s string) (string, bool) {
	m := fencePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func braces(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func firstOf(extractors ...extractor) extractor {
	return func(s string) (string, bool) {
		for _, ex := range extractors {
			if out, ok := ex(s); ok {
				return out, true
			}
		}
		return "", false
	}
}

var (
	structured = firstOf(fenced, braces)
	loose      = firstOf(braces)
)

func Interpret(ct models.ContentType, raw string) (Result, error) {
	switch ct {
	case models.ContentPR:
		return Result{Text: strings.TrimSpace(raw)}, nil
	case models.ContentFlowchart, models.ContentTasks:
		obj, err := decode(structured, raw)
		if err != nil {
			return Result{}, err
		}
		return Result{Object: obj}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
}

// ExtractJSON decodes the greedy brace span of raw. Video and material
// analyses reply with bare JSON and use this directly.
func ExtractJSON(raw string) (map[string]any, error) {
	return decode(loose, raw)
}

func decode(ex extractor, raw string) (map[string]any, error) {
	candidate, ok := ex(raw)
	if !ok {
		return nil, ErrNoJSON
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return nil, &MalformedJSONError{Text: candidate, Err: err}
	}
	return out, nil
}
