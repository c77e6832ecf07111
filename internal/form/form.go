// Package form decodes admin request bodies. JSON, urlencoded and
// multipart/form-data bodies all end up as one Payload, so handlers never
// branch on the content type.
package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var ErrMalformed = errors.New("malformed request body")

// FileField is the form field the image upload is expected under. Any other
// single file is accepted as well.
const FileField = "image"

type Payload struct {
	values map[string]any
	// File is the attached upload, nil when the request carried none.
	File *multipart.FileHeader
}

func Decode(c *fiber.Ctx) (*Payload, error) {
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		return decodeMultipart(c)
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		return decodeURLEncoded(c), nil
	default:
		return decodeJSON(c.Body())
	}
}

func decodeMultipart(c *fiber.Ctx) (*Payload, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	p := &Payload{values: make(map[string]any, len(mf.Value))}
	for k, vs := range mf.Value {
		if len(vs) > 0 {
			p.values[k] = vs[0]
		}
	}

	if files := mf.File[FileField]; len(files) > 0 && files[0].Size > 0 {
		p.File = files[0]
		return p, nil
	}
	for _, files := range mf.File {
		if len(files) > 0 && files[0].Size > 0 {
			p.File = files[0]
			break
		}
	}
	return p, nil
}

func decodeURLEncoded(c *fiber.Ctx) *Payload {
	p := &Payload{values: map[string]any{}}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		if _, seen := p.values[string(k)]; !seen {
			p.values[string(k)] = string(v)
		}
	})
	return p
}

func decodeJSON(body []byte) (*Payload, error) {
	p := &Payload{values: map[string]any{}}
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p.values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.values == nil {
		p.values = map[string]any{}
	}
	return p, nil
}

// FromMap builds a payload out of already decoded values.
func FromMap(values map[string]any) *Payload {
	if values == nil {
		values = map[string]any{}
	}
	return &Payload{values: values}
}

// Has reports whether key carries a non-empty value.
func (p *Payload) Has(key string) bool {
	v, ok := p.values[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// String returns the trimmed value of key; ok is false for absent or blank values.
func (p *Payload) String(key string) (string, bool) {
	if !p.Has(key) {
		return "", false
	}
	switch v := p.values[key].(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func (p *Payload) Float(key string) (float64, bool) {
	if !p.Has(key) {
		return 0, false
	}
	switch v := p.values[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (p *Payload) Int(key string) (int, bool) {
	if !p.Has(key) {
		return 0, false
	}
	switch v := p.values[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Bool accepts JSON booleans and the strings strconv.ParseBool understands.
func (p *Payload) Bool(key string) (bool, bool) {
	if !p.Has(key) {
		return false, false
	}
	switch v := p.values[key].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// List accepts a JSON array or a comma-separated string ("a, b, c").
// Blank items are dropped.
func (p *Payload) List(key string) ([]string, bool) {
	if !p.Has(key) {
		return nil, false
	}
	var raw []string
	switch v := p.values[key].(type) {
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil, false
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}
