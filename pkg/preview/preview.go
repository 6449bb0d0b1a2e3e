// Package preview declares the document a preview host accepts.
//
// The host receives author code plus texture descriptors, resolves textures
// to live handles and evaluates the code against its own runtime. None of
// that happens here: this package only decodes and checks the document so
// tooling can reject a malformed one before it is sent.
package preview

import (
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/nodeport/pkg/errors"
)

// Document is the message sent to a preview host.
type Document struct {
	Code         string             `json:"code"`
	Textures     map[string]Texture `json:"textures,omitempty"`
	GeometryType string             `json:"geometryType"`
}

// Texture describes one texture the code refers to by id.
type Texture struct {
	Src  string `json:"src"`
	Name string `json:"name,omitempty"`
}

// Compressed reports whether the texture is in the compressed container
// format, which hosts load through a separate codec that must probe the
// rendering backend once before first use.
func (t Texture) Compressed() bool {
	return strings.EqualFold(path.Ext(t.Src), ".ktx2")
}

// App is a running preview. Dispose releases it.
type App interface {
	Dispose()
}

// Host evaluates a document and returns the resulting application.
type Host interface {
	Open(ctx context.Context, doc *Document) (App, error)
}

// TextureIDs returns texture ids in sorted order.
func (d *Document) TextureIDs() []string {
	return slices.Sorted(maps.Keys(d.Textures))
}

// Validate checks that the document carries code, a geometry type and a
// source for every texture. Sources without a URL scheme must be relative
// paths that stay below the document.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Code) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "preview document has no code")
	}
	if d.GeometryType == "" {
		return errors.New(errors.ErrCodeInvalidInput, "preview document has no geometry type")
	}
	for _, id := range d.TextureIDs() {
		if id == "" {
			return errors.New(errors.ErrCodeInvalidInput, "texture with empty id")
		}
		src := d.Textures[id].Src
		if src == "" {
			return errors.New(errors.ErrCodeInvalidInput, "texture %q has no src", id)
		}
		if u, err := url.Parse(src); err == nil && u.Scheme != "" {
			continue
		}
		if err := errors.ValidatePath(src); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "texture %q", id)
		}
	}
	return nil
}

// Read decodes and validates a document.
func Read(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode preview document")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
