// Package modules loads named page fragments (html, css, js) from a file tree,
// fills `$key;` placeholders and lets components talk over a message bus.
package modules

import (
	"errors"
	"fmt"
	"html"
	"io/fs"
	"path"
	"slices"
	"strings"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

var ErrItemNotFound = errors.New("module item not found")

// ThemeItemLoaded is published after an item is read from the file tree.
const ThemeItemLoaded = "item_loaded"

type Kind string

const (
	KindHTML Kind = "html"
	KindCSS  Kind = "css"
	KindJS   Kind = "js"
)

type Item struct {
	Name    string
	Kind    Kind
	Content string
}

// Loader reads items stored as <root>/<name>/<name>.<kind>.
type Loader struct {
	fsys  fs.FS
	root  string
	cache *Cache
	bus   *Bus
}

// NewLoader wires a loader. cache and bus may be nil.
func NewLoader(fsys fs.FS, root string, cache *Cache, bus *Bus) *Loader {
	return &Loader{
		fsys:  fsys,
		root:  root,
		cache: cache,
		bus:   bus,
	}
}

func (l *Loader) itemPath(name string, kind Kind) string {
	return path.Join(l.root, name, name+"."+string(kind))
}

func (l *Loader) Load(name string, kind Kind) (Item, error) {
	key := string(kind) + "_" + name
	if l.cache != nil {
		if item, ok := l.cache.Get(key); ok {
			return item, nil
		}
	}

	p := l.itemPath(name, kind)
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, p)
		}
		return Item{}, fmt.Errorf("чтение %s: %w", p, err)
	}

	item := Item{Name: name, Kind: kind, Content: string(data)}
	if l.cache != nil {
		l.cache.Set(key, item)
	}
	if l.bus != nil {
		l.bus.Publish(Message{Theme: ThemeItemLoaded, Destination: name, Payload: item})
	}
	logger.Debug("Modules: элемент загружен", zap.String("path", p))
	return item, nil
}

// Render loads the html item and substitutes values into it.
func (l *Loader) Render(name string, values map[string]string) (string, error) {
	item, err := l.Load(name, KindHTML)
	if err != nil {
		return "", err
	}
	return Substitute(item.Content, values), nil
}

// RenderEach renders the html item once per value set and concatenates the results.
func (l *Loader) RenderEach(name string, values []map[string]string) (string, error) {
	item, err := l.Load(name, KindHTML)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, v := range values {
		b.WriteString(Substitute(item.Content, v))
	}
	return b.String(), nil
}

// Substitute replaces every `$key;` with the HTML-escaped value. Unknown
// placeholders are left untouched. Replacement is a single pass, so values
// that themselves look like placeholders are not expanded again.
func Substitute(tmpl string, values map[string]string) string {
	if len(values) == 0 {
		return tmpl
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "$"+k+";", html.EscapeString(values[k]))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
