package render

import (
	"errors"
	"fmt"
	"sync"
)

var ErrContainerNotFound = errors.New("container not found")

// Named containers of the page.
const (
	ContainerTasks  = "page_tasks_content"
	ContainerToday  = "page_today_content"
	ContainerFooter = "footer_content"
	ContainerPoints = "points-display"
)

type container struct {
	html  string
	stamp uint64
}

// Document holds the current content of every page container. Content is
// replaced only by a render carrying a newer stamp than the one shown, so the
// latest response to arrive always wins.
type Document struct {
	mu         sync.RWMutex
	containers map[string]*container
}

func NewDocument(names ...string) *Document {
	d := &Document{containers: make(map[string]*container, len(names))}
	for _, n := range names {
		d.containers[n] = &container{}
	}
	return d
}

// NewPageDocument creates a document with all page containers.
func NewPageDocument() *Document {
	return NewDocument(ContainerTasks, ContainerToday, ContainerFooter, ContainerPoints)
}

// Replace swaps the container content when stamp is newer and reports whether it did.
func (d *Document) Replace(name, html string, stamp uint64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.containers[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrContainerNotFound, name)
	}
	if stamp <= c.stamp {
		return false, nil
	}
	c.html = html
	c.stamp = stamp
	return true, nil
}

func (d *Document) Content(name string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.containers[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrContainerNotFound, name)
	}
	return c.html, nil
}

func (d *Document) Stamp(name string) uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if c, ok := d.containers[name]; ok {
		return c.stamp
	}
	return 0
}
