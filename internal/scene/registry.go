package scene

import (
	"fmt"
	"sort"
)

// Registry maps scene names to constructors.
type Registry struct {
	scenes map[string]func() Scene
	titles map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		scenes: make(map[string]func() Scene),
		titles: make(map[string]string),
	}
}

func (r *Registry) Register(name, title string, ctor func() Scene) {
	r.scenes[name] = ctor
	r.titles[name] = title
}

func (r *Registry) Get(name string) (Scene, error) {
	ctor, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered scene names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Title returns the display title for a registered scene.
func (r *Registry) Title(name string) string {
	return r.titles[name]
}
