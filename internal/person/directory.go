package person

import (
	"fmt"

	"github.com/google/uuid"
)

// Directory assigns identifiers to people. It is not safe for concurrent use.
type Directory struct {
	byID map[string]*Person
	ids  map[*Person]string
}

func NewDirectory() *Directory {
	return &Directory{
		byID: make(map[string]*Person),
		ids:  make(map[*Person]string),
	}
}

// Add registers p and returns its identifier. Registering the same person
// twice returns the identifier it already has.
func (d *Directory) Add(p *Person) string {
	if id, ok := d.ids[p]; ok {
		return id
	}
	id := uuid.New().String()
	d.byID[id] = p
	d.ids[p] = id
	return id
}

func (d *Directory) Get(id string) (*Person, error) {
	p, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// ID returns the identifier of a registered person.
func (d *Directory) ID(p *Person) (string, bool) {
	id, ok := d.ids[p]
	return id, ok
}

func (d *Directory) Len() int {
	return len(d.byID)
}
