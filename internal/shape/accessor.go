package shape

import "strconv"

type AccessorKind uint8

const (
	ByIndex AccessorKind = iota
	ByName
)

// Accessor says how a field is reached from its parent: `.0` or `.name`.
type Accessor struct {
	Kind  AccessorKind
	Index int
	Name  string
}

func Index(i int) Accessor {
	return Accessor{Kind: ByIndex, Index: i}
}

func Named(name string) Accessor {
	return Accessor{Kind: ByName, Name: name}
}

func (a Accessor) String() string {
	if a.Kind == ByName {
		return a.Name
	}
	return strconv.Itoa(a.Index)
}
