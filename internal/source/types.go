package source

type (
	// FileID identifies a fragment inside a FragmentSet.
	FileID uint32
	// FileFlags encodes metadata about a fragment.
	FileFlags uint8
)

const (
	// FileVirtual marks fragments added from memory (API calls, tests).
	FileVirtual FileFlags = 1 << iota
	// FileFromDisk marks fragments loaded from a batch file on disk.
	FileFromDisk
)

// File is a single piece of target-language text handed to the parser.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a fragment.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
