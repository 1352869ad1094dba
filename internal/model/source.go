package model

// Path represents a file system path.
type Path string

// SourceKind tells where the command to obfuscate came from.
type SourceKind string

const (
	// SourceInline is a command given on the command line.
	SourceInline SourceKind = "inline"
	// SourceFile is a script read from disk.
	SourceFile SourceKind = "file"
	// SourceStdin is a script read from standard input.
	SourceStdin SourceKind = "stdin"
)

// Source is the input of a generation.
type Source struct {
	Kind SourceKind
	// Path is set for SourceFile.
	Path Path
	Text string
}
