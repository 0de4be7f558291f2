package model

// SourceFile is one annotation document pulled from a repository revision
// or a directory scan.
type SourceFile struct {
	Path string
	Data []byte
}
