package source

// PlainFile is a text file on disk.
type PlainFile struct {
	path string
}

// NewPlainFile returns the Source for a single text file.
func NewPlainFile(path string) PlainFile {
	return PlainFile{path: path}
}

func (p PlainFile) Path() string { return p.path }

// Documents always yields exactly one document; a read failure is carried in its Err.
func (p PlainFile) Documents() ([]Document, error) {
	text, err := ReadFile(p.path)
	if err != nil {
		return []Document{{Name: p.path, Err: err}}, nil
	}
	return []Document{{Name: p.path, Text: text}}, nil
}
