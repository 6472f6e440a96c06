package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed *.up.sql
var files embed.FS

type Migration struct {
	Name string
	SQL  string
}

// All returns the up migrations ordered by file name.
func All() ([]Migration, error) {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	result := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		result = append(result, Migration{Name: name, SQL: string(b)})
	}

	return result, nil
}
