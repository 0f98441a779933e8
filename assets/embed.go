package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.png
var assetsFS embed.FS

// Dir is the on-disk directory whose files shadow the embedded ones.
var Dir = "assets"

// FS returns the asset tree: files under Dir on disk win over embedded ones.
func FS() fs.FS {
	return overlay{disk: os.DirFS(Dir), embedded: assetsFS}
}

func Embedded() fs.FS {
	return assetsFS
}

type overlay struct {
	disk     fs.FS
	embedded fs.FS
}

func (o overlay) Open(name string) (fs.File, error) {
	clean := cleanAssetPath(name)
	if !fs.ValidPath(clean) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if f, err := o.disk.Open(clean); err == nil {
		return f, nil
	}
	return o.embedded.Open(clean)
}

// cleanAssetPath accepts "/pic1.png", "assets/pic1.png" and "pic1.png".
func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "/")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
