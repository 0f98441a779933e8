package main

import (
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/milk9111/dragstrip/config"
)

// maxPortAttempts bounds the search for a free port when strict_port is off.
const maxPortAttempts = 10

func listen(s config.ServerSpec) (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr())
	if err == nil {
		return ln, nil
	}
	if s.StrictPort || s.Port == 0 {
		return nil, fmt.Errorf("devserver: listen %s: %w", s.Addr(), err)
	}
	for p := s.Port + 1; p <= s.Port+maxPortAttempts && p <= 65535; p++ {
		ln, err = net.Listen("tcp", net.JoinHostPort(s.Host, strconv.Itoa(p)))
		if err == nil {
			return ln, nil
		}
	}
	return nil, fmt.Errorf("devserver: no free port in %d-%d: %w", s.Port, s.Port+maxPortAttempts, err)
}

// handler serves the build output, falling back to the image assets.
func handler(out string, assetFS fs.FS) http.Handler {
	build := http.FileServer(http.Dir(out))
	images := http.FileServerFS(assetFS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" || existsIn(os.DirFS(out), name) {
			build.ServeHTTP(w, r)
			return
		}
		images.ServeHTTP(w, r)
	})
}

func existsIn(fsys fs.FS, name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
