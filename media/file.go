package media

import (
	"path"

	"github.com/fhs/gompd/v2/mpd"

	"pms/list"
)

// File is an entry in the music database browser.
type File struct {
	Path string
	Dir  bool
	Song *Song
}

// FileFromAttrs builds a File from one entry of an lsinfo response. It
// returns nil for entries that are neither directories nor songs.
func FileFromAttrs(attrs mpd.Attrs) *File {
	if dir, ok := attrs["directory"]; ok {
		return &File{Path: dir, Dir: true}
	}
	if file, ok := attrs["file"]; ok {
		return &File{Path: file, Song: SongFromAttrs(attrs)}
	}
	return nil
}

// Name returns the last element of the path.
func (f *File) Name() string {
	return path.Base(f.Path)
}

func (f *File) Match(pattern string, flags list.MatchFlags) bool {
	return matchFields(pattern, flags, f.Name())
}

func (f *File) String() string {
	if f.Dir {
		return f.Name() + "/"
	}
	return f.Name()
}
