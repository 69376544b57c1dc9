package media

import (
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"pms/list"
)

// Song is an entry in the play queue or the music database.
type Song struct {
	ID       int
	Position int
	File     string
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
}

// SongFromAttrs builds a Song from an MPD song response.
func SongFromAttrs(attrs mpd.Attrs) *Song {
	s := &Song{
		ID:       -1,
		Position: -1,
		File:     attrs["file"],
		Artist:   attrs["Artist"],
		Title:    attrs["Title"],
		Album:    attrs["Album"],
	}
	if id, err := strconv.Atoi(attrs["Id"]); err == nil {
		s.ID = id
	}
	if pos, err := strconv.Atoi(attrs["Pos"]); err == nil {
		s.Position = pos
	}
	if secs, err := strconv.ParseFloat(attrs["duration"], 64); err == nil {
		s.Duration = time.Duration(secs * float64(time.Second))
	} else if secs, err := strconv.Atoi(attrs["Time"]); err == nil {
		s.Duration = time.Duration(secs) * time.Second
	}
	return s
}

func (s *Song) Match(pattern string, flags list.MatchFlags) bool {
	return matchFields(pattern, flags, s.Artist, s.Title, s.Album, s.File)
}

// String returns "Artist - Title", falling back to the file name.
func (s *Song) String() string {
	switch {
	case s.Title == "":
		return path.Base(s.File)
	case s.Artist == "":
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// Length formats the duration as m:ss.
func (s *Song) Length() string {
	secs := int(s.Duration.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
