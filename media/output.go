package media

import (
	"strconv"

	"github.com/fhs/gompd/v2/mpd"

	"pms/list"
)

// Output is an MPD audio output.
type Output struct {
	ID      int
	Name    string
	Enabled bool
}

func OutputFromAttrs(attrs mpd.Attrs) *Output {
	o := &Output{
		ID:      -1,
		Name:    attrs["outputname"],
		Enabled: attrs["outputenabled"] == "1",
	}
	if id, err := strconv.Atoi(attrs["outputid"]); err == nil {
		o.ID = id
	}
	return o
}

func (o *Output) Match(pattern string, flags list.MatchFlags) bool {
	return matchFields(pattern, flags, o.Name)
}

func (o *Output) String() string {
	if o.Enabled {
		return "[x] " + o.Name
	}
	return "[ ] " + o.Name
}
