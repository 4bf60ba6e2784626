package track

import (
	"bufio"
	"embed"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/pkg/errors"
)

//go:embed tracks/*.track
var builtinFS embed.FS

// Parse reads a track description. Each non-empty line is a directive:
//
//	name <words...>
//	rails on|off
//	start <x> <y> <angle>
//	surface|ramp|dash|recovery|checkpoint|finish <x> <y> <width> <height>
//
// Lines starting with '#' are comments. Checkpoints keep their file order.
func Parse(r io.Reader) (*TrackMap, error) {
	var (
		g         Geometry
		hasFinish bool
		lineNo    int
	)
	g.GuardRails = true

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		directive, args := fields[0], fields[1:]

		switch directive {
		case "name":
			g.Name = strings.Join(args, " ")

		case "rails":
			if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
				return nil, errors.Errorf("line %d: rails expects on or off", lineNo)
			}
			g.GuardRails = args[0] == "on"

		case "start":
			v, err := parseFloats(args, 3)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: start", lineNo)
			}
			g.Start = Pose{X: v[0], Y: v[1], Angle: v[2]}

		case "surface", "ramp", "dash", "recovery", "checkpoint", "finish":
			v, err := parseFloats(args, 4)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: %s", lineNo, directive)
			}
			rect := collision.NewRect(v[0], v[1], v[2], v[3])
			switch directive {
			case "surface":
				g.Surface = append(g.Surface, rect)
			case "ramp":
				g.Ramps = append(g.Ramps, rect)
			case "dash":
				g.DashPlates = append(g.DashPlates, rect)
			case "recovery":
				g.Recovery = append(g.Recovery, rect)
			case "checkpoint":
				g.Checkpoints = append(g.Checkpoints, rect)
			case "finish":
				if hasFinish {
					return nil, errors.Errorf("line %d: duplicate finish line", lineNo)
				}
				g.FinishLine = rect
				hasFinish = true
			}

		default:
			return nil, errors.Errorf("line %d: unknown directive %q", lineNo, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read track")
	}
	if !hasFinish {
		return nil, errors.Errorf("track %q has no finish line", g.Name)
	}

	tm, err := New(g)
	if err != nil {
		return nil, err
	}
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	return tm, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, errors.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", s)
		}
		out[i] = f
	}
	return out, nil
}

// LoadFile loads a track from a file on disk
func LoadFile(filename string) (*TrackMap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open track file")
	}
	defer file.Close()

	tm, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "track file %s", filename)
	}
	return tm, nil
}

// Builtin loads one of the embedded tracks by file stem, e.g. "event_horizon".
// Every call returns a fresh map with its own checkpoint state.
func Builtin(id string) (*TrackMap, error) {
	file, err := builtinFS.Open(path.Join("tracks", id+".track"))
	if err != nil {
		return nil, errors.Wrapf(err, "unknown track %q", id)
	}
	defer file.Close()

	tm, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "builtin track %s", id)
	}
	return tm, nil
}

// BuiltinIDs lists the embedded track ids in lexical order.
func BuiltinIDs() []string {
	entries, err := builtinFS.ReadDir("tracks")
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".track") {
			ids = append(ids, strings.TrimSuffix(name, ".track"))
		}
	}
	sort.Strings(ids)
	return ids
}
