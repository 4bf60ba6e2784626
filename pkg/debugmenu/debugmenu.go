// Package debugmenu prints console menus for picking a machine and a game
// mode before the window opens, and race result tables afterwards.
package debugmenu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/golangdaddy/mode7racer/pkg/session"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

// GameModes lists the modes in menu order.
var GameModes = []race.GameMode{race.LeagueMode, race.SingleRaceMode}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// PrintMachines lists the roster with the stats that tell machines apart.
func PrintMachines(w io.Writer, roster []machine.Profile) {
	t := newTable(w)
	t.SetTitle("Machines")
	t.AppendHeader(table.Row{"#", "Name", "Max speed", "Acceleration", "Rotation", "Energy"})
	for i, p := range roster {
		t.AppendRow(table.Row{
			i + 1,
			p.Name,
			fmt.Sprintf("%.1f", p.MaxSpeed),
			fmt.Sprintf("%.1f", p.Acceleration),
			fmt.Sprintf("%.2f", p.RotationSpeed),
			fmt.Sprintf("%.0f", p.MaxEnergy),
		})
	}
	t.Render()
}

// PrintModes lists the game modes.
func PrintModes(w io.Writer) {
	t := newTable(w)
	t.SetTitle("Game modes")
	t.AppendHeader(table.Row{"#", "Mode"})
	for i, m := range GameModes {
		t.AppendRow(table.Row{i + 1, m})
	}
	t.Render()
}

// Choose prompts until the reader yields a number between 1 and n and returns
// its zero-based index.
func Choose(r io.Reader, w io.Writer, prompt string, n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("nothing to choose from")
	}
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "%s [1-%d]: ", prompt, n)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, errors.Wrap(err, "read choice")
			}
			return 0, errors.New("no choice made")
		}
		v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || v < 1 || v > n {
			fmt.Fprintf(w, "Please enter a number between 1 and %d.\n", n)
			continue
		}
		return v - 1, nil
	}
}

// ChooseMachine prints the roster and reads a pick.
func ChooseMachine(r io.Reader, w io.Writer) (machine.Profile, error) {
	roster := machine.Roster()
	PrintMachines(w, roster)
	i, err := Choose(r, w, "Machine", len(roster))
	if err != nil {
		return machine.Profile{}, err
	}
	return roster[i], nil
}

// ChooseMode prints the game modes and reads a pick.
func ChooseMode(r io.Reader, w io.Writer) (race.GameMode, error) {
	PrintModes(w)
	i, err := Choose(r, w, "Mode", len(GameModes))
	if err != nil {
		return 0, err
	}
	return GameModes[i], nil
}

// PrintResults prints the lap times of a finished race, marking the best lap.
func PrintResults(w io.Writer, res session.Result) {
	fmt.Fprintf(w, "%s - %s (%s)\n", res.League, res.Race, res.Machine)
	t := newTable(w)
	t.AppendHeader(table.Row{"Lap", "Time", "Total", ""})

	best, _ := res.Best()
	for _, s := range res.Splits {
		mark := ""
		if s.Lap == best.Lap {
			mark = "best"
		}
		t.AppendRow(table.Row{s.Lap, session.FormatClock(s.Time), session.FormatClock(s.Total), mark})
	}
	t.AppendFooter(table.Row{"", "Total", session.FormatClock(res.Total), ""})
	t.Render()
}
