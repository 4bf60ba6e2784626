package main

import (
	"flag"
	"log"
	"os"

	"github.com/golangdaddy/mode7racer/pkg/background"
	"github.com/golangdaddy/mode7racer/pkg/config"
	"github.com/golangdaddy/mode7racer/pkg/debugmenu"
	"github.com/golangdaddy/mode7racer/pkg/game"
	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	settings := config.Default()
	settings.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatal(err)
	}

	mode, err := race.ParseGameMode(settings.Debug.Mode)
	if err != nil {
		log.Fatal(err)
	}
	if settings.Debug.ChooseMode {
		if mode, err = debugmenu.ChooseMode(os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}

	// The machine is picked in the window unless a console menu or the flag
	// already decided it.
	var preselected *machine.Profile
	if settings.Debug.ChooseMachine {
		p, err := debugmenu.ChooseMachine(os.Stdin, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		preselected = &p
	} else if flagSet("machine") {
		p, ok := machine.ByName(settings.Debug.Machine)
		if !ok {
			log.Fatalf("Unknown machine %q", settings.Debug.Machine)
		}
		preselected = &p
	}

	league, err := race.Builtin().Select(mode, settings.Debug.RaceIndex)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Mode %s: %s with %d races", mode, league.Name(), league.Len())

	textures := background.NewSource(settings.UI.AssetDir, background.NewPainter(settings.Renderer.Scale))
	g := game.NewGame(settings, league, textures, preselected)

	ebiten.SetWindowSize(settings.Renderer.Width*settings.UI.WindowScale, settings.Renderer.Height*settings.UI.WindowScale)
	ebiten.SetWindowTitle("Mode 7 Racer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
