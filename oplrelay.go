// This file is part of oplrelay.
//
// oplrelay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// oplrelay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with oplrelay.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/hardware/opl/relay"
	"github.com/jetsetilly/oplrelay/hardware/preferences"
	"github.com/jetsetilly/oplrelay/logger"
	"github.com/jetsetilly/oplrelay/modalflag"
	"github.com/jetsetilly/oplrelay/platform/ppdev"
	"github.com/jetsetilly/oplrelay/platform/serialport"
	"github.com/jetsetilly/oplrelay/player"
	"github.com/jetsetilly/oplrelay/prefs"
	"github.com/jetsetilly/oplrelay/statsview"
	"github.com/jetsetilly/oplrelay/version"
	"github.com/jetsetilly/oplrelay/vgm"
)

func main() {
	// ctrl-c cancels the context. the relay is always destroyed so that the
	// chip is silenced
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:])
	stop()
	os.Exit(exitVal)
}

func launch(ctx context.Context, args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	showVersion := md.AddBool("version", false, "print version information")
	md.AddSubModes("PLAY", "RESET", "PROBE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	if *showVersion {
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
		return 0
	}

	switch md.Mode() {
	case "PLAY":
		err = play(ctx, md)
	case "RESET":
		err = reset(md)
	case "PROBE":
		err = probe(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

// flags common to all modes that create a relay
type relayFlags struct {
	backend   *string
	device    *string
	mode      *string
	log       *bool
	savePrefs *bool
}

func addRelayFlags(md *modalflag.Modes) relayFlags {
	return relayFlags{
		backend:   md.AddString("backend", "", "relay backend: SERIAL, LPT"),
		device:    md.AddString("device", "", "serial or parallel port device"),
		mode:      md.AddString("mode", "", "chip mode: OPL2, OPL3"),
		log:       md.AddBool("log", false, "echo debugging log to stdout"),
		savePrefs: md.AddBool("saveprefs", false, "save relay flags to the preferences file"),
	}
}

// create the relay from the preferences file. flags that have been set on the
// command line override the values in the preferences file
func (f relayFlags) sink(md *modalflag.Modes) (opl.ChipWriteSink, *preferences.RelayPreferences, error) {
	if *f.log {
		logger.SetEcho(logger.NewColorizer(os.Stdout))
	} else {
		logger.SetEcho(nil)
	}

	var cl []string
	md.Visit(func(flg string) {
		switch flg {
		case "backend":
			cl = append(cl, fmt.Sprintf("relay.backend::%s", *f.backend))
		case "device":
			cl = append(cl, fmt.Sprintf("relay.device::%s", *f.device))
		case "mode":
			cl = append(cl, fmt.Sprintf("relay.mode::%s", *f.mode))
		}
	})
	prefs.PushCommandLineStack(strings.Join(cl, "; "))
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewRelayPreferences()
	if err != nil {
		return nil, nil, err
	}

	if *f.savePrefs {
		if err := p.Save(); err != nil {
			return nil, nil, err
		}
	}

	sink, err := relay.FromPreferences(p, relay.Options{})
	if err != nil {
		return nil, nil, err
	}

	return sink, p, nil
}

func play(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	rf := addRelayFlags(md)
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	speed := md.AddInt("speed", 100, "playback speed as a percentage")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("VGM file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	f, err := vgm.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	sink, prf, err := rf.sink(md)
	if err != nil {
		return err
	}

	if f.Dual() && !prf.ChipMode().Dual() {
		logger.Logf(logger.Allow, "relay", "%s requires an OPL3 but the relay is in %s mode", md.GetArg(0), prf.ChipMode())
	}

	if *stats {
		statsview.Launch(ctx, os.Stdout)
	}

	sink.Init(vgm.SampleRate)
	defer sink.Destroy()

	err = player.Play(ctx, f, sink, player.WithSpeed(float64(*speed)/100))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("! playback interrupted")
			return nil
		}
		return err
	}

	return nil
}

func reset(md *modalflag.Modes) error {
	md.NewMode()

	rf := addRelayFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	sink, _, err := rf.sink(md)
	if err != nil {
		return err
	}

	// the relay resets the chip when it is destroyed
	sink.Init(vgm.SampleRate)
	sink.Destroy()

	return nil
}

func probe(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6))
	device := lipgloss.NewStyle().PaddingLeft(2)
	none := lipgloss.NewStyle().PaddingLeft(2).Faint(true)

	list := func(title string, names []string) {
		fmt.Println(heading.Render(title))
		if len(names) == 0 {
			fmt.Println(none.Render("none found"))
		}
		for _, n := range names {
			fmt.Println(device.Render(n))
		}
	}

	list("serial devices (SERIAL backend)", serialport.Candidates())

	ports, err := ppdev.Ports()
	if err != nil {
		return err
	}
	list("parallel ports (LPT backend)", ports)

	return nil
}
