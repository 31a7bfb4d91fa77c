// Command susquash runs Susquash standalone: a WAV file loops through the
// effect to the audio device while the editor runs in a window.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nelplugins/susquash/pkg/framework/debug"
	"github.com/nelplugins/susquash/pkg/host/statefile"
	"github.com/nelplugins/susquash/pkg/host/stream"
	"github.com/nelplugins/susquash/pkg/host/wavio"
	"github.com/nelplugins/susquash/pkg/plugin"
	"github.com/nelplugins/susquash/pkg/susquash"
	"github.com/nelplugins/susquash/pkg/vst3"
)

func init() {
	plugin.SetFactoryInfo(susquash.Factory)
	if err := plugin.Register(susquash.Plugin{}); err != nil {
		log.Fatal(err)
	}
}

func main() {
	var (
		inPath    = flag.String("in", "", "WAV file to loop")
		statePath = flag.String("state", "", "plugin state file, loaded at start and saved on exit")
		rate      = flag.Int("rate", 0, "playback sample rate (0 = rate of the input file)")
		blockSize = flag.Int("block", 512, "frames per processing block")
		logLevel  = flag.String("log-level", "info", "log level: debug|info|warn|error")
	)
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		log.Fatal("-in is required")
	}
	level, err := debug.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	debug.SetLevel(level)

	clip, err := wavio.Read(*inPath)
	if err != nil {
		log.Fatal(err)
	}
	clip = clip.Stereo()

	sampleRate := *rate
	if sampleRate <= 0 {
		sampleRate = clip.SampleRate
	} else if sampleRate != clip.SampleRate {
		debug.Warn("playing %d Hz material at %d Hz without resampling", clip.SampleRate, sampleRate)
	}

	info := susquash.Plugin{}.GetInfo()
	c, id, err := plugin.CreateInstance(info.UID())
	if err != nil {
		log.Fatal(err)
	}
	defer release(id)
	if err := c.Initialize(nil); err != nil {
		log.Fatal(err)
	}

	if *statePath != "" {
		err := statefile.Load(*statePath, c)
		switch {
		case errors.Is(err, os.ErrNotExist):
			debug.Info("no state at %s, starting from defaults", *statePath)
		case err != nil:
			log.Fatal(err)
		}
	}

	err = c.SetupProcessing(&vst3.ProcessSetup{
		ProcessMode:        vst3.ProcessModeRealtime,
		SymbolicSampleSize: vst3.SampleSize32,
		MaxSamplesPerBlock: int32(*blockSize),
		SampleRate:         float64(sampleRate),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := c.SetActive(true); err != nil {
		log.Fatal(err)
	}
	c.SetProcessing(true)

	loop := stream.NewLoop(clip.Channels, c, *blockSize)
	player, err := stream.NewPlayer(sampleRate, loop)
	if err != nil {
		log.Fatal(err)
	}
	player.Play()

	view, err := c.CreateView("editor")
	if err != nil {
		log.Fatal(err)
	}
	game, ok := view.(ebiten.Game)
	if !ok {
		log.Fatalf("%s: editor cannot run in a window", info.Name)
	}

	w, h := view.GetSize()
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(info.Name)
	if err := ebiten.RunGame(game); err != nil {
		debug.Error("editor: %v", err)
	}
	view.Removed()

	if err := player.Stop(); err != nil {
		debug.Warn("stop playback: %v", err)
	}
	c.SetProcessing(false)
	c.SetActive(false)

	if n := loop.Errors(); n > 0 {
		debug.Warn("%d blocks failed to process and were silenced", n)
	}
	if *statePath != "" {
		if err := statefile.Save(*statePath, c); err != nil {
			debug.Error("%v", err)
		}
	}
}

// release drops the component and reports any that outlived it
func release(id uintptr) {
	plugin.Release(id)
	if n := plugin.Instances(); n > 0 {
		debug.Warn("%d components still alive", n)
	}
}
