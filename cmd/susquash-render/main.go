// Command susquash-render renders a WAV file through Susquash.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nelplugins/susquash/pkg/framework/debug"
	"github.com/nelplugins/susquash/pkg/host/render"
	"github.com/nelplugins/susquash/pkg/host/statefile"
	"github.com/nelplugins/susquash/pkg/host/wavio"
	"github.com/nelplugins/susquash/pkg/plugin"
	"github.com/nelplugins/susquash/pkg/susquash"
)

func init() {
	plugin.SetFactoryInfo(susquash.Factory)
	if err := plugin.Register(susquash.Plugin{}); err != nil {
		log.Fatal(err)
	}
}

func main() {
	var (
		inPath    = flag.String("in", "", "input WAV file")
		outPath   = flag.String("out", "", "output WAV file")
		statePath = flag.String("state", "", "plugin state file to load")
		squashPct = flag.Float64("squash", 100, "squash amount in percent (0..100)")
		gainDB    = flag.Float64("gain", 0, "output gain in dB (-40..0)")
		blockSize = flag.Int("block", render.DefaultBlockSize, "frames per processing block")
		bits      = flag.Int("bits", 16, "output bit depth: 16|24")
		engine    = flag.String("engine", render.EngineComponent, "render engine: component|block64")
		logLevel  = flag.String("log-level", "info", "log level: debug|info|warn|error")
		listInfo  = flag.Bool("info", false, "print the factory and its classes, then exit")
	)
	flag.Parse()

	if *listInfo {
		if err := plugin.WriteClassList(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *inPath == "" || *outPath == "" {
		flag.Usage()
		log.Fatal("-in and -out are required")
	}
	level, err := debug.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	debug.SetLevel(level)

	precision, err := parsePrecision(*bits)
	if err != nil {
		log.Fatal(err)
	}

	clip, err := wavio.Read(*inPath)
	if err != nil {
		log.Fatal(err)
	}
	debug.Info("read %s: %d channels, %d frames at %d Hz", *inPath, len(clip.Channels), clip.Frames(), clip.SampleRate)

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
		if err := statefile.Load(*statePath, c); err != nil {
			log.Fatal(err)
		}
	}

	// Flags given explicitly override the loaded state
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "squash":
			setPlain(c, susquash.ParamSquash, *squashPct)
		case "gain":
			setPlain(c, susquash.ParamGain, *gainDB)
		}
	})
	for _, pid := range []uint32{susquash.ParamSquash, susquash.ParamGain} {
		text, _ := c.GetParamStringByValue(pid, c.GetParamNormalized(pid))
		debug.Info("%s = %s", paramName(c, pid), text)
	}

	out, report, err := render.Render(c, clip, render.Options{
		Engine:    strings.ToLower(strings.TrimSpace(*engine)),
		BlockSize: *blockSize,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := wavio.Write(*outPath, out, precision); err != nil {
		log.Fatal(err)
	}

	debug.LogStats("input", report.Input)
	debug.LogStats("output", report.Output)
	for _, line := range strings.Split(strings.TrimSpace(report.Profile), "\n") {
		debug.Debug("%s", line)
	}
	fmt.Printf("wrote %s (%d frames)\n", *outPath, out.Frames())
}

func setPlain(c *plugin.Component, id uint32, plain float64) {
	c.SetParamNormalized(id, c.PlainParamToNormalized(id, plain))
}

func paramName(c *plugin.Component, id uint32) string {
	info, err := c.GetParameterInfo(int32(id))
	if err != nil {
		return fmt.Sprint(id)
	}
	return info.Title
}

func parsePrecision(bits int) (int, error) {
	switch bits {
	case 16:
		return wavio.Precision16, nil
	case 24:
		return wavio.Precision24, nil
	default:
		return 0, fmt.Errorf("invalid -bits %d (expected 16|24)", bits)
	}
}

// release drops the component and reports any that outlived it
func release(id uintptr) {
	plugin.Release(id)
	if n := plugin.Instances(); n > 0 {
		debug.Warn("%d components still alive", n)
	}
}
