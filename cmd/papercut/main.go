// Command papercut replays a saved paper-cut work and renders the edit and
// preview canvases to PNG files.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/cmd/papercut/internal/config"
)

func main() {
	var (
		cfgPath = flag.String("config", "papercut.yaml", "optional YAML configuration")
		input   = flag.String("work", "", "saved work JSON to replay")
		save    = flag.String("save", "", "write the resulting work JSON here")
		width   = flag.Int("width", 800, "edit canvas width")
		height  = flag.Int("height", 800, "edit canvas height")
		edit    = flag.String("edit", "edit.png", "edit canvas output")
		preview = flag.String("preview", "preview.png", "unfolded preview output")
		demo    = flag.Bool("demo", false, "cut a demo pattern before rendering")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		papercut.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadOptional(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var work *Work
	if *input != "" {
		work, err = LoadWork(*input)
		if err != nil {
			log.Fatalf("Failed to load work: %v", err)
		}
		workOpts, err := work.Options()
		if err != nil {
			log.Fatalf("Invalid work: %v", err)
		}
		opts = append(opts, workOpts...)
	}

	w, h := *width, *height
	if cfg.Canvas.Width > 0 && cfg.Canvas.Height > 0 {
		w, h = cfg.Canvas.Width, cfg.Canvas.Height
	}

	s := papercut.NewSession(opts...)
	if err := s.Initialize(w, h); err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	cfg.ApplyView(s)

	if work != nil {
		if err := s.SetCommands(work.Records(s.PaperColor())); err != nil {
			log.Fatalf("Failed to replay %s: %v", *input, err)
		}
	}
	if *demo {
		cutDemo(s)
	}

	if err := savePNG(*edit, s.RenderEditCanvas()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if err := savePNG(*preview, s.RenderPreviewCanvas()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	if *save != "" {
		out := Snapshot(s, work)
		if err := out.Save(*save); err != nil {
			log.Fatalf("Failed to save work: %v", err)
		}
	}

	st := s.Stats()
	log.Printf("Rendered %s and %s (%dx%d, %d commands, fold %d)\n",
		*edit, *preview, w, h, st.History, s.FoldMode())
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
