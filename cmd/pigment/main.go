package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/pigment"
	"github.com/esimov/pigment/codec"
	"github.com/esimov/pigment/preview"
	"github.com/esimov/pigment/utils"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬┌─┐┌┬┐┌─┐┌┐┌┌┬┐
├─┘││ ┬│││├┤ │││ │
┴  ┴└─┘┴ ┴└─┘┘└┘ ┴

Layered raster paint engine.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source document, directory or URL")
	destination = flag.String("out", pipeName, "Destination document or directory")
	format      = flag.String("format", string(codec.PNG), "Output format used for directories and stdout (pigment, png, jpg, bmp, gif, tif)")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	showPreview = flag.Bool("preview", false, "Open the document in the interactive editor")
	newWidth    = flag.Int("width", 0, "Width of a new canvas")
	newHeight   = flag.Int("height", 0, "Height of a new canvas")
	confPath    = flag.String("conf", "", "Configuration file")
	initConf    = flag.Bool("init", false, "Write the default configuration file and exit")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf(utils.DecorateText("Unable to create the logger: %v\n", utils.ErrorMessage), err)
	}
	defer logger.Sync()

	if *initConf {
		path, err := pigment.InitConfig(pigment.ConfigDir())
		if err != nil {
			log.Fatalf(utils.DecorateText("Unable to write the configuration: %v\n", utils.ErrorMessage), err)
		}
		fmt.Fprintf(os.Stderr, "Configuration file: %s\n", utils.DecorateText(path, utils.SuccessMessage))
		return
	}

	conf, err := loadConfig(*confPath, logger)
	if err != nil {
		log.Fatalf(utils.DecorateText("Unable to load the configuration: %v\n", utils.ErrorMessage), err)
	}
	if *newWidth > 0 {
		conf.Width = *newWidth
	}
	if *newHeight > 0 {
		conf.Height = *newHeight
	}

	if *showPreview {
		runPreview(conf, logger)
		return
	}

	if *source == pipeName && term.IsTerminal(int(os.Stdin.Fd())) {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a source and a destination, or use the -preview flag!", utils.ErrorMessage))
	}

	fmt.Fprintf(os.Stderr, HelpBanner, Version)

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIGMENT", utils.StatusMessage),
		utils.DecorateText("is converting the document...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, true)
	spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIGMENT", utils.StatusMessage),
		utils.DecorateText("is converting the document... ✔", utils.DefaultMessage))

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	ops := &pigment.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Format:   codec.Format(*format),
		Workers:  *workers,
		Logger:   logger,
		Spinner:  spinner,
	}
	if err := ops.Execute(); err != nil {
		log.Fatalf(utils.DecorateText("\nError converting the document: %v\n", utils.ErrorMessage), err)
	}
}

// newLogger builds a development logger in verbose mode
// and a production one otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig reads the configuration file. Without an explicit path the
// default location is used, falling back to the defaults when it is missing.
func loadConfig(path string, logger *zap.Logger) (*pigment.Config, error) {
	if path != "" {
		return pigment.LoadConfig(path)
	}
	path = pigment.ConfigPath()
	if _, err := os.Stat(path); err != nil {
		logger.Debug("using the default configuration", zap.String("path", path))
		return pigment.DefaultConfig(), nil
	}
	return pigment.LoadConfig(path)
}

// runPreview opens the interactive editor over the source document,
// or over a blank canvas when no source is given.
func runPreview(conf *pigment.Config, logger *zap.Logger) {
	var (
		editor *pigment.Editor
		err    error
	)
	if *source != pipeName {
		editor, err = pigment.Open(*source, conf, pigment.WithLogger(logger))
	} else {
		editor, err = pigment.NewEditor(conf, pigment.WithLogger(logger))
	}
	if err != nil {
		log.Fatalf(utils.DecorateText("Unable to open the editor: %v\n", utils.ErrorMessage), err)
	}

	opts := []preview.Option{preview.WithLogger(logger)}
	if *destination != pipeName {
		opts = append(opts, preview.WithSavePath(*destination))
	}
	gui := preview.NewGUI(editor, opts...)

	go func() {
		if err := gui.Run(); err != nil {
			logger.Error("preview window failed", zap.Error(err))
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}
