package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/logrusorgru/aurora"
	"github.com/tsignage/departureboard"
	"github.com/tsignage/departureboard/display"
)

const (
	progName = "departureboard"
	version  = "1.0"

	dotEnv      = ".env"
	envFile     = "DEPARTUREBOARD_FILE"
	envEncoding = "DEPARTUREBOARD_ENCODING"
	envDisplay  = "DEPARTUREBOARD_DISPLAY"

	defaultEncoding = "utf-8"

	errorTitle      = "エラー"
	missingTemplate = "時刻表ファイル「%s」が見つかりません。\nアプリを終了します。"
)

const (
	displayTview displayType = iota
	displayDump
)

type displayType int

type config struct {
	display  displayType
	file     string
	encoding string
	version  bool
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getConfig() *config {
	// a missing .env is normal; a present one changes the defaults, so say so
	switch err := godotenv.Load(dotEnv); {
	case err == nil:
		log.Printf("flag defaults taken from %s", dotEnv)
	case !os.IsNotExist(err):
		log.Printf("ignoring %s - %s", dotEnv, err)
	}

	file := flag.String("f", getEnv(envFile, departureboard.DefaultFileName), "timetable file")
	enc := flag.String("e", getEnv(envEncoding, defaultEncoding), "timetable text encoding, e.g. utf-8 or shift_jis")
	dtype := flag.String("d", getEnv(envDisplay, ""), "display type: tview/dump (default tview)")
	showVersion := flag.Bool("v", false, "print the version and exit")
	flag.Parse()

	config := &config{
		file:     *file,
		encoding: *enc,
		version:  *showVersion,
	}
	switch *dtype {
	case "", "tview":
		config.display = displayTview
	case "dump":
		config.display = displayDump
	default:
		log.Fatalf("unknown display type '%s'", *dtype)
	}
	return config
}

// reportMissing tells the user that the timetable file isn't there.
func reportMissing(config *config, msg string) {
	switch config.display {
	case displayTview:
		if err := display.ShowError(errorTitle, msg); err != nil {
			log.Printf("failed to show error dialog - %s", err)
			fmt.Fprintln(os.Stderr, aurora.Red(msg))
		}
	case displayDump:
		fmt.Fprintln(os.Stderr, aurora.Red(msg))
	}
}

func newDisplay(config *config, timetable departureboard.Timetable) display.Display {
	if config.display == displayDump {
		return display.NewDumpDisplay(timetable, os.Stdout)
	}
	return display.NewTVDisplay(timetable)
}

// startup holds the steps run takes, so they can be swapped out in tests.
type startup struct {
	exists  func(path string) bool
	load    func(path string, opts ...departureboard.LoaderOption) (departureboard.Timetable, error)
	notify  func(msg string)
	display func(departureboard.Timetable) display.Display
	stop    <-chan os.Signal
}

// run loads the timetable and runs the display until it exits or a signal
// arrives on s.stop. It returns the process exit code. A missing timetable
// is reported through s.notify exactly once, without attempting a load.
func run(config *config, s startup) int {
	enc, err := departureboard.EncodingByName(config.encoding)
	if err != nil {
		log.Println(err)
		return 1
	}

	missing := fmt.Sprintf(missingTemplate, config.file)
	if !s.exists(config.file) {
		s.notify(missing)
		return 1
	}

	timetable, err := s.load(config.file, departureboard.WithEncoding(enc))
	if errors.Is(err, departureboard.ErrFileMissing) {
		// removed between the check and the read
		s.notify(missing)
		return 1
	}
	if err != nil {
		log.Printf("failed to load timetable - %s", err)
		return 1
	}

	disp := s.display(timetable)
	go disp.Run()

	select {
	case <-s.stop: // Stop channel says stop
		disp.Stop()
		err = <-disp.ErrChan()
	case err = <-disp.ErrChan(): // display exited on its own (Esc)
	}
	if err != nil {
		log.Printf("display error - %s", err)
		return 1
	}
	return 0
}

func main() {
	config := getConfig()
	if config.version {
		fmt.Printf("%s %s\n", progName, version)
		return
	}

	controlC := make(chan os.Signal, 1)
	signal.Notify(controlC, os.Interrupt, syscall.SIGTERM)

	os.Exit(run(config, startup{
		exists:  departureboard.Exists,
		load:    departureboard.Load,
		notify:  func(msg string) { reportMissing(config, msg) },
		display: func(tt departureboard.Timetable) display.Display { return newDisplay(config, tt) },
		stop:    controlC,
	}))
}
