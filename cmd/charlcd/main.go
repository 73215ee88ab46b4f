package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/charlcd/internal/clock"
	"github.com/callebjorkell/charlcd/internal/driver"
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/callebjorkell/charlcd/internal/pins"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("charlcd", "HD44780 character display driver")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Configuration file, YAML or .hcl.").Short('c').Default("charlcd.yaml").String()
	start      = app.Command("start", "Run the display until interrupted.")
	show       = app.Command("print", "Initialize the display, show the given lines and exit.")
	showLines  = show.Arg("line", "Text for each row.").Required().Strings()
	walk       = app.Command("walk", "Drive every assigned pin high and low in turn to check the wiring.")
	version    = app.Command("version", "Show current version.")
)

var levelColors = map[log.Level]int{
	log.TraceLevel: 90, // dark grey
	log.DebugLevel: 90,
	log.WarnLevel:  33, // yellow
	log.ErrorLevel: 91, // bright red
	log.FatalLevel: 91,
	log.PanicLevel: 91,
}

// colorFormatter prints bare coloured messages. With timestamps set, each line
// is prefixed with the time down to microseconds, which is the scale of the
// bus delays being debugged.
type colorFormatter struct {
	timestamps bool
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	color, ok := levelColors[entry.Level]
	if !ok {
		color = 39 // default
	}
	msg := entry.Message
	if f.timestamps {
		msg = entry.Time.Format("15:04:05.000000 ") + msg
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", color, msg)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{timestamps: *debug})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	if cmd == version.FullCommand() {
		showVersion()
		return
	}

	conf, err := readConfig(*configFile)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}

	switch cmd {
	case start.FullCommand():
		err = startDisplay(conf)
	case show.FullCommand():
		err = printLines(conf, *showLines)
	case walk.FullCommand():
		err = walkPins(conf)
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}

func openDisplay(conf *Config) (*lcd.LCD, lcd.Pins, error) {
	cfg, err := conf.LCD()
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	p, err := pins.Open(conf.Pins.Driver, conf.Pins.Chip)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	display, err := lcd.New(p, conf.PinAssignment(), cfg, clock.Real{})
	if err != nil {
		closePins(p)
		return nil, nil, errors.Trace(err)
	}
	return display, p, nil
}

func closePins(p lcd.Pins) {
	if c, ok := p.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn("Unable to release pins: ", err)
		}
	}
}

func newTask(conf *Config, display *lcd.LCD, content driver.Content) (*driver.Task, error) {
	period, err := conf.PeriodDuration()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return driver.NewTask(display, clock.Real{}, content, driver.Options{
		Period:   period,
		Codepage: conf.Codepage,
	})
}

func startDisplay(conf *Config) error {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	display, p, err := openDisplay(conf)
	if err != nil {
		return err
	}
	defer closePins(p)

	content, err := driver.NewTemplateContent(conf.Rows)
	if err != nil {
		return errors.Trace(err)
	}
	task, err := newTask(conf, display, content)
	if err != nil {
		return errors.Trace(err)
	}

	if conf.Reinit != "" {
		c, err := driver.ScheduleReinit(conf.Reinit, task)
		if err != nil {
			return errors.Trace(err)
		}
		defer c.Stop()
	}

	task.Start()
	log.Infof("Showing %d rows on %v", len(conf.Rows), display)

	<-signalChan
	task.Stop()

	display.Clear()
	display.SetLine(0, "  Sleeping...")
	display.DisplayLine(0)

	log.Info("Done...")
	return nil
}

func printLines(conf *Config, lines []string) error {
	if len(lines) > lcd.RowCount {
		return errors.NotValidf("%d lines (max %d)", len(lines), lcd.RowCount)
	}
	display, p, err := openDisplay(conf)
	if err != nil {
		return err
	}
	defer closePins(p)

	task, err := newTask(conf, display, driver.Static(lines))
	if err != nil {
		return errors.Trace(err)
	}
	task.RunOnce()
	return nil
}

func walkPins(conf *Config) error {
	period, err := conf.PeriodDuration()
	if err != nil {
		return errors.Trace(err)
	}
	p, err := pins.Open(conf.Pins.Driver, conf.Pins.Chip)
	if err != nil {
		return errors.Trace(err)
	}
	defer closePins(p)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		<-signalChan
		close(stop)
	}()

	return driver.Walk(p, conf.PinAssignment().Pins(), clock.Real{}, period, stop)
}
