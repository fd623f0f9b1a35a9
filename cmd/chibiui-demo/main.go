// Command chibiui-demo declares the canonical person form and polls its
// Submit button, printing the form values on every press.
package main

import (
	"fmt"
	"os"

	"github.com/covao/chibiui"
	"github.com/covao/chibiui/internal/config"
	"github.com/covao/chibiui/internal/logging"
	"github.com/covao/chibiui/internal/poll"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	traceStartup(cfg)

	if err := run(cfg); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	opts := []chibiui.Option{chibiui.WithSize(cfg.UI.Width, cfg.UI.Height)}
	if cfg.UI.NoGUI {
		opts = append(opts, chibiui.WithNoGUI())
	}
	ui, err := chibiui.New(cfg.UI.Title, opts...)
	if err != nil {
		return err
	}
	defer ui.Close()

	ui.AddTextbox("Title", "Personal Data")
	ui.AddTextbox("Person/Name", "John Doe")
	ui.AddSelector("Person/Gender", []string{"Male", "Female", "Other"}, "Male")
	ui.AddSlider("Person/Age", 0, 100, 1, 30)
	ui.AddCheckbox("Person/Subscribe", true)
	ui.AddFileBrowse("Person/Select File")
	ui.AddButton("Person/Submit")
	ui.AddTextbox("Option/Country", "Japan")
	ui.NavigateTo("/Person")

	watcher := poll.NewWatcher(ui.Session(), []string{"/Person/Submit"}, cfg.UI.PollInterval)
	defer watcher.Stop()

	for evt := range watcher.Events() {
		if evt.Err != nil {
			logging.Error(evt.Err)
			continue
		}
		printPerson(ui)
	}
	return nil
}

func printPerson(ui *chibiui.UI) {
	title, _ := ui.GetString("/Title")
	name, _ := ui.GetString("/Person/Name")
	gender, _ := ui.GetString("/Person/Gender")
	age, _ := ui.GetNumber("/Person/Age")
	subscribe, _ := ui.GetBool("/Person/Subscribe")
	file, _ := ui.GetString("/Person/Select File")
	country, _ := ui.GetString("/Option/Country")

	fmt.Println("Submit button pressed!")
	fmt.Println("Title:", title)
	fmt.Println("-- Personal Info --")
	fmt.Println("Name:", name)
	fmt.Println("Gender:", gender)
	fmt.Println("Age:", age)
	fmt.Println("Subscribe:", subscribe)
	fmt.Println("Select File:", file)
	fmt.Println("Country:", country)
	fmt.Println("---")
}

func traceStartup(cfg config.Config) {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": flags,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	payload["tty"] = collectTTYDetails()
	logging.Trace("app.start", payload)
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and
// dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
