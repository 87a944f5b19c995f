// Command dotlottie-inspect opens a .lottie container and prints its
// manifest, themes, and state machines for local inspection.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ncruces/zenity"
	"sigs.k8s.io/yaml"

	"github.com/LottieFiles/dotlottie-go/pkg/container"
	"github.com/LottieFiles/dotlottie-go/pkg/logging"
)

var (
	format  = flag.String("format", "json", "Output format: json or yaml")
	pick    = flag.Bool("pick", false, "Open a native file picker instead of taking a path argument")
	verbose = flag.Bool("verbose", false, "Enable debug logging")
)

type inspection struct {
	Manifest      *container.Manifest `json:"manifest"`
	AnimationIDs  []string            `json:"animationIds"`
	ThemeIDs      []string            `json:"themeIds"`
	StateMachines []string            `json:"stateMachineIds"`
}

func main() {
	flag.Parse()

	path := flag.Arg(0)
	if *pick {
		selected, err := zenity.SelectFile(
			zenity.Title("Select a .lottie file"),
			zenity.FileFilter{Name: "dotLottie", Patterns: []string{"*.lottie"}},
		)
		if err != nil {
			if err == zenity.ErrCanceled {
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, "file picker error:", err)
			os.Exit(1)
		}
		path = selected
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: dotlottie-inspect [--format json|yaml] [--pick] <file.lottie>")
		os.Exit(2)
	}

	level := logging.InfoLevel
	if *verbose {
		level = logging.DebugLevel
	}
	logger := logging.NewLogger(logging.Config{
		Level:     level,
		Format:    logging.TextFormat,
		AddCaller: false,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).Fatal("failed to read container file")
	}

	c, err := container.Read(data, logging.ContainerLogger(logger, path))
	if err != nil {
		logger.WithError(err).Fatal("failed to parse dotlottie container")
	}

	report := inspection{
		Manifest:      c.Manifest,
		AnimationIDs:  c.AnimationIDs(),
		ThemeIDs:      c.ThemeIDs(),
		StateMachines: c.StateMachineIDs(),
	}

	var out []byte
	switch *format {
	case "yaml":
		b, err := json.Marshal(report)
		if err != nil {
			logger.WithError(err).Fatal("failed to marshal report")
		}
		out, err = yaml.JSONToYAML(b)
		if err != nil {
			logger.WithError(err).Fatal("failed to convert report to yaml")
		}
	default:
		out, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.WithError(err).Fatal("failed to marshal report")
		}
	}

	fmt.Println(string(out))
}
