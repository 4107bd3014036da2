package main

import (
	"fmt"
	"os"

	"github.com/leandrodaf/midicc/internal/config"
	"github.com/leandrodaf/midicc/internal/logger"
	"github.com/leandrodaf/midicc/internal/midi/midimock"
	"github.com/leandrodaf/midicc/sdk/contracts"
	"github.com/leandrodaf/midicc/sdk/midi"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dryRun     bool
	logLevel   string

	cfg *config.Config
	log contracts.Logger
)

var rootCmd = &cobra.Command{
	Use:           "midicc",
	Short:         "Send MIDI Control Change messages to a device or a virtual port",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(configPath); err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		log = logger.NewStandardLogger()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "midicc.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "use an in-memory MIDI host instead of the system one")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// newClient opens a client from the loaded configuration.
func newClient() (contracts.ClientMIDI, *midimock.Host, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, err
	}
	opts = append([]contracts.Option{contracts.WithLogger(log)}, opts...)

	var mock *midimock.Host
	if dryRun {
		mock = midimock.New()
		mock.AddDestination(midimock.Endpoint{Name: "Dry Run Synth", UniqueID: 1})
		opts = append(opts, contracts.WithHost(mock))
	}

	client, err := midi.NewMIDIClient(opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, mock, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "midicc:", err)
		os.Exit(1)
	}
}
