// Command dectd wires one NWK handle (CC + MM entities over a single
// trans.Dispatcher) to a YAML configuration file, logging through
// zerolog and coloring call-state transitions for a terminal operator.
// It is a wiring example, not a PBX: there is no SIP/ISDN gateway here,
// only the GAP-level protocol stack driven by stdin commands.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rob-gra/go-dect/cc"
	"github.com/rob-gra/go-dect/config"
	"github.com/rob-gra/go-dect/internal/dlog"
	"github.com/rob-gra/go-dect/mm"
	"github.com/rob-gra/go-dect/nwk"
	"github.com/rob-gra/go-dect/nwk/trans"
)

// fileConfig is the on-disk YAML shape; it maps onto config.HandleConfig
// with the ARI/PARK fields flattened to the primitives an operator
// actually edits by hand.
type fileConfig struct {
	Mode              string `yaml:"mode"`
	MaxTransactionsCC int    `yaml:"max_transactions_cc"`
	MaxTransactionsMM int    `yaml:"max_transactions_mm"`
	CapabilityProfile string `yaml:"capability_profile"`
}

func loadConfig(path string) (config.HandleConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return config.HandleConfig{}, err
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return config.HandleConfig{}, fmt.Errorf("dectd: parsing config: %w", err)
	}

	mode := config.ModeFP
	if fc.Mode == "pp" {
		mode = config.ModePP
	}
	cfg := config.DefaultHandleConfig(mode)
	if fc.MaxTransactionsCC != 0 {
		cfg.MaxTransactionsCC = fc.MaxTransactionsCC
	}
	if fc.MaxTransactionsMM != 0 {
		cfg.MaxTransactionsMM = fc.MaxTransactionsMM
	}
	cfg.CapabilityProfile = fc.CapabilityProfile
	if err := cfg.Valid(); err != nil {
		return config.HandleConfig{}, err
	}
	return cfg, nil
}

// discardLink is a LinkWriter used when no real lower.Socket is wired
// up; outbound frames are logged, not transmitted. Swap for a socket
// adapter once a DECT-family transport is available in this environment.
type discardLink struct{ log *dlog.Logger }

func (l discardLink) WriteMessage(b []byte) error {
	if l.log != nil {
		l.log.Debug("dectd: would send %d bytes on link", len(b))
	}
	return nil
}

// ccListener prints each CC indication's kind number and call state,
// colored by whether it advances or tears down a call.
type ccListener struct{}

func (ccListener) CCIndication(ind cc.Indication) {
	switch ind.Kind {
	case cc.IndRelease, cc.IndReleaseCom, cc.IndServiceChangeReject:
		color.Red("cc: %d %v", ind.Kind, ind.Call.State())
	case cc.IndConnect, cc.IndConnectAck:
		color.Green("cc: %d %v", ind.Kind, ind.Call.State())
	default:
		color.Yellow("cc: %d %v", ind.Kind, ind.Call.State())
	}
}

type mmListener struct{}

func (mmListener) MMIndication(ind mm.Indication) {
	switch ind.Kind {
	case mm.IndAccessRightsReject, mm.IndLocateReject, mm.IndCipherReject, mm.IndInfoReject:
		color.Red("mm: indication %d", ind.Kind)
	default:
		color.Cyan("mm: indication %d", ind.Kind)
	}
}

func main() {
	configPath := flag.String("config", "dectd.yaml", "path to the handle configuration file")
	verbose := flag.Bool("v", false, "enable debug-level trace logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dectd:", err)
		os.Exit(1)
	}

	zl := zerolog.New(os.Stderr).With().Timestamp().Str("mode", cfg.Mode.String()).Logger()
	log := dlog.New("dectd: ")
	log.SetProvider(dlog.ZerologProvider{Log: zl})
	log.Enable(*verbose)

	link := discardLink{log: log}
	disp := trans.NewDispatcher(nwk.Mode(cfg.Mode), link)

	ccEntity := cc.NewEntity(&cfg, disp, nil, ccListener{}, log)
	mmEntity := mm.NewEntity(&cfg, disp, nil, mmListener{}, log)
	_ = ccEntity
	_ = mmEntity

	if cfg.OffersWidebandCodec() {
		color.Magenta("dectd: capability profile %s offers wideband codec negotiation", cfg.CapabilityProfile)
	}

	fmt.Printf("dectd: handle ready in %s mode (cc slots=%d, mm slots=%d)\n",
		cfg.Mode, cfg.MaxTransactionsCC, cfg.MaxTransactionsMM)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "quit" {
			return
		}
		if line == "setup" {
			if _, err := ccEntity.SetupRequest(nwk.BasicService{}, ""); err != nil {
				log.Error("dectd: setup request failed: %v", err)
			}
		}
	}
}
