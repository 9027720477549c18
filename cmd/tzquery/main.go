// Command tzquery resolves a single time-zone lookup against a TZif
// file, exercising tzdb's engine the way tzinfo/tzdiff exercise the
// raw tzif codec: point it at a compiled zoneinfo file, an identifier
// to register it under, and either an instant or a local wall-clock
// time, and it prints the offset the engine resolves.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/chronozone/tcore"
	"github.com/chronozone/tcore/tzdb"
	"github.com/chronozone/tcore/tzif"
)

var (
	localFlag      = flag.Bool("local", false, "interpret <when> as a local wall-clock time, resolved via disambiguation, instead of an instant")
	disambigFlag   = flag.String("disambiguation", "compatible", "disambiguation policy when -local is set: compatible, earlier, later, reject")
	candidatesFlag = flag.Bool("candidates", false, "with -local, list every offset candidate instead of disambiguating")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		fmt.Println("Usage: tzquery [flags] <tzif file> <identifier> <when>")
		fmt.Println("  <when> is RFC3339 (e.g. 2025-03-09T10:30:00Z) by default, or")
		fmt.Println("  'YYYY-MM-DDTHH:MM:SS' local wall-clock time with -local")
		os.Exit(1)
	}
	if err := run(args[0], args[1], args[2]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(path, identifier, when string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	data, err := tzif.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	zone, err := tzdb.FromTZif(identifier, data)
	if err != nil {
		return fmt.Errorf("building zone: %w", err)
	}

	registry := tzdb.NewRegistry()
	registry.Add(zone)
	provider := tzdb.NewProvider(registry)

	if *localFlag {
		return runLocal(provider, identifier, when)
	}
	return runInstant(provider, identifier, when)
}

func runInstant(provider *tzdb.Provider, identifier, when string) error {
	instant, err := parseInstant(when)
	if err != nil {
		return err
	}
	res, transitionEpoch, hasTransition, err := provider.OffsetFor(identifier, instant)
	if err != nil {
		return err
	}
	fmt.Printf("offset=%s dst=%v abbr=%q\n", formatOffset(res.OffsetSeconds), res.IsDST, res.Abbreviation)
	if hasTransition {
		fmt.Printf("segment began at %s\n", formatEpoch(transitionEpoch))
	} else {
		fmt.Println("segment began before the earliest recorded transition")
	}
	return nil
}

func runLocal(provider *tzdb.Provider, identifier, when string) error {
	local, err := parseLocal(when)
	if err != nil {
		return err
	}

	if *candidatesFlag {
		candidates, err := provider.CandidatesFor(identifier, local)
		if err != nil {
			return err
		}
		fmt.Printf("%d candidate(s)\n", len(candidates))
		for _, c := range candidates {
			fmt.Printf("  offset=%s dst=%v abbr=%q -> %s\n", formatOffset(c.OffsetSeconds), c.IsDST, c.Abbreviation, formatEpoch(c.Epoch))
		}
		return nil
	}

	policy, err := parseDisambiguation(*disambigFlag)
	if err != nil {
		return err
	}
	instant, res, err := provider.Disambiguate(identifier, local, policy)
	if err != nil {
		return err
	}
	fmt.Printf("offset=%s dst=%v abbr=%q -> %s\n", formatOffset(res.OffsetSeconds), res.IsDST, res.Abbreviation, formatEpoch(instant))
	return nil
}

func parseInstant(when string) (tcore.EpochNanoseconds, error) {
	if sec, err := strconv.ParseInt(when, 10, 64); err == nil {
		return tcore.EpochNanosecondsFromSeconds(sec), nil
	}
	t, err := time.Parse(time.RFC3339, when)
	if err != nil {
		return tcore.EpochNanoseconds{}, fmt.Errorf("parsing %q as RFC3339 or unix seconds: %w", when, err)
	}
	return tcore.EpochNanosecondsFromSeconds(t.Unix()), nil
}

func parseLocal(when string) (tcore.IsoDateTime, error) {
	t, err := time.Parse("2006-01-02T15:04:05", when)
	if err != nil {
		return tcore.IsoDateTime{}, fmt.Errorf("parsing %q as a local date-time: %w", when, err)
	}
	return tcore.IsoDateTime{
		Date: tcore.IsoDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
		Time: tcore.IsoTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()},
	}, nil
}

func parseDisambiguation(s string) (tcore.Disambiguation, error) {
	switch s {
	case "compatible":
		return tcore.Compatible, nil
	case "earlier":
		return tcore.Earlier, nil
	case "later":
		return tcore.Later, nil
	case "reject":
		return tcore.RejectAmbiguity, nil
	default:
		return 0, fmt.Errorf("unknown disambiguation policy %q", s)
	}
}

func formatOffset(sec int) string {
	sign := "+"
	if sec < 0 {
		sign = "-"
		sec = -sec
	}
	return fmt.Sprintf("%s%02d:%02d", sign, sec/3600, (sec%3600)/60)
}

func formatEpoch(e tcore.EpochNanoseconds) string {
	sec := new(big.Int).Quo(e.Big(), big.NewInt(1_000_000_000)).Int64()
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}
