// Command yahtzee recommends optimal play for the Yahtzee family of dice
// games.
//
// Usage:
//
//	yahtzee [flags] <game>
//
// where <game> is one of: forced, free, original, kniffel, none, extreme.
// Once running, type your roll (d6 faces as digits, the d10 face after a
// space for extreme) to get a recommendation, or "state" for the scorecard.
package main

import (
	"flag"
	"os"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/yahtzeeGo/internal/caching"
	"github.com/janpfeifer/yahtzeeGo/internal/generics"
	"github.com/janpfeifer/yahtzeeGo/internal/parameters"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
	"github.com/janpfeifer/yahtzeeGo/internal/ui/repl"
	"github.com/janpfeifer/yahtzeeGo/internal/viewmodel"
)

var (
	flagCache = flag.String("cache", "",
		"Cache file to restore before play.")
	flagCacheWrite = flag.String("cache-write", "",
		"Warm up every variant's cache and write it to this file. Cannot be combined with --cache.")
	flagUI = flag.String("ui", "",
		"UI options as key=value pairs, e.g. \"color=false\".")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagCacheWrite != "" {
		if *flagCache != "" {
			klog.Exitf("Caches cannot be used in pre-caching: --cache and --cache-write are mutually exclusive.")
		}
		if err := caching.PreCache(*flagCacheWrite); err != nil {
			klog.Exitf("Failed to pre-cache: %+v", err)
		}
		if flag.NArg() == 0 {
			return
		}
	}

	if flag.NArg() != 1 {
		klog.Exitf("Usage: yahtzee [flags] <game>, where <game> is one of %v.", rules.VariantNames())
	}
	gameRules, err := rules.ByName(flag.Arg(0))
	if err != nil {
		klog.Exitf("%v", err)
	}

	if *flagCache != "" {
		if err = caching.Restore(*flagCache); err != nil {
			// Playable without a cache, everything is just computed
			// on demand.
			klog.Warningf("Continuing without a cache: %v", err)
		}
	}

	uiParams := parameters.NewFromConfigString(*flagUI)
	color := must.M1(parameters.PopParamOr(uiParams, "color", true))
	if len(uiParams) > 0 {
		klog.Exitf("Unknown --ui options: %v", generics.KeysSlice(uiParams))
	}

	ui := repl.New(viewmodel.New(gameRules), os.Stdin, os.Stdout, color)
	must.M(ui.Run())
}
