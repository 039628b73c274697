// Package caching persists the strategy caches: a warm-up driver that
// exercises every variant, and a versioned, DEFLATE-compressed gob envelope
// on disk.
//
// The envelope is pinned to the producing minor version and to the
// producer's float width (float64 on 64-bit platforms): the gob stream
// encodes expectations and probabilities in that width, so a cache file is
// not portable across widths.
package caching

import (
	"compress/flate"
	"encoding/gob"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
	"github.com/janpfeifer/yahtzeeGo/internal/strategy"
)

// Version of the cache producer. Restoring ignores the patch level; a
// different major or minor version is rejected.
const Version = "v1.0.0"

// persistedCaches is the on-disk envelope.
type persistedCaches struct {
	Version string
	Caches  strategy.Caches
}

// WarmUp populates the caches of every variant by creating a fresh initial
// state and asking for the first recommendation of a game: the transitive
// recursion reaches every key of the variant. Variants run concurrently,
// sharing the process-wide caches.
func WarmUp() {
	type variant struct {
		name    string
		extreme bool
		bonus   rules.BonusRules
	}
	variants := []variant{
		{"forced", false, rules.ForcedJoker},
		{"free", false, rules.FreeJoker},
		{"original", false, rules.Original},
		{"kniffel", false, rules.Kniffel},
		{"none", false, rules.None},
		{"extreme", true, rules.None},
	}

	start := time.Now()
	var group errgroup.Group
	for _, v := range variants {
		group.Go(func() error {
			r, err := rules.New(v.extreme, v.bonus)
			if err != nil {
				return errors.Wrapf(err, "warming up variant %q", v.name)
			}
			variantStart := time.Now()
			rec := strategy.ChooseReroll(strategy.NewState(r), PartialHand{}, MaxRerolls, r)
			klog.V(1).Infof("Warmed up variant %q in %s (expectation=%.3f)",
				v.name, time.Since(variantStart), rec.Expectation)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		// The variant table above is fixed and valid; an error here is
		// a bug in this package.
		klog.Fatalf("Warm-up failed: %+v", err)
	}
	probabilities, rerolls, fields := strategy.CacheSizes()
	klog.Infof("Warmed up all variants in %s: %d probability, %d reroll, %d field entries",
		time.Since(start), probabilities, rerolls, fields)
}

// Dump writes a snapshot of the caches to filename.
func Dump(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create cache file %q", filename)
	}
	compressor, err := flate.NewWriter(file, flate.DefaultCompression)
	if err != nil {
		_ = file.Close()
		return errors.Wrap(err, "failed to create compressor")
	}
	envelope := persistedCaches{
		Version: Version,
		Caches:  strategy.DumpCaches(),
	}
	if err = gob.NewEncoder(compressor).Encode(envelope); err != nil {
		_ = compressor.Close()
		_ = file.Close()
		return errors.Wrapf(err, "failed to serialize caches to %q", filename)
	}
	if err = compressor.Close(); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to compress caches to %q", filename)
	}
	return errors.Wrapf(file.Close(), "failed to write cache file %q", filename)
}

// PreCache warms up every variant's cache and dumps the result to filename.
func PreCache(filename string) error {
	WarmUp()
	return Dump(filename)
}

// Restore populates the caches from a file written by Dump. The producer's
// patch version is ignored; a major or minor mismatch is an error and the
// caches are left untouched.
func Restore(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open cache file %q", filename)
	}
	defer func() { _ = file.Close() }()

	var envelope persistedCaches
	if err = gob.NewDecoder(flate.NewReader(file)).Decode(&envelope); err != nil {
		return errors.Wrapf(err, "failed to deserialize cache file %q", filename)
	}

	if !semver.IsValid(envelope.Version) {
		return errors.Errorf("cache file %q carries invalid version %q", filename, envelope.Version)
	}
	if semver.MajorMinor(envelope.Version) != semver.MajorMinor(Version) {
		return errors.Errorf("caches were created on version %s, this is version %s",
			envelope.Version, Version)
	}

	start := time.Now()
	strategy.PopulateCaches(envelope.Caches)
	klog.Infof("Restored caches from %q (version %s) in %s",
		filename, envelope.Version, time.Since(start))
	return nil
}
