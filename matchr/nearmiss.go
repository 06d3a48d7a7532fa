// Package matchr reports application names that failed to match during a
// merge but probably name the same application.
package matchr

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"github.com/fwojciec/appcat"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity reported.
const DefaultThreshold = 0.95

// NearMiss pairs a refresh-only name with the baseline-only name it most
// resembles.
type NearMiss struct {
	Refresh    string
	Baseline   string
	Similarity float64
}

// NearMissFinder compares unmatched names of a merge.
type NearMissFinder struct {
	Threshold float64
}

// NewNearMissFinder returns a finder using DefaultThreshold.
func NewNearMissFinder() *NearMissFinder {
	return &NearMissFinder{Threshold: DefaultThreshold}
}

// Find returns, in refresh order, each refresh-only name paired with the
// most similar baseline-only name. Names equal after case folding and
// whitespace removal score 1. Each baseline name is used at most once.
func (f *NearMissFinder) Find(baseline, refresh []*appcat.Record) []NearMiss {
	inBaseline := make(map[string]struct{}, len(baseline))
	for _, r := range baseline {
		inBaseline[r.Name] = struct{}{}
	}
	inRefresh := make(map[string]struct{}, len(refresh))
	for _, r := range refresh {
		inRefresh[r.Name] = struct{}{}
	}

	var candidates []string
	seen := make(map[string]struct{})
	for _, r := range baseline {
		if _, ok := inRefresh[r.Name]; ok {
			continue
		}
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		candidates = append(candidates, r.Name)
	}

	used := make(map[string]struct{})
	var misses []NearMiss
	for _, r := range refresh {
		if _, ok := inBaseline[r.Name]; ok {
			continue
		}

		var best NearMiss
		for _, c := range candidates {
			if _, ok := used[c]; ok {
				continue
			}
			sim := f.similarity(r.Name, c)
			if sim > best.Similarity {
				best = NearMiss{Refresh: r.Name, Baseline: c, Similarity: sim}
			}
		}

		if best.Similarity >= f.threshold() {
			used[best.Baseline] = struct{}{}
			misses = append(misses, best)
		}
	}

	return misses
}

func (f *NearMissFinder) threshold() float64 {
	if f.Threshold <= 0 {
		return DefaultThreshold
	}
	return f.Threshold
}

func (f *NearMissFinder) similarity(a, b string) float64 {
	if fold(a) == fold(b) {
		return 1
	}
	return matchr.JaroWinkler(a, b, false)
}

// fold lowercases s and drops whitespace.
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
