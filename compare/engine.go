package compare

import (
	"math"
	"strconv"
	"time"

	"github.com/poiesic/bomvault/core"
)

// Difference kinds. "Common" components are never emitted as differences;
// they go into the separate common-components list.
const (
	DiffVersion = "version"
	DiffAdded   = "added"
	DiffRemoved = "removed"
)

// Difference describes one component that differs between the two
// inventories. LicenseDiff is only meaningful on version differences, where
// both sides carry a license to compare.
type Difference struct {
	ComponentName string
	App1Version   string
	App2Version   string
	Type          string
	LicenseDiff   bool
	App1License   string
	App2License   string
}

// CommonComponent is a component present in both inventories with an equal
// version.
type CommonComponent struct {
	Name    string
	Version string
	Type    string
	License string
}

// Summary aggregates the comparison.
type Summary struct {
	TotalCommon             int
	TotalUniqueApp1         int
	TotalUniqueApp2         int
	TotalVersionDifferences int
	// SimilarityPercentage is the Dice-coefficient overlap of the two
	// component sets: 2*|common| / (|A|+|B|) * 100, rounded to two
	// decimal places. 0.0 when both inventories are empty.
	SimilarityPercentage float64
	LicenseDifferences   int
}

// Result is the full outcome of comparing two application inventories.
type Result struct {
	ComparisonId       core.ID
	App1Id             core.ID
	App1Name           string
	App1Platform       string
	App1ComponentCount int
	App2Id             core.ID
	App2Name           string
	App2Platform       string
	App2ComponentCount int
	Summary            Summary
	Differences        []Difference
	CommonComponents   []CommonComponent
	CreatedAt          time.Time
}

// Compare diffs two resolved component inventories. Both applications must
// already be resolved to non-nil records and owner-scoped by the caller; the
// engine itself is total over its inputs and performs no I/O.
//
// Lookup maps are keyed by the exact (name, type) pair. Should two distinct
// components in one inventory share a key, the last one wins; ordering of
// the output follows first appearance in the input slices.
func Compare(app1 *core.Application, comps1 []*core.Component, app2 *core.Application, comps2 []*core.Component) *Result {
	map1, order1 := buildLookup(comps1)
	map2, order2 := buildLookup(comps2)

	var (
		differences []Difference
		common      []CommonComponent
	)

	// Common keys: version equality decides common vs version difference.
	for _, key := range order1 {
		comp1 := map1[key]
		comp2, ok := map2[key]
		if !ok {
			continue
		}
		if comp1.Version != comp2.Version {
			differences = append(differences, Difference{
				ComponentName: comp1.Name,
				App1Version:   comp1.Version,
				App2Version:   comp2.Version,
				Type:          DiffVersion,
				LicenseDiff:   comp1.License != comp2.License,
				App1License:   comp1.License,
				App2License:   comp2.License,
			})
		} else {
			common = append(common, CommonComponent{
				Name:    comp1.Name,
				Version: comp1.Version,
				Type:    comp1.Type,
				License: comp1.License,
			})
		}
	}

	// Keys only in the first inventory.
	uniqueApp1 := 0
	for _, key := range order1 {
		if _, ok := map2[key]; ok {
			continue
		}
		comp := map1[key]
		differences = append(differences, Difference{
			ComponentName: comp.Name,
			App1Version:   comp.Version,
			Type:          DiffRemoved,
			App1License:   comp.License,
		})
		uniqueApp1++
	}

	// Keys only in the second inventory.
	uniqueApp2 := 0
	for _, key := range order2 {
		if _, ok := map1[key]; ok {
			continue
		}
		comp := map2[key]
		differences = append(differences, Difference{
			ComponentName: comp.Name,
			App2Version:   comp.Version,
			Type:          DiffAdded,
			App2License:   comp.License,
		})
		uniqueApp2++
	}

	versionDiffs := 0
	licenseDiffs := 0
	for _, d := range differences {
		if d.Type == DiffVersion {
			versionDiffs++
		}
		if d.LicenseDiff {
			licenseDiffs++
		}
	}

	return &Result{
		ComparisonId:       comparisonID(app1.Id, app2.Id),
		App1Id:             app1.Id,
		App1Name:           app1.Name,
		App1Platform:       app1.Platform,
		App1ComponentCount: len(comps1),
		App2Id:             app2.Id,
		App2Name:           app2.Name,
		App2Platform:       app2.Platform,
		App2ComponentCount: len(comps2),
		Summary: Summary{
			TotalCommon:             len(common),
			TotalUniqueApp1:         uniqueApp1,
			TotalUniqueApp2:         uniqueApp2,
			TotalVersionDifferences: versionDiffs,
			SimilarityPercentage:    similarity(len(common), len(map1), len(map2)),
			LicenseDifferences:      licenseDiffs,
		},
		Differences:      differences,
		CommonComponents: common,
		CreatedAt:        time.Now().UTC(),
	}
}

// buildLookup builds the (name, type) lookup map for one inventory along
// with the keys in first-appearance order. Duplicate keys within one
// inventory are last-write-wins.
func buildLookup(comps []*core.Component) (map[core.ComponentKey]*core.Component, []core.ComponentKey) {
	lookup := make(map[core.ComponentKey]*core.Component, len(comps))
	order := make([]core.ComponentKey, 0, len(comps))
	for _, comp := range comps {
		if comp == nil {
			continue
		}
		key := comp.Key()
		if _, seen := lookup[key]; !seen {
			order = append(order, key)
		}
		lookup[key] = comp
	}
	return lookup, order
}

// similarity computes the Dice-coefficient percentage, rounded to two
// decimal places, guarding the empty-inventories case.
func similarity(common, size1, size2 int) float64 {
	total := size1 + size2
	if total == 0 {
		return 0.0
	}
	pct := 2 * float64(common) / float64(total) * 100
	return math.Round(pct*100) / 100
}

func comparisonID(app1, app2 core.ID) core.ID {
	return core.IDFromContent("comparison:" +
		strconv.FormatUint(uint64(app1), 10) + ":" +
		strconv.FormatUint(uint64(app2), 10) + ":" +
		strconv.FormatInt(time.Now().UnixMicro(), 10))
}
