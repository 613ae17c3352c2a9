// Package plan computes which variant of each multi-version question every
// exam version receives. Plans are deterministic: identical (catalog, count,
// seed) inputs always produce identical assignments.
package plan

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"jexam/internal/master"
)

// Request describes one planning run. Either Count anonymous versions or an
// explicit student list; when Students is set it defines both the count and
// the version identifiers.
type Request struct {
	Count    int
	Students []string
	Seed     int64
	Strict   bool
}

// Assignment maps every variant group to a chosen variant index for one exam
// version.
type Assignment struct {
	Version string // "exam_<n>" or a student identifier
	Ordinal int    // zero-based position in version order
	Choices map[string]int
}

// Advisory reports a variant group with fewer variants than requested
// versions; repeats are forced but the run proceeds.
type Advisory struct {
	QuestionID string
	Variants   int
	Requested  int
}

func (a Advisory) String() string {
	return fmt.Sprintf("question %s has %d variants for %d versions; repeats are unavoidable", a.QuestionID, a.Variants, a.Requested)
}

// Plan is the full set of assignments plus any advisories collected while
// planning.
type Plan struct {
	Seed        int64
	Assignments []Assignment
	Advisories  []Advisory
}

// ErrInsufficientVariants is returned in strict mode when any group has
// fewer variants than requested versions.
var ErrInsufficientVariants = errors.New("insufficient variants")

// InsufficientVariantsError lists the affected groups for strict mode.
type InsufficientVariantsError struct {
	Advisories []Advisory
}

func (e *InsufficientVariantsError) Error() string {
	lines := make([]string, 0, len(e.Advisories))
	for _, advisory := range e.Advisories {
		lines = append(lines, advisory.String())
	}
	return "insufficient variants: " + strings.Join(lines, "; ")
}

func (e *InsufficientVariantsError) Unwrap() error { return ErrInsufficientVariants }

// Build computes one assignment per requested version. For each variant
// group a seeded permutation of its variant indices is walked cyclically, so
// usage counts differ by at most one and no variant repeats while versions
// remain within the group size.
func Build(catalog *master.Catalog, req Request) (Plan, error) {
	versions, err := versionIdentifiers(req)
	if err != nil {
		return Plan{}, err
	}

	result := Plan{Seed: req.Seed}
	result.Assignments = make([]Assignment, 0, len(versions))
	for i, version := range versions {
		result.Assignments = append(result.Assignments, Assignment{
			Version: version,
			Ordinal: i,
			Choices: map[string]int{},
		})
	}

	for _, questionID := range catalog.QuestionIDs() {
		group, ok := catalog.Lookup(questionID)
		if !ok {
			continue
		}
		k := len(group.Variants)
		rng := rand.New(rand.NewSource(subSeed(req.Seed, questionID)))
		perm := rng.Perm(k)
		for i := range result.Assignments {
			result.Assignments[i].Choices[questionID] = perm[i%k]
		}
		if len(versions) > k {
			result.Advisories = append(result.Advisories, Advisory{
				QuestionID: questionID,
				Variants:   k,
				Requested:  len(versions),
			})
		}
	}

	if req.Strict && len(result.Advisories) > 0 {
		return Plan{}, &InsufficientVariantsError{Advisories: result.Advisories}
	}
	return result, nil
}

// versionIdentifiers resolves the ordered version identifiers for a request.
func versionIdentifiers(req Request) ([]string, error) {
	if len(req.Students) > 0 {
		out := make([]string, len(req.Students))
		copy(out, req.Students)
		return out, nil
	}
	if req.Count < 1 {
		return nil, fmt.Errorf("plan: version count must be >= 1, got %d", req.Count)
	}
	out := make([]string, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		out = append(out, fmt.Sprintf("exam_%d", i))
	}
	return out, nil
}
