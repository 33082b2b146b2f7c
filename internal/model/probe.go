package model

import "strings"

// ProbeKind identifies a low-level filesystem read. Kinds combine into a mask
// when several requests for the same path are merged into one operation.
type ProbeKind uint8

const (
	// ProbeSample reads the first bytes of a file.
	ProbeSample ProbeKind = 1 << iota
	// ProbeStat loads file metadata without following symlinks.
	ProbeStat
	// ProbeRealpath resolves the canonical path of a resource.
	ProbeRealpath
)

// AllProbeKinds lists every single-bit kind in dispatch order.
var AllProbeKinds = []ProbeKind{ProbeSample, ProbeStat, ProbeRealpath}

// Has reports whether every bit of kind is present in the mask.
func (k ProbeKind) Has(kind ProbeKind) bool {
	return k&kind == kind
}

func (k ProbeKind) String() string {
	var names []string

	if k.Has(ProbeSample) {
		names = append(names, "sample")
	}

	if k.Has(ProbeStat) {
		names = append(names, "stat")
	}

	if k.Has(ProbeRealpath) {
		names = append(names, "realpath")
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// ProbeResult carries whatever a merged probe produced for one path. Fields
// belonging to kinds that were not requested, or that failed, are left empty.
type ProbeResult struct {
	Sample   []byte
	Stats    *Stats
	Realpath Path
	// Errors holds the failure of each kind that could not be satisfied.
	Errors map[ProbeKind]error
}

// Err returns the error recorded for kind, if any.
func (r ProbeResult) Err(kind ProbeKind) error {
	if r.Errors == nil {
		return nil
	}

	return r.Errors[kind]
}
