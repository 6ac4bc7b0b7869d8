// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"strings"

	"github.com/grailbio/hts/sam"
)

// BaseFeature names a per-base covariate stored in the BAM records.
type BaseFeature string

const (
	// IPD is the inter-pulse duration.
	IPD BaseFeature = "Ipd"
	// PulseWidth is the pulse width.
	PulseWidth BaseFeature = "PulseWidth"
	// DeletionQV is the deletion quality value.
	DeletionQV BaseFeature = "DeletionQV"
	// InsertionQV is the insertion quality value.
	InsertionQV BaseFeature = "InsertionQV"
	// SubstitutionQV is the substitution quality value.
	SubstitutionQV BaseFeature = "SubstitutionQV"
)

var (
	descriptionTag = sam.NewTag("DS")

	knownFeatures = map[BaseFeature]bool{
		IPD:            true,
		PulseWidth:     true,
		DeletionQV:     true,
		InsertionQV:    true,
		SubstitutionQV: true,
	}
)

// ReadGroup is the PacBio view of an @RG header line.
type ReadGroup struct {
	// ID is the read group identifier.
	ID                string
	ReadType          string
	BindingKit        string
	SequencingKit     string
	BasecallerVersion string
	// Features maps each base feature present to its record tag name.
	Features map[BaseFeature]string
}

// ParseDescription decodes a PacBio DS value. Unrecognized keys are ignored.
func ParseDescription(id, desc string) ReadGroup {
	rg := ReadGroup{ID: id, Features: map[BaseFeature]string{}}
	for _, kv := range strings.Split(desc, ";") {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}
		key, val := strings.TrimSpace(kv[:eq]), strings.TrimSpace(kv[eq+1:])
		switch key {
		case "READTYPE":
			rg.ReadType = val
		case "BINDINGKIT":
			rg.BindingKit = val
		case "SEQUENCINGKIT":
			rg.SequencingKit = val
		case "BASECALLERVERSION":
			rg.BasecallerVersion = val
		default:
			// Frame features carry a codec, e.g. "Ipd:CodecV1"; QV features
			// are bare, e.g. "DeletionQV".
			if colon := strings.IndexByte(key, ':'); colon > 0 {
				rg.Features[BaseFeature(key[:colon])] = val
			} else if knownFeatures[BaseFeature(key)] {
				rg.Features[BaseFeature(key)] = val
			}
		}
	}
	return rg
}

// NewReadGroup decodes a SAM read group.
func NewReadGroup(rg *sam.ReadGroup) ReadGroup {
	return ParseDescription(rg.Name(), rg.Get(descriptionTag))
}

// HasBaseFeature reports whether the read group records feature f.
func (rg ReadGroup) HasBaseFeature(f BaseFeature) bool {
	_, ok := rg.Features[f]
	return ok
}

// SequencingChemistry returns the chemistry name of the read group.
func (rg ReadGroup) SequencingChemistry() (string, error) {
	return SequencingChemistry(rg.BindingKit, rg.SequencingKit, rg.BasecallerVersion)
}
