// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

type chemistryKey struct {
	bindingKit, sequencingKit, basecaller string
}

// chemistries maps (binding kit, sequencing kit, basecaller major.minor) to
// the chemistry name.
var chemistries = map[chemistryKey]string{
	// RS II
	{"100356300", "100356200", "2.1"}: "P6-C4",
	{"100356300", "100356200", "2.3"}: "P6-C4",
	{"100356300", "100612400", "2.1"}: "P6-C4",
	{"100356300", "100612400", "2.3"}: "P6-C4",
	{"100372700", "100356200", "2.1"}: "P6-C4",
	{"100372700", "100356200", "2.3"}: "P6-C4",
	{"100372700", "100612400", "2.1"}: "P6-C4",
	{"100372700", "100612400", "2.3"}: "P6-C4",

	// Sequel
	{"100-619-300", "100-620-000", "3.0"}: "S/P1-C1/beta",
	{"100-619-300", "100-620-000", "3.1"}: "S/P1-C1/beta",
	{"100-619-300", "100-867-300", "3.1"}: "S/P1-C1.1",
	{"100-619-300", "100-867-300", "3.2"}: "S/P1-C1.1",
	{"100-619-300", "100-867-300", "3.3"}: "S/P1-C1.1",
	{"100-619-300", "100-902-100", "3.1"}: "S/P1-C1.2",
	{"100-619-300", "100-902-100", "3.2"}: "S/P1-C1.2",
	{"100-619-300", "100-972-200", "3.2"}: "S/P1-C1.3",
	{"100-619-300", "100-972-200", "3.3"}: "S/P1-C1.3",
	{"100-862-200", "100-861-800", "4.0"}: "S/P2-C2",
	{"100-862-200", "101-093-700", "4.0"}: "S/P2-C2",
}

// exemptChemistries do not need covariates besides SNR.
var exemptChemistries = map[string]bool{
	"P6-C4":        true,
	"S/P1-C1/beta": true,
}

// basecallerMajorMinor truncates "2.3.0.3.154799" to "2.3".
func basecallerMajorMinor(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}

// SequencingChemistry looks up the chemistry for the given kits and
// basecaller version. Only the major and minor components of the version are
// significant.
func SequencingChemistry(bindingKit, sequencingKit, basecallerVersion string) (string, error) {
	key := chemistryKey{bindingKit, sequencingKit, basecallerMajorMinor(basecallerVersion)}
	if name, ok := chemistries[key]; ok {
		return name, nil
	}
	return "", errors.E(errors.NotSupported,
		fmt.Sprintf("unsupported chemistry: bindingkit=%q sequencingkit=%q basecaller=%q",
			bindingKit, sequencingKit, basecallerVersion))
}

// RequiresCovariates reports whether reads of the given chemistry must carry
// IPD and PulseWidth.
func RequiresCovariates(chemistry string) bool {
	return !exemptChemistries[chemistry]
}
