// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset inspects the read groups of a set of PacBio subread BAM
// files and checks that they carry the per-base covariates the consensus
// models need.
//
// PacBio BAMs describe each read group in the @RG DS field, e.g.
//
//	DS:READTYPE=SUBREAD;BINDINGKIT=100356300;SEQUENCINGKIT=100356200;
//	   BASECALLERVERSION=2.3.0.3.154799;Ipd:CodecV1=ip;PulseWidth:CodecV1=pw
//
// The kits and basecaller version determine the sequencing chemistry.
// Chemistries other than P6-C4 and S/P1-C1/beta need the IPD and
// PulseWidth base features.
package dataset
