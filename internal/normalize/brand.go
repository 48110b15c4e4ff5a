// File: internal/normalize/brand.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Brand-string normalization for package display names. Vendor brand
// strings carry trademark markers, filler tokens and frequency suffixes
// ("Intel(R) Xeon(R) CPU E5-2690 v4 @ 2.60GHz"); the normalized form
// keeps only the model name ("Intel Xeon E5-2690 v4").

package normalize

import "strings"

// markers removed wherever they appear inside a token.
var markers = []string{"(R)", "(r)", "(TM)", "(tm)", "(C)", "(c)"}

// fillerTokens dropped when they stand alone.
var fillerTokens = map[string]bool{
	"CPU":        true,
	"Processor":  true,
	"processor":  true,
	"Dual-Core":  false, // kept: part of the marketed model name
	"@":          true,
	"0":          true, // some firmwares pad the brand string with zeros
	"Deca-Core":  false,
	"Genuine":    true,
	"Authentic":  true,
	"Registered": true,
}

// BrandString normalizes a raw vendor brand string into a package
// display name. Pure and deterministic; empty input yields empty output.
func BrandString(raw string) string {
	fields := strings.Fields(raw)
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		for _, m := range markers {
			tok = strings.ReplaceAll(tok, m, "")
		}
		if tok == "" || fillerTokens[tok] {
			continue
		}
		// Drop the "@ 2.60GHz" frequency suffix: the "@" itself is a
		// filler token, the frequency token ends in Hz.
		if strings.HasSuffix(tok, "GHz") || strings.HasSuffix(tok, "MHz") {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// Normalizer adapts BrandString to the api.Normalizer contract without
// importing the api package from an internal leaf.
type Normalizer struct{}

func (Normalizer) Normalize(brand string) string {
	return BrandString(brand)
}
