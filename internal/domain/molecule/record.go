// Package molecule provides the molecule table domain model for vinauto:
// the immutable Record type, SMILES and name sanitization, and the loader
// that turns a delimited input table into an ordered record sequence.
package molecule

import "strings"

// Record is one input molecule: a unique name (used as the output file stem
// for every artifact of this molecule) and its sanitized SMILES string.
// Records are immutable after loading.
type Record struct {
	// Name is the sanitized, collision-free identifier of the molecule.
	Name string `json:"name"`

	// SMILES is the sanitized structure string: whitespace-trimmed and
	// truncated at the first fragment separator.
	SMILES string `json:"smiles"`
}

// SanitizeSMILES trims whitespace and truncates the string at the first '.'
// character.  In SMILES notation '.' separates disconnected fragments; salts
// and counter-ions conventionally appear after the parent structure, so the
// leading fragment is kept.  This is a deliberate simplification rather than
// full desalting: when the main fragment happens to appear second it is
// discarded, and preparing single-fragment input is the user's
// responsibility.
func SanitizeSMILES(smiles string) string {
	smiles = strings.TrimSpace(smiles)
	if i := strings.IndexByte(smiles, '.'); i >= 0 {
		return smiles[:i]
	}
	return smiles
}

// pathUnsafe lists the characters replaced by '_' in molecule names.  Names
// become file stems, so anything with path or shell meaning is rewritten.
const pathUnsafe = `/\:*?"<>| `

// SanitizeName trims whitespace and replaces path-unsafe characters with '_'
// so the name can be used verbatim as a file stem on any platform.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(pathUnsafe, r) {
			sb.WriteByte('_')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
