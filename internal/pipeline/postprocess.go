package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// renameLigandResidue rewrites the residue-name column (columns 18-20 of
// ATOM/HETATM records) from "UNL" to "LIG" in the PDBQT file at path,
// in place.  Open Babel emits "UNL" for unnamed ligands, which the docking
// engine's force-field typing rejects.
func renameLigandResidue(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ligand %q: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		if len(line) < 20 {
			continue
		}
		if strings.TrimSpace(line[17:20]) == "UNL" {
			lines[i] = line[:17] + "LIG" + line[20:]
		}
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("write ligand %q: %w", path, err)
	}
	return nil
}

// normalizeResultFile rewrites the result structure at path with consistent
// line endings: stray carriage returns and non-printable bytes are dropped,
// trailing whitespace trimmed, and leading whitespace removed from MODEL and
// ENDMDL records.  Some viewers choke on the raw engine output otherwise.
func normalizeResultFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read result %q: %w", path, err)
	}

	var sb strings.Builder
	sb.Grow(len(data))
	for _, r := range string(data) {
		if r == '\n' || (r >= 0x20 && r <= 0x7e) {
			sb.WriteRune(r)
		}
	}

	lines := strings.Split(sb.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "MODEL") || strings.HasPrefix(trimmed, "ENDMDL") {
			line = trimmed
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	// Drop trailing blank lines, keep exactly one final newline.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	text := strings.Join(out, "\n") + "\n"

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write result %q: %w", path, err)
	}
	return nil
}
