package specgen

import (
	"encoding/json"
	"fmt"
)

// constraintsBundle is the tooling-facing (not runtime-loaded) view of
// every command's cross-command constraints, keyed by command name so a
// linter or docs generator can look rules up without walking the whole
// tables document.
type constraintsBundle struct {
	Commands []constraintsEntry `json:"commands"`
}

type constraintsEntry struct {
	Name        string           `json:"name"`
	Opcodes     []string         `json:"opcodes"`
	Constraints []SpecConstraint `json:"constraints,omitempty"`
}

func buildConstraintsBundle(cmds []SpecCommand) ([]byte, error) {
	bundle := constraintsBundle{Commands: make([]constraintsEntry, 0, len(cmds))}
	for _, cmd := range cmds {
		if len(cmd.Constraints) == 0 {
			continue
		}
		bundle.Commands = append(bundle.Commands, constraintsEntry{
			Name:        cmd.Name,
			Opcodes:     cmd.Opcodes,
			Constraints: cmd.Constraints,
		})
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("specgen: failed to marshal constraints bundle: %w", err)
	}
	return data, nil
}

// docsBundle is the tooling-facing human-readable command reference: one
// entry per command family with its description and parameter summary,
// meant for `zpl explain` and generated documentation, not for the
// runtime parser/validator.
type docsBundle struct {
	Commands []docsEntry `json:"commands"`
}

type docsEntry struct {
	Name        string      `json:"name"`
	Opcodes     []string    `json:"opcodes"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Stability   string      `json:"stability,omitempty"`
	Params      []docsParam `json:"params,omitempty"`
}

type docsParam struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Unit     string   `json:"unit,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Enum     []string `json:"enum,omitempty"`
}

func buildDocsBundle(cmds []SpecCommand) ([]byte, error) {
	bundle := docsBundle{Commands: make([]docsEntry, 0, len(cmds))}
	for _, cmd := range cmds {
		entry := docsEntry{
			Name:        cmd.Name,
			Opcodes:     cmd.Opcodes,
			Description: cmd.Description,
			Category:    cmd.Category,
			Stability:   cmd.Stability,
		}
		for _, p := range cmd.Signature.Params {
			entry.Params = append(entry.Params, docsParam{
				Name: p.Name, Type: p.Type, Unit: p.Unit, Optional: p.Optional, Enum: p.Enum,
			})
		}
		bundle.Commands = append(bundle.Commands, entry)
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("specgen: failed to marshal docs bundle: %w", err)
	}
	return data, nil
}

// coverageFields lists the tracked optional fields a coverage report
// counts present/missing for, in fixed declaration order so the report
// is itself deterministic across runs.
var coverageFields = []string{
	"description",
	"category",
	"stability",
	"constraints",
	"printer_gates",
	"split_rule",
	"hex_escape_modifier",
	"profile_constraint",
}

func buildCoverageReport(cmds []SpecCommand) CoverageReport {
	counts := make(map[string]int, len(coverageFields))
	for _, cmd := range cmds {
		if cmd.Description != "" {
			counts["description"]++
		}
		if cmd.Category != "" {
			counts["category"]++
		}
		if cmd.Stability != "" {
			counts["stability"]++
		}
		if len(cmd.Constraints) > 0 {
			counts["constraints"]++
		}
		if len(cmd.PrinterGates) > 0 {
			counts["printer_gates"]++
		}
		if cmd.SplitRule != nil {
			counts["split_rule"]++
		}
		if cmd.HexEscapeModifier {
			counts["hex_escape_modifier"]++
		}
		for _, p := range cmd.Signature.Params {
			if p.ProfileConstraint != "" {
				counts["profile_constraint"]++
				break
			}
		}
	}

	report := CoverageReport{TotalCommands: len(cmds)}
	for _, field := range coverageFields {
		present := counts[field]
		report.Fields = append(report.Fields, FieldCoverage{
			Field:   field,
			Present: present,
			Missing: len(cmds) - present,
		})
	}
	return report
}
