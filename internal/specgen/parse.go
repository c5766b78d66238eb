package specgen

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSpecFile reads, decomments, decodes, schema-validates, and
// single-file cross-field-validates one per-command spec file. The
// returned errors are always *Error and name path+field precisely.
func LoadSpecFile(path string, schema Schema) (SpecCommand, []*Error) {
	// #nosec G304 -- path is enumerated from a configured spec directory
	data, err := os.ReadFile(path)
	if err != nil {
		return SpecCommand{}, []*Error{{Kind: ErrInvalidJSON, Path: path, Msg: fmt.Sprintf("failed to read: %v", err)}}
	}

	stripped, err := StripComments(data)
	if err != nil {
		return SpecCommand{}, []*Error{{Kind: ErrInvalidJSON, Path: path, Msg: err.Error()}}
	}

	var cmd SpecCommand
	if err := json.Unmarshal(stripped, &cmd); err != nil {
		return SpecCommand{}, []*Error{{Kind: ErrInvalidJSON, Path: path, Msg: fmt.Sprintf("invalid json: %v", err)}}
	}
	cmd.SourcePath = path

	var errs []*Error
	errs = append(errs, schema.Validate(cmd)...)
	errs = append(errs, validateSingleFile(cmd)...)
	return cmd, errs
}
