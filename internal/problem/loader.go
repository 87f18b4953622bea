package problem

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed pools/*.json
var embedded embed.FS

const schemaFile = "schema.json"

// LoadEmbedded builds a Repository from the pools compiled into the binary.
func LoadEmbedded(opts ...Option) (*Repository, error) {
	sub, err := fs.Sub(embedded, "pools")
	if err != nil {
		return nil, fmt.Errorf("open embedded pools: %w", err)
	}
	return LoadPools(sub, opts...)
}

// LoadPools reads every *.json pool file in fsys (except the schema),
// validates it against the embedded schema and the structural rules in
// validateProblems, and builds a Repository.
func LoadPools(fsys fs.FS, opts ...Option) (*Repository, error) {
	pools, err := ReadPools(fsys)
	if err != nil {
		return nil, err
	}
	return NewRepository(pools, opts...), nil
}

// ReadPools parses and validates the pool files in fsys without building
// a Repository.
func ReadPools(fsys fs.FS) (map[Type][]Problem, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list pool files: %w", err)
	}
	sort.Strings(files)

	pools := make(map[Type][]Problem)
	for _, name := range files {
		if path.Base(name) == schemaFile {
			continue
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := schema.Validate(doc); err != nil {
			return nil, fmt.Errorf("validate %s: %w", name, err)
		}

		var problems []Problem
		if err := json.Unmarshal(raw, &problems); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		for _, p := range problems {
			pools[p.Type] = append(pools[p.Type], p)
		}
	}

	if err := validateProblems(pools); err != nil {
		return nil, err
	}
	return pools, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	raw, err := embedded.ReadFile("pools/" + schemaFile)
	if err != nil {
		return nil, fmt.Errorf("read pool schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse pool schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://codequiz/pool.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add pool schema: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile pool schema: %w", err)
	}
	return compiled, nil
}

// validateProblems checks rules the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateProblems(pools map[Type][]Problem) error {
	var errs []string

	for _, t := range AllTypes() {
		seen := make(map[string]bool, len(pools[t]))
		for _, p := range pools[t] {
			if seen[p.ID] {
				errs = append(errs, fmt.Sprintf("duplicate %s problem ID: %q", t, p.ID))
			}
			seen[p.ID] = true

			switch t {
			case TypeMultipleChoice:
				if p.CorrectChoiceIndex() < 0 {
					errs = append(errs, fmt.Sprintf("problem %q: answer %q is not among its choices", p.ID, p.Answer))
				}
			case TypeDebugging:
				line, _ := strconv.Atoi(p.Answer)
				if line < 1 || line > len(p.CodeLines()) {
					errs = append(errs, fmt.Sprintf("problem %q: buggy line %s is outside the snippet", p.ID, p.Answer))
				}
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid problem pools:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
