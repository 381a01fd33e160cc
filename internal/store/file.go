package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaJSON string

const schemaURL = "tasks.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Load reads the task file at path.
// A missing file is not an error: Load returns an empty store.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, &PersistenceError{Op: OpRead, Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PersistenceError{Op: OpRead, Path: path, Err: err}
	}

	return decode(path, data)
}

// Save writes s to path with 2-space indentation, replacing the whole file.
// Descriptions must be valid UTF-8; the file is left untouched otherwise.
// The write is not atomic: a failure part way through can leave a truncated file.
func Save(path string, s *Store) error {
	for i, task := range s.Tasks {
		if !utf8.ValidString(task.Description) {
			return &PersistenceError{Op: OpWrite, Path: path, Err: fmt.Errorf("tasks[%d].description: invalid UTF-8", i)}
		}
	}

	doc := *s
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return &PersistenceError{Op: OpWrite, Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &PersistenceError{Op: OpWrite, Path: path, Err: err}
	}
	return nil
}

// decode parses and validates the contents of a task file.
func decode(path string, data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &PersistenceError{Op: OpParse, Path: path, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &PersistenceError{Op: OpParse, Path: path, Err: errors.New("unexpected data after top-level value")}
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, &PersistenceError{Op: OpValidate, Path: path, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &PersistenceError{Op: OpValidate, Path: path, Err: schemaError(err)}
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &PersistenceError{Op: OpParse, Path: path, Err: err}
	}
	if err := s.checkInvariants(); err != nil {
		return nil, &PersistenceError{Op: OpValidate, Path: path, Err: err}
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	return &s, nil
}

// checkInvariants rejects hand-edited files whose ids collide or would be reissued.
func (s *Store) checkInvariants() error {
	seen := make(map[uint32]int, len(s.Tasks))
	for i, task := range s.Tasks {
		path := fmt.Sprintf("tasks[%d].id", i)
		if prev, ok := seen[task.ID]; ok {
			return fmt.Errorf("%s: duplicate id %d (also at tasks[%d])", path, task.ID, prev)
		}
		if task.ID >= s.NextID {
			return fmt.Errorf("%s: id %d is not below next_id %d", path, task.ID, s.NextID)
		}
		seen[task.ID] = i
	}
	return nil
}

// schemaError flattens a jsonschema validation failure into one line.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var msgs []string
	collectSchemaErrors(&msgs, ve)
	if len(msgs) == 0 {
		return err
	}
	return errors.New(strings.Join(msgs, "; "))
}

func collectSchemaErrors(msgs *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		if path := jsonPointerToPath(err.InstanceLocation); path != "" {
			*msgs = append(*msgs, path+": "+err.Message)
		} else {
			*msgs = append(*msgs, err.Message)
		}
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(msgs, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/id" into "tasks[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
