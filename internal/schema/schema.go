// Package schema validates a task collection against the embedded task file
// schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tiwariParth/task-cli/internal/models"
	"github.com/tiwariParth/task-cli/internal/task"
)

// URL identifies the embedded schema.
const URL = "https://github.com/tiwariParth/task-cli/tasks.schema.json"

//go:embed tasks.schema.json
var schemaJSON []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(URL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	s, err := compiler.Compile(URL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
})

// Problem is one finding about the task list.
type Problem struct {
	// Path locates the offending value, e.g. "[2].status". Empty for
	// findings about the list as a whole.
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Result collects every problem found.
type Result struct {
	Checked  int
	Problems []Problem
}

// OK reports whether no problems were found.
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

// Validate checks tasks against the schema and for duplicate ids. The
// returned error is reserved for failures of the checker itself.
func Validate(tasks []models.Task) (*Result, error) {
	s, err := compiled()
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}

	result := &Result{Checked: len(tasks)}
	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validate tasks: %w", err)
		}
		collectLeaves(ve, &result.Problems)
	}
	sort.SliceStable(result.Problems, func(i, j int) bool {
		if result.Problems[i].Path != result.Problems[j].Path {
			return result.Problems[i].Path < result.Problems[j].Path
		}
		return result.Problems[i].Message < result.Problems[j].Message
	})

	for _, id := range task.NewCollection(tasks).DuplicateIDs() {
		result.Problems = append(result.Problems, Problem{
			Message: fmt.Sprintf("duplicate id %d", id),
		})
	}
	return result, nil
}

// collectLeaves appends the innermost causes of err, which carry the
// specific messages.
func collectLeaves(err *jsonschema.ValidationError, out *[]Problem) {
	if len(err.Causes) == 0 {
		*out = append(*out, Problem{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}

// pointerToPath turns a JSON pointer such as "/2/status" into "[2].status".
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
