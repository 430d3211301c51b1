// In file: internal/tools/manager.go
package tools

import (
	"context"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Entry is a registered tool together with its compiled request schema.
type Entry struct {
	def    Definition
	tool   Tool
	schema *jsonschema.Schema
}

// Definition returns the tool's definition as registered.
func (e *Entry) Definition() Definition { return e.def }

// Name is the last segment of the tool's path ("scraper", "datavault").
func (e *Entry) Name() string {
	if name, ok := strings.CutPrefix(e.def.Path, InvokePrefix); ok {
		return name
	}
	return strings.TrimPrefix(e.def.Path, QueryPrefix)
}

// Validate checks a request body against the tool's schema. It returns an
// error wrapping ErrMalformedArguments or an *ArgumentError.
func (e *Entry) Validate(arguments []byte) error {
	return validateArguments(e.def.Path, e.schema, arguments)
}

// Invoke runs the tool. Callers are expected to Validate first.
func (e *Entry) Invoke(ctx context.Context, arguments []byte) (any, error) {
	return e.tool.Invoke(ctx, arguments)
}

// Catalog holds the ordered registry of all available tools.
// It is built once at start-up and only read afterwards.
type Catalog struct {
	entries []*Entry
	byPath  map[string]*Entry
	byOp    map[string]bool
}

func NewCatalog() *Catalog {
	return &Catalog{
		byPath: make(map[string]*Entry),
		byOp:   make(map[string]bool),
	}
}

// Register adds a tool to the catalog. The path must sit under InvokePrefix
// or QueryPrefix, and both the path and the operation ID must be unique.
func (c *Catalog) Register(tool Tool) error {
	def := tool.Definition()
	if err := checkPath(def.Path); err != nil {
		return err
	}
	if def.OperationID == "" {
		return fmt.Errorf("tool %s: operation id is required", def.Path)
	}
	if _, dup := c.byPath[def.Path]; dup {
		return fmt.Errorf("tool %s: path already registered", def.Path)
	}
	if c.byOp[def.OperationID] {
		return fmt.Errorf("tool %s: operation id %q already registered", def.Path, def.OperationID)
	}
	schema, err := compileSchema(def.OperationID+".json", def.Parameters)
	if err != nil {
		return fmt.Errorf("tool %s: %w", def.Path, err)
	}

	entry := &Entry{def: def, tool: tool, schema: schema}
	c.entries = append(c.entries, entry)
	c.byPath[def.Path] = entry
	c.byOp[def.OperationID] = true
	return nil
}

func checkPath(path string) error {
	for _, prefix := range []string{InvokePrefix, QueryPrefix} {
		name, ok := strings.CutPrefix(path, prefix)
		if !ok {
			continue
		}
		if name == "" || strings.ContainsAny(name, "/?#") {
			return fmt.Errorf("tool path %q: invalid tool name %q", path, name)
		}
		return nil
	}
	return fmt.Errorf("tool path %q must start with %q or %q", path, InvokePrefix, QueryPrefix)
}

// Entries returns the registered tools in registration order.
func (c *Catalog) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// GetDefinitions returns all registered tool definitions in registration order.
func (c *Catalog) GetDefinitions() []Definition {
	defs := make([]Definition, 0, len(c.entries))
	for _, e := range c.entries {
		defs = append(defs, e.def)
	}
	return defs
}

// ToolCount returns the number of registered tools.
func (c *Catalog) ToolCount() int {
	return len(c.entries)
}
