// File path: internal/prompt/schema.go
package prompt

import "sync"

// Type is a schema node type. Only the four kinds the completion services
// agree on are used.
type Type string

const (
	TypeObject Type = "object"
	TypeArray  Type = "array"
	TypeString Type = "string"
	TypeNumber Type = "number"
)

// Field is a named object property. Order is preserved so providers that
// honour property ordering emit keys in this order.
type Field struct {
	Name string
	Node *Node
}

// Node is a provider-neutral schema tree. Providers render it into their own
// schema types.
type Node struct {
	Type     Type
	Fields   []Field
	Items    *Node
	Nullable bool
}

// Required lists the names of the non-nullable fields.
func (n *Node) Required() []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, f := range n.Fields {
		if !f.Node.Nullable {
			out = append(out, f.Name)
		}
	}
	return out
}

// Field returns the named property of an object node.
func (n *Node) Field(name string) *Node {
	if n == nil {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node
		}
	}
	return nil
}

// JSONSchema renders n as a JSON Schema document.
func (n *Node) JSONSchema() map[string]any {
	if n == nil {
		return nil
	}
	out := map[string]any{}
	if n.Nullable {
		out["type"] = []string{string(n.Type), "null"}
	} else {
		out["type"] = string(n.Type)
	}
	switch n.Type {
	case TypeObject:
		props := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			props[f.Name] = f.Node.JSONSchema()
		}
		out["properties"] = props
		if req := n.Required(); len(req) > 0 {
			out["required"] = req
		}
	case TypeArray:
		out["items"] = n.Items.JSONSchema()
	}
	return out
}

func object(fields ...Field) *Node { return &Node{Type: TypeObject, Fields: fields} }
func array(items *Node) *Node      { return &Node{Type: TypeArray, Items: items} }
func str() *Node                   { return &Node{Type: TypeString} }
func num() *Node                   { return &Node{Type: TypeNumber} }

func field(name string, node *Node) Field { return Field{Name: name, Node: node} }

func nullable(n *Node) *Node {
	n.Nullable = true
	return n
}

var (
	schemaOnce sync.Once
	schemaRoot *Node
)

// ResponseSchema describes the audit report the model must return. The tree
// is shared and must not be modified by callers.
func ResponseSchema() *Node {
	schemaOnce.Do(func() {
		schemaRoot = buildResponseSchema()
	})
	return schemaRoot
}

func buildResponseSchema() *Node {
	meta := object(
		field("supported_languages", array(str())),
		field("detected_languages", array(str())),
		field("report_files", array(object(
			field("file_name", str()),
			field("language", str()),
			field("issues_found", num()),
		))),
		field("generated_at", str()),
	)
	overview := object(
		field("overall_assessment", str()),
		field("p0_count", num()),
		field("p1_count", num()),
		field("needs_context_count", num()),
		field("top_risk_areas", array(str())),
	)
	evidence := object(
		field("file_name", str()),
		field("issue_id", nullable(str())),
		field("location", nullable(str())),
		field("source_text", nullable(str())),
		field("target_text", nullable(str())),
		field("rule_hit", nullable(str())),
	)
	dedup := nullable(object(
		field("group_id", str()),
		field("occurrences", num()),
		field("other_locations", array(object(
			field("file_name", str()),
			field("location", str()),
		))),
	))
	fixItem := object(
		field("priority", str()),
		field("language", str()),
		field("category", str()),
		field("summary", str()),
		field("evidence", evidence),
		field("why_it_matters", str()),
		field("proposed_fix", str()),
		field("verification_steps", array(str())),
		field("confidence", num()),
		field("dedup", dedup),
		field("missing_fields", nullable(array(str()))),
	)
	needsContext := object(
		field("language", str()),
		field("category", str()),
		field("summary", str()),
		field("what_is_missing", array(str())),
		field("risk_if_wrong", str()),
		field("suggested_next_step", str()),
	)
	improvement := object(
		field("area", str()),
		field("recommendation", str()),
		field("expected_benefit", str()),
		field("example", str()),
	)
	return object(
		field("meta", meta),
		field("quality_overview", overview),
		field("fix_list", array(fixItem)),
		field("needs_context", array(needsContext)),
		field("process_improvements", array(improvement)),
	)
}
