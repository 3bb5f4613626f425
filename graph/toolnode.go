package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/tool"
)

// MetaArgs is the metadata key a caller may use to pass structured arguments
// to a tool node.
const MetaArgs = "args"

// ToolNode invokes a single bound tool once per visit. Arguments are decoded
// from the inbound message: the MetaArgs metadata entry when present,
// otherwise the message content when it is a JSON object, otherwise empty
// arguments. Like agents, a tool node contains its failures: lookup and
// execution errors degrade into error-content responses instead of aborting
// the run.
type ToolNode struct {
	tool tool.Tool
}

// NewToolNode constructs a tool node around t.
func NewToolNode(t tool.Tool) *ToolNode {
	return &ToolNode{tool: t}
}

// Invoke implements core.Executor. Tool nodes leave the edge label empty so
// the engine resolves the node's implicit or declared default edge.
func (n *ToolNode) Invoke(ctx context.Context, msg core.Message, _ *core.RunState) (core.Message, string, error) {
	args := decodeArgs(msg)

	result, err := n.tool.Call(ctx, args)
	if err != nil {
		resp := msg.CreateResponse(
			fmt.Sprintf("Tool %s failed: %v", n.tool.Name(), err),
			map[string]any{core.MetaError: err.Error(), core.MetaToolName: n.tool.Name()},
		)
		return resp, "", nil
	}

	content := ""
	switch v := result.(type) {
	case string:
		content = v
	case nil:
	default:
		if b, jerr := json.Marshal(v); jerr == nil {
			content = string(b)
		} else {
			content = fmt.Sprintf("%v", v)
		}
	}

	resp := msg.CreateResponse(content, map[string]any{
		core.MetaToolResult: true,
		core.MetaToolName:   n.tool.Name(),
	})
	return resp, "", nil
}

func decodeArgs(msg core.Message) map[string]any {
	if v, ok := msg.Meta(MetaArgs); ok {
		if args, ok := v.(map[string]any); ok {
			return args
		}
	}

	trimmed := strings.TrimSpace(msg.Content)
	if strings.HasPrefix(trimmed, "{") {
		var args map[string]any
		if err := json.Unmarshal([]byte(trimmed), &args); err == nil {
			return args
		}
	}

	return map[string]any{}
}
