package quill

import (
	"strings"
	"text/template"
	"text/template/parse"
)

// The prompt body is a text/template. Free variables are top-level field
// references such as {{.city}}; rendering is strict, so a referenced
// variable with no binding is an error rather than a silent blank.

// templateVariables returns the distinct free variables of body in
// first-appearance order. For {{range}} constructs only the ranged
// expression is inspected; loop-local declarations and everything inside
// the loop body (and its {{else}} branch) are excluded, so loop-bound
// names never leak into the result. A syntax error is returned so the
// caller can downgrade it to a warning.
func templateVariables(body string) ([]string, error) {
	tree := parse.New("prompt")
	tree.Mode = parse.SkipFuncCheck
	treeSet := make(map[string]*parse.Tree)
	if _, err := tree.Parse(body, "", "", treeSet); err != nil {
		return nil, err
	}
	var vars []string
	seen := make(map[string]bool)
	collectVariables(tree.Root, seen, &vars)
	return vars, nil
}

func collectVariables(node parse.Node, seen map[string]bool, vars *[]string) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectVariables(c, seen, vars)
		}
	case *parse.ActionNode:
		collectVariables(n.Pipe, seen, vars)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		// n.Decl holds $-declared locals; those are never free variables.
		for _, cmd := range n.Cmds {
			collectVariables(cmd, seen, vars)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectVariables(arg, seen, vars)
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 && !seen[n.Ident[0]] {
			seen[n.Ident[0]] = true
			*vars = append(*vars, n.Ident[0])
		}
	case *parse.ChainNode:
		collectVariables(n.Node, seen, vars)
	case *parse.IfNode:
		collectVariables(n.Pipe, seen, vars)
		collectVariables(n.List, seen, vars)
		collectVariables(n.ElseList, seen, vars)
	case *parse.WithNode:
		collectVariables(n.Pipe, seen, vars)
		collectVariables(n.List, seen, vars)
		collectVariables(n.ElseList, seen, vars)
	case *parse.RangeNode:
		collectVariables(n.Pipe, seen, vars)
	case *parse.TemplateNode:
		collectVariables(n.Pipe, seen, vars)
	}
}

// renderTemplate substitutes bindings into body. Any variable the body
// references without a binding surfaces as a ReplacementError.
func renderTemplate(body string, bindings map[string]any) (string, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(body)
	if err != nil {
		return "", replacementErrorf("invalid template syntax: %v", err)
	}
	if bindings == nil {
		bindings = map[string]any{}
	}
	var sb strings.Builder
	if err := t.Execute(&sb, bindings); err != nil {
		return "", replacementErrorf("template rendering failed: %v", err)
	}
	return sb.String(), nil
}
