package output

import (
	"strings"

	"github.com/marcus/lobby/internal/models"
)

// Marks appended to tree lines
const (
	MarkSelected = " \u25cf" // ●
	MarkMain     = " \u2605" // ★
	MarkExpired  = " \u2717" // ✗
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Title    string
	Detail   string
	Mark     string
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowDetail bool // append the node's detail in brackets
}

// RenderTree renders a tree starting from a single root node.
// The root itself is not printed, only its children.
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		var parts []string
		if node.ID != "" {
			parts = append(parts, node.ID+":")
		}
		parts = append(parts, node.Title)
		if opts.ShowDetail && node.Detail != "" {
			parts = append(parts, "["+node.Detail+"]")
		}

		lines = append(lines, prefix+connector+strings.Join(parts, " ")+node.Mark)

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}

// ServerTree builds a tree of the distribution's servers. The selected
// server and the main server are marked.
func ServerTree(dist *models.Distribution, selected string) TreeNode {
	root := TreeNode{Title: "distribution"}
	if dist == nil {
		return root
	}
	root.Detail = dist.Version
	for _, s := range dist.Servers {
		node := TreeNode{ID: s.ID, Title: s.Name, Detail: s.MinecraftVersion}
		if s.MainServer {
			node.Mark += MarkMain
		}
		if s.ID == selected {
			node.Mark += MarkSelected
		}
		if s.Version != "" {
			node.Children = append(node.Children, TreeNode{Title: "revision " + s.Version})
		}
		if s.Address != "" {
			node.Children = append(node.Children, TreeNode{Title: s.Address})
		}
		root.Children = append(root.Children, node)
	}
	return root
}

// AccountTree builds a tree of stored accounts grouped by account type
func AccountTree(accounts []models.Account, selected string, expired func(models.Account) bool) TreeNode {
	root := TreeNode{Title: "accounts"}
	groups := make(map[models.AccountType]int)
	for _, a := range accounts {
		t := a.Type
		if t == "" {
			t = models.AccountOffline
		}
		idx, ok := groups[t]
		if !ok {
			idx = len(root.Children)
			groups[t] = idx
			root.Children = append(root.Children, TreeNode{Title: string(t)})
		}
		node := TreeNode{ID: a.UUID, Title: a.DisplayName}
		if expired != nil && expired(a) {
			node.Mark += MarkExpired
		}
		if a.UUID == selected {
			node.Mark += MarkSelected
		}
		root.Children[idx].Children = append(root.Children[idx].Children, node)
	}
	return root
}
