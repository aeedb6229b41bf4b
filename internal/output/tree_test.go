package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/marcus/lobby/internal/models"
)

func TestRenderTreeLines_Empty(t *testing.T) {
	lines := RenderTreeLines(nil, TreeRenderOptions{})
	if len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestRenderTreeLines_Connectors(t *testing.T) {
	nodes := []TreeNode{
		{ID: "s1", Title: "First", Detail: "1.20.1"},
		{ID: "s2", Title: "Second", Mark: MarkSelected},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowDetail: true})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "├── s1: First [1.20.1]") {
		t.Errorf("first line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "└── s2: Second") || !strings.HasSuffix(lines[1], "●") {
		t.Errorf("second line: %q", lines[1])
	}
}

func TestRenderTree_MaxDepth(t *testing.T) {
	root := TreeNode{Children: []TreeNode{{
		Title:    "parent",
		Children: []TreeNode{{Title: "child"}},
	}}}

	full := RenderTree(root, TreeRenderOptions{})
	if !strings.Contains(full, "    └── child") {
		t.Errorf("child not indented under last parent:\n%s", full)
	}
	if shallow := RenderTree(root, TreeRenderOptions{MaxDepth: 1}); strings.Contains(shallow, "child") {
		t.Errorf("MaxDepth ignored:\n%s", shallow)
	}
}

func TestServerTree(t *testing.T) {
	dist := &models.Distribution{
		Version: "2.0.0",
		Servers: []models.Server{
			{ID: "main", Name: "Main", MainServer: true, Version: "1.0"},
			{ID: "test", Name: "Test", Address: "test.example.net"},
		},
	}
	out := RenderTree(ServerTree(dist, "test"), TreeRenderOptions{})

	for _, want := range []string{"main: Main ★", "revision 1.0", "test: Test ●", "test.example.net"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAccountTreeGroupsByType(t *testing.T) {
	now := time.Now()
	accounts := []models.Account{
		{UUID: "a", DisplayName: "Alex", Type: models.AccountMicrosoft},
		{UUID: "b", DisplayName: "Bo"},
		{UUID: "c", DisplayName: "Cy", Type: models.AccountMicrosoft, ExpiresAt: now.Add(-time.Hour)},
	}
	root := AccountTree(accounts, "b", func(a models.Account) bool { return a.Expired(now) })

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(root.Children))
	}
	if root.Children[0].Title != "microsoft" || len(root.Children[0].Children) != 2 {
		t.Errorf("microsoft group: %+v", root.Children[0])
	}
	out := RenderTree(root, TreeRenderOptions{})
	if !strings.Contains(out, "c: Cy ✗") || !strings.Contains(out, "b: Bo ●") {
		t.Errorf("marks missing:\n%s", out)
	}
}

func TestMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	defer func() { Stdout, Stderr = oldOut, oldErr }()

	Success("SELECTED %s", "s1")
	Error("bad %d", 1)
	Warning("careful")

	if !strings.Contains(out.String(), "SELECTED s1") {
		t.Errorf("stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "bad 1") || !strings.Contains(errOut.String(), "careful") {
		t.Errorf("stderr: %q", errOut.String())
	}
}
