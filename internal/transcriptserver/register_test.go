package transcriptserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTools_Annotations(t *testing.T) {
	svc, _ := newService(t, newProvider(), &fakeTranslator{})
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "go_transcript", Version: "test"}, nil)
	RegisterTools(server, svc)

	st, ct := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, ToolCount)

	readOnly := map[string]bool{}
	for _, tool := range res.Tools {
		readOnly[tool.Name] = tool.Annotations != nil && tool.Annotations.ReadOnlyHint
	}

	// These save library rows or files.
	for _, name := range []string{"transcript_fetch", "transcript_translate", "transcript_download"} {
		assert.False(t, readOnly[name], name)
	}
	for _, name := range []string{"resolve_video", "transcript_languages", "transcript_history", "language_catalog"} {
		assert.True(t, readOnly[name], name)
	}
}
