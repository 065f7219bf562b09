package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docdex/docdex"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleSearchDocs handles the search_docs tool invocation.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("search_docs"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	query, res := requiredString(args, "query")
	if res != nil {
		return res, nil
	}
	limit, err := docdex.ParseLimit(args["limit"])
	if err != nil {
		return toolError(err), nil
	}
	threshold, err := docdex.ParseThreshold(args["threshold"])
	if err != nil {
		return toolError(err), nil
	}

	req := docdex.SearchRequest{
		Term:           query,
		Docset:         stringArg(args, "docset"),
		Limit:          limit,
		Threshold:      threshold,
		IncludeContent: boolArg(args, "include_content", false),
		Exact:          !boolArg(args, "use_fuzzy", true),
	}

	resp, err := s.searcher.Search(ctx, req)
	if err != nil {
		return toolError(err), nil
	}
	text := fmt.Sprintf("Found %d documentation entries:\n%s", len(resp.Results), formatJSON(resp))
	return mcp.NewToolResultText(text), nil
}

// handleListDocsets handles the list_docsets tool invocation.
func (s *Server) handleListDocsets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("list_docsets"); res != nil {
		return res, nil
	}

	docsets, err := s.searcher.Docsets(ctx)
	if err != nil {
		// An empty inventory is an answer, not a failure.
		if docdex.ErrorCode(err) == docdex.EDISCOVERY {
			return mcp.NewToolResultText(docdex.ErrorMessage(err)), nil
		}
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(docsets)), nil
}

// handleGetDocContent handles the get_doc_content tool invocation.
func (s *Server) handleGetDocContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("get_doc_content"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	docset, res := requiredString(args, "docset")
	if res != nil {
		return res, nil
	}
	path, res := requiredString(args, "path")
	if res != nil {
		return res, nil
	}

	text, err := s.searcher.Content(ctx, docset, path)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// handleAnalyzeProjectContext handles the analyze_project_context tool
// invocation.
func (s *Server) handleAnalyzeProjectContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("analyze_project_context"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	projectPath, res := requiredString(args, "project_path")
	if res != nil {
		return res, nil
	}

	pc, err := s.analyzer.Analyze(ctx, projectPath)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(pc)), nil
}

// handleGetProjectRelevantDocs handles the get_project_relevant_docs
// tool invocation.
func (s *Server) handleGetProjectRelevantDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("get_project_relevant_docs"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	query, res := requiredString(args, "query")
	if res != nil {
		return res, nil
	}
	projectPath, res := requiredString(args, "project_path")
	if res != nil {
		return res, nil
	}
	limit, err := docdex.ParseLimit(args["limit"])
	if err != nil {
		return toolError(err), nil
	}

	pc, err := s.analyzer.Analyze(ctx, projectPath)
	if err != nil {
		return toolError(err), nil
	}

	resp, err := s.searcher.RelevantDocs(ctx, pc, query, limit)
	if err != nil {
		return toolError(err), nil
	}
	if !boolArg(args, "include_latest", true) {
		stripSnippets(resp)
	}
	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// handleGetMigrationDocs handles the get_migration_docs tool
// invocation.
func (s *Server) handleGetMigrationDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("get_migration_docs"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	tech, res := requiredString(args, "technology")
	if res != nil {
		return res, nil
	}
	fromVersion, res := requiredString(args, "from_version")
	if res != nil {
		return res, nil
	}
	toVersion, res := requiredString(args, "to_version")
	if res != nil {
		return res, nil
	}

	resp, err := s.searcher.MigrationDocs(ctx, tech, fromVersion, toVersion)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// handleGetLatestAPIReference handles the get_latest_api_reference tool
// invocation.
func (s *Server) handleGetLatestAPIReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("get_latest_api_reference"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	api, res := requiredString(args, "api_name")
	if res != nil {
		return res, nil
	}
	tech, res := requiredString(args, "technology")
	if res != nil {
		return res, nil
	}

	resp, err := s.searcher.APIReference(ctx, api, tech)
	if err != nil {
		return toolError(err), nil
	}
	if !boolArg(args, "include_examples", true) {
		stripSnippets(resp)
	}
	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// handleInvalidateCache handles the invalidate_cache tool invocation.
func (s *Server) handleInvalidateCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.gated("invalidate_cache"); res != nil {
		return res, nil
	}
	args, res := arguments(request)
	if res != nil {
		return res, nil
	}

	key := stringArg(args, "key")
	if err := s.searcher.InvalidateCache(ctx, key); err != nil {
		return toolError(err), nil
	}
	if key == "" {
		return mcp.NewToolResultText("cache cleared"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("cache entry %s removed", key)), nil
}

// gated returns a non-nil error result when the tool's rate budget is
// exhausted.
func (s *Server) gated(tool string) *mcp.CallToolResult {
	if s.gate.Allow(tool) {
		return nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("rate limit exceeded for %s, retry shortly", tool))
}

// arguments extracts the tool arguments object from a request. Absent
// arguments act as an empty object.
func arguments(request mcp.CallToolRequest) (map[string]interface{}, *mcp.CallToolResult) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("tool arguments must be an object")
	}
	return args, nil
}

// toolError converts a domain error into an in-band tool error, keeping
// the stdio session alive.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(docdex.ErrorMessage(err))
}

// requiredString extracts a mandatory string parameter.
func requiredString(args map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	v, ok := args[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s parameter is required", key))
	}
	return v, nil
}

// stringArg extracts an optional string parameter.
func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// boolArg extracts a boolean parameter with a default value.
func boolArg(args map[string]interface{}, key string, defaultValue bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return defaultValue
}

// stripSnippets drops extracted content from a response in place.
func stripSnippets(resp *docdex.SearchResponse) {
	for i := range resp.Results {
		resp.Results[i].Snippet = ""
	}
}

// formatJSON renders a value as indented JSON.
func formatJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
