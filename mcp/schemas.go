package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDocsTool returns the tool definition for search_docs.
func searchDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_docs",
		Description: "Search installed docsets with fuzzy matching and optional content extraction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for documentation",
				},
				"docset": map[string]interface{}{
					"type":        "string",
					"description": "Optional docset name to restrict the search to",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum match score to keep a result (0-100)",
					"default":     60,
					"minimum":     0,
					"maximum":     100,
				},
				"include_content": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, attach extracted page text to each result",
					"default":     false,
				},
				"use_fuzzy": map[string]interface{}{
					"type":        "boolean",
					"description": "If false, use exact name matching instead of fuzzy scoring",
					"default":     true,
				},
			},
			Required: []string{"query"},
		},
	}
}

// listDocsetsTool returns the tool definition for list_docsets.
func listDocsetsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_docsets",
		Description: "List installed docsets with their metadata",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getDocContentTool returns the tool definition for get_doc_content.
func getDocContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_doc_content",
		Description: "Get readable text for a specific documentation entry",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"docset": map[string]interface{}{
					"type":        "string",
					"description": "Docset name as returned by list_docsets",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Document path as returned by search_docs",
				},
			},
			Required: []string{"docset", "path"},
		},
	}
}

// analyzeProjectContextTool returns the tool definition for
// analyze_project_context.
func analyzeProjectContextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_project_context",
		Description: "Analyze a project directory to detect its technology stack and dependencies",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the project directory to analyze",
				},
			},
			Required: []string{"project_path"},
		},
	}
}

// getProjectRelevantDocsTool returns the tool definition for
// get_project_relevant_docs.
func getProjectRelevantDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_project_relevant_docs",
		Description: "Get documentation most relevant to a project's technology stack and a query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What you are trying to implement or understand",
				},
				"project_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the project directory",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"include_latest": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, attach extracted page text to each result",
					"default":     true,
				},
			},
			Required: []string{"query", "project_path"},
		},
	}
}

// getMigrationDocsTool returns the tool definition for
// get_migration_docs.
func getMigrationDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_migration_docs",
		Description: "Get documentation for migrating or upgrading between technology versions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"technology": map[string]interface{}{
					"type":        "string",
					"description": "Technology being upgraded (e.g. 'react', 'django', 'nodejs')",
				},
				"from_version": map[string]interface{}{
					"type":        "string",
					"description": "Current version",
				},
				"to_version": map[string]interface{}{
					"type":        "string",
					"description": "Target version",
				},
			},
			Required: []string{"technology", "from_version", "to_version"},
		},
	}
}

// getLatestAPIReferenceTool returns the tool definition for
// get_latest_api_reference.
func getLatestAPIReferenceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_latest_api_reference",
		Description: "Get current API reference entries for a method, class or function",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"api_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the API, method or class",
				},
				"technology": map[string]interface{}{
					"type":        "string",
					"description": "Technology or library name",
				},
				"include_examples": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, attach extracted page text to each result",
					"default":     true,
				},
			},
			Required: []string{"api_name", "technology"},
		},
	}
}

// invalidateCacheTool returns the tool definition for invalidate_cache.
func invalidateCacheTool() mcp.Tool {
	return mcp.Tool{
		Name:        "invalidate_cache",
		Description: "Remove a cached search result, or clear the whole cache",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Cache key to remove; omit to clear every entry",
				},
			},
		},
	}
}
