package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/mock"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_SearchDocs(t *testing.T) {
	t.Parallel()

	t.Run("returns matching entries as json text", func(t *testing.T) {
		t.Parallel()

		var captured docdex.SearchRequest
		s := testServer(&mock.Searcher{
			SearchFn: func(_ context.Context, req docdex.SearchRequest) (*docdex.SearchResponse, error) {
				captured = req
				return singleResult("useState", ""), nil
			},
		}, nil)

		result, err := s.handleSearchDocs(context.Background(), toolRequest("search_docs", map[string]interface{}{
			"query": "useState",
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, "Found 1 documentation entries:")
		assert.Contains(t, text, `"name": "useState"`)

		assert.Equal(t, "useState", captured.Term)
		assert.Equal(t, docdex.DefaultLimit, captured.Limit)
		assert.Equal(t, docdex.DefaultThreshold, captured.Threshold)
		assert.False(t, captured.Exact, "fuzzy matching is the default")
		assert.False(t, captured.IncludeContent)
	})

	t.Run("forwards every optional parameter", func(t *testing.T) {
		t.Parallel()

		var captured docdex.SearchRequest
		s := testServer(&mock.Searcher{
			SearchFn: func(_ context.Context, req docdex.SearchRequest) (*docdex.SearchResponse, error) {
				captured = req
				return &docdex.SearchResponse{}, nil
			},
		}, nil)

		_, err := s.handleSearchDocs(context.Background(), toolRequest("search_docs", map[string]interface{}{
			"query":           "map",
			"docset":          "Python 3",
			"limit":           float64(25),
			"threshold":       float64(80),
			"include_content": true,
			"use_fuzzy":       false,
		}))

		require.NoError(t, err)
		assert.Equal(t, "Python 3", captured.Docset)
		assert.Equal(t, 25, captured.Limit)
		assert.Equal(t, 80, captured.Threshold)
		assert.True(t, captured.IncludeContent)
		assert.True(t, captured.Exact, "disabling fuzzy selects exact matching")
	})

	t.Run("rejects a missing query in band", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			SearchFn: func(context.Context, docdex.SearchRequest) (*docdex.SearchResponse, error) {
				t.Error("search must not run without a query")
				return nil, nil
			},
		}, nil)

		result, err := s.handleSearchDocs(context.Background(), toolRequest("search_docs", map[string]interface{}{}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "query parameter is required", resultText(t, result))
	})

	t.Run("rejects a non-numeric limit in band", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, nil)

		result, err := s.handleSearchDocs(context.Background(), toolRequest("search_docs", map[string]interface{}{
			"query": "useState",
			"limit": "ten",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "limit must be an integer", resultText(t, result))
	})

	t.Run("rejects non-object arguments", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, nil)
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "search_docs", Arguments: "useState"},
		}

		result, err := s.handleSearchDocs(context.Background(), request)

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "tool arguments must be an object", resultText(t, result))
	})

	t.Run("search failures keep the session alive", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			SearchFn: func(context.Context, docdex.SearchRequest) (*docdex.SearchResponse, error) {
				return nil, docdex.Errorf(docdex.EQUERY, "index database is malformed")
			},
		}, nil)

		result, err := s.handleSearchDocs(context.Background(), toolRequest("search_docs", map[string]interface{}{
			"query": "useState",
		}))

		require.NoError(t, err, "failures travel inside the result")
		assert.True(t, result.IsError)
		assert.Equal(t, "index database is malformed", resultText(t, result))
	})
}

func TestServer_ListDocsets(t *testing.T) {
	t.Parallel()

	t.Run("lists the discovered inventory", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			DocsetsFn: func(context.Context) ([]*docdex.Docset, error) {
				return []*docdex.Docset{
					{Name: "Python 3", Schema: docdex.SchemaSearchIndex},
					{Name: "React", Schema: docdex.SchemaTokenTable},
				}, nil
			},
		}, nil)

		result, err := s.handleListDocsets(context.Background(), toolRequest("list_docsets", nil))

		require.NoError(t, err)
		require.False(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, `"name": "Python 3"`)
		assert.Contains(t, text, `"name": "React"`)
	})

	t.Run("an empty inventory reads as plain text", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			DocsetsFn: func(context.Context) ([]*docdex.Docset, error) {
				return nil, docdex.Errorf(docdex.EDISCOVERY, "no docsets found under /opt/docsets")
			},
		}, nil)

		result, err := s.handleListDocsets(context.Background(), toolRequest("list_docsets", nil))

		require.NoError(t, err)
		assert.False(t, result.IsError, "a bare inventory is an answer, not a failure")
		assert.Equal(t, "no docsets found under /opt/docsets", resultText(t, result))
	})

	t.Run("other failures are tool errors", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			DocsetsFn: func(context.Context) ([]*docdex.Docset, error) {
				return nil, docdex.Errorf(docdex.EINTERNAL, "an internal error has occurred")
			},
		}, nil)

		result, err := s.handleListDocsets(context.Background(), toolRequest("list_docsets", nil))

		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestServer_GetDocContent(t *testing.T) {
	t.Parallel()

	t.Run("delivers the rendered document", func(t *testing.T) {
		t.Parallel()

		var gotDocset, gotPath string
		s := testServer(&mock.Searcher{
			ContentFn: func(_ context.Context, docset, relPath string) (string, error) {
				gotDocset, gotPath = docset, relPath
				return "# useState\n\nA Hook for local state.", nil
			},
		}, nil)

		result, err := s.handleGetDocContent(context.Background(), toolRequest("get_doc_content", map[string]interface{}{
			"docset": "React",
			"path":   "react/usestate.html#parameters",
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Equal(t, "# useState\n\nA Hook for local state.", resultText(t, result))
		assert.Equal(t, "React", gotDocset)
		assert.Equal(t, "react/usestate.html#parameters", gotPath)
	})

	t.Run("requires docset and path", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, nil)

		result, err := s.handleGetDocContent(context.Background(), toolRequest("get_doc_content", map[string]interface{}{
			"path": "usestate.html",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "docset parameter is required", resultText(t, result))

		result, err = s.handleGetDocContent(context.Background(), toolRequest("get_doc_content", map[string]interface{}{
			"docset": "React",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "path parameter is required", resultText(t, result))
	})

	t.Run("missing documents are reported in band", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			ContentFn: func(context.Context, string, string) (string, error) {
				return "", docdex.Errorf(docdex.ENOTFOUND, "document %q not found in docset React", "gone.html")
			},
		}, nil)

		result, err := s.handleGetDocContent(context.Background(), toolRequest("get_doc_content", map[string]interface{}{
			"docset": "React",
			"path":   "gone.html",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, `document "gone.html" not found in docset React`, resultText(t, result))
	})
}

func TestServer_AnalyzeProjectContext(t *testing.T) {
	t.Parallel()

	t.Run("reports the detected stack", func(t *testing.T) {
		t.Parallel()

		var analyzed string
		s := testServer(&mock.Searcher{}, &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, dir string) (*docdex.ProjectContext, error) {
				analyzed = dir
				return &docdex.ProjectContext{
					Language:     "python",
					Framework:    "django",
					ProjectType:  "web-application",
					Dependencies: []string{"django", "celery"},
				}, nil
			},
		})

		result, err := s.handleAnalyzeProjectContext(context.Background(), toolRequest("analyze_project_context", map[string]interface{}{
			"project_path": "/home/dev/shop",
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, `"language": "python"`)
		assert.Contains(t, text, `"framework": "django"`)
		assert.Contains(t, text, `"celery"`)
		assert.Equal(t, "/home/dev/shop", analyzed)
	})

	t.Run("requires a project path", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, &mock.Analyzer{})

		result, err := s.handleAnalyzeProjectContext(context.Background(), toolRequest("analyze_project_context", map[string]interface{}{}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "project_path parameter is required", resultText(t, result))
	})

	t.Run("analysis failures are reported in band", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (*docdex.ProjectContext, error) {
				return nil, docdex.Errorf(docdex.EINVALID, "project directory does not exist")
			},
		})

		result, err := s.handleAnalyzeProjectContext(context.Background(), toolRequest("analyze_project_context", map[string]interface{}{
			"project_path": "/nowhere",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "project directory does not exist", resultText(t, result))
	})
}

func TestServer_GetProjectRelevantDocs(t *testing.T) {
	t.Parallel()

	t.Run("routes the analyzed profile into the search", func(t *testing.T) {
		t.Parallel()

		profile := &docdex.ProjectContext{Language: "python", Framework: "django"}

		var gotPC *docdex.ProjectContext
		var gotTerm string
		var gotLimit int
		s := testServer(&mock.Searcher{
			RelevantDocsFn: func(_ context.Context, pc *docdex.ProjectContext, term string, limit int) (*docdex.SearchResponse, error) {
				gotPC, gotTerm, gotLimit = pc, term, limit
				return singleResult("QuerySet", "Model managers return QuerySets."), nil
			},
		}, &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (*docdex.ProjectContext, error) {
				return profile, nil
			},
		})

		result, err := s.handleGetProjectRelevantDocs(context.Background(), toolRequest("get_project_relevant_docs", map[string]interface{}{
			"query":        "orm",
			"project_path": "/home/dev/shop",
			"limit":        float64(5),
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), `"name": "QuerySet"`)
		assert.Same(t, profile, gotPC)
		assert.Equal(t, "orm", gotTerm)
		assert.Equal(t, 5, gotLimit)
	})

	t.Run("include_latest false strips snippets", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			RelevantDocsFn: func(context.Context, *docdex.ProjectContext, string, int) (*docdex.SearchResponse, error) {
				return singleResult("QuerySet", "Model managers return QuerySets."), nil
			},
		}, &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (*docdex.ProjectContext, error) {
				return &docdex.ProjectContext{Language: "python"}, nil
			},
		})

		result, err := s.handleGetProjectRelevantDocs(context.Background(), toolRequest("get_project_relevant_docs", map[string]interface{}{
			"query":          "orm",
			"project_path":   "/home/dev/shop",
			"include_latest": false,
		}))

		require.NoError(t, err)
		text := resultText(t, result)
		assert.Contains(t, text, `"name": "QuerySet"`)
		assert.NotContains(t, text, "Model managers return QuerySets.")
	})

	t.Run("requires query and project_path", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, &mock.Analyzer{})

		result, err := s.handleGetProjectRelevantDocs(context.Background(), toolRequest("get_project_relevant_docs", map[string]interface{}{
			"project_path": "/home/dev/shop",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "query parameter is required", resultText(t, result))

		result, err = s.handleGetProjectRelevantDocs(context.Background(), toolRequest("get_project_relevant_docs", map[string]interface{}{
			"query": "orm",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "project_path parameter is required", resultText(t, result))
	})

	t.Run("analysis failures stop before the search", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			RelevantDocsFn: func(context.Context, *docdex.ProjectContext, string, int) (*docdex.SearchResponse, error) {
				t.Error("search must not run when analysis fails")
				return nil, nil
			},
		}, &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (*docdex.ProjectContext, error) {
				return nil, docdex.Errorf(docdex.EINVALID, "project directory does not exist")
			},
		})

		result, err := s.handleGetProjectRelevantDocs(context.Background(), toolRequest("get_project_relevant_docs", map[string]interface{}{
			"query":        "orm",
			"project_path": "/nowhere",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "project directory does not exist", resultText(t, result))
	})
}

func TestServer_GetMigrationDocs(t *testing.T) {
	t.Parallel()

	t.Run("fetches guides between versions", func(t *testing.T) {
		t.Parallel()

		var gotTech, gotFrom, gotTo string
		s := testServer(&mock.Searcher{
			MigrationDocsFn: func(_ context.Context, tech, fromVersion, toVersion string) (*docdex.SearchResponse, error) {
				gotTech, gotFrom, gotTo = tech, fromVersion, toVersion
				return singleResult("Migration Guide", ""), nil
			},
		}, nil)

		result, err := s.handleGetMigrationDocs(context.Background(), toolRequest("get_migration_docs", map[string]interface{}{
			"technology":   "react",
			"from_version": "17",
			"to_version":   "18",
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), `"name": "Migration Guide"`)
		assert.Equal(t, "react", gotTech)
		assert.Equal(t, "17", gotFrom)
		assert.Equal(t, "18", gotTo)
	})

	t.Run("requires technology and both versions", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, nil)
		full := map[string]interface{}{
			"technology":   "react",
			"from_version": "17",
			"to_version":   "18",
		}

		for _, missing := range []string{"technology", "from_version", "to_version"} {
			args := map[string]interface{}{}
			for k, v := range full {
				if k != missing {
					args[k] = v
				}
			}

			result, err := s.handleGetMigrationDocs(context.Background(), toolRequest("get_migration_docs", args))

			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, missing+" parameter is required", resultText(t, result))
		}
	})

	t.Run("unknown technologies are reported in band", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			MigrationDocsFn: func(context.Context, string, string, string) (*docdex.SearchResponse, error) {
				return nil, docdex.Errorf(docdex.ENOTFOUND, "no docset matches %q", "zig")
			},
		}, nil)

		result, err := s.handleGetMigrationDocs(context.Background(), toolRequest("get_migration_docs", map[string]interface{}{
			"technology":   "zig",
			"from_version": "0.10",
			"to_version":   "0.11",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, `no docset matches "zig"`, resultText(t, result))
	})
}

func TestServer_GetLatestAPIReference(t *testing.T) {
	t.Parallel()

	t.Run("fetches the reference for an api", func(t *testing.T) {
		t.Parallel()

		var gotAPI, gotTech string
		s := testServer(&mock.Searcher{
			APIReferenceFn: func(_ context.Context, api, tech string) (*docdex.SearchResponse, error) {
				gotAPI, gotTech = api, tech
				return singleResult("useState", "const [state, setState] = useState(initial)"), nil
			},
		}, nil)

		result, err := s.handleGetLatestAPIReference(context.Background(), toolRequest("get_latest_api_reference", map[string]interface{}{
			"api_name":   "useState",
			"technology": "react",
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, `"name": "useState"`)
		assert.Contains(t, text, "setState", "examples travel by default")
		assert.Equal(t, "useState", gotAPI)
		assert.Equal(t, "react", gotTech)
	})

	t.Run("include_examples false strips snippets", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			APIReferenceFn: func(context.Context, string, string) (*docdex.SearchResponse, error) {
				return singleResult("useState", "const [state, setState] = useState(initial)"), nil
			},
		}, nil)

		result, err := s.handleGetLatestAPIReference(context.Background(), toolRequest("get_latest_api_reference", map[string]interface{}{
			"api_name":         "useState",
			"technology":       "react",
			"include_examples": false,
		}))

		require.NoError(t, err)
		text := resultText(t, result)
		assert.Contains(t, text, `"name": "useState"`)
		assert.NotContains(t, text, "setState")
	})

	t.Run("requires api_name and technology", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{}, nil)

		result, err := s.handleGetLatestAPIReference(context.Background(), toolRequest("get_latest_api_reference", map[string]interface{}{
			"technology": "react",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "api_name parameter is required", resultText(t, result))

		result, err = s.handleGetLatestAPIReference(context.Background(), toolRequest("get_latest_api_reference", map[string]interface{}{
			"api_name": "useState",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "technology parameter is required", resultText(t, result))
	})
}

func TestServer_InvalidateCache(t *testing.T) {
	t.Parallel()

	t.Run("clears everything without a key", func(t *testing.T) {
		t.Parallel()

		var gotKey string
		called := false
		s := testServer(&mock.Searcher{
			InvalidateCacheFn: func(_ context.Context, key string) error {
				called = true
				gotKey = key
				return nil
			},
		}, nil)

		result, err := s.handleInvalidateCache(context.Background(), toolRequest("invalidate_cache", nil))

		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Equal(t, "cache cleared", resultText(t, result))
		assert.True(t, called)
		assert.Empty(t, gotKey)
	})

	t.Run("removes a single entry by key", func(t *testing.T) {
		t.Parallel()

		var gotKey string
		s := testServer(&mock.Searcher{
			InvalidateCacheFn: func(_ context.Context, key string) error {
				gotKey = key
				return nil
			},
		}, nil)

		result, err := s.handleInvalidateCache(context.Background(), toolRequest("invalidate_cache", map[string]interface{}{
			"key": "results-8f2a",
		}))

		require.NoError(t, err)
		assert.Equal(t, "cache entry results-8f2a removed", resultText(t, result))
		assert.Equal(t, "results-8f2a", gotKey)
	})

	t.Run("cache failures are reported in band", func(t *testing.T) {
		t.Parallel()

		s := testServer(&mock.Searcher{
			InvalidateCacheFn: func(context.Context, string) error {
				return docdex.Errorf(docdex.ECACHE, "removing cache entry: permission denied")
			},
		}, nil)

		result, err := s.handleInvalidateCache(context.Background(), toolRequest("invalidate_cache", nil))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "removing cache entry: permission denied", resultText(t, result))
	})
}

func TestServer_RateLimiting(t *testing.T) {
	t.Parallel()

	s := testServer(&mock.Searcher{
		DocsetsFn: func(context.Context) ([]*docdex.Docset, error) {
			return []*docdex.Docset{{Name: "React"}}, nil
		},
		SearchFn: func(context.Context, docdex.SearchRequest) (*docdex.SearchResponse, error) {
			return &docdex.SearchResponse{}, nil
		},
	}, nil)
	s.gate = NewToolGate(1, time.Minute)

	first, err := s.handleListDocsets(context.Background(), toolRequest("list_docsets", nil))
	require.NoError(t, err)
	assert.False(t, first.IsError)

	second, err := s.handleListDocsets(context.Background(), toolRequest("list_docsets", nil))
	require.NoError(t, err)
	assert.True(t, second.IsError)
	assert.Equal(t, "rate limit exceeded for list_docsets, retry shortly", resultText(t, second))

	// Budgets are tracked per tool, so other tools stay callable.
	other, err := s.handleSearchDocs(context.Background(), toolRequest("search_docs", map[string]interface{}{
		"query": "useState",
	}))
	require.NoError(t, err)
	assert.False(t, other.IsError)
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	s := NewServer(&mock.Searcher{
		DocsetsFn: func(context.Context) ([]*docdex.Docset, error) {
			return []*docdex.Docset{{Name: "React"}}, nil
		},
	}, &mock.Analyzer{})

	require.NotNil(t, s)

	result, err := s.handleListDocsets(context.Background(), toolRequest("list_docsets", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func testServer(searcher docdex.Searcher, analyzer docdex.Analyzer) *Server {
	return &Server{
		searcher: searcher,
		analyzer: analyzer,
		gate:     NewToolGate(RateLimitCalls, RateLimitWindow),
	}
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	if args != nil {
		request.Params.Arguments = args
	}
	return request
}

func singleResult(name, snippet string) *docdex.SearchResponse {
	return &docdex.SearchResponse{
		Results: []docdex.SearchResult{{
			Entry:   docdex.IndexEntry{Docset: "React", Name: name, Type: "Function", Path: "react/usestate.html"},
			Score:   100,
			Snippet: snippet,
		}},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}
