package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"snipcheck/internal/analysis"
	"snipcheck/internal/normalize"
	"snipcheck/internal/report"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve snippet analysis as MCP tools over stdio",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		analyzer, err := initAnalyzer(ctx, cfg)
		if err != nil {
			log.Fatalf("%v", err)
		}

		mcpServer := newMCPServer(analyzer, cfg.Output.Locale)

		// stdout carries the protocol; log goes to stderr.
		log.Println("Starting snipcheck MCP server via stdio...")
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func newMCPServer(analyzer *analysis.Analyzer, defaultLocale string) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"snipcheck",
		version,
		server.WithLogging(),
		server.WithRecovery(),
	)

	analyzeTool := mcp.NewTool("analyze_snippet",
		mcp.WithDescription("Normalize a Python code snippet and predict whether it has a syntax error and which structures (loop, conditional, list operation) it contains."),
		mcp.WithString("code",
			mcp.Description("The snippet source code."),
			mcp.Required(),
		),
		mcp.WithString("output_format",
			mcp.Description("Format of the analysis result."),
			mcp.DefaultString("json"),
			mcp.Enum("text", "markdown", "json"),
		),
		mcp.WithString("locale",
			mcp.Description("Language of the verdict messages."),
			mcp.Enum("en", "es"),
		),
	)

	normalizeTool := mcp.NewTool("normalize_snippet",
		mcp.WithDescription("Return the canonical form of a snippet: comments stripped, blank lines removed and whitespace collapsed."),
		mcp.WithString("code",
			mcp.Description("The snippet source code."),
			mcp.Required(),
		),
	)

	mcpServer.AddTool(analyzeTool, analyzeHandler(analyzer, defaultLocale))
	mcpServer.AddTool(normalizeTool, handleNormalize)
	return mcpServer
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

func analyzeHandler(analyzer *analysis.Analyzer, defaultLocale string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments

		code, ok := args["code"].(string)
		if !ok {
			return nil, fmt.Errorf("missing or invalid required argument: code (string)")
		}
		outputFormat, ok := args["output_format"].(string)
		if !ok || outputFormat == "" {
			outputFormat = "json"
		}
		locale, ok := args["locale"].(string)
		if !ok || locale == "" {
			locale = defaultLocale
		}

		res, analyzeErr := analyzer.Analyze(ctx, code)
		if analyzeErr != nil {
			log.Printf("analyze_snippet: %v", analyzeErr)
		}

		var sb strings.Builder
		if err := report.Render(&sb, res, report.Options{Format: outputFormat, Locale: locale}); err != nil {
			return nil, err
		}

		result := textResult(sb.String())
		result.IsError = analyzeErr != nil
		return result, nil
	}
}

func handleNormalize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, ok := request.Params.Arguments["code"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid required argument: code (string)")
	}
	return textResult(normalize.Canonicalize(code)), nil
}
