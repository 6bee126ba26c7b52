package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for getlicense resources.
	uriScheme = "getlicense://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "licenses",
		Name:        "licenses",
		Description: "Summary of every cached license",
		MIMEType:    "application/json",
	}, s.handleLicensesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "licenses/{id}",
		Name:        "license-template",
		Description: "Raw template text of a license, placeholders unfilled",
		MIMEType:    "text/plain",
	}, s.handleLicenseResource)
}

// handleLicensesResource returns the summaries of all cached licenses.
func (s *Server) handleLicensesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cache := s.ports.Cache.Load(ctx)
	found, _ := s.ports.Licenses.List(cache, nil)

	data, err := json.MarshalIndent(summaries(found), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling licenses: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleLicenseResource returns the raw body of one license.
func (s *Server) handleLicenseResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractLicenseID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cache := s.ports.Cache.Load(ctx)
	rec, err := s.ports.Licenses.Get(cache, id)
	if err != nil || rec.Body == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     *rec.Body,
		}},
	}, nil
}

// extractLicenseID extracts the id from a URI like getlicense://licenses/{id}.
func extractLicenseID(uri string) string {
	const prefix = uriScheme + "licenses/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
