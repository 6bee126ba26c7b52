package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// ListInput is the input schema for the list_licenses tool.
type ListInput struct {
	IDs []string `json:"ids,omitempty" jsonschema:"SPDX ids to look up in any casing; all licenses when empty"`
}

// ListOutput is the output schema for the list_licenses tool.
type ListOutput struct {
	Licenses []LicenseSummary `json:"licenses"`
	Missing  []string         `json:"missing,omitempty"`
	Count    int              `json:"count"`
}

// LicenseSummary describes one cached license.
type LicenseSummary struct {
	ID          string `json:"id"`
	SPDXID      string `json:"spdx_id"`
	Title       string `json:"title"`
	Nickname    string `json:"nickname,omitempty"`
	Description string `json:"description,omitempty"`
}

// FindInput is the input schema for the find_licenses tool.
type FindInput struct {
	Require  []string `json:"require,omitempty" jsonschema:"rule tags every result must carry, e.g. commercial-use"`
	Disallow []string `json:"disallow,omitempty" jsonschema:"rule tags no result may carry, e.g. disclose-source"`
}

// FillInput is the input schema for the fill_license tool.
type FillInput struct {
	LicenseID string            `json:"license_id" jsonschema:"SPDX id of the license to fill"`
	Values    map[string]string `json:"values,omitempty" jsonschema:"placeholder values keyed by fullname, project, email, projecturl or year"`
}

// FillOutput is the output schema for the fill_license tool.
type FillOutput struct {
	LicenseID    string          `json:"license_id"`
	Title        string          `json:"title"`
	Text         string          `json:"text"`
	Bindings     []BindingOutput `json:"bindings"`
	Unrecognized []string        `json:"unrecognized,omitempty"`
}

// BindingOutput reports how one placeholder was resolved.
type BindingOutput struct {
	Key      string   `json:"key"`
	Tokens   []string `json:"tokens"`
	Value    string   `json:"value,omitempty"`
	Resolved bool     `json:"resolved"`
	Source   string   `json:"source"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_licenses",
		Description: "List the cached open source license templates",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_licenses",
		Description: "Find licenses by required and disallowed rule tags",
	}, s.handleFind)

	if s.ports.Fill != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "fill_license",
			Description: "Fill the placeholders of a license template and return the text without writing a file",
		}, s.handleFill)
	}
}

// handleList handles the list_licenses tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	cache := s.ports.Cache.Load(ctx)
	found, missing := s.ports.Licenses.List(cache, input.IDs)

	output := ListOutput{
		Licenses: summaries(found),
		Missing:  missing,
		Count:    len(found),
	}
	return nil, output, nil
}

// handleFind handles the find_licenses tool invocation.
func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, ListOutput, error) {
	cache := s.ports.Cache.Load(ctx)
	found, err := s.ports.Licenses.Find(cache, input.Require, input.Disallow)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, ListOutput{Licenses: summaries(found), Count: len(found)}, nil
}

// handleFill handles the fill_license tool invocation. Saved preferences
// are used but never updated.
func (s *Server) handleFill(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FillInput,
) (*mcp.CallToolResult, FillOutput, error) {
	if strings.TrimSpace(input.LicenseID) == "" {
		return nil, FillOutput{}, errors.New("license_id is required")
	}

	explicit := make(map[string]string, len(input.Values))
	for k, v := range input.Values {
		explicit[strings.ToLower(strings.TrimSpace(k))] = v
	}

	cache := s.ports.Cache.Load(ctx)
	result, err := s.ports.Fill.Preview(cache, input.LicenseID, explicit)
	if err != nil {
		return nil, FillOutput{}, err
	}

	output := FillOutput{
		LicenseID:    result.License.Key,
		Title:        result.License.Title(),
		Text:         result.Resolution.FilledBody,
		Bindings:     make([]BindingOutput, 0, len(result.Resolution.Bindings)),
		Unrecognized: result.Resolution.Unrecognized,
	}
	for _, b := range result.Resolution.Bindings {
		output.Bindings = append(output.Bindings, BindingOutput{
			Key:      b.CanonicalKey,
			Tokens:   b.RawTokens,
			Value:    b.Value,
			Resolved: b.Resolved,
			Source:   b.Source.String(),
		})
	}
	return nil, output, nil
}

func summaries(records []domain.Record) []LicenseSummary {
	out := make([]LicenseSummary, 0, len(records))
	for _, rec := range records {
		summary := LicenseSummary{ID: rec.Key, SPDXID: rec.Key, Title: rec.Title()}
		if rec.Metadata != nil {
			summary.SPDXID = rec.Metadata.SPDXID
			summary.Nickname = rec.Metadata.Nickname
			summary.Description = rec.Metadata.Description
		}
		out = append(out, summary)
	}
	return out
}
