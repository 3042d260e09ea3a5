package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const recommendationsURIPrefix = "recommendations://"

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			recommendationsURIPrefix+"{user_id}",
			"Recommended jobs for a user",
			mcp.WithTemplateDescription(
				"Fetch the current job recommendations for a user by token, using the "+
					"server's default limit and distance. The metadata reports whether "+
					"the list fell back to similarity-only ranking."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleRecommendationsResource,
	)
}

func (s *Server) handleRecommendationsResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, recommendationsURIPrefix) {
		return nil, fmt.Errorf("invalid recommendations URI format: %s", uri)
	}

	userID, err := strconv.Atoi(strings.TrimPrefix(uri, recommendationsURIPrefix))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id in URI %s: %w", uri, err)
	}

	resp, err := s.client.GetRecommendations(ctx, userID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations for user %d: %w", userID, err)
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
